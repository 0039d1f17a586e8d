// Command traingen generates labeled stacking datasets for training the
// stability regressor, and can optionally replay them against a running
// scoring service.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/stacksafe/internal/dataset"
	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/pkg/logger"
)

func main() {
	var (
		samples = flag.Int("samples", 50000, "number of arrangements to generate")
		out     = flag.String("out", "training_data.json", "output file path (empty to skip writing)")
		format  = flag.String("format", dataset.FormatJSON, "output format: json or csv")
		gz      = flag.Bool("gzip", false, "gzip the output file")
		workers = flag.Int("workers", 0, "generation parallelism (0 = NumCPU)")
		seed    = flag.Int64("seed", 42, "base RNG seed")
		submit  = flag.String("submit", "", "service evaluations URL to replay arrangements against, e.g. http://localhost:9080/evaluations")
		width   = flag.Float64("container-width", model.DefaultContainerWidth, "container width")
		height  = flag.Float64("container-height", model.DefaultContainerHeight, "container height")
		depth   = flag.Float64("container-depth", model.DefaultContainerDepth, "container depth")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Get().Named("traingen")

	stats, err := dataset.Run(ctx, dataset.RunConfig{
		Samples:   *samples,
		Out:       *out,
		Format:    *format,
		Gzip:      *gz,
		Workers:   *workers,
		Seed:      *seed,
		SubmitURL: *submit,
		Container: model.Container{Width: *width, Height: *height, Depth: *depth},
	})
	if err != nil {
		log.Error(ctx, "generation failed", logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "generation complete",
		logger.Int("samples", stats.Count),
		logger.Float64("mean", stats.Mean),
		logger.Float64("min", stats.Min),
		logger.Float64("max", stats.Max),
		logger.Int("lowRisk", stats.LowRisk),
		logger.Int("mediumRisk", stats.MediumRisk),
		logger.Int("highRisk", stats.HighRisk),
	)
}
