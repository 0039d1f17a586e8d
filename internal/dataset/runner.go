package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/pkg/logger"
)

// submitTimeout bounds one evaluation submission request.
const submitTimeout = 10 * time.Second

// RunConfig controls one generation run.
type RunConfig struct {
	// Samples is the number of arrangements to generate.
	Samples int

	// Out is the output file path. Empty skips file output.
	Out string

	// Format selects FormatJSON or FormatCSV.
	Format string

	// Gzip compresses the output file.
	Gzip bool

	// Workers bounds generation parallelism. Zero means NumCPU.
	Workers int

	// Seed is the base RNG seed.
	Seed int64

	// SubmitURL, when set, posts every arrangement as an evaluation to a
	// running scoring service, e.g. "http://localhost:9080/evaluations".
	SubmitURL string

	// Container overrides the default generation container.
	Container model.Container
}

// Run generates cfg.Samples labeled arrangements, optionally writing them
// to a file and submitting them to a scoring service. Returns label
// statistics for the run.
func Run(ctx context.Context, cfg RunConfig) (*Stats, error) {
	log := logger.Get().Named("dataset")

	if cfg.Samples < 1 {
		return nil, fmt.Errorf("sample count must be positive, got %d", cfg.Samples)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	opts := []GeneratorOption{WithSeed(cfg.Seed)}
	if cfg.Container.Validate() == nil {
		opts = append(opts, WithContainer(cfg.Container))
	}
	gen := NewGenerator(opts...)

	log.Info(ctx, "generating dataset",
		logger.Int("samples", cfg.Samples),
		logger.Int("workers", workers),
	)

	// Samples are independent given (seed, index), so generation
	// parallelizes over index ranges and results land in order.
	samples := make([]model.Sample, cfg.Samples)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (cfg.Samples + workers - 1) / workers
	for lo := 0; lo < cfg.Samples; lo += chunk {
		lo, hi := lo, lo+chunk
		if hi > cfg.Samples {
			hi = cfg.Samples
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				s, err := gen.Sample(gctx, i)
				if err != nil {
					return err
				}
				samples[i] = s
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := NewStats()
	for _, s := range samples {
		stats.Add(s.StabilityScore)
	}

	if cfg.Out != "" {
		if err := writeAll(samples, cfg, gen.Container()); err != nil {
			return nil, err
		}
		log.Info(ctx, "dataset written",
			logger.String("path", cfg.Out),
			logger.String("format", cfg.Format),
		)
	}

	if cfg.SubmitURL != "" {
		if err := submitAll(ctx, cfg.SubmitURL, samples, gen.Container(), workers); err != nil {
			return nil, err
		}
		log.Info(ctx, "dataset submitted", logger.String("url", cfg.SubmitURL))
	}

	return stats, nil
}

func writeAll(samples []model.Sample, cfg RunConfig, container model.Container) error {
	w, err := NewFileWriter(cfg.Out, cfg.Format, cfg.Gzip, container)
	if err != nil {
		return err
	}
	for _, s := range samples {
		if err := w.Write(s); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// evaluationRequest mirrors the scoring service's POST /evaluations body.
type evaluationRequest struct {
	EvaluationID  string          `json:"evaluation_id"`
	ArrangementID string          `json:"arrangement_id"`
	Items         []model.Item    `json:"items"`
	Container     model.Container `json:"container"`
}

func submitAll(ctx context.Context, url string, samples []model.Sample, container model.Container, workers int) error {
	client := &http.Client{Timeout: submitTimeout}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range samples {
		i := i
		g.Go(func() error {
			req := evaluationRequest{
				EvaluationID:  uuid.NewString(),
				ArrangementID: fmt.Sprintf("arrangement-%06d", i),
				Items:         samples[i].Items,
				Container:     container,
			}
			return submitOne(gctx, client, url, req)
		})
	}

	return g.Wait()
}

func submitOne(ctx context.Context, client *http.Client, url string, req evaluationRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s returned %s", ErrSubmitFailed, req.ArrangementID, resp.Status)
	}
	return nil
}
