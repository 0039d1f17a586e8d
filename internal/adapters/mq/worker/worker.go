// Package worker defines worker contracts for asynchronous stability
// scoring and ranking updates.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/internal/domain/physics"
	"github.com/okian/stacksafe/internal/domain/predict"
	"github.com/okian/stacksafe/pkg/logger"
	"github.com/okian/stacksafe/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Evaluation abstracts what workers read off the queue.
type Evaluation = model.Evaluation

// Updater records the best stability score for an arrangement.
type Updater interface {
	UpdateBestWithMeta(ctx context.Context, arrangementID string, score float64, evaluationID string, itemCount int, supportRatio float64) (bool, error)
}

// Scorer computes a stability result for an arrangement of items.
type Scorer interface {
	Score(ctx context.Context, items []model.Item, c model.Container) (predict.Result, error)
}

// Queue defines how workers receive evaluations.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Evaluation
}

// Worker processes evaluations and writes ranking updates using the
// provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining evaluations before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing evaluations.
type InMemoryWorker struct {
	queue   Queue
	scorer  Scorer
	updater Updater
	name    string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, scorer Scorer, updater Updater, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		scorer:   scorer,
		updater:  updater,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	evalChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case e, ok := <-evalChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processEvaluation(ctx, e); err != nil {
				w.logger.Error(ctx, "error processing evaluation", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processEvaluation scores a single arrangement and records the result.
func (w *InMemoryWorker) processEvaluation(ctx context.Context, e Evaluation) error {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordWorkerProcessingLatency(float64(latency))
	}()

	scoreStart := time.Now()
	result, err := w.scorer.Score(ctx, e.Items, e.Container)
	scoreLatency := time.Since(scoreStart).Milliseconds()

	metrics.RecordScoringLatency(float64(scoreLatency))

	if err != nil {
		metrics.RecordScoringError()
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "scoring failed for evaluation",
			logger.String("evaluationID", e.EvaluationID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to score evaluation %s: %w", e.EvaluationID, err)
	}

	supportRatio := physics.AverageSupportRatio(e.Items)

	updated, err := w.updater.UpdateBestWithMeta(ctx, e.ArrangementID, result.Score, e.EvaluationID, len(e.Items), supportRatio)
	if err != nil {
		metrics.RecordRankingError()
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "ranking update failed for evaluation",
			logger.String("evaluationID", e.EvaluationID),
			logger.Error(err),
		)
		return fmt.Errorf("ranking update failed: %w", err)
	}

	if updated {
		metrics.RecordRankingUpdate()
	}
	metrics.RecordEvaluationProcessed()

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	scorer  Scorer
	updater Updater

	// Shutdown control
	shutdown chan struct{}

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, scorer Scorer, updater Updater) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		scorer:   scorer,
		updater:  updater,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			scorer,
			updater,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerActiveCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so no new evaluations arrive.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateWorkerActiveCount(0)

	return nil
}
