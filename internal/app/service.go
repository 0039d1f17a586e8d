// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"

	evalqueue "github.com/okian/stacksafe/internal/adapters/mq/queue"
	workerpool "github.com/okian/stacksafe/internal/adapters/mq/worker"
	repository "github.com/okian/stacksafe/internal/adapters/repository"
	"github.com/okian/stacksafe/internal/domain/dedupe"
	"github.com/okian/stacksafe/internal/domain/feature"
	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/internal/domain/predict"
	"github.com/okian/stacksafe/internal/domain/types"
	"github.com/okian/stacksafe/pkg/logger"
	"github.com/okian/stacksafe/pkg/metrics"
)

// Service implements the API dependencies for the stability scoring system.
type Service struct {
	mu sync.RWMutex

	// Core components
	ranking    repository.Store
	deduper    dedupe.Deduper
	queue      evalqueue.Queue
	scorer     predict.Scorer
	workerPool *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	modelPath   string
	container   model.Container

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the evaluation queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithModelPath points the service at an exported regressor artifact.
// Without one, arrangements are scored with the physics heuristic.
func WithModelPath(path string) Option {
	return func(s *Service) {
		s.modelPath = path
	}
}

// WithContainer sets the container used when requests omit one.
func WithContainer(c model.Container) Option {
	return func(s *Service) {
		if c.Validate() == nil {
			s.container = c
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   100000,
		dedupeSize:  50000,
		container:   model.DefaultContainer(),
		stopCh:      make(chan struct{}),
		logger:      nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting stability service...")

	s.ranking = repository.NewTreapStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = evalqueue.NewInMemoryQueue(
		evalqueue.WithCapacity(s.queueSize),
	)

	scorer, err := s.buildScorer(ctx)
	if err != nil {
		return err
	}
	s.scorer = scorer

	s.workerPool = workerpool.NewPool(s.workerCount, s.queue, s.scorer, s.ranking)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "stability service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// buildScorer selects the model-backed scorer when an artifact is
// configured, falling back to the physics heuristic otherwise.
func (s *Service) buildScorer(ctx context.Context) (predict.Scorer, error) {
	if s.modelPath == "" {
		s.logger.Info(ctx, "scoring with physics heuristic")
		return predict.NewHeuristicScorer(), nil
	}

	mf, err := predict.LoadModelFile(s.modelPath)
	if err != nil {
		return nil, err
	}
	scorer, err := predict.NewMLPScorer(mf)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "scoring with trained regressor",
		logger.String("modelPath", s.modelPath),
	)
	return scorer, nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping stability service...")

	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	if s.queue != nil {
		_ = s.queue.Close()
	}

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "stability service stopped")
}

// SeenAndRecord atomically checks if an evaluation id was seen and records
// it if not. Returns true if the id was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordEvaluationDuplicate()
	}
	return seen
}

// Unrecord removes an evaluation ID from the seen list, allowing it to be
// retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits an evaluation for asynchronous processing.
func (s *Service) Enqueue(ctx context.Context, e model.Evaluation) bool {
	ok := s.queue.Enqueue(ctx, e)
	if ok {
		metrics.UpdateQueueSize(s.queue.Len(ctx))
	}
	return ok
}

// Score computes a stability assessment synchronously.
func (s *Service) Score(ctx context.Context, items []model.Item, c model.Container) (predict.Result, error) {
	return s.scorer.Score(ctx, items, c)
}

// Assess computes a stability assessment together with the feature vector
// it was derived from. The vector is extracted once and fed straight to
// the scorer when it can consume one.
func (s *Service) Assess(ctx context.Context, items []model.Item, c model.Container) (predict.Result, []float32, error) {
	features, err := feature.Extract(items, c)
	if err != nil {
		return predict.Result{}, nil, err
	}

	if vs, ok := s.scorer.(predict.VectorScorer); ok {
		result, err := vs.ScoreVector(features)
		if err != nil {
			return predict.Result{}, nil, err
		}
		return result, features, nil
	}

	result, err := s.scorer.Score(ctx, items, c)
	if err != nil {
		return predict.Result{}, nil, err
	}
	return result, features, nil
}

// Features extracts the raw feature vector for an arrangement.
func (s *Service) Features(_ context.Context, items []model.Item, c model.Container) ([]float32, error) {
	return feature.Extract(items, c)
}

// Container returns the configured default container.
func (s *Service) Container() model.Container {
	return s.container
}

// TopN returns the top N ranking entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	entries, err := s.ranking.TopN(ctx, n)
	if err != nil {
		return nil, err
	}

	apiEntries := make([]types.Entry, len(entries))
	for i, entry := range entries {
		apiEntries[i] = types.Entry{
			Rank:          entry.Rank,
			ArrangementID: entry.ArrangementID,
			Score:         entry.Score,
			ItemCount:     entry.ItemCount,
			SupportRatio:  entry.SupportRatio,
		}
	}

	return apiEntries, nil
}

// Rank returns the rank and score for a given arrangement id.
func (s *Service) Rank(ctx context.Context, arrangementID string) (types.Entry, error) {
	entry, err := s.ranking.Rank(ctx, arrangementID)
	if err != nil {
		return types.Entry{}, err
	}

	return types.Entry{
		Rank:          entry.Rank,
		ArrangementID: entry.ArrangementID,
		Score:         entry.Score,
		ItemCount:     entry.ItemCount,
		SupportRatio:  entry.SupportRatio,
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		totalArrangements := s.ranking.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalArrangements"] = totalArrangements

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateRepositoryRecordsTotal(totalArrangements)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
