// Package repository defines the stability ranking store interface and errors.
package repository

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/okian/stacksafe/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: score DESC, then arrangement id ASC (deterministic).
// The BST comparator treats "less" as "ranks earlier", so an in-order
// traversal produces the leaderboard from most to least stable.

// scoreScale controls fixed-point scaling from float64. Stability scores
// live in [0,100], so twelve decimal places fit comfortably in int64.
const scoreScale = 1_000_000_000_000

type scoreFP int64

func toFixedPoint(x float64) scoreFP {
	if math.IsNaN(x) {
		return 0
	}
	scaled := x * scoreScale
	if scaled > float64(math.MaxInt64) {
		return scoreFP(math.MaxInt64)
	}
	if scaled < float64(math.MinInt64) {
		return scoreFP(math.MinInt64)
	}
	return scoreFP(math.Round(scaled))
}

func toFloat(x scoreFP) float64 {
	return float64(x) / scoreScale
}

// record stores the fixed-point score plus metadata for an arrangement's best.
type record struct {
	score        scoreFP
	evaluationID string
	itemCount    int
	supportRatio float64
}

// treap node
type node struct {
	id    string
	score scoreFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aScore, aID) ranks earlier than (bScore, bID).
func less(aScore scoreFP, aID string, bScore scoreFP, bID string) bool {
	if aScore != bScore {
		return aScore > bScore // higher score ranks earlier
	}
	return aID < bID // tie-breaker by id asc
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// scoreToPriority keeps higher scores closer to the treap root. Negative
// scores are shifted into the positive range first.
func scoreToPriority(score scoreFP) uint64 {
	const offset = uint64(1) << 63
	return uint64(score) + offset
}

func insert(n *node, id string, score scoreFP) *node {
	if n == nil {
		return &node{id: id, score: score, prio: scoreToPriority(score), size: 1}
	}
	if less(score, id, n.score, n.id) {
		n.left = insert(n.left, id, score)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, score)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, score scoreFP) *node {
	if n == nil {
		return nil
	}
	if score == n.score && id == n.id {
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, score)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, score)
		}
	} else if less(score, id, n.score, n.id) {
		n.left = deleteNode(n.left, id, score)
	} else {
		n.right = deleteNode(n.right, id, score)
	}
	fix(n)
	return n
}

// collectTopN appends up to limit entries in rank order (highest scores first).
func collectTopN(n *node, limit int, records map[string]record, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, records, out)
	if len(*out) < limit {
		if rec, exists := records[n.id]; exists {
			*out = append(*out, entryFrom(n.id, rec))
		}
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, records, out)
	}
}

// collectAll appends all entries in rank order (highest scores first).
func collectAll(n *node, records map[string]record, out *[]Entry) {
	if n == nil {
		return
	}
	collectAll(n.left, records, out)
	if rec, ok := records[n.id]; ok {
		*out = append(*out, entryFrom(n.id, rec))
	}
	collectAll(n.right, records, out)
}

func entryFrom(id string, rec record) Entry {
	return Entry{
		ArrangementID: id,
		Score:         toFloat(rec.score),
		EvaluationID:  rec.evaluationID,
		ItemCount:     rec.itemCount,
		SupportRatio:  rec.supportRatio,
	}
}

// TreapStore is the in-memory treap-backed Store.
type TreapStore struct {
	mu   sync.RWMutex
	root *node
	byID map[string]record
}

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(_ context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		byID: make(map[string]record),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// UpdateBest implements Store.UpdateBest with O(log n) expected time.
func (s *TreapStore) UpdateBest(ctx context.Context, arrangementID string, score float64) (bool, error) {
	return s.UpdateBestWithMeta(ctx, arrangementID, score, "", 0, 0)
}

// UpdateBestWithMeta implements Store.UpdateBestWithMeta with O(log n) expected time.
func (s *TreapStore) UpdateBestWithMeta(_ context.Context, arrangementID string, score float64, evaluationID string, itemCount int, supportRatio float64) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	ns := toFixedPoint(score)

	s.mu.Lock()
	if old, ok := s.byID[arrangementID]; ok {
		if ns <= old.score { // not an improvement
			s.mu.Unlock()
			return false, nil
		}
		s.root = deleteNode(s.root, arrangementID, old.score)
	}
	s.byID[arrangementID] = record{
		score:        ns,
		evaluationID: evaluationID,
		itemCount:    itemCount,
		supportRatio: supportRatio,
	}
	s.root = insert(s.root, arrangementID, ns)
	total := len(s.byID)
	s.mu.Unlock()

	metrics.UpdateRepositoryRecordsTotal(total)
	return true, nil
}

// Rank returns the current rank and score for an arrangement.
func (s *TreapStore) Rank(_ context.Context, arrangementID string) (Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.byID[arrangementID]; !ok {
		return Entry{}, ErrNotFound
	}

	allEntries := make([]Entry, 0, len(s.byID))
	collectAll(s.root, s.byID, &allEntries)
	sortEntries(allEntries)
	assignRanksWithTies(allEntries)

	for _, entry := range allEntries {
		if entry.ArrangementID == arrangementID {
			return entry, nil
		}
	}

	return Entry{}, ErrNotFound
}

// TopN returns the top N entries ordered by score desc.
func (s *TreapStore) TopN(_ context.Context, n int) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, n)
	collectTopN(s.root, n, s.byID, &out)
	assignRanksWithTies(out)
	return out, nil
}

// Count returns the total number of tracked arrangements.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// sortEntries sorts by score desc, arrangement id asc, matching treap order.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ArrangementID < entries[j].ArrangementID
	})
}

// assignRanksWithTies assigns ranks where equal scores share a rank and
// the next distinct score takes the next consecutive rank.
func assignRanksWithTies(entries []Entry) {
	if len(entries) == 0 {
		return
	}

	currentRank := 1
	for i := 0; i < len(entries); i++ {
		entries[i].Rank = currentRank

		sameScoreCount := 1
		for j := i + 1; j < len(entries) && entries[j].Score == entries[i].Score; j++ {
			entries[j].Rank = currentRank
			sameScoreCount++
		}

		currentRank++
		i += sameScoreCount - 1
	}
}
