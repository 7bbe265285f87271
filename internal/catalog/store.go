// internal/catalog/store.go
package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	apperrors "sake-reco/internal/common/errors"
	"sake-reco/internal/common/logger"
	"sake-reco/internal/common/metrics"
	"sake-reco/internal/models"
)

// Snapshot is one complete catalog. It is replaced wholesale, never patched.
type Snapshot struct {
	Items    []models.CatalogItem
	LoadedAt time.Time
	// Seq is the issue order of the load that produced the snapshot.
	// Snapshots warmed from the cache carry 0.
	Seq uint64
}

// State is what consumers observe while and after loading.
type State struct {
	Loading  bool       `json:"loading"`
	Error    string     `json:"error,omitempty"`
	Count    int        `json:"count"`
	LoadedAt *time.Time `json:"loadedAt,omitempty"`
}

// Cache persists successful loads. SnapshotCache is the Redis implementation.
type Cache interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}

// Store holds the current catalog snapshot. Reads never block on a fetch
// and always see either the previous or the next snapshot in full.
type Store struct {
	fetcher Fetcher
	cache   Cache
	logger  logger.Logger
	now     func() time.Time

	snapshot atomic.Pointer[Snapshot]
	loading  atomic.Int32
	issued   atomic.Uint64

	mu      sync.RWMutex
	lastErr string
}

type StoreOption func(*Store)

// WithSnapshotCache persists every successful load and enables Warm.
func WithSnapshotCache(c Cache) StoreOption {
	return func(s *Store) { s.cache = c }
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(fetcher Fetcher, log logger.Logger, opts ...StoreOption) *Store {
	s := &Store{
		fetcher: fetcher,
		logger:  log.WithFields(map[string]interface{}{"component": "catalog"}),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the catalog once. On success the snapshot is replaced and the
// error cleared; on failure the previous snapshot stays and the error message
// is recorded. Overlapping calls are allowed and the last to resolve wins.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	seq := s.issued.Add(1)
	s.loading.Add(1)
	metrics.CatalogLoading.Inc()
	defer func() {
		s.loading.Add(-1)
		metrics.CatalogLoading.Dec()
	}()

	log := s.logger.WithFields(map[string]interface{}{"seq": seq})
	log.Debug("catalog.load.start", nil)

	items, err := s.fetcher.Fetch(ctx)
	if err != nil {
		msg := err.Error()
		if stdErr, ok := apperrors.As(err); ok {
			msg = stdErr.Message
		}
		s.setError(msg)
		metrics.CatalogLoads.WithLabelValues("failure").Inc()
		log.Warn("catalog.load.failed", map[string]interface{}{
			"error":     err,
			"errorCode": string(apperrors.CodeOf(err)),
			"kept":      s.Count(),
		})
		return nil, err
	}

	if dups := duplicateIDs(items); len(dups) > 0 {
		log.Warn("catalog.load.duplicate_ids", map[string]interface{}{"ids": dups})
	}

	snap := &Snapshot{Items: items, LoadedAt: s.now(), Seq: seq}
	prev := s.snapshot.Swap(snap)
	s.setError("")
	metrics.CatalogLoads.WithLabelValues("success").Inc()
	metrics.CatalogItems.Set(float64(len(items)))

	if prev != nil && prev.Seq > seq {
		log.Warn("catalog.load.out_of_order", map[string]interface{}{"replacedSeq": prev.Seq})
	}
	log.Info("catalog.load.done", map[string]interface{}{"count": len(items)})

	if s.cache != nil {
		if err := s.cache.Save(ctx, snap); err != nil {
			log.Warn("catalog.cache.save_failed", map[string]interface{}{"error": err})
		}
	}
	return snap, nil
}

// Warm seeds an empty store from the snapshot cache. It reports whether a
// cached snapshot was installed. A store that already holds a snapshot is
// left alone.
func (s *Store) Warm(ctx context.Context) (bool, error) {
	if s.cache == nil || s.snapshot.Load() != nil {
		return false, nil
	}
	snap, err := s.cache.Load(ctx)
	if err != nil {
		return false, apperrors.NewCacheUnavailableError(err)
	}
	if snap == nil {
		return false, nil
	}
	snap.Seq = 0
	if !s.snapshot.CompareAndSwap(nil, snap) {
		return false, nil
	}
	metrics.CatalogItems.Set(float64(len(snap.Items)))
	s.logger.Info("catalog.warmed", map[string]interface{}{
		"count":    len(snap.Items),
		"loadedAt": snap.LoadedAt,
	})
	return true, nil
}

// Snapshot returns the current snapshot, or nil before the first load.
func (s *Store) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Items returns the current items; empty before the first load.
func (s *Store) Items() []models.CatalogItem {
	if snap := s.snapshot.Load(); snap != nil {
		return snap.Items
	}
	return nil
}

func (s *Store) Count() int {
	return len(s.Items())
}

// Find looks an item up by id in the current snapshot.
func (s *Store) Find(id string) (models.CatalogItem, bool) {
	return models.FindItem(s.Items(), id)
}

func (s *Store) Loading() bool {
	return s.loading.Load() > 0
}

func (s *Store) State() State {
	st := State{Loading: s.Loading(), Error: s.lastError()}
	if snap := s.snapshot.Load(); snap != nil {
		st.Count = len(snap.Items)
		loadedAt := snap.LoadedAt
		st.LoadedAt = &loadedAt
	}
	return st
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

func (s *Store) lastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func duplicateIDs(items []models.CatalogItem) []string {
	seen := make(map[string]int, len(items))
	var dups []string
	for _, it := range items {
		seen[it.ID]++
		if seen[it.ID] == 2 {
			dups = append(dups, it.ID)
		}
	}
	return dups
}
