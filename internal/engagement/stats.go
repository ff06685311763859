package engagement

import (
	"context"
	"sync"
	"time"

	"github.com/streamhive/backend/internal/logging"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/repositories"
)

type statsEntry struct {
	stats   models.ChannelStats
	expires time.Time
}

// StatsService serves per-channel aggregate totals behind a TTL-based
// in-memory cache, since the totals are derived by full scans over the
// content and edge stores.
type StatsService struct {
	stats repositories.StatsRepository
	ttl   time.Duration

	mu    sync.RWMutex
	items map[string]statsEntry

	Now func() time.Time
}

// NewStatsService constructs a StatsService caching results for the provided
// TTL.
func NewStatsService(stats repositories.StatsRepository, ttl time.Duration) *StatsService {
	if stats == nil {
		panic("engagement: stats repository must not be nil")
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &StatsService{
		stats: stats,
		ttl:   ttl,
		items: make(map[string]statsEntry),
		Now:   utcNow,
	}
}

// ChannelStats returns the owner's aggregated totals, served from cache when
// a fresh entry exists. An owner with no content yields all-zero totals.
func (s *StatsService) ChannelStats(ctx context.Context, ownerID string) (models.ChannelStats, error) {
	if err := requireID("channel", ownerID); err != nil {
		return models.ChannelStats{}, err
	}

	now := s.Now()

	s.mu.RLock()
	entry, ok := s.items[ownerID]
	s.mu.RUnlock()
	if ok && now.Before(entry.expires) {
		return entry.stats, nil
	}

	ctx, span := logging.StartSpan(ctx, "stats.refresh")
	defer span.End()

	stats, err := s.stats.ChannelStats(ctx, ownerID)
	if err != nil {
		return models.ChannelStats{}, storeFault("load channel stats", "channel", err)
	}

	s.mu.Lock()
	s.items[ownerID] = statsEntry{stats: stats, expires: now.Add(s.ttl)}
	s.mu.Unlock()

	return stats, nil
}

// Invalidate drops the cached entry for one owner.
func (s *StatsService) Invalidate(ownerID string) {
	s.mu.Lock()
	delete(s.items, ownerID)
	s.mu.Unlock()
}
