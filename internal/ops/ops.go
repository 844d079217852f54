// Package ops implements the operations exposed to the request layer:
// listing episodes with resolved notes, episode detail, note submission,
// and CSV export.
package ops

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/covertbagel/compendium/internal/cache"
	"github.com/covertbagel/compendium/internal/catalog"
	"github.com/covertbagel/compendium/internal/config"
	"github.com/covertbagel/compendium/internal/errors"
)

// PlaylistSet selects which configured playlist group feeds the episode list.
type PlaylistSet string

const (
	PlaylistDefault  PlaylistSet = ""
	PlaylistComplete PlaylistSet = "complete"
)

// EpisodeSource yields the ordered episode list. Satisfied by
// catalog.Client; tests substitute a fake.
type EpisodeSource interface {
	Episodes(ctx context.Context, playlistIDs []string) ([]catalog.Episode, error)
}

// Service wires the stores, caches, lock, and episode source behind the
// exposed operations.
type Service struct {
	db     *sql.DB
	cfg    *config.Config
	cache  *cache.Cache
	source EpisodeSource
	lock   *cache.Lock
	logger *slog.Logger
}

// NewService creates a Service. A nil logger defaults to slog.Default().
func NewService(database *sql.DB, cfg *config.Config, c *cache.Cache, source EpisodeSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:     database,
		cfg:    cfg,
		cache:  c,
		source: source,
		lock: cache.NewLock(c, cache.KeyWriteLock,
			time.Duration(cfg.LockLeaseSecs)*time.Second,
			time.Duration(cfg.LockRetrySecs)*time.Second),
		logger: logger,
	}
}

// playlistIDs resolves a playlist set to the configured id list.
func (s *Service) playlistIDs(set PlaylistSet) []string {
	if set == PlaylistComplete && len(s.cfg.CompletePlaylistIDs) > 0 {
		return s.cfg.CompletePlaylistIDs
	}
	return s.cfg.PlaylistIDs
}

// episodes returns the cached episode list for the set, fetching on miss.
// Population only happens after a full successful aggregation.
func (s *Service) episodes(ctx context.Context, set PlaylistSet) ([]catalog.Episode, error) {
	key := cache.KeyEpisodes
	if set == PlaylistComplete {
		key += ":complete"
	}
	ttl := time.Duration(s.cfg.EpisodeCacheTTLSecs) * time.Second
	v, err := s.cache.Once(key, ttl, func() (any, error) {
		episodes, err := s.source.Episodes(ctx, s.playlistIDs(set))
		if err != nil {
			return nil, errors.NewUpstream(err)
		}
		return episodes, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.Episode), nil
}
