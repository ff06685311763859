package app

import (
	"context"
	"log/slog"

	"github.com/streamhive/backend/internal/auth"
	"github.com/streamhive/backend/internal/catalog"
	"github.com/streamhive/backend/internal/config"
	"github.com/streamhive/backend/internal/db"
	"github.com/streamhive/backend/internal/engagement"
	"github.com/streamhive/backend/internal/handlers"
	"github.com/streamhive/backend/internal/media"
	"github.com/streamhive/backend/internal/middleware"
	"github.com/streamhive/backend/internal/repositories"
	"github.com/streamhive/backend/internal/storage"
)

// buildDependencies wires the repositories, services and background workers
// behind the HTTP handlers. The returned cleaner is nil when no object store
// is configured.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config, logger *slog.Logger) (handlers.Dependencies, *media.Cleaner, error) {
	users := repositories.NewPostgresUserRepository(pool)
	videos := repositories.NewPostgresVideoRepository(pool)
	comments := repositories.NewPostgresCommentRepository(pool)
	posts := repositories.NewPostgresPostRepository(pool)
	likes := repositories.NewPostgresLikeRepository(pool)
	subs := repositories.NewPostgresSubscriptionRepository(pool)
	playlists := repositories.NewPostgresPlaylistRepository(pool)
	stats := repositories.NewPostgresStatsRepository(pool)

	var (
		mediaStore handlers.MediaStore
		cleaner    *media.Cleaner
		reclaimer  catalog.MediaReclaimer
	)
	if cfg.ObjectStore.Bucket != "" {
		s3Store, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
		if err != nil {
			return handlers.Dependencies{}, nil, err
		}
		mediaStore = s3Store
		cleaner = media.NewCleaner(s3Store, media.CleanerConfig{}, logger)
		reclaimer = cleaner
	} else {
		logger.Warn("no media bucket configured, uploads disabled")
	}

	sessions := auth.NewManager(cfg.AccessTokenTTL, cfg.RefreshTokenTTL, repositories.NewPostgresSessionStore(pool))

	statsService := engagement.NewStatsService(stats, cfg.StatsCacheTTL)
	likeService := engagement.NewLikeService(likes, videos, comments, posts)
	likeService.Stats = statsService
	subscriptionService := engagement.NewSubscriptionService(subs, users)
	subscriptionService.Stats = statsService

	deps := handlers.Dependencies{
		Users:         users,
		Sessions:      sessions,
		Videos:        catalog.NewVideoService(videos, reclaimer),
		Comments:      catalog.NewCommentService(comments, videos),
		Posts:         catalog.NewPostService(posts),
		Playlists:     catalog.NewPlaylistService(playlists, videos),
		Likes:         likeService,
		Subscriptions: subscriptionService,
		Stats:         statsService,
		Media:         mediaStore,
		AuthLimiter:   middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow, cfg.AuthRateBurst, cfg.RateLimiterEntryTTL),
	}

	return deps, cleaner, nil
}
