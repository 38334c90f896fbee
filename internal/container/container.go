package container

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"kbarticle/enhancer/internal/analytics"
	"kbarticle/enhancer/internal/cache"
	"kbarticle/enhancer/internal/client"
	"kbarticle/enhancer/internal/config"
	"kbarticle/enhancer/internal/navtags"
	"kbarticle/enhancer/internal/queue"
	"kbarticle/enhancer/internal/repository"
	"kbarticle/enhancer/internal/server"
	"kbarticle/enhancer/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config   *config.Config
	Articles client.ArticleClient
	Feedback client.FeedbackClient
	Cache    cache.ArticleCache
	Queue    queue.Queue
	Metrics  *analytics.Metrics

	Service *service.Service
	Server  *server.Server

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized. Postgres
// and Redis are optional: without them views are not persisted, the article
// cache lives in memory and background tasks run inline.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	policy, err := navtags.ParseLookupPolicy(cfg.NavTags.LookupPolicy)
	if err != nil {
		return nil, err
	}

	opts := service.Options{
		Extract: navtags.ExtractOptions{
			Marker:          cfg.NavTags.Marker,
			MinArticleCount: cfg.NavTags.MinArticleCount,
			Policy:          policy,
		},
		CommentBoxChannels: cfg.Rating.CommentBoxChannels,
		KBLinkBase:         cfg.API.KBLinkBase,
		GroupName:          cfg.Redis.ConsumerGroup,
		MinIdleTime:        time.Duration(cfg.Redis.MinIdleTime) * time.Second,
	}

	if cfg.Database.Enabled {
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to create database pool: %w", err)
		}
		container.db = db

		if err := repository.EnsureSchema(ctx, db); err != nil {
			container.Close()
			return nil, err
		}
		log.Info("✅ Connected to Postgres successfully")

		opts.History = repository.NewHistoryRepository(db)
		opts.Ratings = repository.NewRatingRepository(db)
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		container.redis = rdb

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		redisQueue, err := queue.NewRedisQueue(ctx, rdb, cfg.Redis.ConsumerGroup)
		if err != nil {
			container.Close()
			return nil, err
		}
		container.Queue = redisQueue
		opts.Queue = redisQueue
		container.Cache = cache.NewRedisArticleCache(rdb, time.Duration(cfg.NavTags.CacheTTL)*time.Second)
	} else {
		container.Cache = cache.NewMemoryArticleCache()
	}

	registry := prometheus.NewRegistry()
	container.Metrics = analytics.NewMetrics(registry)
	opts.Hook = container.Metrics
	opts.FetchObserver = container.Metrics

	container.Articles = client.NewArticleClient(cfg.API, container.Cache)
	container.Feedback = client.NewFeedbackClient(cfg.Rating)
	opts.Articles = container.Articles
	opts.Feedback = container.Feedback

	container.Service = service.NewService(opts)
	container.Server = server.New(cfg.Server, container.Service, registry)

	return container, nil
}

// Run serves HTTP and, when a queue is configured, processes background tasks
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Server.Run(ctx)
	})

	if c.Queue != nil {
		g.Go(func() error {
			return c.Service.RunWorkers(ctx, c.Config.Workers.Count)
		})
	} else {
		log.Warn("⚠️ Redis disabled, page views and impressions are handled inline")
	}

	err := g.Wait()
	c.Service.Wait()
	return err
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("failed to close Redis client: %w", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
