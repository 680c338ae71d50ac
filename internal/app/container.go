package app

import (
	"context"
	"errors"
	"time"

	"agri-match/internal/config"
	"agri-match/internal/database"
	dbpostgres "agri-match/internal/database/postgres"
	"agri-match/internal/infrastructure/cache"
	"agri-match/internal/infrastructure/ratelimit"
	"agri-match/internal/repository"
	"agri-match/internal/usecase"

	"go.uber.org/zap"
)

type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      database.DB
	Cache   *cache.Redis
	Limiter *ratelimit.RedisLimiter

	Profiles     repository.ProfileRepository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository

	Ranking  *usecase.Ranking
	Recorder *usecase.Applications
	JobFeed  *usecase.JobFeed
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(ctx, cfg.Redis, logger)
	return NewContainerWith(cfg, logger, db, redis), nil
}

// NewContainerWith wires the graph around already-open stores.
func NewContainerWith(cfg config.Config, logger *zap.Logger, db database.DB, redis *cache.Redis) *Container {
	c := &Container{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		Cache:        redis,
		Limiter:      ratelimit.NewRedisLimiter(redis.Client(), logger),
		Profiles:     repository.NewPostgresProfileRepository(db),
		Jobs:         repository.NewPostgresJobRepository(db),
		Applications: repository.NewPostgresApplicationRepository(db),
	}

	var rankingCache usecase.RankingCache
	if redis != nil && redis.Client() != nil && cfg.Matching.RankingCacheTTL > 0 {
		rankingCache = redis
	}

	c.Ranking = usecase.NewRankingUsecase(usecase.RankingOptions{
		Profiles:     c.Profiles,
		Jobs:         c.Jobs,
		Applications: c.Applications,
		Cache:        rankingCache,
		CacheTTL:     cfg.Matching.RankingCacheTTL,
		StoreTimeout: cfg.Matching.StoreTimeout,
		Logger:       logger,
	})
	c.Recorder = usecase.NewApplicationUsecase(usecase.ApplicationOptions{
		Profiles:               c.Profiles,
		Jobs:                   c.Jobs,
		Applications:           c.Applications,
		RequireVerifiedToApply: cfg.Matching.RequireVerifiedToApply,
		StoreTimeout:           cfg.Matching.StoreTimeout,
		Logger:                 logger,
	})
	c.JobFeed = usecase.NewJobFeedUsecase(usecase.JobFeedOptions{
		Jobs:         c.Jobs,
		Cache:        rankingCache,
		StoreTimeout: cfg.Matching.StoreTimeout,
		Logger:       logger,
	})
	return c
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
