package app

import (
	"context"
	"log"
	"time"

	"skillbridge/internal/config"
	"skillbridge/internal/database"
	"skillbridge/internal/database/migration"
	dbpostgres "skillbridge/internal/database/postgres"
	"skillbridge/internal/infrastructure/cache"
	"skillbridge/internal/notifier"
	"skillbridge/internal/pkg/jwt"
	"skillbridge/internal/queue"
	"skillbridge/internal/repository"
	"skillbridge/internal/usecase"
	"skillbridge/internal/worker"
	"skillbridge/internal/ws"
)

// Container builds and holds every long-lived component. Construction is
// eager so a misconfigured process fails at startup, not on first request.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Queue *queue.Client
	Hub   *ws.Hub

	JWT jwt.Service

	Matching        usecase.MatchingUsecase
	Actions         usecase.ActionUsecase
	Recommendations usecase.RecommendationUsecase
	Preferences     usecase.PreferenceUsecase
	Analytics       usecase.AnalyticsUsecase

	Consumer  *worker.Consumer
	Scheduler *worker.Scheduler
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.RunMigrations {
		runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	queueClient := queue.NewClient(redisCache.Client(), logger)
	hub := ws.NewHub(logger)

	notify := notifier.New(queueClient, hub, logger)

	userRepo := repository.NewPostgresUserRepository(db)
	taskRepo := repository.NewPostgresTaskRepository(db)
	resultRepo := repository.NewPostgresMatchResultRepository(db)
	prefRepo := repository.NewPostgresPreferenceRepository(db)
	analyticsRepo := repository.NewPostgresAnalyticsRepository(db)

	matching := usecase.NewMatchingUsecase(userRepo, taskRepo, resultRepo, redisCache, logger, cfg.Matching.ResultCacheTTL)
	actions := usecase.NewActionUsecase(db, resultRepo, analyticsRepo, notify, logger)
	recommendations := usecase.NewRecommendationUsecase(matching, userRepo, logger)
	preferences := usecase.NewPreferenceUsecase(prefRepo, logger)
	analytics := usecase.NewAnalyticsUsecase(analyticsRepo, resultRepo, logger)

	consumer := worker.NewConsumer(queueClient, matching, logger, cfg.Matching.ReceiveTimeout, cfg.Matching.DefaultLimit)
	scheduler := worker.NewScheduler(
		taskRepo, matching, notify, redisCache, logger,
		cfg.Matching.SchedulerInterval, cfg.Matching.SchedulerLookback, cfg.Matching.SchedulerTopN,
	)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		DB:              db,
		Cache:           redisCache,
		Queue:           queueClient,
		Hub:             hub,
		JWT:             jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn),
		Matching:        matching,
		Actions:         actions,
		Recommendations: recommendations,
		Preferences:     preferences,
		Analytics:       analytics,
		Consumer:        consumer,
		Scheduler:       scheduler,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
