package app

import (
	"context"
	"log"
	"os"
	"time"

	"talenthub/internal/config"
	"talenthub/internal/database"
	dbpostgres "talenthub/internal/database/postgres"
	"talenthub/internal/delivery/http/handler"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/delivery/http/routes"
	"talenthub/internal/importer"
	"talenthub/internal/infrastructure/cache"
	"talenthub/internal/infrastructure/llm"
	"talenthub/internal/infrastructure/mail"
	"talenthub/internal/infrastructure/push"
	"talenthub/internal/pkg/jwt"
	"talenthub/internal/repository"
	"talenthub/internal/scheduler"
	"talenthub/internal/usecase"
	ucauth "talenthub/internal/usecase/auth"
	"talenthub/internal/ws"
)

// Container owns every long-lived dependency and the wiring between them.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis

	Hub       *ws.Hub
	Freshness *scheduler.Freshness
	Routes    *routes.Registry
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmsgprefix)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	userRepo := repository.NewPostgresUserRepository(db)
	companyRepo := repository.NewPostgresCompanyRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	resumeRepo := repository.NewPostgresResumeRepository(db)
	matchRepo := repository.NewPostgresMatchRepository(db)
	applicationRepo := repository.NewPostgresApplicationRepository(db)
	interviewRepo := repository.NewPostgresInterviewRepository(db)
	deviceRepo := repository.NewPostgresDeviceTokenRepository(db, nil)
	notificationRepo := repository.NewPostgresNotificationRepository(db)

	jwtSvc := jwt.NewHMACService(cfg.JWT)
	llmClient := llm.NewOpenAIClient(cfg.LLM)
	mailer := mail.NewClient(cfg.Mail)
	pusher := push.NewClient(cfg.Push)

	hub := ws.NewHub(logger)

	notificationUC := usecase.NewNotificationUsecase(notificationRepo, deviceRepo, hub, pusher, logger)

	authSvc := ucauth.NewService(userRepo, mailer, cfg.App.BaseURL, logger)
	authUC := usecase.NewAuthUsecase(authSvc, userRepo, jwtSvc)
	companyUC := usecase.NewCompanyUsecase(companyRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, companyRepo, redisCache)
	resumeUC := usecase.NewResumeUsecase(resumeRepo)
	matchingUC := usecase.NewMatchingUsecase(resumeRepo, jobRepo, matchRepo, llmClient, notificationUC, logger)
	chatUC := usecase.NewChatUsecase(resumeRepo, jobRepo, llmClient, logger)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, resumeRepo, companyRepo, notificationUC)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, applicationRepo, jobRepo, companyRepo, notificationUC)

	jobImporter := importer.New(llmClient)

	authMw := middleware.NewAuthMiddleware(jwtSvc)
	registry := routes.NewRegistry(
		authMw,
		handler.NewAuthHandler(authUC),
		handler.NewCompanyHandler(companyUC),
		handler.NewJobHandler(jobUC, jobImporter),
		handler.NewResumeHandler(resumeUC),
		handler.NewMatchHandler(matchingUC),
		handler.NewChatHandler(chatUC),
		handler.NewApplicationHandler(applicationUC),
		handler.NewInterviewHandler(interviewUC),
		handler.NewNotificationHandler(notificationUC),
		ws.NewHandler(hub, jwtSvc, logger),
	)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Cache:     redisCache,
		Hub:       hub,
		Freshness: scheduler.NewFreshness(jobRepo, redisCache, logger),
		Routes:    registry,
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
