package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/config"
	"github.com/edupoint-labs/exam-portal-api/internal/database"
	"github.com/edupoint-labs/exam-portal-api/internal/handler"
	"github.com/edupoint-labs/exam-portal-api/internal/middleware"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
	"github.com/edupoint-labs/exam-portal-api/internal/router"
	"github.com/edupoint-labs/exam-portal-api/internal/service"
	cloud "github.com/edupoint-labs/exam-portal-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Exam{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.Submission{},
		&models.Answer{},
		&models.Paper{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := repository.NewUserRepository(db)
	examRepo := repository.NewExamRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	paperRepo := repository.NewPaperRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, validate, logger)
	authService := service.NewAuthService(userRepo, issuer, validate, logger)
	examService := service.NewExamService(examRepo, userRepo, submissionRepo, activityService, validate, logger)
	quizService := service.NewQuizService(quizRepo, userRepo, activityService, validate, logger)
	catalogService := service.NewPublicCatalogService(examRepo, quizRepo, redisClient, cfg.CatalogCacheTTL, logger)
	submissionService := service.NewSubmissionService(submissionRepo, examRepo, quizRepo, questionRepo, userRepo, activityService, validate, logger)
	resultService := service.NewResultService(submissionRepo, quizRepo, logger)
	paperService := service.NewPaperService(paperRepo, uploader, validate, logger)
	fileService := service.NewFileService(uploader, 10, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		CatalogHandler:    handler.NewCatalogHandler(catalogService, logger),
		ExamHandler:       handler.NewExamHandler(examService, logger),
		QuizHandler:       handler.NewQuizHandler(quizService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		ResultHandler:     handler.NewResultHandler(resultService, logger),
		PaperHandler:      handler.NewPaperHandler(paperService, logger),
		FileHandler:       handler.NewFileHandler(fileService, logger),
		ActivityHandler:   handler.NewActivityHandler(activityService, logger),
		TokenResolver:     issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
