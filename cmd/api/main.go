package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-board-backend/config"
	_ "job-board-backend/docs" // Important for Swagger
	v1 "job-board-backend/internal/delivery/http/v1"
	"job-board-backend/internal/domain"
	"job-board-backend/internal/identity"
	"job-board-backend/internal/repository/postgres"
	redisrepo "job-board-backend/internal/repository/redis"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/auth"
	"job-board-backend/pkg/database"
	"job-board-backend/pkg/email"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/redis"
	"job-board-backend/pkg/security"
	"job-board-backend/pkg/storage"
	"job-board-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Job Board API
// @version         1.0
// @description     Job board backend for seekers and employers.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board backend", "port", cfg.Port)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := postgres.Migrate(ctx, dbPool); err != nil {
		logger.Log.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	secLog := security.NewSecurityLogger("job-board-backend", cfg.GinMode).
		WithPersistence(security.NewSecurityEventRepository(dbPool).PersistEvent)
	defer secLog.Sync()

	// 4. Setup Redis (OTP codes, rate limits, login tracking)
	redisClient, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		logger.Log.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// 5. Setup Object Storage
	presigner, err := storage.NewPresigner(ctx, storage.Config{
		Provider:        storage.Provider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
	})
	if err != nil {
		logger.Log.Error("Failed to set up object storage", "error", err)
		os.Exit(1)
	}

	// 6. Setup Email Service
	emailService := email.NewEmailService(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - registration codes cannot be delivered")
	}

	// 7. Setup Repositories
	seekerRepo := postgres.NewSeekerRepository(dbPool)
	employerRepo := postgres.NewEmployerRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	contactRepo := postgres.NewContactRepository(dbPool)
	otpStore := redisrepo.NewOTPStore(redisClient)

	// 8. Setup UseCases
	validate := validation.Validator()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	loginTracker := security.NewLoginTracker(redisClient, security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, secLog)

	accountDeps := func(repo domain.AccountRepository) usecase.AccountDeps {
		return usecase.AccountDeps{
			Repo:     repo,
			OTP:      usecase.NewOTPUsecase(otpStore),
			Hasher:   auth.NewBcryptHasher(cfg.BcryptCost),
			Tokens:   tokens,
			Mailer:   emailService,
			Identity: identity.NewGoogleVerifier(cfg.GoogleClientID),
			Guard:    loginTracker,
			SecLog:   secLog,
			Validate: validate,
		}
	}

	router := v1.NewRouter(v1.RouterDeps{
		SeekerAccountUC:   usecase.NewAccountUsecase(domain.RoleSeeker, accountDeps(seekerRepo)),
		EmployerAccountUC: usecase.NewAccountUsecase(domain.RoleEmployer, accountDeps(employerRepo)),
		SeekerProfileUC:   usecase.NewSeekerProfileUsecase(seekerRepo, validate),
		EmployerProfileUC: usecase.NewEmployerProfileUsecase(employerRepo, validate),
		JobUC:             usecase.NewJobUsecase(jobRepo, employerRepo, seekerRepo, secLog, validate),
		ApplicationUC:     usecase.NewApplicationUsecase(applicationRepo, jobRepo, seekerRepo, secLog),
		DocumentUC:        usecase.NewDocumentUsecase(employerRepo, presigner, secLog),
		ContactUC:         usecase.NewContactUsecase(contactRepo, validate),
		HealthUC: usecase.NewHealthUsecase(map[string]usecase.Pinger{
			"postgres": dbPool,
			"redis": usecase.PingFunc(func(ctx context.Context) error {
				return redis.HealthCheck(ctx, redisClient)
			}),
		}),
		Tokens:         tokens,
		Redis:          redisClient,
		SecurityLogger: secLog,
		Config:         cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
