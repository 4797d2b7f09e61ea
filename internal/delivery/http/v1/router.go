package v1

import (
	"time"

	"job-board-backend/config"
	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	SeekerAccountUC   domain.AccountUsecase
	EmployerAccountUC domain.AccountUsecase
	SeekerProfileUC   domain.SeekerProfileUsecase
	EmployerProfileUC domain.EmployerProfileUsecase
	JobUC             domain.JobUsecase
	ApplicationUC     domain.ApplicationUsecase
	DocumentUC        domain.DocumentUsecase
	ContactUC         domain.ContactUsecase
	HealthUC          usecase.HealthUsecase
	Tokens            middleware.TokenVerifier
	Redis             *goredis.Client // nil falls back to in-memory rate limiting
	SecurityLogger    *security.SecurityLogger
	Config            *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	globalLimiter := middleware.NewRateLimiter(deps.Redis,
		middleware.DefaultRateLimitConfig(cfg.RateLimitGlobalThreshold, window), deps.SecurityLogger)
	authLimiter := middleware.NewRateLimiter(deps.Redis,
		middleware.AuthRateLimitConfig(cfg.RateLimitAuthThreshold, window), deps.SecurityLogger)

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(globalLimiter.Middleware())
	r.Use(middleware.CSRFMiddleware(cfg.IsProduction(), deps.SecurityLogger))

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)
	NewContactHandler(v1, deps.ContactUC)

	// Swagger
	if !cfg.IsProduction() {
		v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	session := SessionCookie{TTL: cfg.JWTTTL, Secure: cfg.IsProduction()}
	NewAccountHandler(v1.Group("/seekers"), authLimiter.Middleware(), domain.RoleSeeker, deps.SeekerAccountUC, session)
	NewAccountHandler(v1.Group("/employers"), authLimiter.Middleware(), domain.RoleEmployer, deps.EmployerAccountUC, session)

	// Role-scoped routes. A token of the other role is rejected.
	seekerOnly := v1.Group("", middleware.RequireSeeker(deps.Tokens))
	employerOnly := v1.Group("", middleware.RequireEmployer(deps.Tokens))

	NewSeekerProfileHandler(v1, seekerOnly, deps.SeekerProfileUC)
	NewEmployerProfileHandler(v1, employerOnly, deps.EmployerProfileUC)
	NewJobHandler(v1, employerOnly, deps.JobUC)
	NewApplicationHandler(seekerOnly, employerOnly, deps.ApplicationUC)
	uploadLimiter := security.NewUploadLimiter(deps.Redis, cfg.UploadsPerMinute, cfg.UploadsPerDay)
	NewDocumentHandler(employerOnly, middleware.UploadQuotaMiddleware(uploadLimiter, deps.SecurityLogger), deps.DocumentUC)

	return r
}
