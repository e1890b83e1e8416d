package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/config"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/controller"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/repository"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/service"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/database"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/logger"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/monitoring"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/security"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/tracing"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user         *repository.UserRepository
	loginHistory *repository.LoginHistoryRepository
	auditLog     *repository.AuditLogRepository
	material     *repository.MaterialRepository
	exam         *repository.ExamRepository
	attempt      *repository.AttemptRepository
	score        *repository.ScoreRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	material  *service.MaterialService
	exam      *service.ExamService
	attempt   *service.AttemptService
	grading   *service.GradingService
	score     *service.ScoreService
	analytics *service.AnalyticsService
	report    *service.ReportService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	material  *controller.MaterialController
	exam      *controller.ExamController
	attempt   *controller.AttemptController
	grading   *controller.GradingController
	analytics *controller.AnalyticsController
	report    *controller.ReportController
	health    *controller.HealthController
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		loginHistory: repository.NewLoginHistoryRepository(db),
		auditLog:     repository.NewAuditLogRepository(db),
		material:     repository.NewMaterialRepository(db),
		exam:         repository.NewExamRepository(db),
		attempt:      repository.NewAttemptRepository(db),
		score:        repository.NewScoreRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	s := &services{}
	s.auth = service.NewAuthService(repos.user, repos.loginHistory, cfg)
	s.user = service.NewUserService(repos.user, repos.auditLog)
	s.material = service.NewMaterialService(repos.material, storage, rdb)
	s.exam = service.NewExamService(repos.exam, storage)
	s.grading = service.NewGradingService(repos.attempt, repos.exam, repos.score)
	s.attempt = service.NewAttemptService(repos.attempt, repos.exam, repos.score, s.grading)
	s.score = service.NewScoreService(repos.score)
	s.analytics = service.NewAnalyticsService(repos.user, repos.material, repos.exam, repos.attempt, repos.score)
	s.report = service.NewReportService(repos.exam, repos.score, repos.user)

	return s, nil
}

func initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth, s.user),
		user:      controller.NewUserController(s.user),
		material:  controller.NewMaterialController(s.material),
		exam:      controller.NewExamController(s.exam),
		attempt:   controller.NewAttemptController(s.attempt),
		grading:   controller.NewGradingController(s.grading, s.score),
		analytics: controller.NewAnalyticsController(s.analytics),
		report:    controller.NewReportController(s.report),
		health:    controller.NewHealthController(db, rdb),
	}
}

func setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	// migrations run by default outside release mode; release deployments
	// opt in with -migrate
	runMigrations := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, runMigrations)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// the platform keeps working without Redis, reading progress is just
	// not tracked
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, reading progress disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := initRepositories(db)
	svcs, err := initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	ctrls := initControllers(svcs, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("e-course-pkbm-annajah", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
