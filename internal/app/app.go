package app

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"lexi_backend/internal/config"
	"lexi_backend/internal/controller"
	"lexi_backend/internal/middleware"
	"lexi_backend/internal/repository"
	"lexi_backend/internal/service"
	"lexi_backend/pkg/configwatcher"
	"lexi_backend/pkg/database"
	"lexi_backend/pkg/logger"
	"lexi_backend/pkg/monitoring"
	"lexi_backend/pkg/security"
	"lexi_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed templates/*.html
var templateFS embed.FS

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	category *repository.CategoryRepository
	material *repository.MaterialRepository
	quiz     *repository.QuizRepository
	attempt  *repository.AttemptRepository
}

type services struct {
	auth        *service.AuthService
	category    *service.CategoryService
	material    *service.MaterialService
	quiz        *service.QuizService
	quizPlay    *service.QuizPlayService
	leaderboard *service.LeaderboardService
	dashboard   *service.DashboardService
	seed        *service.SeedService
}

type controllers struct {
	auth        *controller.AuthController
	category    *controller.CategoryController
	material    *controller.MaterialController
	quiz        *controller.QuizController
	quizPlay    *controller.QuizPlayController
	leaderboard *controller.LeaderboardController
	content     *controller.ContentController
	dashboard   *controller.DashboardController
	page        *controller.PageController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		category: repository.NewCategoryRepository(db),
		material: repository.NewMaterialRepository(db),
		quiz:     repository.NewQuizRepository(db),
		attempt:  repository.NewAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.leaderboard = service.NewLeaderboardService(repos.attempt, rdb, cfg.Redis.LeaderboardTTL)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.category = service.NewCategoryService(repos.category)
	s.material = service.NewMaterialService(repos.material, repos.category)
	s.quiz = service.NewQuizService(repos.quiz, repos.category, repos.attempt, s.leaderboard)
	s.quizPlay = service.NewQuizPlayService(repos.quiz, repos.attempt, s.leaderboard)
	s.dashboard = service.NewDashboardService(repos.user, repos.material, repos.quiz, repos.attempt)
	s.seed = service.NewSeedService(s.auth, s.category, s.material, s.quiz)

	return s
}

func (a *App) initControllers(s *services, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, cfg),
		category:    controller.NewCategoryController(s.category),
		material:    controller.NewMaterialController(s.material),
		quiz:        controller.NewQuizController(s.quiz),
		quizPlay:    controller.NewQuizPlayController(s.quizPlay),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		content:     controller.NewContentController(s.material, s.quiz),
		dashboard:   controller.NewDashboardController(s.dashboard),
		page:        controller.NewPageController(s.leaderboard, s.dashboard),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.RouteGuard(cfg))
}

func loadTemplates() *template.Template {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// NewApp opens the database and Redis described by cfg and builds the HTTP stack.
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return nil, err
	}

	if cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		logger.Log.Info("Database migrated")
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.tracer = tp
	}

	return app, nil
}

// New wires repositories, services and routes over already opened stores.
// rdb may be nil, which disables the leaderboard cache.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, cfg, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.SetHTMLTemplate(loadTemplates())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(logger.SetLevel)

	return app
}

// Seed applies a YAML fixture through the regular services.
func (a *App) Seed(path string) (*service.SeedReport, error) {
	fixture, err := service.LoadSeedFile(path)
	if err != nil {
		return nil, err
	}
	return a.services.seed.Apply(fixture)
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.Config.Path != "" {
		go func() {
			err := configwatcher.WatchConfig(ctx, a.Config.Path, func(newCfg *config.Config) {
				for _, cb := range a.configCallbacks {
					cb(newCfg)
				}
			})
			if err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
	return nil
}

// Close releases the tracer, Redis and database connections.
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = logger.Log.Sync()
}
