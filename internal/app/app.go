package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sewamoto/motor_rental_service/internal/adapter/handler/http"
	"github.com/sewamoto/motor_rental_service/internal/adapter/logger"
	"github.com/sewamoto/motor_rental_service/internal/adapter/postgres"
	"github.com/sewamoto/motor_rental_service/internal/adapter/prometheus"
	"github.com/sewamoto/motor_rental_service/internal/adapter/redis"
	"github.com/sewamoto/motor_rental_service/internal/config"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"
	"github.com/sewamoto/motor_rental_service/internal/core/services"

	"github.com/go-playground/validator/v10"
	"github.com/pressly/goose"
	redisClient "github.com/redis/go-redis/v9"
)

const (
	dbConnectAttempts = 5
	dbConnectBackoff  = 2 * time.Second
)

type App struct {
	Config       *config.Container
	Logger       ports.LoggerPort
	DB           *sql.DB
	RedisClient  *redisClient.Client
	RedisAdapter ports.CachePort
	HTTPRouter   *http.Router
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	cacheAdapter := redis.NewRedisAdapter(redisConn)

	// Connect DB
	db, err := connectDB(cfg.DB.DSN(), loggerAdapter)
	if err != nil {
		redisConn.Close()
		return nil, err
	}

	// Migrate DB
	if err := goose.Up(db, "./internal/adapter/postgres/migrations"); err != nil {
		db.Close()
		redisConn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Validate
	validate := validator.New()

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	motorRepo := postgres.NewMotorRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, loggerAdapter, validate)
	motorService := services.NewMotorService(motorRepo, loggerAdapter, validate, cacheAdapter)
	orderService := services.NewOrderService(orderRepo, loggerAdapter)
	profileService := services.NewProfileService(userRepo, loggerAdapter, validate)
	userService := services.NewUserService(userRepo, loggerAdapter)

	// HTTP Handlers
	tokenService := http.NewJWTTokenService(cfg.Token.Secret, cfg.Token.DurationParsed(), loggerAdapter)
	authHandler := http.NewAuthHandler(authService, tokenService, loggerAdapter, metrics)
	motorHandler := http.NewMotorHandler(motorService, loggerAdapter, metrics)
	orderHandler := http.NewOrderHandler(orderService, loggerAdapter, metrics)
	profileHandler := http.NewProfileHandler(profileService, loggerAdapter, metrics)
	userHandler := http.NewUserHandler(userService, loggerAdapter, metrics)

	// Init HTTP router
	router, err := http.NewRouter(
		cfg.HTTP,
		tokenService,
		userRepo,
		loggerAdapter,
		authHandler,
		motorHandler,
		orderHandler,
		profileHandler,
		userHandler,
	)
	if err != nil {
		db.Close()
		redisConn.Close()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	return &App{
		Config:       cfg,
		Logger:       loggerAdapter,
		DB:           db,
		RedisClient:  redisConn,
		RedisAdapter: cacheAdapter,
		HTTPRouter:   router,
	}, nil
}

// connectDB opens the pool and pings it with a bounded retry loop; the
// process aborts when every attempt fails.
func connectDB(dsn string, log ports.LoggerPort) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var pingErr error
	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		pingErr = db.Ping()
		if pingErr == nil {
			break
		}
		log.Warn("Database not reachable, retrying", map[string]interface{}{
			"attempt": attempt,
			"error":   pingErr.Error(),
		})
		if attempt < dbConnectAttempts {
			time.Sleep(dbConnectBackoff)
		}
	}
	if pingErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database after %d attempts: %w", dbConnectAttempts, pingErr)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Runs all services
func (a *App) Run() error {
	listenAddr := fmt.Sprintf("%s:%s", a.Config.HTTP.Host, a.Config.HTTP.Port)
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": listenAddr,
	})

	if err := a.HTTPRouter.Serve(listenAddr); err != nil {
		a.Logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Stops all services
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Database close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := a.RedisClient.Close(); err != nil {
		a.Logger.Error("Redis close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.Logger.Info("Application stopped successfully", nil)
	return nil
}
