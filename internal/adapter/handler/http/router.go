package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/sewamoto/motor_rental_service/internal/config"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
}

func NewRouter(
	cfg *config.HTTP,
	tokenService ports.TokenService,
	userRepo ports.UserRepository,
	logger ports.LoggerPort,
	authHandler *AuthHandler,
	motorHandler *MotorHandler,
	orderHandler *OrderHandler,
	profileHandler *ProfileHandler,
	userHandler *UserHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := AuthMiddleware(tokenService, userRepo, logger)

	// Auth routes
	router.POST("/api/register", authHandler.Register)
	router.POST("/api/login", authHandler.Login)

	// Motor routes (public)
	motors := router.Group("/api/motors")
	{
		motors.GET("", motorHandler.ListMotors)
		motors.POST("", motorHandler.CreateMotor)
		motors.GET("/:id", motorHandler.GetMotor)
		motors.PUT("/:id", motorHandler.UpdateMotor)
		motors.DELETE("/:id", motorHandler.DeleteMotor)
	}

	// Order routes
	orders := router.Group("/api/orders")
	orders.Use(authRequired)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListMyOrders)
		orders.GET("/all", orderHandler.ListAllOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id", orderHandler.UpdateOrder)
		orders.DELETE("/:id", orderHandler.DeleteOrder)
	}

	// Profile routes
	profils := router.Group("/api/profils")
	profils.Use(authRequired)
	{
		profils.POST("", profileHandler.CreateProfile)
		profils.GET("", profileHandler.ListProfiles)
		profils.GET("/me", profileHandler.GetMyProfile)
		profils.GET("/:id", profileHandler.GetProfile)
		profils.PUT("/:id", profileHandler.UpdateProfile)
		profils.DELETE("/:id", profileHandler.DeleteProfile)
		profils.GET("/user/:user_id", profileHandler.GetProfileByUserID)
	}

	// User routes
	users := router.Group("/api/users")
	users.Use(authRequired)
	{
		users.GET("/:id", userHandler.GetUser)
	}

	// Everything else is the frontend bundle.
	router.NoRoute(func(c *gin.Context) {
		serveStatic(c, cfg.StaticDir)
	})

	return &Router{router: router}, nil
}

// serveStatic serves a file from the asset directory, falling back to its
// index.html so client-side routes resolve.
func serveStatic(c *gin.Context, staticDir string) {
	requested := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
	if info, err := os.Stat(requested); err == nil && !info.IsDir() {
		c.File(requested)
		return
	}

	index := filepath.Join(staticDir, "index.html")
	if _, err := os.Stat(index); err == nil {
		c.File(index)
		return
	}

	c.JSON(http.StatusNotFound, errorResponse{Error: "Not found"})
}

func (r *Router) Serve(addr string) error {
	return r.router.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
