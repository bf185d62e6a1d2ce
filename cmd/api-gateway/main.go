package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Sneha-511/auto-attendance-tracker-backend/api/swagger"
	"github.com/Sneha-511/auto-attendance-tracker-backend/internal/handler"
	"github.com/Sneha-511/auto-attendance-tracker-backend/internal/middleware"
	"github.com/Sneha-511/auto-attendance-tracker-backend/internal/repository"
	"github.com/Sneha-511/auto-attendance-tracker-backend/internal/service"
	"github.com/Sneha-511/auto-attendance-tracker-backend/pkg/cache"
	"github.com/Sneha-511/auto-attendance-tracker-backend/pkg/config"
	"github.com/Sneha-511/auto-attendance-tracker-backend/pkg/database"
	"github.com/Sneha-511/auto-attendance-tracker-backend/pkg/logger"
	corsmiddleware "github.com/Sneha-511/auto-attendance-tracker-backend/pkg/middleware/cors"
	reqidmiddleware "github.com/Sneha-511/auto-attendance-tracker-backend/pkg/middleware/requestid"
)

// @title Auto Attendance Tracker API
// @version 1.0.0
// @description Classroom, student and attendance tracking backend
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	cacheRepo := repository.NewCacheRepository(nil, logr)
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, classroom cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	classroomSvc := service.NewClassroomService(classroomRepo, cacheRepo, cfg.Cache.ClassroomTTL, validate, logr, metricsSvc)

	authHandler := handler.NewAuthHandler(authSvc)
	classroomHandler := handler.NewClassroomHandler(classroomSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	auth := middleware.JWT(authSvc)

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	classrooms := api.Group("/classrooms")
	{
		classrooms.POST("", auth, classroomHandler.Create)
		classrooms.GET("", auth, classroomHandler.List)
		classrooms.GET("/:classroomId", classroomHandler.Get)
		classrooms.PATCH("/:classroomId", auth, classroomHandler.Update)
		classrooms.DELETE("/:classroomId", auth, classroomHandler.Delete)

		classrooms.POST("/:classroomId/students", auth, classroomHandler.AddStudent)
		classrooms.PATCH("/:classroomId/students/:studentId", auth, classroomHandler.UpdateStudent)
		classrooms.DELETE("/:classroomId/students/:studentId", auth, classroomHandler.DeleteStudent)

		classrooms.POST("/:classroomId/attendance", auth, classroomHandler.AddAttendance)
		classrooms.GET("/:classroomId/attendance/export", classroomHandler.ExportAttendance)
		classrooms.DELETE("/:classroomId/attendance/:attendanceId", auth, classroomHandler.DeleteAttendance)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
