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

	"sshtunnelapi/bootstrap"
	"sshtunnelapi/config"
	"sshtunnelapi/controllers"
	_ "sshtunnelapi/docs"
	"sshtunnelapi/pkg/logger"
	"sshtunnelapi/services/database"
	"sshtunnelapi/services/sshtunnel"
	"sshtunnelapi/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           sshtunnelapi
// @version         1.0
// @description     Database connection and SSH tunnel management API

// @BasePath  /api

func main() {
	// 1) Load config
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("LoadConfig error: %v", err)
	}

	// 2) Init structured logger with config
	logger.Init(logger.Options{
		Path:       config.Cfg.LogFile,
		Level:      logger.ParseLogLevel(config.Cfg.LogLevel),
		MaxSize:    config.Cfg.LogMaxSize,
		MaxBackups: config.Cfg.LogMaxBackups,
		MaxAge:     config.Cfg.LogMaxAge,
		Compress:   config.Cfg.LogCompress,
	})
	logger.Infof("Starting SSH tunnel API with log level: %s", config.Cfg.LogLevel)

	// 3) Connect DB (GORM)
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("ConnectDB error: %v", err)
	}
	if config.DB == nil {
		log.Fatal("Database is nil after ConnectDB")
	}

	if err := bootstrap.LoadData(); err != nil {
		log.Fatalf("Load data error: %v", err)
	}
	logger.Infof("Default SSH tunnel ports known for %d backends", sshtunnel.DefaultPortCount())

	controllers.SetDatabaseService(database.NewDatabaseService())
	controllers.SetSSHTunnelService(sshtunnel.NewSSHTunnelService())

	// 4) Setup Gin
	router := gin.Default()
	router.Use(utils.LoggerMiddleware())

	api := router.Group("/api")
	{
		controllers.RegisterDatabaseRoutes(api)
		controllers.RegisterSSHTunnelRoutes(api)
	}

	// 5) Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 6) Run until SIGINT/SIGTERM
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.Cfg.Port,
		Handler: router,
	}
	go func() {
		logger.Infof("Starting server at port %s", config.Cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Infof("Received shutdown signal, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
	logger.Infof("Application shutdown complete")
}
