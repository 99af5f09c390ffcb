package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	api "gracehub-backend/internal/api/http"
	"gracehub-backend/internal/config"
	"gracehub-backend/internal/logger"
	"gracehub-backend/internal/repository/postgres"
	"gracehub-backend/internal/security"
	"gracehub-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GraceHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, cfg.SendGrid.Disabled)
	authSvc := service.NewAuthService(store.UserRepository, store.RoleRepository, tokenManager)
	appSvc := service.NewApplicationService(store.ApplicationRepository, store.UserRepository, store.NotificationRepository, emailSvc)
	assignSvc := service.NewAssignmentService(
		store.ApplicationRepository,
		store.GroupRepository,
		store.RoleRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
	)
	adminSvc := service.NewAdminService(store.GroupRepository, store.RoleRepository, store.UserRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP API
	authMW := api.NewAuthMiddleware(tokenManager, authSvc)
	router := api.NewRouter(
		authMW,
		api.NewAuthHandler(authSvc),
		api.NewApplicationHandler(appSvc),
		api.NewAdminHandler(assignSvc, adminSvc, appSvc),
		api.NewNotificationHandler(noteSvc),
	)

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
