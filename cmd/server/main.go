package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"go-cms-app/internal/auth"
	"go-cms-app/internal/cache"
	"go-cms-app/internal/config"
	"go-cms-app/internal/data"
	"go-cms-app/internal/handler"
	"go-cms-app/internal/logger"
	"go-cms-app/internal/middleware"
	"go-cms-app/internal/service"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log)

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.DSN, cfg.DB.MigrationsPath); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(db.DB)
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Server.TLS.Enabled

	// --- Authorization Setup ---
	log.Info("Initializing authorization...")
	enforcer, err := auth.NewEnforcer("sqlite", cfg.DB.DSN, "auth_model.conf")
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Authorization initialized and policies seeded.")

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	appCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer appCache.Close()
	log.Info("Cache initialized.")

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	pageRepository := data.NewSQLPageRepository(db)
	userRepository := data.NewSQLUserRepository(db)
	configRepository := data.NewSQLConfigRepository(db)

	if err := bootstrapAdmin(userRepository, cfg.Admin, log); err != nil {
		log.Fatal(err, "Failed to bootstrap the admin account")
	}

	pageService := service.NewPageService(pageRepository, userRepository)
	userService := service.NewUserService(userRepository)
	configService := service.NewConfigService(configRepository, appCache)

	pageHandler := handler.NewPageHandler(pageService, log)
	authHandler := handler.NewAuthHandler(userService, sessionManager)
	adminHandler := handler.NewAdminHandler(configService, userService)
	imageHandler := handler.NewImageHandler(cfg.Static.Dir)

	authzMiddleware := middleware.Authorizer(enforcer, sessionManager)
	errorMiddleware := middleware.Error(log)

	// --- Router Setup ---
	router := handler.NewRouter(pageHandler, authHandler, adminHandler, imageHandler,
		cfg.Static.Dir, authzMiddleware, errorMiddleware, sessionManager)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}

// bootstrapAdmin creates the first admin account when the users table is
// empty, so a fresh install is immediately usable. The password must come
// from configuration; nothing is ever generated silently.
func bootstrapAdmin(users *data.SQLUserRepository, cfg config.AdminConfig, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := users.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if cfg.Password == "" {
		return errors.New("users table is empty and no CMS_ADMIN_PASSWORD is set")
	}

	_, err = users.CreateUser(ctx, data.User{
		Name:     "Administrator",
		Username: cfg.Username,
		Email:    cfg.Email,
		Role:     data.RoleAdmin,
	}, cfg.Password)
	if err != nil {
		return err
	}
	log.Info(fmt.Sprintf("Bootstrapped admin account %q", cfg.Username))
	return nil
}
