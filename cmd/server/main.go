package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/config"
	"github.com/yukikurage/organization-registry/internal/constants"
	"github.com/yukikurage/organization-registry/internal/database"
	"github.com/yukikurage/organization-registry/internal/events"
	"github.com/yukikurage/organization-registry/internal/handlers"
	"github.com/yukikurage/organization-registry/internal/identity"
	"github.com/yukikurage/organization-registry/internal/middleware"
	"github.com/yukikurage/organization-registry/internal/repository"
	"github.com/yukikurage/organization-registry/internal/services"
	"github.com/yukikurage/organization-registry/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// REGISTRY_* variables may come from a local .env file
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	telemetry.SetupLogger(cfg.Logging.Format, cfg.Logging.Level)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	orgRepo := repository.NewOrganizationRepository(db)
	if cfg.Registry.CacheSize > 0 {
		orgRepo, err = repository.NewCachedOrganizationRepository(orgRepo, cfg.Registry.CacheSize)
		if err != nil {
			slog.Error("failed to create organization cache", "error", err)
			os.Exit(1)
		}
	}

	genesis, _ := cfg.Chain.Genesis()
	registry := services.NewRegistryService(
		orgRepo,
		identity.New(nil),
		chain.NewGenesisClock(genesis, cfg.Chain.BlockTime),
		events.Fanout(events.NewLogSink(slog.Default()), events.MetricsSink{}),
		services.RegistryOptions{
			DefaultShares: chain.Balance(cfg.Registry.DefaultShares),
			MaxNameLength: cfg.Registry.MaxNameLength,
		},
	)
	authService := services.NewAuthService()

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		cfg.Redis.PoolSize,
		"tcp",
		cfg.Redis.Addr(),
		"",
		cfg.Redis.Password,
		[]byte(cfg.Session.Secret),
	)
	if err != nil {
		slog.Error("failed to create redis session store", "error", err)
		os.Exit(1)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   cfg.Server.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.LoggerMiddleware(slog.Default()))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganizationHandler(registry)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Organization Registry is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.GET("/challenge", authHandler.Challenge)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentAccount)
		}

		orgs := api.Group("/organizations")
		{
			orgs.POST("", middleware.RequireAuth(), orgHandler.CreateOrganization)
			orgs.GET("/:id", middleware.RequireOrganization(registry), orgHandler.GetOrganization)
			orgs.GET("/:id/members", orgHandler.ListMembers)
			orgs.GET("/:id/shares/:account_id", orgHandler.GetShare)
		}

		api.GET("/accounts/:account_id/organizations", orgHandler.ListAccountOrganizations)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
