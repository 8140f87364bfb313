package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homeserve/config"
	"homeserve/cron"
	"homeserve/database"
	settingsRepo "homeserve/database/repository/settings"
	"homeserve/handlers"
	"homeserve/metrics"
	"homeserve/middleware"
	"homeserve/models"
	"homeserve/routes"
	"homeserve/services/actor"
	"homeserve/services/ivr"
	"homeserve/services/marketplace"
	"homeserve/services/payment"
	"homeserve/services/query"
	"homeserve/services/tasks"
	"homeserve/utils"
	"homeserve/views"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	healthInterval  = 30 * time.Second
	gatewayTokenTTL = time.Hour
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()
	cfg := config.AppConfig

	if cfg.JWTSecret == "" {
		logger.Fatal("main: JWT_SECRET must be set")
	}
	if cfg.ActorURL == "" {
		logger.Fatal("main: ACTOR_URL must be set")
	}

	metrics.Register()
	issuer := utils.NewTokenIssuer(cfg.JWTSecret)
	checks := map[string]utils.HealthCheck{}

	// Query cache store.
	var store query.Store = query.NewMemoryStore()
	if cfg.CacheBackend == "redis" {
		redisClient, err := utils.NewCacheClient(cfg)
		if err != nil {
			logger.Fatal("main: query cache unavailable", zap.Error(err))
		}
		defer redisClient.Close()
		store = query.NewRedisStore(redisClient)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	logger.Info("Query cache ready", zap.String("backend", cfg.CacheBackend), zap.Duration("ttl", cfg.CacheTTL()))

	// Backend actor.
	backend := actor.NewHTTPActor(cfg.ActorURL, cfg.ActorTimeout(), logger)
	checks["actor"] = backend.Ping
	cache := query.NewClient(store, cfg.CacheTTL(), logger)
	svc := marketplace.NewService(backend, cache)

	// IVR settings live in MongoDB when configured.
	repo := settingsRepo.NewMemorySettingsRepo()
	if cfg.DatabaseURL != "" {
		mongoClient, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("main: settings database unavailable", zap.Error(err))
		}
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()
		repo = settingsRepo.NewMongoSettingsRepo(mongoClient, cfg.DatabaseName)
		checks["mongo"] = func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }
	} else {
		logger.Warn("DATABASE_URL not set; IVR settings are kept in memory")
	}
	settings := ivr.NewSettingsService(repo)

	var intents payment.IntentCreator
	if cfg.StripeKey != "" {
		intents = payment.NewStripeIntents(cfg.StripeKey, cfg.PaymentCurrency, logger)
	}

	// Phone bookings are submitted under the gateway's own identity.
	gateway := func() (actor.Caller, error) {
		token, err := issuer.GenerateToken(cfg.IVRPrincipal, gatewayTokenTTL)
		return actor.Caller{Principal: models.Principal(cfg.IVRPrincipal), Token: token}, err
	}
	handleIVR := cron.IVRBookingHandler(svc, gateway, logger)

	var ivrQueue tasks.IVRBookingQueue = tasks.DirectIVRQueue{Handle: handleIVR}
	if cfg.IVRQueueEnabled {
		queueClient := asynq.NewClient(cron.RedisQueueOpt(cfg))
		defer queueClient.Close()
		ivrQueue = tasks.NewAsynqIVRQueue(queueClient)

		worker := cron.InitIVRWorker(cfg, handleIVR, logger)
		defer worker.Shutdown()
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	monitor := utils.NewHealthMonitor(checks)
	monitor.Start(monitorCtx, healthInterval)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestContext())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	handlerBundle := &handlers.HandlerBundle{
		Issuer:         issuer,
		Svc:            svc,
		EnableDevLogin: !config.IsProduction(),

		Auth:    handlers.NewAuthHandler(issuer),
		Health:  handlers.NewHealthHandler(monitor),
		Profile: handlers.NewProfileHandler(svc),
		Admin:   handlers.NewAdminHandler(svc),
		Catalog: handlers.NewCatalogHandler(svc),
		Booking: handlers.NewBookingHandler(svc),
		Support: handlers.NewSupportHandler(svc),
		Payment: handlers.NewPaymentHandler(svc, intents),
		IVR:     handlers.NewIVRHandler(svc, settings, ivrQueue),
		View:    handlers.NewViewHandler(views.NewResolver(svc, settings)),
	}
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("main: server stopped gracefully")
}
