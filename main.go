package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/services/calendar"
	ai "slotwise/services/intelligence"
	"slotwise/services/scheduling"
	"slotwise/transport"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitor := utils.NewHealthMonitor(60*time.Second, logger)

	// Calendar backend.
	backend, closeBackend, err := calendar.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("main: failed to open calendar backend", zap.Error(err))
	}
	defer closeBackend(context.Background())
	monitor.Register("calendar", backend.Ping)

	// Intent extraction.
	client, err := ai.NewCompletionClient(ctx, cfg)
	if err != nil {
		logger.Fatal("main: failed to create LLM client", zap.Error(err))
	}

	var cache ai.IntentCache
	if cfg.IntentCacheEnabled {
		redisClient, err := utils.NewCacheClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
		if err != nil {
			logger.Fatal("main: failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cache = ai.NewRedisIntentCache(redisClient, cfg.IntentCacheTTL)
		monitor.Register("redis", func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}

	loc := cfg.Location()
	extractor := ai.NewExtractor(client, cache, loc, cfg.LLMTimeout, logger)

	// Negotiation.
	engine := scheduling.NewNegotiationEngine(backend, backend, scheduling.EngineConfig{
		Location:    loc,
		HorizonDays: cfg.SearchHorizonDays,
		Now:         func() time.Time { return time.Now().In(loc) },
	}, logger)
	assistant := scheduling.NewAssistant(extractor, engine, logger)
	assistant.Now = func() time.Time { return time.Now().In(loc) }

	// Optional NATS transport.
	if cfg.NATSEnabled {
		natsTransport, err := transport.NewNATSTransport(cfg.NATSURL, cfg.NATSSubject, assistant, cfg.LLMTimeout+30*time.Second, logger)
		if err != nil {
			logger.Fatal("main: failed to initialize NATS transport", zap.Error(err))
		}
		defer natsTransport.Close()
		if err := natsTransport.Start(); err != nil {
			logger.Fatal("main: failed to start NATS transport", zap.Error(err))
		}
		monitor.Register("nats", natsTransport.Ping)
	}

	monitor.Start(ctx)

	// Create the Gin router.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))

	chatHandler := handlers.NewChatHandler(assistant)
	handlerBundle := &handlers.HandlerBundle{
		ChatHandler:   chatHandler.HandleChat,
		HealthHandler: handlers.HealthHandler(monitor),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("llmProvider", cfg.LLMProvider),
		zap.String("calendarBackend", cfg.CalendarBackend),
		zap.String("timezone", loc.String()),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
