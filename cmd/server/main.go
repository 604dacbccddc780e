package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/merchantkit/backoffice/internal/application/catalog"
	fleetapp "github.com/merchantkit/backoffice/internal/application/fleet"
	identityapp "github.com/merchantkit/backoffice/internal/application/identity"
	knowledgeapp "github.com/merchantkit/backoffice/internal/application/knowledge"
	paymentsapp "github.com/merchantkit/backoffice/internal/application/payments"
	voiceapp "github.com/merchantkit/backoffice/internal/application/voice"
	workerapp "github.com/merchantkit/backoffice/internal/application/worker"
	"github.com/merchantkit/backoffice/internal/infrastructure/auth"
	"github.com/merchantkit/backoffice/internal/infrastructure/config"
	"github.com/merchantkit/backoffice/internal/infrastructure/logger"
	"github.com/merchantkit/backoffice/internal/infrastructure/persistence"
	"github.com/merchantkit/backoffice/internal/infrastructure/stripegateway"
	"github.com/merchantkit/backoffice/internal/infrastructure/voice"
	"github.com/merchantkit/backoffice/internal/interfaces/http/handler"
	"github.com/merchantkit/backoffice/internal/interfaces/http/middleware"
	"github.com/merchantkit/backoffice/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting merchant back office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	blacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := blacklist.Close(); err != nil {
			log.Error("Error closing redis", zap.Error(err))
		}
	}()

	gateway, err := stripegateway.NewStripeAdapter(&cfg.Stripe, log)
	if err != nil {
		log.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}

	var issuer voice.SignedURLIssuer
	if voiceClient, err := voice.NewClient(&cfg.Voice); err != nil {
		log.Warn("Voice vendor client not configured", zap.Error(err))
	} else {
		issuer = voiceClient
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	merchantRepo := persistence.NewGormMerchantRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	terminalRepo := persistence.NewGormTerminalRepository(db.DB)
	knowledgeRepo := persistence.NewGormKnowledgeBaseRepository(db.DB)
	workerRepo := persistence.NewGormWorkerRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	merchantService := identityapp.NewMerchantService(merchantRepo, gateway, log)
	productService := catalogapp.NewProductService(productRepo, knowledgeRepo, gateway, log)
	locationService := fleetapp.NewLocationService(locationRepo, terminalRepo, gateway, log)
	terminalService := fleetapp.NewTerminalService(terminalRepo, locationRepo, gateway, log)
	attachmentValidator := knowledgeapp.NewAttachmentValidator(productRepo, terminalRepo, locationRepo)
	knowledgeService := knowledgeapp.NewKnowledgeBaseService(knowledgeRepo, attachmentValidator, log)
	workerService := workerapp.NewWorkerService(workerRepo, locationRepo, log)
	connectService := paymentsapp.NewConnectService(merchantRepo, gateway, log)
	paymentService := paymentsapp.NewTerminalPaymentService(
		terminalRepo, gateway, cfg.Stripe.PollInterval, cfg.Stripe.PollMaxAttempts, log)
	webhookService := paymentsapp.NewWebhookService(merchantRepo, cfg.Stripe.WebhookSecret, log)
	signedURLService := voiceapp.NewSignedURLService(workerRepo, issuer, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r.Register(handler.NewSystemHandler(cfg.App.Name, version))
	r.Register(handler.NewAuthHandler(authService))
	r.Register(handler.NewMerchantHandler(merchantService))
	r.Register(handler.NewProductHandler(productService, merchantService))
	r.Register(handler.NewLocationHandler(locationService, merchantService))
	r.Register(handler.NewTerminalHandler(terminalService, merchantService))
	r.Register(handler.NewKnowledgeHandler(knowledgeService, merchantService))
	r.Register(handler.NewWorkerHandler(workerService, merchantService))
	r.Register(handler.NewStripeConnectHandler(connectService, merchantService))
	r.Register(handler.NewStripeTerminalHandler(paymentService, merchantService))
	r.Register(handler.NewVoiceHandler(signedURLService, merchantService))
	r.Register(handler.NewWebhookHandler(webhookService))
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		// The synchronous card-present flow can hold a request for the
		// whole poll budget.
		WriteTimeout: cfg.Stripe.PollInterval*time.Duration(cfg.Stripe.PollMaxAttempts) + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness including database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
