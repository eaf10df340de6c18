package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"content-ledger/pkg/config"
	"content-ledger/pkg/jwt"
	"content-ledger/pkg/logger"
	"content-ledger/pkg/middleware"
	"content-ledger/pkg/queue"
	"content-ledger/pkg/s3"
	"content-ledger/services/ledger/internal/chain"
	"content-ledger/services/ledger/internal/contract"
	ledgerHTTP "content-ledger/services/ledger/internal/controller/http"
	"content-ledger/services/ledger/internal/dispatcher"
	"content-ledger/services/ledger/internal/repo/persistent"
	"content-ledger/services/ledger/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "content-ledger/services/ledger/docs" // Swagger docs
)

// Ledger is the dispatcher with both contracts registered on top of postgres.
type Ledger struct {
	Dispatcher *dispatcher.Dispatcher
	Calls      persistent.CallRepository
	Chain      chain.Chain
}

// NewLedger wires repositories, usecases and contract routes. redisClient and
// queueClient may be nil; without redis the chain height lives in memory.
func NewLedger(ctx context.Context, cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) (*Ledger, error) {
	var ch chain.Chain = chain.NewMemoryChain(cfg.ChainStartHeight)
	if redisClient != nil {
		redisChain, err := chain.NewRedisChain(ctx, redisClient, cfg.ChainStartHeight)
		if err != nil {
			return nil, fmt.Errorf("failed to initialise chain: %w", err)
		}
		ch = redisChain
	}

	var publisher usecase.EventPublisher
	if queueClient != nil {
		publisher = queueClient
	}

	// Initialize repositories
	tokenRepo := persistent.NewTokenRepository(db)
	subscriptionRepo := persistent.NewSubscriptionRepository(db)
	callRepo := persistent.NewCallRepository(db)

	// Initialize use cases
	nftUseCase := usecase.NewContentNFTUseCase(tokenRepo, ch, publisher, redisClient, log)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(subscriptionRepo, ch, publisher, log)

	d := dispatcher.New(ch, callRepo, log)
	contract.RegisterContentNFT(d, nftUseCase)
	contract.RegisterSubscription(d, subscriptionUseCase)

	return &Ledger{Dispatcher: d, Calls: callRepo, Chain: ch}, nil
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client, s3Client *s3.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	ledger, err := NewLedger(context.Background(), cfg, log, db, redisClient, queueClient)
	if err != nil {
		log.Error("Failed to build ledger: %v", err)
		panic(err)
	}

	var content ledgerHTTP.ContentStore
	if s3Client != nil {
		content = s3Client
	}

	// Initialize HTTP handlers
	ledgerHandler := ledgerHTTP.NewLedgerHandler(ledger.Dispatcher, ledger.Calls, content, ledger.Chain, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute))

	{
		api.GET("/contracts", ledgerHandler.ListRoutes)
		api.POST("/contracts/:contract/:function", ledgerHandler.CallContract)
		api.GET("/calls", ledgerHandler.ListCalls)
		api.POST("/content", ledgerHandler.UploadContent)
		api.GET("/chain/height", ledgerHandler.GetHeight)
		api.POST("/chain/advance", ledgerHandler.AdvanceChain)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Ledger service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down ledger service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if queueClient != nil {
		queueClient.Close()
	}

	log.Info("Ledger service exited")
}
