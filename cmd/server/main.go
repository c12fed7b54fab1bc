package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/morningstarxcdcode/dgc-platform/internal/config"
	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
	"github.com/morningstarxcdcode/dgc-platform/internal/handler"
	"github.com/morningstarxcdcode/dgc-platform/internal/middleware"
	"github.com/morningstarxcdcode/dgc-platform/internal/observability"
	"github.com/morningstarxcdcode/dgc-platform/internal/repository"
	"github.com/morningstarxcdcode/dgc-platform/internal/service"
	"github.com/morningstarxcdcode/dgc-platform/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Repositories: postgres when configured, in-memory otherwise.
	var nfts domain.NFTRepository
	var listings domain.ListingRepository
	var pool *pgxpool.Pool

	if cfg.Database.URL != "" {
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			log.Fatalf("parse db config: %v", err)
		}
		poolCfg.MaxConns = cfg.Database.MaxConns

		pool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
		if err != nil {
			log.Fatalf("create db pool: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			log.Fatalf("ping db: %v", err)
		}
		log.Info("database connection established")

		nfts = repository.NewNFTRepository(pool)
		listings = repository.NewListingRepository(pool)
	} else {
		log.Info("no DATABASE_URL configured, using in-memory repositories")
		nfts = repository.NewMemoryNFTRepo()
		listings = repository.NewMemoryListingRepo()
	}

	// Services
	gen := service.NewGenerationService(cfg.Generation.MaxPromptLength, cfg.Generation.DefaultTimeout)
	store := service.NewContentStore(cfg.IPFS.GatewayURL)
	dnaEngine := service.NewDNAEngine()
	emotionAI := service.NewEmotionAI()
	wallet := service.NewWalletService(cfg.Ethereum.RPCURL, cfg.Ethereum.PriceAPIURL, cfg.Ethereum.RPCTimeout)
	search := service.NewSearchEngine()
	agents := service.NewAgentController()
	hub := ws.NewHub()

	h := handler.New(handler.Services{
		Environment: cfg.Environment,
		Generation:  gen,
		Store:       store,
		NFTs:        nfts,
		Listings:    listings,
		DNA:         dnaEngine,
		Emotion:     emotionAI,
		Wallet:      wallet,
		Search:      search,
		Agents:      agents,
		Hub:         hub,
	})

	// Router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.CORS(cfg.CORS.Origins),
		observability.HTTPMetrics(),
		gin.Recovery(),
	)

	h.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(observability.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	listener := service.NewChainListener(nfts, cfg.Realtime.ChainPollInterval)
	go listener.Run(workerCtx)

	broadcaster := ws.NewBroadcaster(hub, cfg.Realtime.BroadcastInterval)
	go broadcaster.Run(workerCtx)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
