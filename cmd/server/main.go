package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitos/crypto_market_cache/internal/config"
	"github.com/vitos/crypto_market_cache/internal/infrastructure/logger"
	"github.com/vitos/crypto_market_cache/internal/infrastructure/upstream"
	"github.com/vitos/crypto_market_cache/internal/usecase"
	"github.com/vitos/crypto_market_cache/internal/web"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Upstream + Cache
	coindcx := upstream.NewCoindcxAdapter(cfg.Upstream.BaseURL, cfg.Upstream.PublicURL)
	cache := usecase.NewMarketCache(cfg.ExcludedMarkets)

	// 4. Init Services
	scheduler := usecase.NewRefreshScheduler(coindcx, cache, cfg.TickerInterval(), cfg.MarketInterval(), log)
	service := usecase.NewLiveDataService(coindcx, cache, log)

	// 5. Prime the pair index so queries work as soon as the server is up.
	// A failure here is not fatal: the metadata loop retries on its cadence.
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := scheduler.RefreshMarkets(startupCtx); err != nil {
		log.Error("Initial market metadata refresh failed", zap.Error(err))
	}
	cancel()

	// 6. Wire ticker push and start the background refresh loops
	stream := web.NewTickerStream(log)
	scheduler.OnTickers(stream.Broadcast)
	scheduler.Start()

	// 7. Start Web Server
	server := web.NewServer(cfg.Server.Port, service, stream, log)
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// 8. Wait for Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	scheduler.Stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}
