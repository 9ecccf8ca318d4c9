package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/vitos/crypto_market_cache/internal/domain"
	"github.com/vitos/crypto_market_cache/internal/parser"
	"go.uber.org/zap"
)

// RefreshScheduler runs the background refresh loops: tickers on a short
// fixed cadence, market metadata on a much longer one. Cycles never overlap
// within a loop (the next one starts only after the previous completes), a
// failed fetch or parse leaves the cache unchanged for that cycle, and no
// cache lock is held while upstream is in flight.
type RefreshScheduler struct {
	upstream domain.Upstream
	cache    domain.MarketStore
	logger   *zap.Logger

	tickerInterval time.Duration
	marketInterval time.Duration

	// Called after each successful ticker upsert, outside the cache lock.
	onTickers func([]domain.TickerSnapshot)

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewRefreshScheduler(
	upstream domain.Upstream,
	cache domain.MarketStore,
	tickerInterval time.Duration,
	marketInterval time.Duration,
	logger *zap.Logger,
) *RefreshScheduler {
	return &RefreshScheduler{
		upstream:       upstream,
		cache:          cache,
		logger:         logger,
		tickerInterval: tickerInterval,
		marketInterval: marketInterval,
		stop:           make(chan struct{}),
	}
}

// OnTickers registers a callback invoked with each successfully applied
// ticker batch. Must be called before Start.
func (s *RefreshScheduler) OnTickers(fn func([]domain.TickerSnapshot)) {
	s.onTickers = fn
}

// Start launches the refresh loops. Call once.
func (s *RefreshScheduler) Start() {
	s.wg.Add(1)
	go s.run(s.tickerInterval, s.RefreshTickers)

	if s.marketInterval > 0 {
		s.wg.Add(1)
		go s.run(s.marketInterval, s.RefreshMarkets)
	}

	s.logger.Info("refresh scheduler started",
		zap.Duration("ticker_interval", s.tickerInterval),
		zap.Duration("market_interval", s.marketInterval))
}

// Stop signals the loops to exit and waits for them. The stop signal is
// checked at the top of each cycle; an in-flight fetch is allowed to finish.
// Safe to call once.
func (s *RefreshScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
	s.logger.Info("refresh scheduler stopped")
}

func (s *RefreshScheduler) run(interval time.Duration, cycle func(context.Context) error) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		default:
		}

		if err := cycle(context.Background()); err != nil {
			s.logger.Warn("refresh cycle failed, cache unchanged", zap.Error(err))
		}

		select {
		case <-ticker.C:
		case <-s.stop:
			return
		}
	}
}

// RefreshTickers performs one fetch-parse-apply cycle for the ticker feed.
func (s *RefreshScheduler) RefreshTickers(ctx context.Context) error {
	data, err := s.upstream.FetchTickers(ctx)
	if err != nil {
		return err
	}

	tickers, err := parser.ParseTickers(data)
	if err != nil {
		return err
	}

	s.cache.UpsertTickers(tickers)
	if s.onTickers != nil {
		s.onTickers(tickers)
	}
	return nil
}

// RefreshMarkets performs one fetch-parse-apply cycle for market metadata,
// rebuilding the pair index. Also called once at startup before the loops
// begin.
func (s *RefreshScheduler) RefreshMarkets(ctx context.Context) error {
	data, err := s.upstream.FetchMarketDetails(ctx)
	if err != nil {
		return err
	}

	markets, err := parser.ParseMarketDetails(data)
	if err != nil {
		return err
	}

	s.cache.UpsertMarketDetails(markets)
	s.logger.Debug("market metadata refreshed", zap.Int("markets", len(markets)))
	return nil
}
