package usecase

import (
	"context"

	"github.com/vitos/crypto_market_cache/internal/domain"
	"github.com/vitos/crypto_market_cache/internal/parser"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LiveDataService is the query boundary the HTTP layer calls. Listing pairs
// and tickers reads straight from the cache; GetLiveData additionally
// refreshes the pair's order book from upstream before composing the view,
// so book data is at most one fetch old.
type LiveDataService struct {
	upstream domain.Upstream
	cache    domain.MarketStore
	logger   *zap.Logger

	// Concurrent requests for the same pair share one upstream fetch.
	bookGroup singleflight.Group
}

func NewLiveDataService(upstream domain.Upstream, cache domain.MarketStore, logger *zap.Logger) *LiveDataService {
	return &LiveDataService{
		upstream: upstream,
		cache:    cache,
		logger:   logger,
	}
}

// GetAllPairs never fails.
func (s *LiveDataService) GetAllPairs() []string {
	return s.cache.GetAllPairs()
}

// GetAllTickers never fails.
func (s *LiveDataService) GetAllTickers() []domain.TickerSnapshot {
	return s.cache.GetAllTickers()
}

// GetLiveData resolves the market id, synchronously refreshes its order
// book, then composes the response. An unknown id returns
// domain.ErrMarketNotFound. A failed book refresh degrades the response
// (book fields empty, OrderBookAvailable false) instead of failing it.
func (s *LiveDataService) GetLiveData(ctx context.Context, marketID string) (domain.CompositeView, error) {
	pair, ok := s.cache.PairFor(marketID)
	if !ok {
		return domain.CompositeView{}, domain.ErrMarketNotFound
	}

	refreshed := true
	if err := s.RefreshOrderBook(ctx, pair); err != nil {
		s.logger.Warn("order book refresh failed, serving degraded response",
			zap.String("pair", pair), zap.Error(err))
		refreshed = false
	}

	view, err := s.cache.GetComposite(marketID)
	if err != nil {
		// The pair index shrank between lookups; treat as unknown.
		return domain.CompositeView{}, err
	}

	if !refreshed {
		view.OrderBook = nil
		view.OrderBookAvailable = false
	}
	return view, nil
}

// RefreshOrderBook performs one fetch-parse-apply cycle for a pair's order
// book. Concurrent calls for the same pair are collapsed into a single
// upstream fetch; every caller gets that cycle's outcome.
func (s *LiveDataService) RefreshOrderBook(ctx context.Context, pair string) error {
	_, err, _ := s.bookGroup.Do(pair, func() (interface{}, error) {
		data, err := s.upstream.FetchOrderBook(ctx, pair)
		if err != nil {
			return nil, err
		}

		book, err := parser.ParseOrderBook(data)
		if err != nil {
			return nil, err
		}

		s.cache.UpsertOrderBook(pair, book)
		return nil, nil
	})
	return err
}
