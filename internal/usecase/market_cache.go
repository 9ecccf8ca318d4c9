package usecase

import (
	"sync"
	"time"

	"github.com/vitos/crypto_market_cache/internal/domain"
)

// MarketCache holds the latest market details, ticker snapshots and order
// books. All four maps share one RWMutex; writers take the exclusive lock,
// readers the shared one, and the lock is never held across an upstream
// call. The underlying maps are never handed out.
type MarketCache struct {
	mu       sync.RWMutex
	markets  map[string]domain.MarketDetail      // marketID -> details
	tickers  map[string]domain.TickerSnapshot    // marketID -> last ticker
	books    map[string]domain.OrderBookSnapshot // pair -> last book
	pairs    map[string]string                   // marketID -> pair
	excluded map[string]bool                     // marketIDs to drop from ticker refreshes

	timeNow func() time.Time // for testing
}

func NewMarketCache(excludedMarkets []string) *MarketCache {
	excluded := make(map[string]bool, len(excludedMarkets))
	for _, m := range excludedMarkets {
		excluded[m] = true
	}
	return &MarketCache{
		markets:  make(map[string]domain.MarketDetail),
		tickers:  make(map[string]domain.TickerSnapshot),
		books:    make(map[string]domain.OrderBookSnapshot),
		pairs:    make(map[string]string),
		excluded: excluded,
		timeNow:  time.Now,
	}
}

// UpsertMarketDetails replaces the stored metadata and pair mapping for each
// record. An empty slice is a no-op.
func (c *MarketCache) UpsertMarketDetails(records []domain.MarketDetail) {
	if len(records) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range records {
		c.markets[m.MarketID] = m
		c.pairs[m.MarketID] = m.Pair
	}
}

// UpsertTickers overwrites the prior snapshot for each record's market.
// Records for excluded markets are skipped without failing the batch.
func (c *MarketCache) UpsertTickers(records []domain.TickerSnapshot) {
	if len(records) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range records {
		if c.excluded[t.MarketID] {
			continue
		}
		c.tickers[t.MarketID] = t
	}
}

// UpsertOrderBook overwrites the prior snapshot for the pair.
func (c *MarketCache) UpsertOrderBook(pair string, book domain.OrderBookSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.books[pair] = book
}

// GetAllPairs returns the canonical pair strings known to the pair index at
// the time of the call.
func (c *MarketCache) GetAllPairs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pairs := make([]string, 0, len(c.pairs))
	for _, pair := range c.pairs {
		pairs = append(pairs, pair)
	}
	return pairs
}

// GetAllTickers returns a copy of every ticker snapshot currently held.
func (c *MarketCache) GetAllTickers() []domain.TickerSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tickers := make([]domain.TickerSnapshot, 0, len(c.tickers))
	for _, t := range c.tickers {
		tickers = append(tickers, t)
	}
	return tickers
}

// PairFor resolves a market id to its canonical pair string.
func (c *MarketCache) PairFor(marketID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pair, ok := c.pairs[marketID]
	return pair, ok
}

// GetComposite assembles whatever is known for one market. An id unknown to
// the pair index yields ErrMarketNotFound; missing ticker, metadata or book
// entries yield a partial view, not an error. The view's pair field carries
// the requested market id, matching the shape the public API always had.
func (c *MarketCache) GetComposite(marketID string) (domain.CompositeView, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pair, ok := c.pairs[marketID]
	if !ok {
		return domain.CompositeView{}, domain.ErrMarketNotFound
	}

	view := domain.CompositeView{
		Pair:      marketID,
		Timestamp: c.timeNow().UnixMilli(),
	}
	if m, ok := c.markets[marketID]; ok {
		view.Market = &m
	}
	if t, ok := c.tickers[marketID]; ok {
		view.Ticker = &t
	}
	if b, ok := c.books[pair]; ok {
		view.OrderBook = &b
		view.OrderBookAvailable = true
	}
	return view, nil
}
