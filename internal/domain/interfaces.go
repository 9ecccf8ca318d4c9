package domain

import (
	"context"
	"errors"
)

// ErrMarketNotFound is returned when a queried market id is unknown to the
// pair index. It is the only error surfaced directly to API callers.
var ErrMarketNotFound = errors.New("market not found")

// Upstream fetches raw payloads from the exchange. Implementations must be
// safe for concurrent use; the cache never calls upstream while holding its
// lock.
type Upstream interface {
	FetchMarketDetails(ctx context.Context) ([]byte, error)
	FetchTickers(ctx context.Context) ([]byte, error)
	FetchOrderBook(ctx context.Context, pair string) ([]byte, error)
}

// MarketStore is the read/write surface of the market cache.
type MarketStore interface {
	UpsertMarketDetails(records []MarketDetail)
	UpsertTickers(records []TickerSnapshot)
	UpsertOrderBook(pair string, book OrderBookSnapshot)

	GetAllPairs() []string
	GetAllTickers() []TickerSnapshot
	GetComposite(marketID string) (CompositeView, error)
	PairFor(marketID string) (string, bool)
}
