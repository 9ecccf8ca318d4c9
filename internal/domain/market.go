package domain

// MarketDetail is the static metadata CoinDCX publishes for one trading pair.
// MarketID is the exchange-side market name (e.g. "BTCINR"); Pair is the
// canonical pair string the public order-book endpoint expects (e.g.
// "B-BTC_INR").
type MarketDetail struct {
	MarketID        string   `json:"coindcx_name"`
	BaseShortName   string   `json:"base_currency_short_name"`
	TargetShortName string   `json:"target_currency_short_name"`
	BaseName        string   `json:"base_currency_name"`
	TargetName      string   `json:"target_currency_name"`
	MinQuantity     float64  `json:"min_quantity"`
	MaxQuantity     float64  `json:"max_quantity"`
	MinPrice        float64  `json:"min_price"`
	MaxPrice        float64  `json:"max_price"`
	MinNotional     float64  `json:"min_notional"`
	BasePrecision   int      `json:"base_currency_precision"`
	TargetPrecision int      `json:"target_currency_precision"`
	Step            float64  `json:"step"`
	OrderTypes      []string `json:"order_types"`
	Symbol          string   `json:"symbol"`
	ECode           string   `json:"ecode"`
	Pair            string   `json:"pair"`
	Status          string   `json:"status"`
}

// TickerSnapshot is a point-in-time quote for one market. All numeric fields
// are kept as strings: upstream is inconsistent about encoding them as JSON
// numbers vs strings, and the parser normalizes both forms to the same text.
type TickerSnapshot struct {
	MarketID  string `json:"market"`
	Change24h string `json:"change_24_hour"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Volume    string `json:"volume"`
	LastPrice string `json:"last_price"`
	Bid       string `json:"bid"`
	Ask       string `json:"ask"`
	Timestamp int64  `json:"timestamp"`
}

// OrderBookSnapshot maps price to quantity, both string-formatted at
// arbitrary precision. The maps are unordered; ordering is the consumer's
// problem.
type OrderBookSnapshot struct {
	Bids map[string]string `json:"bids"`
	Asks map[string]string `json:"asks"`
}

// Empty reports whether the snapshot carries no levels at all.
func (ob OrderBookSnapshot) Empty() bool {
	return len(ob.Bids) == 0 && len(ob.Asks) == 0
}

// CompositeView is the merged response for one market: whatever of the
// metadata, ticker and order book is currently known. Missing parts are nil
// or empty, never an error.
type CompositeView struct {
	Pair               string             `json:"pair"`
	Market             *MarketDetail      `json:"market_details,omitempty"`
	Ticker             *TickerSnapshot    `json:"ticker,omitempty"`
	OrderBook          *OrderBookSnapshot `json:"order_book,omitempty"`
	OrderBookAvailable bool               `json:"order_book_available"`
	Timestamp          int64              `json:"timestamp"`
}
