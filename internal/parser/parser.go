package parser

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vitos/crypto_market_cache/internal/domain"
)

// flexString accepts a JSON value that upstream encodes either as a number
// or as a string, and normalizes both to the same text. For numbers the raw
// JSON literal is kept verbatim, so no precision is lost to a float
// round-trip.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("not a number or string: %s", string(b))
	}
	*f = flexString(b)
	return nil
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = 0
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", string(b))
	}
	*f = flexFloat(v)
	return nil
}

type rawMarketDetail struct {
	MarketID        string    `json:"coindcx_name"`
	BaseShortName   string    `json:"base_currency_short_name"`
	TargetShortName string    `json:"target_currency_short_name"`
	BaseName        string    `json:"base_currency_name"`
	TargetName      string    `json:"target_currency_name"`
	MinQuantity     flexFloat `json:"min_quantity"`
	MaxQuantity     flexFloat `json:"max_quantity"`
	MinPrice        flexFloat `json:"min_price"`
	MaxPrice        flexFloat `json:"max_price"`
	MinNotional     flexFloat `json:"min_notional"`
	BasePrecision   int       `json:"base_currency_precision"`
	TargetPrecision int       `json:"target_currency_precision"`
	Step            flexFloat `json:"step"`
	OrderTypes      []string  `json:"order_types"`
	Symbol          string    `json:"symbol"`
	ECode           string    `json:"ecode"`
	Pair            string    `json:"pair"`
	Status          string    `json:"status"`
}

type rawTicker struct {
	MarketID  string     `json:"market"`
	Change24h flexString `json:"change_24_hour"`
	High      flexString `json:"high"`
	Low       flexString `json:"low"`
	Volume    flexString `json:"volume"`
	LastPrice flexString `json:"last_price"`
	Bid       flexString `json:"bid"`
	Ask       flexString `json:"ask"`
	Timestamp int64      `json:"timestamp"`
}

type rawOrderBook struct {
	Bids map[string]flexString `json:"bids"`
	Asks map[string]flexString `json:"asks"`
}

// ParseMarketDetails decodes the markets_details payload. A malformed
// top-level payload fails the whole call; a record missing optional fields
// decodes with zero values instead.
func ParseMarketDetails(data []byte) ([]domain.MarketDetail, error) {
	var raw []rawMarketDetail
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse market details: %w", err)
	}

	details := make([]domain.MarketDetail, 0, len(raw))
	for _, r := range raw {
		details = append(details, domain.MarketDetail{
			MarketID:        r.MarketID,
			BaseShortName:   r.BaseShortName,
			TargetShortName: r.TargetShortName,
			BaseName:        r.BaseName,
			TargetName:      r.TargetName,
			MinQuantity:     float64(r.MinQuantity),
			MaxQuantity:     float64(r.MaxQuantity),
			MinPrice:        float64(r.MinPrice),
			MaxPrice:        float64(r.MaxPrice),
			MinNotional:     float64(r.MinNotional),
			BasePrecision:   r.BasePrecision,
			TargetPrecision: r.TargetPrecision,
			Step:            float64(r.Step),
			OrderTypes:      r.OrderTypes,
			Symbol:          r.Symbol,
			ECode:           r.ECode,
			Pair:            r.Pair,
			Status:          r.Status,
		})
	}
	return details, nil
}

// ParseTickers decodes the ticker payload, normalizing number-or-string
// fields to text.
func ParseTickers(data []byte) ([]domain.TickerSnapshot, error) {
	var raw []rawTicker
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse tickers: %w", err)
	}

	tickers := make([]domain.TickerSnapshot, 0, len(raw))
	for _, r := range raw {
		tickers = append(tickers, domain.TickerSnapshot{
			MarketID:  r.MarketID,
			Change24h: string(r.Change24h),
			High:      string(r.High),
			Low:       string(r.Low),
			Volume:    string(r.Volume),
			LastPrice: string(r.LastPrice),
			Bid:       string(r.Bid),
			Ask:       string(r.Ask),
			Timestamp: r.Timestamp,
		})
	}
	return tickers, nil
}

// ParseOrderBook decodes the order-book payload. Quantities arrive as
// numbers or strings depending on the pair; both normalize to text.
func ParseOrderBook(data []byte) (domain.OrderBookSnapshot, error) {
	var raw rawOrderBook
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.OrderBookSnapshot{}, fmt.Errorf("parse order book: %w", err)
	}

	book := domain.OrderBookSnapshot{
		Bids: make(map[string]string, len(raw.Bids)),
		Asks: make(map[string]string, len(raw.Asks)),
	}
	for price, qty := range raw.Bids {
		book.Bids[price] = string(qty)
	}
	for price, qty := range raw.Asks {
		book.Asks[price] = string(qty)
	}
	return book, nil
}
