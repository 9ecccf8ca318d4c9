package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vitos/crypto_market_cache/internal/config"
	"github.com/vitos/crypto_market_cache/internal/infrastructure/upstream"
	"github.com/vitos/crypto_market_cache/internal/parser"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Testing CoinDCX Interaction...\n")
	fmt.Printf("Base URL: %s\n", cfg.Upstream.BaseURL)
	fmt.Printf("Public URL: %s\n", cfg.Upstream.PublicURL)

	adapter := upstream.NewCoindcxAdapter(cfg.Upstream.BaseURL, cfg.Upstream.PublicURL)
	ctx := context.Background()

	// 2. Check Market Details
	pair := ""
	data, err := adapter.FetchMarketDetails(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to fetch market details: %v\n", err)
	} else if markets, err := parser.ParseMarketDetails(data); err != nil {
		fmt.Printf("❌ Failed to parse market details: %v\n", err)
	} else {
		fmt.Printf("✅ Market Details: %d markets\n", len(markets))
		if len(markets) > 0 {
			pair = markets[0].Pair
		}
	}

	// 3. Check Ticker
	data, err = adapter.FetchTickers(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to fetch tickers: %v\n", err)
	} else if tickers, err := parser.ParseTickers(data); err != nil {
		fmt.Printf("❌ Failed to parse tickers: %v\n", err)
	} else {
		fmt.Printf("✅ Tickers: %d markets\n", len(tickers))
	}

	// 4. Check Order Book for the first known pair
	if pair == "" {
		fmt.Println("No pair available, skipping order book check")
		return
	}
	data, err = adapter.FetchOrderBook(ctx, pair)
	if err != nil {
		fmt.Printf("❌ Failed to fetch order book for %s: %v\n", pair, err)
	} else if book, err := parser.ParseOrderBook(data); err != nil {
		fmt.Printf("❌ Failed to parse order book for %s: %v\n", pair, err)
	} else {
		fmt.Printf("✅ Order Book (%s): %d bids / %d asks\n", pair, len(book.Bids), len(book.Asks))
	}
}
