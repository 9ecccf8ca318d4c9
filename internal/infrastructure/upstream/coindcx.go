package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	CoindcxBaseURL   = "https://api.coindcx.com"
	CoindcxPublicURL = "https://public.coindcx.com"
)

// CoindcxAdapter fetches raw payloads from the CoinDCX public REST API. The
// embedded http.Client is safe for concurrent use, so one adapter serves all
// callers.
type CoindcxAdapter struct {
	baseURL   string
	publicURL string
	client    *http.Client
}

func NewCoindcxAdapter(baseURL, publicURL string) *CoindcxAdapter {
	return &CoindcxAdapter{
		baseURL:   baseURL,
		publicURL: publicURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *CoindcxAdapter) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("coindcx api error: status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func (a *CoindcxAdapter) FetchMarketDetails(ctx context.Context) ([]byte, error) {
	return a.fetch(ctx, a.baseURL+"/exchange/v1/markets_details")
}

func (a *CoindcxAdapter) FetchTickers(ctx context.Context) ([]byte, error) {
	return a.fetch(ctx, a.baseURL+"/exchange/ticker")
}

func (a *CoindcxAdapter) FetchOrderBook(ctx context.Context, pair string) ([]byte, error) {
	return a.fetch(ctx, a.publicURL+"/market_data/orderbook?pair="+url.QueryEscape(pair))
}
