package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTickers_NumberAndStringNormalizeEqually(t *testing.T) {
	asNumber := []byte(`[{"market":"BTCINR","change_24_hour":-1.477,"last_price":"3489718.0","timestamp":1713958000000}]`)
	asString := []byte(`[{"market":"BTCINR","change_24_hour":"-1.477","last_price":"3489718.0","timestamp":1713958000000}]`)

	fromNumber, err := ParseTickers(asNumber)
	require.NoError(t, err)
	fromString, err := ParseTickers(asString)
	require.NoError(t, err)

	require.Len(t, fromNumber, 1)
	require.Len(t, fromString, 1)
	assert.Equal(t, "-1.477", fromNumber[0].Change24h)
	assert.Equal(t, fromNumber[0], fromString[0])
}

func TestParseTickers_MissingOptionalFieldsDefault(t *testing.T) {
	data := []byte(`[{"market":"ETHINR","last_price":250000}]`)

	tickers, err := ParseTickers(data)
	require.NoError(t, err)
	require.Len(t, tickers, 1)

	got := tickers[0]
	assert.Equal(t, "ETHINR", got.MarketID)
	assert.Equal(t, "250000", got.LastPrice)
	assert.Equal(t, "", got.High)
	assert.Equal(t, "", got.Bid)
	assert.Equal(t, int64(0), got.Timestamp)
}

func TestParseTickers_NullAndPrecision(t *testing.T) {
	// Full literal text must survive, not a float64 round-trip.
	data := []byte(`[{"market":"XRPINR","volume":123456789.123456789,"bid":null}]`)

	tickers, err := ParseTickers(data)
	require.NoError(t, err)
	require.Len(t, tickers, 1)
	assert.Equal(t, "123456789.123456789", tickers[0].Volume)
	assert.Equal(t, "", tickers[0].Bid)
}

func TestParseTickers_MalformedTopLevel(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"object instead of array", `{"market":"BTCINR"}`},
		{"truncated", `[{"market":"BTCINR"`},
		{"not json", `<html>rate limited</html>`},
		{"bool field", `[{"market":"BTCINR","high":true}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTickers([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseMarketDetails(t *testing.T) {
	data := []byte(`[{
		"coindcx_name": "BTCINR",
		"base_currency_short_name": "INR",
		"target_currency_short_name": "BTC",
		"min_quantity": 0.00001,
		"max_quantity": "9000",
		"base_currency_precision": 2,
		"target_currency_precision": 5,
		"step": 0.00001,
		"order_types": ["market_order", "limit_order"],
		"symbol": "BTCINR",
		"ecode": "I",
		"pair": "B-BTC_INR",
		"status": "active"
	}]`)

	markets, err := ParseMarketDetails(data)
	require.NoError(t, err)
	require.Len(t, markets, 1)

	m := markets[0]
	assert.Equal(t, "BTCINR", m.MarketID)
	assert.Equal(t, "B-BTC_INR", m.Pair)
	assert.Equal(t, 0.00001, m.MinQuantity)
	assert.Equal(t, 9000.0, m.MaxQuantity) // string-encoded bound
	assert.Equal(t, 0.0, m.MaxPrice)       // absent field defaults
	assert.Equal(t, []string{"market_order", "limit_order"}, m.OrderTypes)
	assert.Equal(t, "active", m.Status)
}

func TestParseMarketDetails_MalformedTopLevel(t *testing.T) {
	_, err := ParseMarketDetails([]byte(`{"coindcx_name":"BTCINR"}`))
	assert.Error(t, err)
}

func TestParseOrderBook(t *testing.T) {
	data := []byte(`{
		"bids": {"5701.96": "0.4712", "5700.00": 1.5},
		"asks": {"5702.00": "0.1173"}
	}`)

	book, err := ParseOrderBook(data)
	require.NoError(t, err)
	assert.Equal(t, "0.4712", book.Bids["5701.96"])
	assert.Equal(t, "1.5", book.Bids["5700.00"])
	assert.Equal(t, "0.1173", book.Asks["5702.00"])
	assert.False(t, book.Empty())
}

func TestParseOrderBook_EmptyAndMalformed(t *testing.T) {
	book, err := ParseOrderBook([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, book.Empty())

	_, err = ParseOrderBook([]byte(`[1,2,3]`))
	assert.Error(t, err)
}
