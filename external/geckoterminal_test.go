// Package external
package external

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenfolio/marketcap-backend/types"
)

var testToken = types.Token{
	ID:      "test",
	Symbol:  "TEST",
	Name:    "Test Token",
	ChainID: "ethereum",
	Address: "0xABC",
	Enabled: true,
}

func newGeckoTestServer(t *testing.T, requests *int) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/networks/eth/tokens/0xABC/pools", func(w http.ResponseWriter, r *http.Request) {
		*requests++
		fmt.Fprint(w, `{"data":[
			{"attributes":{"address":"0xpool1","volume_usd":{"h24":"100.5"}}},
			{"attributes":{"address":"0xpool2","volume_usd":{"h24":"900.1"}}}
		]}`)
	})
	mux.HandleFunc("/networks/eth/tokens/0xABC", func(w http.ResponseWriter, r *http.Request) {
		*requests++
		fmt.Fprint(w, `{"data":{"attributes":{"price_usd":"2.0","fdv_usd":"2000000","market_cap_usd":"1000000"}}}`)
	})
	mux.HandleFunc("/networks/eth/pools/0xpool2/ohlcv/hour", func(w http.ResponseWriter, r *http.Request) {
		*requests++
		assert.Equal(t, "1", r.URL.Query().Get("aggregate"))
		assert.Equal(t, "168", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"data":{"attributes":{"ohlcv_list":[
			[1700000000,1.9,2.1,1.8,2.0,500],
			[1700003600,2.0,2.2,1.9,2.1,600]
		]}}}`)
	})
	return httptest.NewServer(mux)
}

func TestGeckoTerminal_FetchMarketCap(t *testing.T) {
	requests := 0
	srv := newGeckoTestServer(t, &requests)
	defer srv.Close()

	g := NewGeckoTerminal(GeckoTerminalConfig{BaseURL: srv.URL})
	series, err := g.FetchMarketCap(context.Background(), testToken, types.DayRange7)
	require.Nil(t, err)
	require.NotNil(t, series)

	assert.Equal(t, types.SourceGeckoTerminal, series.Source)
	assert.Equal(t, "TEST", series.Symbol)
	assert.False(t, series.Error)
	assert.Equal(t, 2.0, series.CurrentPrice)
	assert.Equal(t, float64(1000000), series.CurrentMarketCap)
	// supply = 1000000/2.0 = 500000
	require.Len(t, series.Points, 2)
	assert.Equal(t, int64(1700000000000), series.Points[0].Timestamp)
	assert.Equal(t, float64(1000000), series.Points[0].Value)
	assert.Equal(t, float64(1050000), series.Points[1].Value)
}

func TestGeckoTerminal_CacheIdempotence(t *testing.T) {
	requests := 0
	srv := newGeckoTestServer(t, &requests)
	defer srv.Close()

	g := NewGeckoTerminal(GeckoTerminalConfig{BaseURL: srv.URL})
	_, err := g.FetchMarketCap(context.Background(), testToken, types.DayRange7)
	require.Nil(t, err)
	assert.Equal(t, 3, requests)

	_, err = g.FetchMarketCap(context.Background(), testToken, types.DayRange7)
	require.Nil(t, err)
	assert.Equal(t, 3, requests, "second fetch within TTL must not hit upstream")

	g.ClearCache(context.Background())
	_, err = g.FetchMarketCap(context.Background(), testToken, types.DayRange7)
	require.Nil(t, err)
	assert.Equal(t, 6, requests)
}

func TestGeckoTerminal_NoPools(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g := NewGeckoTerminal(GeckoTerminalConfig{BaseURL: srv.URL})
	_, err := g.FetchMarketCap(context.Background(), testToken, types.DayRange1)
	assert.Equal(t, types.ErrNoData, err)
}

func TestGeckoTerminal_UpstreamRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGeckoTerminal(GeckoTerminalConfig{BaseURL: srv.URL})
	_, err := g.FetchMarketCap(context.Background(), testToken, types.DayRange1)
	assert.Equal(t, types.ErrNoData, err)
}

func TestGeckoTerminal_SnapshotFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/networks/eth/tokens/0xABC/pools", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"attributes":{"address":"0xpool1","volume_usd":{"h24":"1"}}}]}`)
	})
	mux.HandleFunc("/networks/eth/tokens/0xABC", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"attributes":{"price_usd":"3.0","fdv_usd":"9000000","market_cap_usd":""}}}`)
	})
	mux.HandleFunc("/networks/eth/pools/0xpool1/ohlcv/minute", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"attributes":{"ohlcv_list":[]}}}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g := NewGeckoTerminal(GeckoTerminalConfig{BaseURL: srv.URL})
	series, err := g.FetchMarketCap(context.Background(), testToken, types.DayRange1)
	require.Nil(t, err)
	require.Len(t, series.Points, 1)
	assert.Equal(t, float64(9000000), series.Points[0].Value)
	assert.Equal(t, float64(9000000), series.CurrentMarketCap)
}

func TestGeckoTerminal_NoAddress(t *testing.T) {
	g := NewGeckoTerminal(GeckoTerminalConfig{})
	_, err := g.FetchMarketCap(context.Background(), types.Token{ID: "x", Symbol: "X"}, types.DayRange7)
	assert.Equal(t, types.ErrNoData, err)
}
