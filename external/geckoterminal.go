// Package external
package external

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tokenfolio/marketcap-backend/cache"
	"github.com/tokenfolio/marketcap-backend/types"
	"github.com/tokenfolio/marketcap-backend/utils"
)

const (
	geckoTerminalURL = "https://api.geckoterminal.com/api/v2"
	geckoMaxSamples  = 1000
)

// geckoNetworks maps our chain identifiers onto GeckoTerminal network slugs.
// Chains missing here pass through unchanged.
var geckoNetworks = map[string]string{
	"ethereum":  "eth",
	"polygon":   "polygon_pos",
	"avalanche": "avax",
}

type GeckoTerminalConfig struct {
	BaseURL string
	TTL     time.Duration

	Logger *zap.Logger
}

// GeckoTerminal is the first-priority historical provider: longest OHLCV
// history, strict request-rate ceiling upstream.
type GeckoTerminal struct {
	baseURL string
	client  *http.Client
	cache   cache.Client

	logger *zap.Logger
}

func NewGeckoTerminal(cfg GeckoTerminalConfig) *GeckoTerminal {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = geckoTerminalURL
	}
	return &GeckoTerminal{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(),
		cache:   cache.NewMemory(cfg.TTL, logger),
		logger:  logger.With(zap.String("provider", types.SourceGeckoTerminal)),
	}
}

func (g *GeckoTerminal) Name() string {
	return types.SourceGeckoTerminal
}

func (g *GeckoTerminal) ClearCache(ctx context.Context) {
	g.cache.Clear(ctx)
}

func (g *GeckoTerminal) FetchMarketCap(ctx context.Context, token types.Token, days types.DayRange) (*types.MarketCapSeries, error) {
	lgr := g.logger.With(zap.String("symbol", token.Symbol), zap.String("days", string(days)))
	if token.Address == "" {
		return nil, types.ErrNoData
	}
	network := geckoNetwork(token.ChainID)

	pool, err := g.topPool(ctx, network, token.Address)
	if err != nil {
		lgr.Warn("cannot resolve pool", zap.Error(err))
		return nil, types.ErrNoData
	}

	info, err := g.tokenInfo(ctx, network, token.Address)
	if err != nil {
		// candles can still be derived on the fallback supply
		lgr.Warn("cannot fetch token info", zap.Error(err))
		info = geckoTokenInfo{}
	}

	s := samplingFor(days.Days(), geckoMaxSamples)
	candles, err := g.ohlcv(ctx, network, pool, s)
	if err != nil {
		lgr.Warn("cannot fetch ohlcv", zap.Error(err))
		candles = nil
	}

	valuation := info.MarketCap
	if valuation <= 0 {
		valuation = info.FDV
	}
	points := deriveSeries(candles, info.Price, valuation)
	now := utils.NowMillis()
	if len(points) == 0 {
		if valuation <= 0 {
			return nil, types.ErrNoData
		}
		points = []types.MarketCapPoint{{Timestamp: now, Value: math.Round(valuation)}}
	}

	current := valuation
	if current <= 0 {
		current = points[len(points)-1].Value
	}
	return &types.MarketCapSeries{
		Token:            token,
		Points:           points,
		CurrentMarketCap: current,
		CurrentPrice:     info.Price,
		Source:           types.SourceGeckoTerminal,
		LastUpdated:      now,
	}, nil
}

type geckoPoolsResponse struct {
	Data []struct {
		Attributes struct {
			Address   string `json:"address"`
			VolumeUSD struct {
				H24 string `json:"h24"`
			} `json:"volume_usd"`
		} `json:"attributes"`
	} `json:"data"`
}

// topPool resolves the highest 24h-volume pool trading the token.
func (g *GeckoTerminal) topPool(ctx context.Context, network, address string) (string, error) {
	key := cache.Key(types.SourceGeckoTerminal, "pools", network, address)
	var pool string
	if g.cache.Get(ctx, key, &pool) {
		return pool, nil
	}

	url := fmt.Sprintf("%s/networks/%s/tokens/%s/pools?page=1", g.baseURL, network, address)
	var response geckoPoolsResponse
	if err := fetchJSON(ctx, g.client, url, &response); err != nil {
		return "", err
	}

	best := ""
	bestVolume := -1.0
	for _, p := range response.Data {
		volume := utils.StrToFloat64(p.Attributes.VolumeUSD.H24)
		if p.Attributes.Address != "" && volume > bestVolume {
			best = p.Attributes.Address
			bestVolume = volume
		}
	}
	if best == "" {
		return "", types.ErrNoData
	}
	g.cache.Set(ctx, key, best)
	return best, nil
}

type geckoTokenInfo struct {
	Price     float64 `json:"price"`
	FDV       float64 `json:"fdv"`
	MarketCap float64 `json:"marketCap"`
}

type geckoTokenResponse struct {
	Data struct {
		Attributes struct {
			PriceUSD     string `json:"price_usd"`
			FDVUSD       string `json:"fdv_usd"`
			MarketCapUSD string `json:"market_cap_usd"`
		} `json:"attributes"`
	} `json:"data"`
}

func (g *GeckoTerminal) tokenInfo(ctx context.Context, network, address string) (geckoTokenInfo, error) {
	key := cache.Key(types.SourceGeckoTerminal, "token", network, address)
	var info geckoTokenInfo
	if g.cache.Get(ctx, key, &info) {
		return info, nil
	}

	url := fmt.Sprintf("%s/networks/%s/tokens/%s", g.baseURL, network, address)
	var response geckoTokenResponse
	if err := fetchJSON(ctx, g.client, url, &response); err != nil {
		return geckoTokenInfo{}, err
	}

	attrs := response.Data.Attributes
	info = geckoTokenInfo{
		Price:     utils.StrToFloat64(attrs.PriceUSD),
		FDV:       utils.StrToFloat64(attrs.FDVUSD),
		MarketCap: utils.StrToFloat64(attrs.MarketCapUSD),
	}
	g.cache.Set(ctx, key, info)
	return info, nil
}

type geckoOHLCVResponse struct {
	Data struct {
		Attributes struct {
			OHLCVList [][]float64 `json:"ohlcv_list"`
		} `json:"attributes"`
	} `json:"data"`
}

func (g *GeckoTerminal) ohlcv(ctx context.Context, network, pool string, s sampling) ([]Candle, error) {
	timeframe, aggregate := geckoTimeframe(s.interval)
	key := cache.Key(types.SourceGeckoTerminal, "ohlcv", network, pool, timeframe, strconv.Itoa(aggregate), strconv.Itoa(s.limit))
	var candles []Candle
	if g.cache.Get(ctx, key, &candles) {
		return candles, nil
	}

	url := fmt.Sprintf("%s/networks/%s/pools/%s/ohlcv/%s?aggregate=%d&limit=%d&currency=usd",
		g.baseURL, network, pool, timeframe, aggregate, s.limit)
	var response geckoOHLCVResponse
	if err := fetchJSON(ctx, g.client, url, &response); err != nil {
		return nil, err
	}

	for _, row := range response.Data.Attributes.OHLCVList {
		if len(row) < 6 {
			continue
		}
		candles = append(candles, Candle{
			Timestamp: int64(row[0]) * 1000, // upstream reports seconds
			Open:      row[1],
			High:      row[2],
			Low:       row[3],
			Close:     row[4],
			Volume:    row[5],
		})
	}
	g.cache.Set(ctx, key, candles)
	return candles, nil
}

func geckoNetwork(chainID string) string {
	if slug, ok := geckoNetworks[chainID]; ok {
		return slug
	}
	return chainID
}

func geckoTimeframe(interval time.Duration) (string, int) {
	switch {
	case interval < time.Hour:
		return "minute", int(interval / time.Minute)
	case interval < 24*time.Hour:
		return "hour", int(interval / time.Hour)
	default:
		return "day", int(interval / (24 * time.Hour))
	}
}
