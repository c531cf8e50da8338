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
	dexPaprikaURL     = "https://api.dexpaprika.com"
	paprikaMaxSamples = 366
)

type DexPaprikaConfig struct {
	BaseURL string
	TTL     time.Duration

	Logger *zap.Logger
}

// DexPaprika is the second-priority historical provider. Shorter history
// than GeckoTerminal but no request-rate ceiling.
type DexPaprika struct {
	baseURL string
	client  *http.Client
	cache   cache.Client

	logger *zap.Logger
}

func NewDexPaprika(cfg DexPaprikaConfig) *DexPaprika {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = dexPaprikaURL
	}
	return &DexPaprika{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(),
		cache:   cache.NewMemory(cfg.TTL, logger),
		logger:  logger.With(zap.String("provider", types.SourceDexPaprika)),
	}
}

func (p *DexPaprika) Name() string {
	return types.SourceDexPaprika
}

func (p *DexPaprika) ClearCache(ctx context.Context) {
	p.cache.Clear(ctx)
}

func (p *DexPaprika) FetchMarketCap(ctx context.Context, token types.Token, days types.DayRange) (*types.MarketCapSeries, error) {
	lgr := p.logger.With(zap.String("symbol", token.Symbol), zap.String("days", string(days)))
	if token.Address == "" {
		return nil, types.ErrNoData
	}
	network := token.ChainID

	pool, err := p.topPool(ctx, network, token.Address)
	if err != nil {
		lgr.Warn("cannot resolve pool", zap.Error(err))
		return nil, types.ErrNoData
	}

	info, err := p.tokenInfo(ctx, network, token.Address)
	if err != nil {
		lgr.Warn("cannot fetch token info", zap.Error(err))
		info = paprikaTokenInfo{}
	}

	s := samplingFor(days.Days(), paprikaMaxSamples)
	candles, err := p.ohlcv(ctx, network, pool, days, s)
	if err != nil {
		lgr.Warn("cannot fetch ohlcv", zap.Error(err))
		candles = nil
	}

	points := deriveSeries(candles, info.Price, info.FDV)
	now := utils.NowMillis()
	if len(points) == 0 {
		if info.FDV <= 0 {
			return nil, types.ErrNoData
		}
		points = []types.MarketCapPoint{{Timestamp: now, Value: math.Round(info.FDV)}}
	}

	current := info.FDV
	if current <= 0 {
		current = points[len(points)-1].Value
	}
	return &types.MarketCapSeries{
		Token:            token,
		Points:           points,
		CurrentMarketCap: current,
		CurrentPrice:     info.Price,
		Source:           types.SourceDexPaprika,
		LastUpdated:      now,
	}, nil
}

type paprikaPoolsResponse struct {
	Pools []struct {
		ID        string  `json:"id"`
		VolumeUSD float64 `json:"volume_usd"`
	} `json:"pools"`
}

func (p *DexPaprika) topPool(ctx context.Context, network, address string) (string, error) {
	key := cache.Key(types.SourceDexPaprika, "pools", network, address)
	var pool string
	if p.cache.Get(ctx, key, &pool) {
		return pool, nil
	}

	url := fmt.Sprintf("%s/networks/%s/tokens/%s/pools?limit=10&order_by=volume_usd&sort=desc", p.baseURL, network, address)
	var response paprikaPoolsResponse
	if err := fetchJSON(ctx, p.client, url, &response); err != nil {
		return "", err
	}

	best := ""
	bestVolume := -1.0
	for _, pl := range response.Pools {
		if pl.ID != "" && pl.VolumeUSD > bestVolume {
			best = pl.ID
			bestVolume = pl.VolumeUSD
		}
	}
	if best == "" {
		return "", types.ErrNoData
	}
	p.cache.Set(ctx, key, best)
	return best, nil
}

type paprikaTokenInfo struct {
	Price float64 `json:"price"`
	FDV   float64 `json:"fdv"`
}

type paprikaTokenResponse struct {
	Summary struct {
		PriceUSD float64 `json:"price_usd"`
		FDV      float64 `json:"fdv"`
	} `json:"summary"`
}

func (p *DexPaprika) tokenInfo(ctx context.Context, network, address string) (paprikaTokenInfo, error) {
	key := cache.Key(types.SourceDexPaprika, "token", network, address)
	var info paprikaTokenInfo
	if p.cache.Get(ctx, key, &info) {
		return info, nil
	}

	url := fmt.Sprintf("%s/networks/%s/tokens/%s", p.baseURL, network, address)
	var response paprikaTokenResponse
	if err := fetchJSON(ctx, p.client, url, &response); err != nil {
		return paprikaTokenInfo{}, err
	}

	info = paprikaTokenInfo{
		Price: response.Summary.PriceUSD,
		FDV:   response.Summary.FDV,
	}
	p.cache.Set(ctx, key, info)
	return info, nil
}

type paprikaCandle struct {
	TimeOpen  string  `json:"time_open"`
	TimeClose string  `json:"time_close"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	VolumeUSD float64 `json:"volume_usd"`
}

func (p *DexPaprika) ohlcv(ctx context.Context, network, pool string, days types.DayRange, s sampling) ([]Candle, error) {
	interval := paprikaInterval(s.interval)
	key := cache.Key(types.SourceDexPaprika, "ohlcv", network, pool, string(days), interval, strconv.Itoa(s.limit))
	var candles []Candle
	if p.cache.Get(ctx, key, &candles) {
		return candles, nil
	}

	start := utils.DaysAgo(days.Days())
	url := fmt.Sprintf("%s/networks/%s/pools/%s/ohlcv?start=%s&limit=%d&interval=%s",
		p.baseURL, network, pool, start, s.limit, interval)
	var response []paprikaCandle
	if err := fetchJSON(ctx, p.client, url, &response); err != nil {
		return nil, err
	}

	for _, c := range response {
		opened, err := time.Parse(time.RFC3339, c.TimeOpen)
		if err != nil {
			continue
		}
		candles = append(candles, Candle{
			Timestamp: opened.UnixNano() / int64(time.Millisecond),
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			Volume:    c.VolumeUSD,
		})
	}
	p.cache.Set(ctx, key, candles)
	return candles, nil
}

func paprikaInterval(interval time.Duration) string {
	switch {
	case interval < time.Hour:
		return fmt.Sprintf("%dm", interval/time.Minute)
	case interval < 24*time.Hour:
		return fmt.Sprintf("%dh", interval/time.Hour)
	default:
		return "24h"
	}
}
