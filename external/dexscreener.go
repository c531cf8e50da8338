// Package external
package external

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tokenfolio/marketcap-backend/cache"
	"github.com/tokenfolio/marketcap-backend/types"
	"github.com/tokenfolio/marketcap-backend/utils"
)

const dexScreenerURL = "https://api.dexscreener.com"

type DexScreenerConfig struct {
	BaseURL string
	TTL     time.Duration

	Logger *zap.Logger
}

// DexScreener is the last-resort snapshot provider. It exposes no OHLCV
// endpoint, so it can only ever contribute a single current-value point.
type DexScreener struct {
	baseURL string
	client  *http.Client
	cache   cache.Client

	logger *zap.Logger
}

func NewDexScreener(cfg DexScreenerConfig) *DexScreener {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = dexScreenerURL
	}
	return &DexScreener{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(),
		cache:   cache.NewMemory(cfg.TTL, logger),
		logger:  logger.With(zap.String("provider", types.SourceDexScreener)),
	}
}

func (d *DexScreener) Name() string {
	return types.SourceDexScreener
}

func (d *DexScreener) ClearCache(ctx context.Context) {
	d.cache.Clear(ctx)
}

type screenerPair struct {
	ChainID   string  `json:"chainId"`
	PriceUSD  string  `json:"priceUsd"`
	FDV       float64 `json:"fdv"`
	MarketCap float64 `json:"marketCap"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
}

type screenerPairsResponse struct {
	Pairs []screenerPair `json:"pairs"`
}

func (d *DexScreener) FetchMarketCap(ctx context.Context, token types.Token, days types.DayRange) (*types.MarketCapSeries, error) {
	lgr := d.logger.With(zap.String("symbol", token.Symbol))
	if token.Address == "" {
		return nil, types.ErrNoData
	}

	pairs, err := d.pairs(ctx, token.Address)
	if err != nil {
		lgr.Warn("cannot fetch pairs", zap.Error(err))
		return nil, types.ErrNoData
	}
	if len(pairs) == 0 {
		return nil, types.ErrNoData
	}

	pair := bestPair(pairs, token.ChainID)
	valuation := pair.MarketCap
	if valuation <= 0 {
		valuation = pair.FDV
	}
	if valuation <= 0 {
		return nil, types.ErrNoData
	}

	now := utils.NowMillis()
	return &types.MarketCapSeries{
		Token:            token,
		Points:           []types.MarketCapPoint{{Timestamp: now, Value: math.Round(valuation)}},
		CurrentMarketCap: valuation,
		CurrentPrice:     utils.StrToFloat64(pair.PriceUSD),
		Source:           types.SourceDexScreener,
		LastUpdated:      now,
	}, nil
}

func (d *DexScreener) pairs(ctx context.Context, address string) ([]screenerPair, error) {
	key := cache.Key(types.SourceDexScreener, "pairs", address)
	var pairs []screenerPair
	if d.cache.Get(ctx, key, &pairs) {
		return pairs, nil
	}

	url := fmt.Sprintf("%s/latest/dex/tokens/%s", d.baseURL, address)
	var response screenerPairsResponse
	if err := fetchJSON(ctx, d.client, url, &response); err != nil {
		return nil, err
	}
	d.cache.Set(ctx, key, response.Pairs)
	return response.Pairs, nil
}

// bestPair picks the most liquid pair on the requested chain, or the first
// pair overall when no pair matches the chain filter.
func bestPair(pairs []screenerPair, chainID string) screenerPair {
	best := -1
	bestLiquidity := -1.0
	for i, p := range pairs {
		if p.ChainID != chainID {
			continue
		}
		if p.Liquidity.USD > bestLiquidity {
			best = i
			bestLiquidity = p.Liquidity.USD
		}
	}
	if best < 0 {
		return pairs[0]
	}
	return pairs[best]
}
