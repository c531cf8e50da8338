// Package server
package server

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tokenfolio/marketcap-backend/cache"
	"github.com/tokenfolio/marketcap-backend/types"
	"github.com/tokenfolio/marketcap-backend/utils"
)

// ProgressFunc is invoked before each token of a batch fetch.
type ProgressFunc func(current, total int, symbol string)

// FetchMarketCap walks the provider chain in priority order and returns the
// first non-empty series whole; partial results are never merged. It never
// fails: when every provider comes back empty the returned record carries
// Source "none" and the error marker.
func (s *Server) FetchMarketCap(ctx context.Context, token types.Token, days types.DayRange) *types.MarketCapSeries {
	lgr := s.logger.With(zap.String("method", "FetchMarketCap"), zap.String("symbol", token.Symbol))

	key := cache.Key("marketcap", token.ID, string(days))
	var cached types.MarketCapSeries
	if s.cacheClient.Get(ctx, key, &cached) {
		return &cached
	}

	for _, provider := range s.providers {
		series, err := provider.FetchMarketCap(ctx, token, days)
		if err != nil {
			if !errors.Is(err, types.ErrNoData) {
				lgr.Warn("provider failed", zap.String("provider", provider.Name()), zap.Error(err))
			}
			continue
		}
		if series == nil || len(series.Points) == 0 {
			continue
		}
		s.cacheClient.Set(ctx, key, series)
		return series
	}

	lgr.Warn("no provider satisfied request", zap.String("days", string(days)))
	return &types.MarketCapSeries{
		Token:       token,
		Points:      []types.MarketCapPoint{},
		Source:      types.SourceNone,
		LastUpdated: utils.NowMillis(),
		Error:       true,
	}
}

// FetchAll fetches one series per token, sequentially and in input order.
// Sequential on purpose: one upstream enforces a request-rate ceiling, and it
// keeps onProgress deterministic. A token that exhausts every provider still
// occupies its slot with an error marker, so output stays index-aligned.
func (s *Server) FetchAll(ctx context.Context, tokens []types.Token, days types.DayRange, onProgress ProgressFunc) []*types.MarketCapSeries {
	results := make([]*types.MarketCapSeries, 0, len(tokens))
	for i, token := range tokens {
		if onProgress != nil {
			onProgress(i+1, len(tokens), token.Symbol)
		}
		results = append(results, s.FetchMarketCap(ctx, token, days))
	}
	return results
}

// ClearCaches drops the merged-result cache and every provider's own cache.
// Idempotent; exposed for user-initiated refresh.
func (s *Server) ClearCaches(ctx context.Context) {
	s.cacheClient.Clear(ctx)
	for _, provider := range s.providers {
		provider.ClearCache(ctx)
	}
	s.logger.Info("caches cleared")
}

// Status reports process health for the status endpoint.
func (s *Server) Status(ctx context.Context) *types.ServerStatus {
	names := make([]string, 0, len(s.providers))
	for _, provider := range s.providers {
		names = append(names, provider.Name())
	}
	total := 0
	if tokens, err := s.dbClient.Tokens(ctx); err == nil {
		total = len(tokens)
	}
	return &types.ServerStatus{
		Status:       "online",
		AppVersion:   "1.0.0",
		UptimeSec:    int64(utils.NowMillis()/1000) - s.startTime.Unix(),
		CacheAdapter: string(s.cacheAdapter),
		Providers:    names,
		TotalTokens:  total,
	}
}
