// Package server
package server

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tokenfolio/marketcap-backend/types"
)

// RunRefresher keeps caches warm by re-fetching every enabled token's series
// on an interval. Fetches stay sequential for the same rate-limit reasons as
// FetchAll. No-op when the interval is zero; returns when ctx is done.
func (s *Server) RunRefresher(ctx context.Context, days types.DayRange) {
	if s.refreshInterval <= 0 {
		return
	}
	lgr := s.logger.With(zap.String("method", "RunRefresher"))
	lgr.Info("Start refresher", zap.Duration("interval", s.refreshInterval))

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			lgr.Info("Stop refresher")
			return
		case <-ticker.C:
			tokens, err := s.EnabledTokens(ctx)
			if err != nil {
				lgr.Warn("cannot load tokens", zap.Error(err))
				continue
			}
			results := s.FetchAll(ctx, tokens, days, func(current, total int, symbol string) {
				lgr.Debug("refresh token", zap.Int("current", current), zap.Int("total", total), zap.String("symbol", symbol))
			})
			failed := 0
			for _, r := range results {
				if r.Error {
					failed++
				}
			}
			lgr.Info("Refresh round done", zap.Int("total", len(results)), zap.Int("failed", failed))
		}
	}
}
