// Package api
package api

import (
	"errors"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/tokenfolio/marketcap-backend/types"
)

func (s *restServer) dayRange(c echo.Context) (types.DayRange, error) {
	daysStr := c.QueryParam("days")
	if daysStr == "" {
		daysStr = s.cfg.DefaultDayRange
	}
	return types.ParseDayRange(daysStr)
}

func (s *restServer) MarketCap(c echo.Context) error {
	ctx := c.Request().Context()
	days, err := s.dayRange(c)
	if err != nil {
		return Invalid.Build(c)
	}
	token, err := s.svc.TokenByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, types.ErrTokenNotFound) {
			return NotFound.Build(c)
		}
		s.logger.Warn("cannot load token", zap.Error(err))
		return InternalServer.Build(c)
	}
	return OK.SetData(s.svc.FetchMarketCap(ctx, *token, days)).Build(c)
}

func (s *restServer) MarketCapAll(c echo.Context) error {
	ctx := c.Request().Context()
	days, err := s.dayRange(c)
	if err != nil {
		return Invalid.Build(c)
	}
	tokens, err := s.svc.EnabledTokens(ctx)
	if err != nil {
		s.logger.Warn("cannot load tokens", zap.Error(err))
		return InternalServer.Build(c)
	}

	lgr := s.logger.With(zap.String("method", "MarketCapAll"))
	results := s.svc.FetchAll(ctx, tokens, days, func(current, total int, symbol string) {
		lgr.Debug("fetch token", zap.Int("current", current), zap.Int("total", total), zap.String("symbol", symbol))
	})
	return OK.SetData(results).Build(c)
}

func (s *restServer) Refresh(c echo.Context) error {
	s.svc.ClearCaches(c.Request().Context())
	return OK.Build(c)
}
