// Package api
package api

import (
	"errors"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/tokenfolio/marketcap-backend/types"
)

func (s *restServer) Tokens(c echo.Context) error {
	ctx := c.Request().Context()
	tokens, err := s.svc.Tokens(ctx)
	if err != nil {
		s.logger.Warn("cannot load tokens", zap.Error(err))
		return InternalServer.Build(c)
	}
	return OK.SetData(tokens).Build(c)
}

func (s *restServer) AddToken(c echo.Context) error {
	ctx := c.Request().Context()
	var token types.Token
	if err := c.Bind(&token); err != nil {
		return Invalid.Build(c)
	}
	if err := s.svc.AddToken(ctx, token); err != nil {
		if errors.Is(err, types.ErrInvalidToken) || errors.Is(err, types.ErrTokenExist) {
			return Invalid.Build(c)
		}
		s.logger.Warn("cannot add token", zap.Error(err))
		return InternalServer.Build(c)
	}
	return OK.SetData(token.ID).Build(c)
}

func (s *restServer) RemoveToken(c echo.Context) error {
	ctx := c.Request().Context()
	err := s.svc.RemoveToken(ctx, c.Param("id"))
	switch {
	case err == nil:
		return OK.Build(c)
	case errors.Is(err, types.ErrTokenNotFound):
		return NotFound.Build(c)
	case errors.Is(err, types.ErrInvalidToken):
		return Invalid.Build(c)
	default:
		s.logger.Warn("cannot remove token", zap.Error(err))
		return InternalServer.Build(c)
	}
}

type enabledRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *restServer) SetTokenEnabled(c echo.Context) error {
	ctx := c.Request().Context()
	var req enabledRequest
	if err := c.Bind(&req); err != nil {
		return Invalid.Build(c)
	}
	if err := s.svc.SetTokenEnabled(ctx, c.Param("id"), req.Enabled); err != nil {
		if errors.Is(err, types.ErrTokenNotFound) {
			return NotFound.Build(c)
		}
		s.logger.Warn("cannot update token", zap.Error(err))
		return InternalServer.Build(c)
	}
	return OK.Build(c)
}
