// Package api
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"go.uber.org/zap"

	"github.com/tokenfolio/marketcap-backend/cfg"
	"github.com/tokenfolio/marketcap-backend/server"
	"github.com/tokenfolio/marketcap-backend/types"
)

// Service is the slice of the server the REST surface needs.
type Service interface {
	Tokens(ctx context.Context) ([]types.Token, error)
	TokenByID(ctx context.Context, id string) (*types.Token, error)
	AddToken(ctx context.Context, token types.Token) error
	RemoveToken(ctx context.Context, id string) error
	SetTokenEnabled(ctx context.Context, id string, enabled bool) error
	EnabledTokens(ctx context.Context) ([]types.Token, error)

	FetchMarketCap(ctx context.Context, token types.Token, days types.DayRange) *types.MarketCapSeries
	FetchAll(ctx context.Context, tokens []types.Token, days types.DayRange, onProgress server.ProgressFunc) []*types.MarketCapSeries
	ClearCaches(ctx context.Context)
	Status(ctx context.Context) *types.ServerStatus
}

type restServer struct {
	svc    Service
	cfg    cfg.FeedConfig
	logger *zap.Logger
}

func (s *restServer) Register(gr *echo.Group) {
	gr.GET("/ping", s.Ping)
	gr.GET("/status", s.ServerStatus)

	gr.GET("/tokens", s.Tokens)
	gr.POST("/tokens", s.AddToken)
	gr.DELETE("/tokens/:id", s.RemoveToken)
	gr.PUT("/tokens/:id/enabled", s.SetTokenEnabled)

	gr.GET("/marketcap", s.MarketCapAll)
	gr.GET("/marketcap/:id", s.MarketCap)

	gr.POST("/refresh", s.Refresh)
}

func Start(e *echo.Echo, svc Service, serviceCfg cfg.FeedConfig, logger *zap.Logger) {
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Gzip())

	srv := &restServer{
		svc:    svc,
		cfg:    serviceCfg,
		logger: logger.With(zap.String("server", "api")),
	}
	v1Gr := e.Group("/api/v1")
	srv.Register(v1Gr)

	// Shutdown surfaces as ErrServerClosed here; that is a clean stop
	if err := e.Start(serviceCfg.Port); err != nil && err != http.ErrServerClosed {
		panic("cannot start echo server")
	}
}
