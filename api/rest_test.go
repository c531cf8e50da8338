// Package api
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tokenfolio/marketcap-backend/cfg"
	"github.com/tokenfolio/marketcap-backend/server"
	"github.com/tokenfolio/marketcap-backend/types"
)

type stubService struct {
	tokens  []types.Token
	cleared int
}

func (s *stubService) Tokens(ctx context.Context) ([]types.Token, error) { return s.tokens, nil }

func (s *stubService) TokenByID(ctx context.Context, id string) (*types.Token, error) {
	for _, t := range s.tokens {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, types.ErrTokenNotFound
}

func (s *stubService) AddToken(ctx context.Context, token types.Token) error {
	if token.ID == "" || token.Symbol == "" || token.ChainID == "" || token.Address == "" {
		return types.ErrInvalidToken
	}
	s.tokens = append(s.tokens, token)
	return nil
}

func (s *stubService) RemoveToken(ctx context.Context, id string) error {
	_, err := s.TokenByID(ctx, id)
	return err
}

func (s *stubService) SetTokenEnabled(ctx context.Context, id string, enabled bool) error {
	_, err := s.TokenByID(ctx, id)
	return err
}

func (s *stubService) EnabledTokens(ctx context.Context) ([]types.Token, error) {
	return s.tokens, nil
}

func (s *stubService) FetchMarketCap(ctx context.Context, token types.Token, days types.DayRange) *types.MarketCapSeries {
	return &types.MarketCapSeries{Token: token, Source: "stub", Points: []types.MarketCapPoint{{Timestamp: 1, Value: 2}}}
}

func (s *stubService) FetchAll(ctx context.Context, tokens []types.Token, days types.DayRange, onProgress server.ProgressFunc) []*types.MarketCapSeries {
	results := make([]*types.MarketCapSeries, 0, len(tokens))
	for i, t := range tokens {
		if onProgress != nil {
			onProgress(i+1, len(tokens), t.Symbol)
		}
		results = append(results, s.FetchMarketCap(ctx, t, days))
	}
	return results
}

func (s *stubService) ClearCaches(ctx context.Context) { s.cleared++ }

func (s *stubService) Status(ctx context.Context) *types.ServerStatus {
	return &types.ServerStatus{Status: "online"}
}

func newTestRest(svc Service) *restServer {
	return &restServer{
		svc:    svc,
		cfg:    cfg.FeedConfig{DefaultDayRange: "7"},
		logger: zap.NewNop(),
	}
}

func doRequest(t *testing.T, srv *restServer, method, target, body string, handler echo.HandlerFunc, params ...string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	require.Nil(t, handler(c))
	return rec
}

func TestTokensHandler(t *testing.T) {
	srv := newTestRest(&stubService{tokens: []types.Token{{ID: "a", Symbol: "AAA"}}})
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/tokens", "", srv.Tokens)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AAA")
}

func TestMarketCapHandler(t *testing.T) {
	srv := newTestRest(&stubService{tokens: []types.Token{{ID: "a", Symbol: "AAA"}}})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/marketcap/a?days=30", "", srv.MarketCap, "id", "a")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"source":"stub"`)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/marketcap/zzz", "", srv.MarketCap, "id", "zzz")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/marketcap/a?days=13", "", srv.MarketCap, "id", "a")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarketCapAllHandler(t *testing.T) {
	srv := newTestRest(&stubService{tokens: []types.Token{{ID: "a", Symbol: "AAA"}, {ID: "b", Symbol: "BBB"}}})
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/marketcap?days=1", "", srv.MarketCapAll)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AAA")
	assert.Contains(t, rec.Body.String(), "BBB")
}

func TestAddTokenHandler(t *testing.T) {
	srv := newTestRest(&stubService{})

	body := `{"id":"pepe","symbol":"PEPE","chainId":"ethereum","address":"0x6982508145454Ce325dDbE47a25d4ec3d2311933"}`
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/tokens", body, srv.AddToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/tokens", `{"id":"x"}`, srv.AddToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStart_CleanShutdown(t *testing.T) {
	e := echo.New()
	done := make(chan struct{})
	go func() {
		defer close(done)
		Start(e, &stubService{}, cfg.FeedConfig{Port: "127.0.0.1:0", DefaultDayRange: "7"}, zap.NewNop())
	}()

	time.Sleep(100 * time.Millisecond)
	require.Nil(t, e.Shutdown(context.Background()))
	select {
	case <-done:
		// Start returned without panicking
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}

func TestRefreshHandler(t *testing.T) {
	svc := &stubService{}
	srv := newTestRest(svc)
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/refresh", "", srv.Refresh)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.cleared)
}
