// Package server
package server

import (
	"context"

	"go.uber.org/zap"

	"github.com/tokenfolio/marketcap-backend/types"
)

// defaultTokens seed the store on first boot. Not removable through the API.
var defaultTokens = []types.Token{
	{ID: "weth", Symbol: "WETH", Name: "Wrapped Ether", Color: "#627eea", ChainID: "ethereum", Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Enabled: true},
	{ID: "uni", Symbol: "UNI", Name: "Uniswap", Color: "#ff007a", ChainID: "ethereum", Address: "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", Enabled: true},
	{ID: "link", Symbol: "LINK", Name: "Chainlink", Color: "#2a5ada", ChainID: "ethereum", Address: "0x514910771AF9Ca656af840dff83E8264EcF986CA", Enabled: true},
	{ID: "aero", Symbol: "AERO", Name: "Aerodrome", Color: "#0052ff", ChainID: "base", Address: "0x940181a94A35A4569E4529A3CDfB74e38FD98631", Enabled: true},
	{ID: "bonk", Symbol: "BONK", Name: "Bonk", Color: "#f7931a", ChainID: "solana", Address: "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", Enabled: true},
}

func (s *Server) seedDefaultTokens() error {
	ctx := context.Background()
	tokens, err := s.dbClient.Tokens(ctx)
	if err != nil {
		return err
	}
	if len(tokens) > 0 {
		return nil
	}
	s.logger.Info("Seed default token list", zap.Int("total", len(defaultTokens)))
	for _, token := range defaultTokens {
		if err := s.dbClient.UpsertToken(ctx, token); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) Tokens(ctx context.Context) ([]types.Token, error) {
	return s.dbClient.Tokens(ctx)
}

func (s *Server) TokenByID(ctx context.Context, id string) (*types.Token, error) {
	return s.dbClient.TokenByID(ctx, id)
}

// AddToken stores a user-added token. Identity fields are required; the
// record is always flagged custom regardless of what the caller sent.
func (s *Server) AddToken(ctx context.Context, token types.Token) error {
	if token.ID == "" || token.Symbol == "" || token.ChainID == "" || token.Address == "" {
		return types.ErrInvalidToken
	}
	if existing, err := s.dbClient.TokenByID(ctx, token.ID); err == nil && existing != nil {
		return types.ErrTokenExist
	}
	token.IsCustom = true
	token.Enabled = true
	s.logger.Info("Add custom token", zap.String("id", token.ID), zap.String("symbol", token.Symbol))
	return s.dbClient.UpsertToken(ctx, token)
}

// RemoveToken deletes a custom token. Default tokens stay.
func (s *Server) RemoveToken(ctx context.Context, id string) error {
	token, err := s.dbClient.TokenByID(ctx, id)
	if err != nil {
		return err
	}
	if !token.IsCustom {
		return types.ErrInvalidToken
	}
	return s.dbClient.RemoveToken(ctx, id)
}

func (s *Server) SetTokenEnabled(ctx context.Context, id string, enabled bool) error {
	return s.dbClient.UpdateTokenEnabled(ctx, id, enabled)
}

// EnabledTokens filters the stored list down to what batch fetches cover.
func (s *Server) EnabledTokens(ctx context.Context) ([]types.Token, error) {
	tokens, err := s.dbClient.Tokens(ctx)
	if err != nil {
		return nil, err
	}
	enabled := make([]types.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Enabled {
			enabled = append(enabled, t)
		}
	}
	return enabled, nil
}
