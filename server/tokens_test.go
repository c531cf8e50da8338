// Package server
package server

import (
	"context"
	"testing"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenfolio/marketcap-backend/types"
)

func customToken() types.Token {
	return types.Token{
		ID:      faker.UUIDDigit(),
		Symbol:  faker.Word(),
		Name:    faker.Name(),
		Color:   "#abcdef",
		ChainID: "base",
		Address: "0x" + faker.UUIDDigit(),
	}
}

func TestSeedDefaultTokens(t *testing.T) {
	s := newTestServer(t)
	require.Nil(t, s.seedDefaultTokens())

	tokens, err := s.Tokens(context.Background())
	require.Nil(t, err)
	assert.Len(t, tokens, len(defaultTokens))

	// seeding again must not duplicate
	require.Nil(t, s.seedDefaultTokens())
	tokens, err = s.Tokens(context.Background())
	require.Nil(t, err)
	assert.Len(t, tokens, len(defaultTokens))
}

func TestAddToken(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	token := customToken()
	require.Nil(t, s.AddToken(ctx, token))

	got, err := s.TokenByID(ctx, token.ID)
	require.Nil(t, err)
	assert.True(t, got.IsCustom, "added tokens are always flagged custom")
	assert.True(t, got.Enabled)

	assert.Equal(t, types.ErrTokenExist, s.AddToken(ctx, token))
	assert.Equal(t, types.ErrInvalidToken, s.AddToken(ctx, types.Token{ID: "x"}))
}

func TestRemoveToken(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	require.Nil(t, s.seedDefaultTokens())

	token := customToken()
	require.Nil(t, s.AddToken(ctx, token))
	require.Nil(t, s.RemoveToken(ctx, token.ID))
	assert.Equal(t, types.ErrTokenNotFound, s.RemoveToken(ctx, token.ID))

	// default tokens are not removable
	assert.Equal(t, types.ErrInvalidToken, s.RemoveToken(ctx, defaultTokens[0].ID))
}

func TestEnabledTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	require.Nil(t, s.seedDefaultTokens())

	require.Nil(t, s.SetTokenEnabled(ctx, defaultTokens[0].ID, false))
	enabled, err := s.EnabledTokens(ctx)
	require.Nil(t, err)
	assert.Len(t, enabled, len(defaultTokens)-1)
	for _, token := range enabled {
		assert.NotEqual(t, defaultTokens[0].ID, token.ID)
	}
}
