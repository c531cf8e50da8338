// Package db
package db

import (
	"context"
	"sort"
	"sync"

	"github.com/tokenfolio/marketcap-backend/types"
)

// InMemory keeps token records in process memory. Meant for local runs and
// tests where no mongo instance is available; records do not survive restart.
const InMemory Adapter = "memory"

type memoryDB struct {
	mu     sync.RWMutex
	tokens map[string]types.Token
}

func newMemoryDB() *memoryDB {
	return &memoryDB{tokens: make(map[string]types.Token)}
}

func (m *memoryDB) ping() error {
	return nil
}

func (m *memoryDB) dropDatabase(ctx context.Context) error {
	m.mu.Lock()
	m.tokens = make(map[string]types.Token)
	m.mu.Unlock()
	return nil
}

func (m *memoryDB) Tokens(ctx context.Context) ([]types.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tokens := make([]types.Token, 0, len(m.tokens))
	for _, t := range m.tokens {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Symbol < tokens[j].Symbol })
	return tokens, nil
}

func (m *memoryDB) TokenByID(ctx context.Context, id string) (*types.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	token, ok := m.tokens[id]
	if !ok {
		return nil, types.ErrTokenNotFound
	}
	return &token, nil
}

func (m *memoryDB) UpsertToken(ctx context.Context, token types.Token) error {
	m.mu.Lock()
	m.tokens[token.ID] = token
	m.mu.Unlock()
	return nil
}

func (m *memoryDB) RemoveToken(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[id]; !ok {
		return types.ErrTokenNotFound
	}
	delete(m.tokens, id)
	return nil
}

func (m *memoryDB) UpdateTokenEnabled(ctx context.Context, id string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[id]
	if !ok {
		return types.ErrTokenNotFound
	}
	token.Enabled = enabled
	m.tokens[id] = token
	return nil
}
