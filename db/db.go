// Package db
package db

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tokenfolio/marketcap-backend/types"
)

type Adapter string

const (
	MGO Adapter = "mgo"
)

type Config struct {
	DbAdapter Adapter
	DbName    string
	URL       string
	MinConn   int
	MaxConn   int
	FlushDB   bool

	Logger *zap.Logger
}

// Client persists token preference records. The feed core itself never
// touches storage; it only receives Token values resolved through here.
type Client interface {
	ping() error
	dropDatabase(ctx context.Context) error

	Tokens(ctx context.Context) ([]types.Token, error)
	TokenByID(ctx context.Context, id string) (*types.Token, error)
	UpsertToken(ctx context.Context, token types.Token) error
	RemoveToken(ctx context.Context, id string) error
	UpdateTokenEnabled(ctx context.Context, id string, enabled bool) error
}

func NewClient(cfg Config) (Client, error) {
	switch cfg.DbAdapter {
	case MGO:
		return newMongoDB(cfg)
	case InMemory:
		return newMemoryDB(), nil
	default:
		return nil, errors.New("invalid db config")
	}
}
