// Package server
package server

import (
	"time"

	"go.uber.org/zap"

	"github.com/tokenfolio/marketcap-backend/cache"
	"github.com/tokenfolio/marketcap-backend/db"
	"github.com/tokenfolio/marketcap-backend/external"
)

type Config struct {
	StorageAdapter db.Adapter
	StorageURI     string
	StorageDB      string
	StorageMinConn int
	StorageMaxConn int
	StorageIsFlush bool

	CacheAdapter cache.Adapter
	CacheURL     string
	CacheDB      int
	CacheIsFlush bool
	CacheTTL     time.Duration

	GeckoTerminalURL string
	DexPaprikaURL    string
	DexScreenerURL   string

	RefreshInterval time.Duration

	Logger *zap.Logger
}

// Server ties the provider fallback chain, the merged-result cache and the
// token preference store together. It is the whole inbound surface the API
// layer talks to.
type Server struct {
	logger *zap.Logger

	dbClient    db.Client
	cacheClient cache.Client
	providers   []external.Provider

	cacheAdapter    cache.Adapter
	refreshInterval time.Duration
	startTime       time.Time
}

func New(cfg Config) (*Server, error) {
	cfg.Logger.Info("Create new server instance")
	dbConfig := db.Config{
		DbAdapter: cfg.StorageAdapter,
		DbName:    cfg.StorageDB,
		URL:       cfg.StorageURI,
		MinConn:   cfg.StorageMinConn,
		MaxConn:   cfg.StorageMaxConn,
		FlushDB:   cfg.StorageIsFlush,
		Logger:    cfg.Logger,
	}
	dbClient, err := db.NewClient(dbConfig)
	if err != nil {
		return nil, err
	}

	cacheClient, err := cache.New(cache.Config{
		Adapter: cfg.CacheAdapter,
		URL:     cfg.CacheURL,
		DB:      cfg.CacheDB,
		IsFlush: cfg.CacheIsFlush,
		TTL:     cfg.CacheTTL,
		Logger:  cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	// fixed priority order: longest history first, rate-limit-free second,
	// snapshot-only last
	providers := []external.Provider{
		external.NewGeckoTerminal(external.GeckoTerminalConfig{
			BaseURL: cfg.GeckoTerminalURL,
			TTL:     cfg.CacheTTL,
			Logger:  cfg.Logger,
		}),
		external.NewDexPaprika(external.DexPaprikaConfig{
			BaseURL: cfg.DexPaprikaURL,
			TTL:     cfg.CacheTTL,
			Logger:  cfg.Logger,
		}),
		external.NewDexScreener(external.DexScreenerConfig{
			BaseURL: cfg.DexScreenerURL,
			TTL:     cfg.CacheTTL,
			Logger:  cfg.Logger,
		}),
	}

	srv := &Server{
		logger:          cfg.Logger,
		dbClient:        dbClient,
		cacheClient:     cacheClient,
		providers:       providers,
		cacheAdapter:    cfg.CacheAdapter,
		refreshInterval: cfg.RefreshInterval,
		startTime:       time.Now(),
	}
	if err := srv.seedDefaultTokens(); err != nil {
		return nil, err
	}
	return srv, nil
}
