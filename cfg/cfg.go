// Package cfg
package cfg

import (
	"os"
	"strconv"
	"time"
)

const (
	ModeDev        = "dev"
	ModeProduction = "prod"
)

type FeedConfig struct {
	ServerMode string
	Port       string
	LogLevel   string
	SentryDSN  string

	CacheEngine      string
	CacheURL         string
	CacheDB          int
	CacheIsFlush     bool
	CacheExpiredTime time.Duration

	StorageDriver  string
	StorageURI     string
	StorageDB      string
	StorageMinConn int
	StorageMaxConn int
	StorageIsFlush bool

	GeckoTerminalURL string
	DexPaprikaURL    string
	DexScreenerURL   string

	RefreshInterval time.Duration
	DefaultDayRange string
}

func New() (FeedConfig, error) {
	cacheExpiredTimeStr := os.Getenv("CACHE_EXPIRED_TIME")
	cacheExpiredTime, err := strconv.Atoi(cacheExpiredTimeStr)
	if err != nil {
		cacheExpiredTime = 5
	}

	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		cacheDB = 0
	}

	cacheIsFlushStr := os.Getenv("CACHE_IS_FLUSH")
	cacheIsFlush, err := strconv.ParseBool(cacheIsFlushStr)
	if err != nil {
		cacheIsFlush = false
	}

	storageMinConnStr := os.Getenv("STORAGE_MIN_CONN")
	storageMinConn, err := strconv.Atoi(storageMinConnStr)
	if err != nil {
		storageMinConn = 1
	}

	storageMaxConnStr := os.Getenv("STORAGE_MAX_CONN")
	storageMaxConn, err := strconv.Atoi(storageMaxConnStr)
	if err != nil {
		storageMaxConn = 4
	}

	storageIsFlushStr := os.Getenv("STORAGE_IS_FLUSH")
	storageIsFlush, err := strconv.ParseBool(storageIsFlushStr)
	if err != nil {
		storageIsFlush = false
	}

	refreshIntervalStr := os.Getenv("REFRESH_INTERVAL")
	refreshInterval, err := strconv.Atoi(refreshIntervalStr)
	if err != nil {
		refreshInterval = 0
	}

	cfg := FeedConfig{
		ServerMode: defaultString("SERVER_MODE", ModeDev),
		Port:       defaultString("PORT", ":3000"),
		LogLevel:   defaultString("LOG_LEVEL", "info"),
		SentryDSN:  os.Getenv("SENTRY_DSN"),

		CacheEngine:      defaultString("CACHE_ENGINE", "memory"),
		CacheURL:         defaultString("CACHE_URL", "localhost:6379"),
		CacheDB:          cacheDB,
		CacheIsFlush:     cacheIsFlush,
		CacheExpiredTime: time.Duration(cacheExpiredTime) * time.Minute,

		StorageDriver:  defaultString("STORAGE_DRIVER", "mgo"),
		StorageURI:     defaultString("STORAGE_URI", "mongodb://localhost:27017"),
		StorageDB:      defaultString("STORAGE_DB", "marketcap"),
		StorageMinConn: storageMinConn,
		StorageMaxConn: storageMaxConn,
		StorageIsFlush: storageIsFlush,

		GeckoTerminalURL: defaultString("GECKO_TERMINAL_URL", "https://api.geckoterminal.com/api/v2"),
		DexPaprikaURL:    defaultString("DEX_PAPRIKA_URL", "https://api.dexpaprika.com"),
		DexScreenerURL:   defaultString("DEX_SCREENER_URL", "https://api.dexscreener.com"),

		RefreshInterval: time.Duration(refreshInterval) * time.Minute,
		DefaultDayRange: defaultString("DEFAULT_DAY_RANGE", "7"),
	}
	return cfg, nil
}

func defaultString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
