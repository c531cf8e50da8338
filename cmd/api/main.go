package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/labstack/echo"

	"github.com/tokenfolio/marketcap-backend/api"
	"github.com/tokenfolio/marketcap-backend/cache"
	"github.com/tokenfolio/marketcap-backend/cfg"
	"github.com/tokenfolio/marketcap-backend/db"
	"github.com/tokenfolio/marketcap-backend/server"
	"github.com/tokenfolio/marketcap-backend/types"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	serviceCfg, err := cfg.New()
	if err != nil {
		panic(err.Error())
	}

	logger, err := newLogger(serviceCfg)
	if err != nil {
		panic("cannot init logger")
	}
	logger.Info("Start market-cap feed server...")

	defer func() {
		if err := logger.Sync(); err != nil {
			logger.Error("cannot sync log")
		}
	}()

	if err := setupSentry(serviceCfg); err != nil {
		panic(err)
	}
	defer sentry.Flush(2 * time.Second)

	srvConfig := server.Config{
		StorageAdapter: db.Adapter(serviceCfg.StorageDriver),
		StorageURI:     serviceCfg.StorageURI,
		StorageDB:      serviceCfg.StorageDB,
		StorageMinConn: serviceCfg.StorageMinConn,
		StorageMaxConn: serviceCfg.StorageMaxConn,
		StorageIsFlush: serviceCfg.StorageIsFlush,

		CacheAdapter: cache.Adapter(serviceCfg.CacheEngine),
		CacheURL:     serviceCfg.CacheURL,
		CacheDB:      serviceCfg.CacheDB,
		CacheIsFlush: serviceCfg.CacheIsFlush,
		CacheTTL:     serviceCfg.CacheExpiredTime,

		GeckoTerminalURL: serviceCfg.GeckoTerminalURL,
		DexPaprikaURL:    serviceCfg.DexPaprikaURL,
		DexScreenerURL:   serviceCfg.DexScreenerURL,

		RefreshInterval: serviceCfg.RefreshInterval,

		Logger: logger,
	}
	srv, err := server.New(srvConfig)
	if err != nil {
		log.Panicf("cannot create server instance %s", err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	defaultDays, err := types.ParseDayRange(serviceCfg.DefaultDayRange)
	if err != nil {
		defaultDays = types.DayRange7
	}
	go srv.RunRefresher(ctx, defaultDays)

	e := echo.New()
	go func() {
		api.Start(e, srv, serviceCfg, logger)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	cancel()
	if err := e.Shutdown(context.Background()); err != nil {
		logger.Error("cannot shutdown server")
	}
}

func setupSentry(serviceCfg cfg.FeedConfig) error {
	if serviceCfg.SentryDSN == "" {
		return nil
	}
	opts := sentry.ClientOptions{
		Dsn:         serviceCfg.SentryDSN,
		Environment: serviceCfg.ServerMode,
	}
	return sentry.Init(opts)
}
