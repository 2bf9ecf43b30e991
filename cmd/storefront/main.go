package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/timbee-hwanjang86/timbee/internal/admin"
	"github.com/timbee-hwanjang86/timbee/internal/catalog"
	"github.com/timbee-hwanjang86/timbee/internal/config"
	"github.com/timbee-hwanjang86/timbee/internal/siteconfig"
	"github.com/timbee-hwanjang86/timbee/internal/storefront"
	"github.com/timbee-hwanjang86/timbee/internal/view"
	"github.com/timbee-hwanjang86/timbee/pkg/kit"
)

const startupTimeout = 10 * time.Second

func main() {
	service := "storefront"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	store, closeStore, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal("open store", zap.Error(err), zap.String("backend", cfg.StoreBackend))
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()
	log.Info("store opened", zap.String("backend", cfg.StoreBackend))

	gate, err := admin.NewGate(cfg.AdminCode)
	if err != nil {
		log.Fatal("admin gate", zap.Error(err))
	}

	app := &storefront.App{
		Store:   store,
		Catalog: catalog.NewService(store, log),
		Config:  siteconfig.NewService(store, log),
		Gate:    gate,
		Views:   view.NewCodec(cfg.ViewSecret, cfg.CookieSecure).BindUnlock(cfg.AdminCode),
		Log:     log,
	}

	ctx, cancel = context.WithTimeout(context.Background(), startupTimeout)
	err = app.Load(ctx)
	cancel()
	if err != nil {
		log.Fatal("load storefront state", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := storefront.NewHandler(app, storefront.HTTPDeps{
		Log:                 log,
		Service:             service,
		Registry:            reg,
		MetricsEnabled:      cfg.MetricsEnabled,
		MetricsToken:        cfg.MetricsToken,
		RedirectLimitPerMin: cfg.RedirectLimitPerMin,
	})

	ctx, stop := kit.SignalContext()
	defer stop()

	if err := kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
