// Package main boots the product service HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/fairyhunter13/product-stock-services/internal/config"
	httpapi "github.com/fairyhunter13/product-stock-services/internal/http"
	"github.com/fairyhunter13/product-stock-services/internal/obs"
	"github.com/fairyhunter13/product-stock-services/internal/product"
	"github.com/fairyhunter13/product-stock-services/internal/stockclient"
	"github.com/fairyhunter13/product-stock-services/internal/store"
)

func main() {
	cfg := config.Load()
	obs.InitLogger(cfg.Log)
	if err := run(cfg); err != nil {
		obs.Logger.Errorw("service_failed", "error", err)
		obs.Sync()
		os.Exit(1)
	}
	obs.Sync()
}

func run(cfg config.Config) error {
	obs.Logger.Infow("service_starting",
		"service", "product",
		"store_driver", cfg.StoreDriver,
		"stock_service_url", cfg.StockServiceURL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}

	svc := product.NewService(st, stockclient.New(cfg.StockServiceURL, cfg.StockClientTimeout))
	app := httpapi.NewApp(cfg, svc)
	srv := httpapi.NewServer(cfg.ProductHTTPAddr, httpapi.NewRouter(app))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		obs.Logger.Infow("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		obs.Logger.Infow("shutdown_begin")
		app.StartShutdown()
		ctxSrv, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctxSrv); err != nil {
			obs.Logger.Errorw("http_shutdown_error", "error", err)
			return err
		}
		return nil
	})

	err = g.Wait()
	if closeErr := st.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	obs.Logger.Infow("service_stopped")
	return err
}
