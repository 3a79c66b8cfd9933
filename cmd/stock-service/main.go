// Package main boots the stock service HTTP server.
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
)

func main() {
	cfg := config.Load()
	obs.InitLogger(cfg.Log)
	obs.Logger.Infow("service_starting", "service", "stock")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpapi.NewServer(cfg.StockHTTPAddr, httpapi.NewStockRouter(httpapi.NewStockApp(cfg)))

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
		ctxSrv, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctxSrv)
	})

	if err := g.Wait(); err != nil {
		obs.Logger.Errorw("service_failed", "error", err)
		obs.Sync()
		stop()
		os.Exit(1)
	}
	obs.Logger.Infow("service_stopped")
	obs.Sync()
}
