package httpapi

import (
	"bytes"
	"encoding/json"
	"expvar"
	"io"
	"net/http"
	"time"

	"github.com/fairyhunter13/product-stock-services/internal/config"
	"github.com/fairyhunter13/product-stock-services/internal/model"
	"github.com/fairyhunter13/product-stock-services/internal/obs"
)

const (
	msgProductRequired  = "Product must not be null"
	msgMalformedProduct = "Malformed product payload"
	noName              = "<no-name>"
)

var (
	productsReceived = expvar.NewInt("products_received")
	productsRejected = expvar.NewInt("products_rejected")
)

// StockApp serves the stock API. It keeps no state beyond counters.
type StockApp struct {
	Cfg     config.Config
	started time.Time
}

func NewStockApp(cfg config.Config) *StockApp {
	return &StockApp{Cfg: cfg, started: time.Now()}
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}

func (a *StockApp) receiveProductHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		productsRejected.Add(1)
		writeText(w, http.StatusBadRequest, msgMalformedProduct)
		return
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		productsRejected.Add(1)
		writeText(w, http.StatusBadRequest, msgProductRequired)
		return
	}
	var p model.ProductDTO
	if err := json.Unmarshal(body, &p); err != nil {
		productsRejected.Add(1)
		writeText(w, http.StatusBadRequest, msgMalformedProduct)
		return
	}

	name := noName
	if p.Name != nil {
		name = *p.Name
	}
	productsReceived.Add(1)
	fields := []any{"request_id", RequestIDFromContext(r.Context()), "name", name}
	if p.ID != nil {
		fields = append(fields, "product_id", *p.ID)
	}
	obs.Logger.Infow("received_product", fields...)
	writeText(w, http.StatusOK, "Received product: "+name)
}

func (a *StockApp) metricsHandler(w http.ResponseWriter, r *http.Request) {
	m := map[string]any{
		"products_received": productsReceived.Value(),
		"products_rejected": productsRejected.Value(),
		"uptime_sec":        time.Since(a.started).Seconds(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m)
}
