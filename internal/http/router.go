package httpapi

import (
	"expvar"
	"net/http"

	"github.com/fairyhunter13/product-stock-services/internal/http/openapi"
)

// NewRouter registers the product service routes and returns the handler
// with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/product", app.listProductsHandler)
	mux.HandleFunc("POST /api/product", app.saveProductHandler)
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("GET /debug/metrics", app.metricsHandler)
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("GET /openapi.yaml", openapiHandler(openapi.ProductYAML))
	mux.HandleFunc("GET /docs", docsHandler("Product Service"))
	return WithRequestID(WithLogging(mux))
}

// NewStockRouter registers the stock service routes.
func NewStockRouter(app *StockApp) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/stock", app.receiveProductHandler)
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("GET /debug/metrics", app.metricsHandler)
	mux.HandleFunc("GET /openapi.yaml", openapiHandler(openapi.StockYAML))
	mux.HandleFunc("GET /docs", docsHandler("Stock Service"))
	return WithRequestID(WithLogging(mux))
}
