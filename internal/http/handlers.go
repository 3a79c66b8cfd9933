package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/product-stock-services/internal/config"
	"github.com/fairyhunter13/product-stock-services/internal/model"
	"github.com/fairyhunter13/product-stock-services/internal/obs"
)

// maxBodyBytes caps request bodies on both services.
const maxBodyBytes = 1 << 20

var (
	productsListed  = expvar.NewInt("products_listed")
	productsCreated = expvar.NewInt("products_created")
	saveFailures    = expvar.NewInt("save_failures")
)

// ProductService is the product workflow the API exposes.
type ProductService interface {
	FindAll(ctx context.Context) ([]model.ProductDTO, error)
	Save(ctx context.Context, dto model.ProductDTO) (model.ProductDTO, error)
}

// App serves the product API.
type App struct {
	Cfg      config.Config
	Products ProductService
	closing  atomic.Bool
	started  time.Time
}

func NewApp(cfg config.Config, products ProductService) *App {
	return &App{Cfg: cfg, Products: products, started: time.Now()}
}

// StartShutdown rejects new product writes.
func (a *App) StartShutdown() {
	a.closing.Store(true)
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	dtos, err := a.Products.FindAll(r.Context())
	if err != nil {
		obs.Logger.Errorw("product_list_failed",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if len(dtos) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	productsListed.Add(int64(len(dtos)))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dtos)
}

func (a *App) saveProductHandler(w http.ResponseWriter, r *http.Request) {
	if a.closing.Load() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return
	}
	dto, err := decodeProduct(w, r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	saved, err := a.Products.Save(r.Context(), *dto)
	if err != nil {
		saveFailures.Add(1)
		obs.Logger.Errorw("product_save_failed",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	productsCreated.Add(1)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(saved)
}

// decodeProduct reads exactly one non-null JSON product from a bounded body.
func decodeProduct(w http.ResponseWriter, r *http.Request) (*model.ProductDTO, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var dto *model.ProductDTO
	if err := dec.Decode(&dto); err != nil {
		return nil, err
	}
	if dto == nil {
		return nil, errors.New("product must not be null")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after product")
	}
	return dto, nil
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	m := map[string]any{
		"products_listed":  productsListed.Value(),
		"products_created": productsCreated.Value(),
		"save_failures":    saveFailures.Value(),
		"uptime_sec":       time.Since(a.started).Seconds(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func openapiHandler(doc []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(doc)
	}
}

// docsHandler serves Swagger UI pointed at /openapi.yaml.
func docsHandler(title string) http.HandlerFunc {
	page := fmt.Sprintf(docsPage, html.EscapeString(title))
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, page)
	}
}

const docsPage = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>%s API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
