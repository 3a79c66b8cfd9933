package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/product-stock-services/internal/config"
	httpapi "github.com/fairyhunter13/product-stock-services/internal/http"
	"github.com/fairyhunter13/product-stock-services/internal/model"
	"github.com/fairyhunter13/product-stock-services/internal/product"
	"github.com/fairyhunter13/product-stock-services/internal/stockclient"
	"github.com/fairyhunter13/product-stock-services/internal/store"
)

func newProductServer(t *testing.T, stockURL string) *httptest.Server {
	t.Helper()
	cfg := config.Config{StockServiceURL: stockURL, StockClientTimeout: 2 * time.Second}
	svc := product.NewService(store.NewMemory(), stockclient.New(cfg.StockServiceURL, cfg.StockClientTimeout))
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewApp(cfg, svc)))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestIntegration_CreateNotifiesStockThenList(t *testing.T) {
	stock := httptest.NewServer(httpapi.NewStockRouter(httpapi.NewStockApp(config.Config{})))
	defer stock.Close()
	products := newProductServer(t, stock.URL)

	empty, err := http.Get(products.URL + "/api/product")
	require.NoError(t, err)
	_ = empty.Body.Close()
	assert.Equal(t, http.StatusNoContent, empty.StatusCode)

	resp := postJSON(t, products.URL+"/api/product", `{"name":"A","description":"B","imageURL":"C"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var saved model.ProductDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
	require.NotNil(t, saved.ID)

	lr, err := http.Get(products.URL + "/api/product")
	require.NoError(t, err)
	defer lr.Body.Close()
	require.Equal(t, http.StatusOK, lr.StatusCode)
	var all []model.ProductDTO
	require.NoError(t, json.NewDecoder(lr.Body).Decode(&all))
	require.Len(t, all, 1)
	assert.Equal(t, *saved.ID, *all[0].ID)
	assert.Equal(t, "A", model.Deref(all[0].Name))
	assert.Equal(t, "B", model.Deref(all[0].Description))
	assert.Equal(t, "C", model.Deref(all[0].ImageURL))

	mr, err := http.Get(stock.URL + "/debug/metrics")
	require.NoError(t, err)
	defer mr.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(mr.Body).Decode(&m))
	received, _ := m["products_received"].(float64)
	assert.GreaterOrEqual(t, received, float64(1))
}

func TestIntegration_StockUnreachableIs500(t *testing.T) {
	stock := httptest.NewServer(http.NotFoundHandler())
	deadURL := stock.URL
	stock.Close()
	products := newProductServer(t, deadURL)

	resp := postJSON(t, products.URL+"/api/product", `{"name":"orphan"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// no rollback: the row written before the failed notification remains
	lr, err := http.Get(products.URL + "/api/product")
	require.NoError(t, err)
	defer lr.Body.Close()
	require.Equal(t, http.StatusOK, lr.StatusCode)
	var all []model.ProductDTO
	require.NoError(t, json.NewDecoder(lr.Body).Decode(&all))
	require.Len(t, all, 1)
	assert.Equal(t, "orphan", model.Deref(all[0].Name))
}

func TestIntegration_StockDirect(t *testing.T) {
	stock := httptest.NewServer(httpapi.NewStockRouter(httpapi.NewStockApp(config.Config{})))
	defer stock.Close()

	cases := []struct {
		name, body string
		want       int
		msg        string
	}{
		{"widget", `{"name":"Widget","description":"d","imageURL":"u"}`, http.StatusOK, "Received product: Widget"},
		{"no_name", `{"description":"d"}`, http.StatusOK, "Received product: <no-name>"},
		{"empty_name", `{"name":""}`, http.StatusOK, "Received product: "},
		{"no_body", ``, http.StatusBadRequest, "Product must not be null"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, stock.URL+"/api/stock", tc.body)
			assert.Equal(t, tc.want, resp.StatusCode)
			var buf bytes.Buffer
			_, _ = buf.ReadFrom(resp.Body)
			assert.Equal(t, tc.msg, buf.String())
		})
	}
}
