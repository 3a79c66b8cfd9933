// Package stockclient forwards newly saved products to the stock service.
package stockclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"

	"github.com/fairyhunter13/product-stock-services/internal/model"
	"github.com/fairyhunter13/product-stock-services/internal/obs"
)

// SubmitPath is the stock service ingestion endpoint.
const SubmitPath = "/api/stock"

// ErrUnexpectedStatus is returned when the stock service answers with a
// non-2xx status code.
var ErrUnexpectedStatus = errors.New("unexpected stock service status")

// Client posts products to the stock service. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for the stock service at baseURL. Every call is
// bounded by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SubmitNewProduct sends p to the stock service and returns its
// acknowledgement text.
func (c *Client) SubmitNewProduct(ctx context.Context, p model.ProductDTO) (string, error) {
	var (
		ack  string
		code int
	)
	err := gout.New(c.httpClient).
		POST(c.baseURL + SubmitPath).
		WithContext(ctx).
		SetJSON(p).
		BindBody(&ack).
		Code(&code).
		Do()
	if err != nil {
		return "", fmt.Errorf("posting product to stock service: %w", err)
	}
	if code < 200 || code > 299 {
		return "", fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, code, strings.TrimSpace(ack))
	}
	obs.Logger.Debugw("stock_notified", "status", code, "ack", ack)
	return ack, nil
}
