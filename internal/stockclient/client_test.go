package stockclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/product-stock-services/internal/model"
)

func TestSubmitNewProduct_PostsJSON(t *testing.T) {
	var got model.ProductDTO
	var method, path, ctype string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, ctype = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte("Received product: " + model.Deref(got.Name)))
	}))
	defer srv.Close()

	id := int64(12)
	ack, err := New(srv.URL+"/", time.Second).SubmitNewProduct(context.Background(), model.ProductDTO{
		ID: &id, Name: model.String("Widget"), Description: model.String("d"), ImageURL: model.String("u"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Received product: Widget", ack)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, SubmitPath, path)
	assert.Contains(t, ctype, "application/json")
	require.NotNil(t, got.ID)
	assert.Equal(t, int64(12), *got.ID)
	assert.Equal(t, "u", model.Deref(got.ImageURL))
}

func TestSubmitNewProduct_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Product must not be null"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).SubmitNewProduct(context.Background(), model.ProductDTO{Name: model.String("x")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "400")
}

func TestSubmitNewProduct_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).SubmitNewProduct(context.Background(), model.ProductDTO{Name: model.String("x")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnexpectedStatus)
}

func TestSubmitNewProduct_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := New(srv.URL, 50*time.Millisecond).SubmitNewProduct(context.Background(), model.ProductDTO{Name: model.String("slow")})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
