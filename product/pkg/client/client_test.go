package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProductByIdDecodesSnapshot(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products/7", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(
				w,
				`{"status":"success","statusCode":200,"message":"product found","data":{"product":{"id":7,"name":"Laptop Gaming","price":"1200.00","stock":5}}}`,
			)
		}),
	)
	defer server.Close()

	source := NewHttpProductSource(server.URL+"/products", time.Second)
	product, err := source.FindProductById(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), product.ID)
	assert.Equal(t, "Laptop Gaming", product.Name)
	assert.Equal(t, int32(5), product.Stock)
	assert.True(t, decimal.NewFromFloat(1200.00).Equal(product.Price))
}

func TestFindProductByIdNotFound(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}),
	)
	defer server.Close()

	source := NewHttpProductSource(server.URL+"/products", time.Second)
	_, err := source.FindProductById(context.Background(), 404)
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.NotErrorIs(t, err, ErrProductUnavailable)
}

func TestFindProductByIdUpstreamError(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}),
	)
	defer server.Close()

	source := NewHttpProductSource(server.URL+"/products", time.Second)
	_, err := source.FindProductById(context.Background(), 1)
	require.ErrorIs(t, err, ErrProductUnavailable)
}

func TestFindProductByIdMalformedBody(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":{"product":`)
		}),
	)
	defer server.Close()

	source := NewHttpProductSource(server.URL+"/products", time.Second)
	_, err := source.FindProductById(context.Background(), 1)
	require.ErrorIs(t, err, ErrProductUnavailable)
}

func TestFindProductByIdTimesOut(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}),
	)
	defer server.Close()
	defer close(release)

	source := NewHttpProductSource(server.URL+"/products", 50*time.Millisecond)
	_, err := source.FindProductById(context.Background(), 1)
	require.ErrorIs(t, err, ErrProductUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
