package proxy

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/internal/config"
)

func TestGatewayRoutesToUpstreams(t *testing.T) {
	productUpstream := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "product:%s", r.URL.Path)
		}),
	)
	defer productUpstream.Close()
	cartUpstream := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "cart:%s", r.URL.Path)
		}),
	)
	defer cartUpstream.Close()

	router := mux.NewRouter()
	err := AttachGatewayProxy(router, config.Gateway{
		ProductServiceUrl: productUpstream.URL,
		CartServiceUrl:    cartUpstream.URL,
	})
	require.NoError(t, err)
	gateway := httptest.NewServer(router)
	defer gateway.Close()

	tests := []struct {
		path string
		want string
	}{
		{path: "/api/products/1", want: "product:/products/1"},
		{path: "/api/products", want: "product:/products"},
		{path: "/api/carts/alice", want: "cart:/carts/alice"},
		{path: "/api/carts", want: "cart:/carts"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(gateway.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, string(body))
		})
	}
}

func TestGatewayUpstreamDownReturnsBadGateway(t *testing.T) {
	downUpstream := httptest.NewServer(http.NotFoundHandler())
	downUpstream.Close()

	router := mux.NewRouter()
	err := AttachGatewayProxy(router, config.Gateway{
		ProductServiceUrl: downUpstream.URL,
		CartServiceUrl:    downUpstream.URL,
	})
	require.NoError(t, err)
	gateway := httptest.NewServer(router)
	defer gateway.Close()

	resp, err := http.Get(gateway.URL + "/api/products/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, "upstream service unavailable", body["message"])
}

func TestAttachGatewayProxyRejectsInvalidUrl(t *testing.T) {
	router := mux.NewRouter()
	err := AttachGatewayProxy(router, config.Gateway{
		ProductServiceUrl: "http://invalid url with spaces",
		CartServiceUrl:    "http://localhost:8081",
	})
	require.Error(t, err)
}
