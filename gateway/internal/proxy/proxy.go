package proxy

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/config"
	commonHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
)

// AttachGatewayProxy wires the pass-through routes: /api/products* to the
// product service and /api/carts* to the cart service. No business logic
// lives here; upstream responses, including error bodies, stream back
// unchanged.
func AttachGatewayProxy(router *mux.Router, cfg config.Gateway) error {
	productProxy, err := newServiceProxy(cfg.ProductServiceUrl)
	if err != nil {
		return fmt.Errorf("failed creating product proxy with error=%w", err)
	}
	cartProxy, err := newServiceProxy(cfg.CartServiceUrl)
	if err != nil {
		return fmt.Errorf("failed creating cart proxy with error=%w", err)
	}

	router.PathPrefix("/api/products").Handler(stripApiPrefix(productProxy))
	router.PathPrefix("/api/carts").Handler(stripApiPrefix(cartProxy))
	return nil
}

func newServiceProxy(rawUrl string) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(rawUrl)
	if err != nil {
		return nil, fmt.Errorf("failed parsing upstream url=%s with error=%w", rawUrl, err)
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger := zerolog.Ctx(r.Context()).
			With().
			Str(log.KeyTag, "GatewayProxy").
			Str(log.KeyRequestURI, r.RequestURI).
			Logger()
		err = fmt.Errorf("failed proxying request with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(r.Context(), w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadGateway,
			"message":    "upstream service unavailable",
		})
	}
	return proxy, nil
}

func stripApiPrefix(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = strings.TrimPrefix(r.URL.Path, "/api")
		next.ServeHTTP(w, r)
	})
}
