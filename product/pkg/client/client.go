package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
)

var tracer = otel.Tracer("product-client")

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product source unavailable")
)

// Product is a point-in-time snapshot of the remote product. It is only
// valid for the duration of one operation; price and stock can change
// between calls.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int32           `json:"stock"`
}

type ProductSource interface {
	FindProductById(c context.Context, productId int64) (Product, error)
}

type httpProductSource struct {
	baseUrl string
	timeout time.Duration
	client  *http.Client
}

func NewHttpProductSource(baseUrl string, timeout time.Duration) ProductSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpProductSource{
		baseUrl: baseUrl,
		timeout: timeout,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (s *httpProductSource) FindProductById(
	c context.Context,
	productId int64,
) (Product, error) {
	c, span := tracer.Start(c, "httpProductSource FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "httpProductSource FindProductById").
		Int64(log.KeyProductID, productId).
		Logger()

	c, cancel := context.WithTimeout(c, s.timeout)
	defer cancel()

	logger = logger.With().
		Str(log.KeyProcess, fmt.Sprintf("finding productId=%d in %s", productId, constants.AppProductService)).
		Logger()
	logger.Info().Msgf("finding productId=%d", productId)
	req, err := http.NewRequestWithContext(
		c,
		http.MethodGet,
		fmt.Sprintf("%s/%d", s.baseUrl, productId),
		nil,
	)
	if err != nil {
		err = fmt.Errorf("failed creating request for productId=%d with error=%w", productId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Product{}, errors.Join(ErrProductUnavailable, err)
	}
	req.Header.Add(constants.HeaderRequestId, log.RequestIDFromContext(c))
	resp, err := s.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed getting productId=%d with error=%w", productId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Product{}, errors.Join(ErrProductUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		err = fmt.Errorf("productId=%d %w", productId, ErrProductNotFound)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Product{}, err
	}
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf(
			"%s returned status code=%d for productId=%d: %w",
			constants.AppProductService,
			resp.StatusCode,
			productId,
			ErrProductUnavailable,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Product{}, err
	}
	logger.Info().Msgf("found productId=%d", productId)

	logger = logger.With().Str(log.KeyProcess, "unmarshaling product response").Logger()
	logger.Info().Msg("unmarshaling product response")
	respBody := struct {
		Data struct {
			Product Product `json:"product"`
		} `json:"data"`
	}{}
	err = json.NewDecoder(resp.Body).Decode(&respBody)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling productId=%d with error=%w", productId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Product{}, errors.Join(ErrProductUnavailable, err)
	}
	logger = logger.With().Any(log.KeyProduct, respBody.Data.Product).Logger()
	logger.Info().Msg("unmarshaled product response")

	return respBody.Data.Product, nil
}
