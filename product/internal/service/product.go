package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/product/internal/otel"
	"github.com/Alturino/storefront/product/internal/store"
	"github.com/Alturino/storefront/product/pkg/request"
	"github.com/Alturino/storefront/product/pkg/response"
)

type ProductService struct {
	store *store.ProductStore
}

func NewProductService(store *store.ProductStore) ProductService {
	return ProductService{store: store}
}

func (svc ProductService) FindProducts(c context.Context) []response.Product {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyProcess, "finding products").
		Logger()

	logger.Info().Msg("finding products")
	products := svc.store.FindAll()
	responses := make([]response.Product, 0, len(products))
	for _, p := range products {
		responses = append(responses, p.Response())
	}
	logger.Info().Msgf("found %d products", len(responses))

	return responses
}

func (svc ProductService) FindProductById(
	c context.Context,
	productId int64,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Int64(log.KeyProductID, productId).
		Str(log.KeyProcess, "finding product by id").
		Logger()

	logger.Info().Msgf("finding product by productId=%d", productId)
	product, err := svc.store.FindById(productId)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%d with error=%w", productId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msgf("found product by productId=%d", productId)

	return product.Response(), nil
}

func (svc ProductService) InsertProduct(
	c context.Context,
	param request.Product,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Str(log.KeyProductName, param.Name).
		Str(log.KeyProcess, "inserting product").
		Logger()

	logger.Info().Msg("inserting product")
	product := svc.store.Insert(param.Name, param.Description, param.Price, param.Stock)
	logger = logger.With().Int64(log.KeyProductID, product.ID).Logger()
	logger.Info().Msgf("inserted product with productId=%d", product.ID)

	return product.Response(), nil
}

func (svc ProductService) UpdateProduct(
	c context.Context,
	productId int64,
	param request.Product,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProduct").
		Int64(log.KeyProductID, productId).
		Str(log.KeyProcess, "updating product").
		Logger()

	logger.Info().Msgf("updating productId=%d", productId)
	product, err := svc.store.Update(
		productId,
		param.Name,
		param.Description,
		param.Price,
		param.Stock,
	)
	if err != nil {
		err = fmt.Errorf("failed updating productId=%d with error=%w", productId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msgf("updated productId=%d", productId)

	return product.Response(), nil
}

func (svc ProductService) RemoveProduct(c context.Context, productId int64) error {
	c, span := otel.Tracer.Start(c, "ProductService RemoveProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService RemoveProduct").
		Int64(log.KeyProductID, productId).
		Str(log.KeyProcess, "removing product").
		Logger()

	logger.Info().Msgf("removing productId=%d", productId)
	err := svc.store.Delete(productId)
	if err != nil {
		err = fmt.Errorf("failed removing productId=%d with error=%w", productId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("removed productId=%d", productId)

	return nil
}

func (svc ProductService) DecrementStock(
	c context.Context,
	productId int64,
	param request.DecrementStock,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService DecrementStock")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService DecrementStock").
		Int64(log.KeyProductID, productId).
		Int32(log.KeyQuantity, param.Quantity).
		Str(log.KeyProcess, "decrementing stock").
		Logger()

	logger.Info().Msgf("decrementing stock of productId=%d by %d", productId, param.Quantity)
	product, err := svc.store.DecrementStock(productId, param.Quantity)
	if err != nil {
		err = fmt.Errorf(
			"failed decrementing stock of productId=%d by %d with error=%w",
			productId,
			param.Quantity,
			err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msgf("decremented stock of productId=%d to %d", productId, product.Stock)

	return product.Response(), nil
}
