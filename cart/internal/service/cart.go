package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	inErrors "github.com/Alturino/storefront/cart/internal/errors"
	"github.com/Alturino/storefront/cart/internal/metric"
	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/internal/store"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/product/pkg/client"
)

type CartService struct {
	store    *store.CartStore
	products client.ProductSource
	metrics  *metric.CartMetrics
}

func NewCartService(
	store *store.CartStore,
	products client.ProductSource,
	metrics *metric.CartMetrics,
) CartService {
	return CartService{store: store, products: products, metrics: metrics}
}

// AddCartItem reconciles an add-to-cart request against the remote stock:
// fetch a fresh product snapshot, then, holding the user's mutation lock,
// check existing+requested against the snapshot's stock and merge into or
// create the user's line item for that product. The stock check is
// advisory only; nothing reserves inventory on the product service.
func (svc CartService) AddCartItem(
	c context.Context,
	param request.AddCartItem,
) (response.CartItem, error) {
	attrs := trace.WithAttributes(
		attribute.String(log.KeyUserID, param.UserId),
		attribute.Int64(log.KeyProductID, param.ProductId),
	)
	c, span := otel.Tracer.Start(c, "CartService AddCartItem", attrs)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddCartItem").
		Str(log.KeyUserID, param.UserId).
		Int64(log.KeyProductID, param.ProductId).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "fetching product snapshot").Logger()
	logger.Info().Msgf("fetching snapshot of productId=%d", param.ProductId)
	span.AddEvent("fetching product snapshot")
	c = logger.WithContext(c)
	product, err := svc.products.FindProductById(c, param.ProductId)
	if err != nil {
		err = fmt.Errorf("failed fetching productId=%d with error=%w", param.ProductId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartItem{}, err
	}
	logger = logger.With().Any(log.KeyProduct, product).Logger()
	logger.Info().Msgf("fetched snapshot of productId=%d", param.ProductId)
	span.AddEvent("fetched product snapshot")

	unlock := svc.store.LockUser(param.UserId)
	defer unlock()

	logger = logger.With().Str(log.KeyProcess, "checking stock").Logger()
	existingQuantity := int32(0)
	existing, ok := svc.store.FindItemByProductId(param.UserId, param.ProductId)
	if ok {
		existingQuantity = existing.Quantity
	}
	requestedTotal := existingQuantity + param.Quantity
	logger = logger.With().
		Int32(log.KeyExistingQuantity, existingQuantity).
		Int32(log.KeyRequestedQuantity, requestedTotal).
		Int32(log.KeyAvailableStock, product.Stock).
		Logger()
	logger.Info().Msg("checking stock")
	if product.Stock < requestedTotal {
		err = inErrors.InsufficientStockError{
			ProductName: product.Name,
			Available:   product.Stock,
			Reserved:    existingQuantity,
			Requested:   param.Quantity,
		}
		svc.metrics.InsufficientStockTotal.Inc()
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartItem{}, err
	}
	logger.Info().Msg("checked stock")
	span.AddEvent("checked stock")

	logger = logger.With().Str(log.KeyProcess, "upserting cart item").Logger()
	logger.Info().Msg("upserting cart item")
	item := svc.store.Upsert(param.UserId, store.LineItem{
		ProductID:   param.ProductId,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    param.Quantity,
	})
	result := "created"
	if ok {
		result = "merged"
	}
	svc.metrics.AddsTotal.WithLabelValues(result).Inc()
	logger = logger.With().Any(log.KeyCartItem, item).Logger()
	logger.Info().Msgf("upserted cart item with cartItemId=%d", item.ID)
	span.AddEvent("upserted cart item")

	return item.Response(), nil
}

func (svc CartService) FindCartByUserId(
	c context.Context,
	userId string,
) response.Cart {
	c, span := otel.Tracer.Start(c, "CartService FindCartByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCartByUserId").
		Str(log.KeyUserID, userId).
		Str(log.KeyProcess, "finding cart").
		Logger()

	logger.Info().Msgf("finding cart of userId=%s", userId)
	items := svc.store.Get(userId)
	cart := newCartResponse(userId, items)
	logger = logger.With().Int("totalItems", cart.TotalItems).Logger()
	logger.Info().Msgf("found cart of userId=%s", userId)

	return cart
}

func (svc CartService) RemoveCartItem(c context.Context, param request.RemoveCartItem) error {
	c, span := otel.Tracer.Start(c, "CartService RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveCartItem").
		Str(log.KeyUserID, param.UserId).
		Int64(log.KeyCartItemID, param.CartItemId).
		Str(log.KeyProcess, "removing cart item").
		Logger()

	logger.Info().Msgf("removing cartItemId=%d", param.CartItemId)
	err := svc.store.RemoveItem(param.UserId, param.CartItemId)
	if err != nil {
		err = fmt.Errorf(
			"failed removing cartItemId=%d of userId=%s with error=%w",
			param.CartItemId,
			param.UserId,
			err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("removed cartItemId=%d", param.CartItemId)

	return nil
}

func (svc CartService) ClearCart(c context.Context, userId string) {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userId).
		Str(log.KeyProcess, "clearing cart").
		Logger()

	logger.Info().Msgf("clearing cart of userId=%s", userId)
	svc.store.Clear(userId)
	logger.Info().Msgf("cleared cart of userId=%s", userId)
}

func (svc CartService) FindAllCarts(c context.Context) []response.Cart {
	c, span := otel.Tracer.Start(c, "CartService FindAllCarts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindAllCarts").
		Str(log.KeyProcess, "finding all carts").
		Logger()

	logger.Info().Msg("finding all carts")
	userIds := svc.store.UserIds()
	carts := make([]response.Cart, 0, len(userIds))
	for _, userId := range userIds {
		items := svc.store.Get(userId)
		if len(items) == 0 {
			continue
		}
		carts = append(carts, newCartResponse(userId, items))
	}
	logger = logger.With().Int(log.KeyCarts, len(carts)).Logger()
	logger.Info().Msgf("found %d carts", len(carts))

	return carts
}

// newCartResponse derives the summary view: item order preserved, total
// rounded to the cent, half up.
func newCartResponse(userId string, items []store.LineItem) response.Cart {
	responses := make([]response.CartItem, 0, len(items))
	totalPrice := decimal.Zero
	for _, item := range items {
		responses = append(responses, item.Response())
		totalPrice = totalPrice.Add(item.TotalPrice)
	}
	return response.Cart{
		UserID:     userId,
		Items:      responses,
		TotalItems: len(responses),
		TotalPrice: totalPrice.Round(2),
	}
}
