package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/storefront/cart/internal/errors"
	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/cart/pkg/request"
	commonHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/product/pkg/client"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(mux *mux.Router, service *service.CartService) {
	controller := CartController{service: service}

	router := mux.PathPrefix("/carts").Subrouter()
	router.HandleFunc("/items", controller.AddCartItem).Methods(http.MethodPost)
	router.HandleFunc("", controller.FindAllCarts).Methods(http.MethodGet)
	router.HandleFunc("/{userId}", controller.FindCartByUserId).Methods(http.MethodGet)
	router.HandleFunc("/{userId}/items/{cartItemId}", controller.RemoveCartItem).
		Methods(http.MethodDelete)
	router.HandleFunc("/{userId}", controller.ClearCart).Methods(http.MethodDelete)
}

func (t CartController) AddCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddCartItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.AddCartItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyProcess, "adding cart item").
		Str(log.KeyUserID, reqBody.UserId).
		Int64(log.KeyProductID, reqBody.ProductId).
		Logger()
	logger.Info().Msg("adding cart item")
	c = logger.WithContext(c)
	item, err := t.service.AddCartItem(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed adding cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())

		statusCode := http.StatusInternalServerError
		body := map[string]interface{}{
			"status":  "failed",
			"message": err.Error(),
		}
		var stockErr inErrors.InsufficientStockError
		switch {
		case errors.Is(err, client.ErrProductNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, client.ErrProductUnavailable):
			statusCode = http.StatusBadGateway
		case errors.As(err, &stockErr):
			statusCode = http.StatusBadRequest
			body["data"] = map[string]interface{}{
				"available": stockErr.Available,
				"reserved":  stockErr.Reserved,
				"requested": stockErr.Requested,
			}
		}
		body["statusCode"] = statusCode
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, body)
		return
	}
	logger.Info().Msg("added cart item")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "successfully added cart item",
		"data": map[string]interface{}{
			"cart_item": item,
		},
	})
}

func (t CartController) FindCartByUserId(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCartByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCartByUserId").
		Logger()

	pathValues := mux.Vars(r)
	userId := pathValues["userId"]
	logger = logger.With().
		Str(log.KeyUserID, userId).
		Str(log.KeyProcess, "finding cart").
		Logger()

	logger.Info().Msgf("finding cart of userId=%s", userId)
	c = logger.WithContext(c)
	cart := t.service.FindCartByUserId(c, userId)
	logger.Info().Msgf("found cart of userId=%s", userId)

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("cart of userId=%s found", userId),
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveCartItem").
		Str(log.KeyProcess, "validating cartItemId").
		Logger()

	pathValues := mux.Vars(r)
	userId := pathValues["userId"]

	logger.Info().Msg("validating cartItemId")
	cartItemId, err := strconv.ParseInt(pathValues["cartItemId"], 10, 64)
	if err != nil {
		err = fmt.Errorf(
			"failed validating cartItemId=%s with error=%w",
			pathValues["cartItemId"],
			err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().
		Str(log.KeyUserID, userId).
		Int64(log.KeyCartItemID, cartItemId).
		Logger()
	logger.Info().Msgf("validated cartItemId=%d", cartItemId)

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Info().Msg("removing cart item")
	c = logger.WithContext(c)
	err = t.service.RemoveCartItem(
		c,
		request.RemoveCartItem{UserId: userId, CartItemId: cartItemId},
	)
	if err != nil {
		err = fmt.Errorf(
			"failed removing cartItemId=%d of userId=%s with error=%w",
			cartItemId,
			userId,
			err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrCartNotFound) ||
			errors.Is(err, inErrors.ErrCartItemNotFound) {
			statusCode = http.StatusNotFound
		}
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("removed cart item")

	w.WriteHeader(http.StatusNoContent)
}

func (t CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ClearCart").
		Logger()

	pathValues := mux.Vars(r)
	userId := pathValues["userId"]
	logger = logger.With().
		Str(log.KeyUserID, userId).
		Str(log.KeyProcess, "clearing cart").
		Logger()

	logger.Info().Msgf("clearing cart of userId=%s", userId)
	c = logger.WithContext(c)
	t.service.ClearCart(c, userId)
	logger.Info().Msgf("cleared cart of userId=%s", userId)

	w.WriteHeader(http.StatusNoContent)
}

func (t CartController) FindAllCarts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindAllCarts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindAllCarts").
		Str(log.KeyProcess, "finding all carts").
		Logger()

	logger.Info().Msg("finding all carts")
	c = logger.WithContext(c)
	carts := t.service.FindAllCarts(c)
	logger.Info().Msgf("found %d carts", len(carts))

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "carts found",
		"data": map[string]interface{}{
			"carts": carts,
		},
	})
}
