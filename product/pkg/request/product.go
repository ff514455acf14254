package request

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	Name        string          `validate:"required"       json:"name"`
	Description string          `validate:"required"       json:"description"`
	Price       decimal.Decimal `validate:"required"       json:"price"`
	Stock       int32           `validate:"gte=0"          json:"stock"`
}

type DecrementStock struct {
	Quantity int32 `validate:"required,gt=0" json:"quantity"`
}
