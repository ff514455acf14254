package response

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"user_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int32           `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	AddedAt     time.Time       `json:"added_at"`
}

type Cart struct {
	UserID     string          `json:"user_id"`
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
