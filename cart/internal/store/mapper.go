package store

import (
	"github.com/Alturino/storefront/cart/pkg/response"
)

func (i LineItem) Response() response.CartItem {
	return response.CartItem{
		ID:          i.ID,
		UserID:      i.UserID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Price:       i.Price,
		Quantity:    i.Quantity,
		TotalPrice:  i.TotalPrice,
		AddedAt:     i.AddedAt,
	}
}
