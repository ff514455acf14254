package store

import (
	"github.com/Alturino/storefront/product/pkg/response"
)

func (p Product) Response() response.Product {
	return response.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}
