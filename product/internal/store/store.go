package store

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/product/internal/errors"
)

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int32
	CreatedAt   time.Time
}

// ProductStore is an in-memory catalog. Stock decrements are not
// coordinated with cart additions; the cart's stock check is advisory.
type ProductStore struct {
	mu       sync.RWMutex
	products []*Product
	nextId   int64
}

func NewProductStore() *ProductStore {
	now := time.Now()
	return &ProductStore{
		products: []*Product{
			{
				ID:          1,
				Name:        "Laptop Gaming",
				Description: "High performance gaming laptop",
				Price:       decimal.NewFromFloat(1200.00),
				Stock:       5,
				CreatedAt:   now,
			},
			{
				ID:          2,
				Name:        "Wireless Mouse",
				Description: "Ergonomic wireless mouse",
				Price:       decimal.NewFromFloat(35.99),
				Stock:       50,
				CreatedAt:   now,
			},
			{
				ID:          3,
				Name:        "Monitor 4K",
				Description: "27 inch 4K monitor",
				Price:       decimal.NewFromFloat(450.00),
				Stock:       10,
				CreatedAt:   now,
			},
		},
		nextId: 4,
	}
}

func (s *ProductStore) FindAll() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, *p)
	}
	return products
}

func (s *ProductStore) FindById(id int64) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return *p, nil
		}
	}
	return Product{}, errors.ErrProductNotFound
}

func (s *ProductStore) Insert(
	name string,
	description string,
	price decimal.Decimal,
	stock int32,
) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := &Product{
		ID:          s.nextId,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CreatedAt:   time.Now(),
	}
	s.nextId++
	s.products = append(s.products, product)
	return *product
}

func (s *ProductStore) Update(
	id int64,
	name string,
	description string,
	price decimal.Decimal,
	stock int32,
) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID != id {
			continue
		}
		p.Name = name
		p.Description = description
		p.Price = price
		p.Stock = stock
		return *p, nil
	}
	return Product{}, errors.ErrProductNotFound
}

func (s *ProductStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return errors.ErrProductNotFound
}

func (s *ProductStore) DecrementStock(id int64, quantity int32) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID != id {
			continue
		}
		if p.Stock < quantity {
			return Product{}, errors.ErrInsufficientStock
		}
		p.Stock -= quantity
		return *p, nil
	}
	return Product{}, errors.ErrProductNotFound
}
