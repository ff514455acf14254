package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/product/internal/errors"
)

func TestNewProductStoreSeedsCatalog(t *testing.T) {
	s := NewProductStore()

	products := s.FindAll()
	require.Len(t, products, 3)
	assert.Equal(t, "Laptop Gaming", products[0].Name)
	assert.Equal(t, int32(5), products[0].Stock)
	assert.Equal(t, "Wireless Mouse", products[1].Name)
	assert.Equal(t, "Monitor 4K", products[2].Name)
	assert.True(t, decimal.NewFromFloat(450.00).Equal(products[2].Price))
}

func TestFindByIdNotFound(t *testing.T) {
	s := NewProductStore()

	_, err := s.FindById(99)
	require.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestInsertAllocatesNextId(t *testing.T) {
	s := NewProductStore()

	product := s.Insert("Mechanical Keyboard", "Tenkeyless", decimal.NewFromFloat(89.90), 20)
	assert.Equal(t, int64(4), product.ID)

	found, err := s.FindById(4)
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", found.Name)

	second := s.Insert("USB Hub", "4 port", decimal.NewFromFloat(15.00), 30)
	assert.Equal(t, int64(5), second.ID)
}

func TestUpdateReplacesFields(t *testing.T) {
	s := NewProductStore()

	updated, err := s.Update(2, "Wireless Mouse Pro", "Rechargeable", decimal.NewFromFloat(49.99), 40)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse Pro", updated.Name)
	assert.Equal(t, int32(40), updated.Stock)

	_, err = s.Update(99, "Ghost", "", decimal.Zero, 0)
	require.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestDeleteRemovesProduct(t *testing.T) {
	s := NewProductStore()

	require.NoError(t, s.Delete(1))
	_, err := s.FindById(1)
	require.ErrorIs(t, err, inErrors.ErrProductNotFound)
	assert.Len(t, s.FindAll(), 2)

	require.ErrorIs(t, s.Delete(1), inErrors.ErrProductNotFound)
}

func TestDecrementStock(t *testing.T) {
	s := NewProductStore()

	product, err := s.DecrementStock(1, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(2), product.Stock)

	_, err = s.DecrementStock(1, 3)
	require.ErrorIs(t, err, inErrors.ErrInsufficientStock)

	product, err = s.FindById(1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), product.Stock)

	_, err = s.DecrementStock(99, 1)
	require.ErrorIs(t, err, inErrors.ErrProductNotFound)
}
