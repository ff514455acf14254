package errors

import (
	"errors"
	"fmt"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

// InsufficientStockError carries the counts needed for a precise
// user-facing message: what the product source reported as available,
// what the cart already holds, and what was requested on top of that.
type InsufficientStockError struct {
	ProductName string
	Available   int32
	Reserved    int32
	Requested   int32
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for %s. Available: %d, Already in cart: %d, Requested: %d",
		e.ProductName,
		e.Available,
		e.Reserved,
		e.Requested,
	)
}
