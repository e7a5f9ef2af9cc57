package usecase

import (
	"errors"
	"fmt"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// Checkout outcomes are tagged so the handler decides how each kind renders.
var (
	ErrCartEmpty       = errors.New("cart is empty")
	ErrAddressRequired = errors.New("shipping address is required")
)

// Requested quantity exceeded live stock during checkout. The whole
// transaction rolls back and the cart stays as it was.
type StockConflictError struct {
	ProductID   int64
	ProductName string
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("not enough stock for %s", e.ProductName)
}

func AsStockConflict(err error) (*StockConflictError, bool) {
	var sc *StockConflictError
	ok := errors.As(err, &sc)
	return sc, ok
}
