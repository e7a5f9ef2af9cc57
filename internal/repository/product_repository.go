package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Catalog listing filters. Only active, non-deleted products are visible.
type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	Featured   *bool
	Sort       string
}

type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// Active products sharing a category, excluding the product itself.
	ListRelated(ctx context.Context, categoryID int64, excludeID int64, limit int) ([]model.Product, error)
}

// Stock mutation lives apart from catalog reads so the checkout transaction
// depends on exactly what it needs.
type InventoryRepository interface {
	// Decrements stock only when at least qty remains. Returns false, nil
	// when stock was insufficient.
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}
