package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Orders at or above the threshold ship free, everything below pays the flat
// rate.
var (
	freeShippingThreshold = decimal.RequireFromString("50.00")
	flatShippingCost      = decimal.RequireFromString("5.00")
)

type CartUsecase struct {
	cartItems repo.CartItemRepository
	products  repo.ProductRepository
}

func NewCartUsecase(cartItems repo.CartItemRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{cartItems: cartItems, products: products}
}

type CartItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	Items                    []CartItemResponse `json:"items"`
	Total                    decimal.Decimal    `json:"total"`
	ShippingCost             decimal.Decimal    `json:"shipping_cost"`
	FinalTotal               decimal.Decimal    `json:"final_total"`
	RemainingForFreeShipping decimal.Decimal    `json:"remaining_for_free_shipping"`
}

// A clamp is not a rejection: the write succeeds with the reduced quantity
// and the caller is told it happened.
type CartMutationResponse struct {
	Cart     CartResponse `json:"cart"`
	Clamped  bool         `json:"clamped"`
	Quantity int64        `json:"quantity"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.buildCartResponse(ctx, userID)
}

// AddToCart creates the (user, product) line or accumulates onto it. The
// resulting quantity is clamped to current stock.
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartMutationResponse, error) {
	if userID <= 0 {
		return CartMutationResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.products.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}

	existing, err := u.cartItems.FindByUserAndProduct(ctx, userID, in.ProductID)
	haveLine := err == nil
	if err != nil && err != repo.ErrNotFound {
		return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	want := in.Quantity
	if haveLine {
		want += existing.Quantity
	}

	clamped := false
	if want > p.Stock {
		want = p.Stock
		clamped = true
	}

	switch {
	case want <= 0:
		// stock is gone; a clamp to zero leaves no line behind
		if haveLine {
			if err := u.cartItems.DeleteByID(ctx, existing.ID); err != nil {
				return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
	case haveLine:
		if err := u.cartItems.UpdateQuantity(ctx, existing.ID, want); err != nil {
			return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	default:
		if _, err := u.cartItems.Create(ctx, model.CartItem{
			UserID:    userID,
			ProductID: in.ProductID,
			Quantity:  want,
		}); err != nil {
			return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	cart, err := u.buildCartResponse(ctx, userID)
	if err != nil {
		return CartMutationResponse{}, err
	}
	return CartMutationResponse{Cart: cart, Clamped: clamped, Quantity: want}, nil
}

// UpdateCartItem sets the quantity. Zero or below removes the line; anything
// above stock is clamped.
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (CartMutationResponse, error) {
	if userID <= 0 {
		return CartMutationResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.cartItems.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartMutationResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	// another user's line does not exist as far as this user knows
	if item.UserID != userID {
		return CartMutationResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if in.Quantity <= 0 {
		if err := u.cartItems.DeleteByID(ctx, cartItemID); err != nil {
			return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		cart, err := u.buildCartResponse(ctx, userID)
		if err != nil {
			return CartMutationResponse{}, err
		}
		return CartMutationResponse{Cart: cart, Clamped: false, Quantity: 0}, nil
	}

	p, err := u.products.FindByID(ctx, item.ProductID)
	if err == repo.ErrNotFound {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	want := in.Quantity
	clamped := false
	if want > p.Stock {
		want = p.Stock
		clamped = true
	}

	if want <= 0 {
		if err := u.cartItems.DeleteByID(ctx, cartItemID); err != nil {
			return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	} else {
		if err := u.cartItems.UpdateQuantity(ctx, cartItemID, want); err != nil {
			if err == repo.ErrNotFound {
				return CartMutationResponse{}, NewHTTPError(http.StatusNotFound, "not found")
			}
			return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	cart, err := u.buildCartResponse(ctx, userID)
	if err != nil {
		return CartMutationResponse{}, err
	}
	return CartMutationResponse{Cart: cart, Clamped: clamped, Quantity: want}, nil
}

func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.cartItems.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if item.UserID != userID {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItems.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// Cart lines are priced at the product's current price; snapshotting happens
// only at checkout. Lines stay visible even when the product was deactivated
// after the add, so the user can still see and remove them; checkout refuses
// them. Lines whose product row is gone are pruned.
func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	items, err := u.cartItems.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		p, err := u.products.FindByID(ctx, it.ProductID)
		if err == repo.ErrNotFound {
			if derr := u.cartItems.DeleteByID(ctx, it.ID); derr != nil {
				log.WithError(derr).WithField("cart_item_id", it.ID).Warn("dangling cart line prune failed")
			}
			continue
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(it.Quantity))
		respItems = append(respItems, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  it.Quantity,
			Subtotal:  subtotal,
		})

		total = total.Add(subtotal)
	}

	shipping := flatShippingCost
	remaining := freeShippingThreshold.Sub(total)
	if total.GreaterThanOrEqual(freeShippingThreshold) {
		shipping = decimal.Zero
		remaining = decimal.Zero
	}

	return CartResponse{
		Items:                    respItems,
		Total:                    total,
		ShippingCost:             shipping,
		FinalTotal:               total.Add(shipping),
		RemainingForFreeShipping: remaining,
	}, nil
}
