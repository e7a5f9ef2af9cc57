package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutUsecase turns a user's cart into a persisted order. The whole
// conversion runs inside one transaction: order creation, per-line stock
// re-validation and decrement, order item snapshots and cart clearing commit
// together or not at all.
type CheckoutUsecase struct {
	cartItems repo.CartItemRepository
	tx        repo.TransactionManager
}

func NewCheckoutUsecase(cartItems repo.CartItemRepository, tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{cartItems: cartItems, tx: tx}
}

type PlaceOrderInput struct {
	ShippingAddress string
}

func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	address := strings.TrimSpace(in.ShippingAddress)
	if address == "" {
		return OrderOutput{}, ErrAddressRequired
	}

	// validation rejections happen before any transaction is opened
	precheck, err := u.cartItems.ListByUserID(ctx, userID)
	if err != nil {
		return OrderOutput{}, err
	}
	if len(precheck) == 0 {
		return OrderOutput{}, ErrCartEmpty
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// the in-tx read is the authoritative line set
		lines, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		// Re-validate stock per line against live values and snapshot the
		// current price. The total is summed from the same rows the
		// snapshots come from, in exact decimal arithmetic.
		orderItems := make([]model.OrderItem, 0, len(lines))
		total := decimal.Zero
		now := time.Now()

		for _, line := range lines {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "product no longer available")
			}
			if err != nil {
				return err
			}
			// deactivated after the add; the cart view still shows the line
			if !p.IsActive {
				return NewHTTPError(http.StatusBadRequest, "product no longer available")
			}

			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, p.ID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &StockConflictError{ProductID: p.ID, ProductName: p.Name}
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:           p.ID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            line.Quantity,
				CreatedAt:           now,
			})

			total = total.Add(p.Price.Mul(decimal.NewFromInt(line.Quantity)))
		}

		order := model.Order{
			OrderNumber:     uuid.NewString(),
			UserID:          userID,
			Status:          model.OrderStatusPending,
			TotalAmount:     total,
			ShippingAddress: address,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return err
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return err
		}

		if err := r.CartItems().DeleteByUserID(ctx, userID); err != nil {
			return err
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
