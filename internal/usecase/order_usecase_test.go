package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetMyOrderDetail_Success(t *testing.T) {
	orders := new(OrderRepoMock)
	orderItems := new(OrderItemRepoMock)
	uc := usecase.NewOrderUsecase(orders, orderItems)

	orders.On("FindByID", mock.Anything, int64(101)).Return(model.Order{
		ID: 101, OrderNumber: "a2c4", UserID: 7, Status: model.OrderStatusPending,
		TotalAmount: price("30.00"), ShippingAddress: "1 Main St",
	}, nil)
	orderItems.On("ListByOrderID", mock.Anything, int64(101)).Return([]model.OrderItem{
		{OrderID: 101, ProductID: 10, ProductNameSnapshot: "Coffee Mug", UnitPriceSnapshot: price("10.00"), Quantity: 3},
	}, nil)

	out, err := uc.GetMyOrderDetail(context.Background(), 7, 101)
	assert.NoError(t, err)
	assert.Equal(t, "a2c4", out.OrderNumber)
	assert.True(t, out.TotalAmount.Equal(price("30.00")))
	assert.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].UnitPrice.Equal(price("10.00")))
}

func TestGetMyOrderDetail_OtherUsersOrderIsNotFound(t *testing.T) {
	orders := new(OrderRepoMock)
	orderItems := new(OrderItemRepoMock)
	uc := usecase.NewOrderUsecase(orders, orderItems)

	// order belongs to user 8
	orders.On("FindByID", mock.Anything, int64(101)).Return(model.Order{
		ID: 101, UserID: 8,
	}, nil)

	_, err := uc.GetMyOrderDetail(context.Background(), 7, 101)
	assertErrContains(t, err, "not found")

	orderItems.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestGetMyOrderDetail_Missing(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(orders, new(OrderItemRepoMock))

	orders.On("FindByID", mock.Anything, int64(999)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetMyOrderDetail(context.Background(), 7, 999)
	assertErrContains(t, err, "not found")
}

func TestListMyOrders_Success(t *testing.T) {
	orders := new(OrderRepoMock)
	orderItems := new(OrderItemRepoMock)
	uc := usecase.NewOrderUsecase(orders, orderItems)

	orders.On("ListByUserID", mock.Anything, int64(7), 1, 20).Return([]model.Order{
		{ID: 102, UserID: 7, Status: model.OrderStatusPaid, TotalAmount: price("12.50")},
		{ID: 101, UserID: 7, Status: model.OrderStatusPending, TotalAmount: price("30.00")},
	}, int64(2), nil)
	orderItems.On("ListByOrderID", mock.Anything, int64(102)).Return([]model.OrderItem{}, nil)
	orderItems.On("ListByOrderID", mock.Anything, int64(101)).Return([]model.OrderItem{}, nil)

	out, err := uc.ListMyOrders(context.Background(), 7, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)
	assert.Len(t, out.Items, 2)
}
