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

func TestListPublicProducts_InvalidPage(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(CategoryRepoMock))

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 0, Limit: 12})
	assertErrContains(t, err, "invalid page")
}

func TestListPublicProducts_InvalidLimit(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(CategoryRepoMock))

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 101})
	assertErrContains(t, err, "invalid limit")
}

func TestListPublicProducts_Success(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(CategoryRepoMock))

	catID := int64(2)
	in := usecase.ListProductsInput{Page: 1, Limit: 12, Q: "mug", CategoryID: &catID, Sort: "new"}
	q := repo.ProductListQuery{Page: 1, Limit: 12, Q: "mug", CategoryID: &catID, Sort: "new"}

	items := []model.Product{
		{ID: 1, Name: "Coffee Mug", IsActive: true},
	}
	pRepo.On("ListPublic", mock.Anything, q).Return(items, int64(1), nil)

	out, err := uc.ListPublicProducts(ctx, in)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 12, out.Limit)
	assert.Len(t, out.Items, 1)

	pRepo.AssertExpectations(t)
}

func TestGetProductDetail_NotFoundWhenInactive(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(CategoryRepoMock))

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, IsActive: false}, nil)

	_, err := uc.GetProductDetail(context.Background(), 1)
	assertErrContains(t, err, "not found")
}

func TestGetProductDetail_WithRelatedProducts(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(CategoryRepoMock))

	catID := int64(2)
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Name: "Coffee Mug", CategoryID: &catID, IsActive: true,
	}, nil)
	pRepo.On("ListRelated", mock.Anything, catID, int64(1), 4).Return([]model.Product{
		{ID: 2, Name: "Tea Mug", IsActive: true},
	}, nil)

	out, err := uc.GetProductDetail(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Product.ID)
	assert.Len(t, out.Related, 1)

	pRepo.AssertExpectations(t)
}

func TestGetProductDetail_NoCategorySkipsRelated(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(CategoryRepoMock))

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Name: "Coffee Mug", IsActive: true,
	}, nil)

	out, err := uc.GetProductDetail(context.Background(), 1)
	assert.NoError(t, err)
	assert.Empty(t, out.Related)

	pRepo.AssertNotCalled(t, "ListRelated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListCategories(t *testing.T) {
	cRepo := new(CategoryRepoMock)
	uc := usecase.NewProductUsecase(new(ProductRepoMock), cRepo)

	cRepo.On("ListAll", mock.Anything).Return([]model.Category{
		{ID: 1, Name: "Kitchen"},
		{ID: 2, Name: "Office"},
	}, nil)

	out, err := uc.ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out, 2)
}
