package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primestore/backend/internal/apperr"
	"github.com/primestore/backend/internal/models"
)

func TestProductService_List_Pagination(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		seedProduct(t, env.DB, models.Product{Name: "Widget", Price: 100})
	}

	list, err := env.Product.List(ctx, ListParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list.Products, 10)
	assert.Equal(t, 2, list.Pagination.Page)
	assert.Equal(t, 10, list.Pagination.Limit)
	assert.Equal(t, int64(25), list.Pagination.Total)
	assert.Equal(t, 3, list.Pagination.TotalPages)

	// page 2 continues where page 1 stopped
	assert.Equal(t, uint(11), list.Products[0].ID)
}

func TestProductService_List_Defaults(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seedProduct(t, env.DB, models.Product{Name: "Widget", Price: 100})

	list, err := env.Product.List(ctx, ListParams{Page: 0, Limit: -5})
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, list.Pagination.Page)
	assert.Equal(t, DefaultLimit, list.Pagination.Limit)
}

func TestProductService_List_LimitClamped(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seedProduct(t, env.DB, models.Product{Name: "Widget", Price: 100})

	list, err := env.Product.List(ctx, ListParams{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, list.Pagination.Limit)
}

func TestProductService_List_Filters(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seedProduct(t, env.DB, models.Product{
		Name: "Gaming Laptop", Price: 150000, Category: strPtr("electronics"),
	})
	seedProduct(t, env.DB, models.Product{
		Name: "Laptop Sleeve", Price: 2500, Category: strPtr("accessories"),
	})
	seedProduct(t, env.DB, models.Product{
		Name: "Office Chair", Price: 20000, Category: strPtr("electronics"),
		Description: strPtr("Not actually a laptop"),
	})

	// category and search combine with AND
	list, err := env.Product.List(ctx, ListParams{Category: "electronics", Search: "laptop"})
	require.NoError(t, err)
	require.Len(t, list.Products, 2)
	assert.Equal(t, int64(2), list.Pagination.Total)

	// search is case-insensitive and matches the description too
	list, err = env.Product.List(ctx, ListParams{Search: "LAPTOP"})
	require.NoError(t, err)
	assert.Len(t, list.Products, 3)
}

func TestProductService_List_Sorting(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seedProduct(t, env.DB, models.Product{Name: "Banana", Price: 300})
	seedProduct(t, env.DB, models.Product{Name: "Apple", Price: 200})
	seedProduct(t, env.DB, models.Product{Name: "Cherry", Price: 100})

	list, err := env.Product.List(ctx, ListParams{Sort: "price", Order: "desc"})
	require.NoError(t, err)
	require.Len(t, list.Products, 3)
	assert.Equal(t, int64(300), list.Products[0].Price)
	assert.Equal(t, int64(100), list.Products[2].Price)

	// unsupported sort falls back to id ascending
	list, err = env.Product.List(ctx, ListParams{Sort: "password"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), list.Products[0].ID)
	assert.Equal(t, uint(3), list.Products[2].ID)
}

func TestProductService_GetByID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seeded := seedProduct(t, env.DB, models.Product{Name: "Widget", Price: 100})

	got, err := env.Product.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.NotNil(t, got.Images)
	assert.NotNil(t, got.Specifications)

	_, err = env.Product.GetByID(ctx, 999)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 404, ae.Status)
	assert.Equal(t, "Product with ID 999 does not exist", ae.Message)
}

func TestProductService_Create(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.Product.Create(ctx, &models.Product{
		Name:  "Mechanical Keyboard",
		Price: 8900,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, []string{}, created.Images)
	assert.Equal(t, map[string]string{}, created.Specifications)
}

func TestProductService_Update_Partial(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seeded := seedProduct(t, env.DB, models.Product{
		Name:  "Widget",
		Price: 100,
		Brand: strPtr("Acme"),
	})

	updated, err := env.Product.Update(ctx, seeded.ID, UpdateProductInput{
		Price: int64Ptr(250),
		Stock: intPtr(7),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(250), updated.Price)
	assert.Equal(t, 7, updated.Stock)

	// untouched fields survive
	assert.Equal(t, "Widget", updated.Name)
	require.NotNil(t, updated.Brand)
	assert.Equal(t, "Acme", *updated.Brand)

	persisted, err := env.Product.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), persisted.Price)
}

func TestProductService_Update_NoFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seeded := seedProduct(t, env.DB, models.Product{Name: "Widget", Price: 100})

	_, err := env.Product.Update(ctx, seeded.ID, UpdateProductInput{})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 400, ae.Status)
	assert.Equal(t, "No fields to update", ae.Message)
}

func TestProductService_Update_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.Product.Update(context.Background(), 404, UpdateProductInput{Price: int64Ptr(1)})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 404, ae.Status)
}

func TestProductService_Delete(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seeded := seedProduct(t, env.DB, models.Product{Name: "Widget", Price: 100})

	require.NoError(t, env.Product.Delete(ctx, seeded.ID))

	_, err := env.Product.GetByID(ctx, seeded.ID)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 404, ae.Status)

	// deleting again reports not found, not success
	err = env.Product.Delete(ctx, seeded.ID)
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 404, ae.Status)
}
