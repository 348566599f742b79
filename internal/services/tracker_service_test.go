// internal/services/tracker_service_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricetrail/pricetrail-backend/internal/utils"
)

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrackerService(db)

	product, err := svc.CreateProduct(&CreateProductRequest{
		Name:       "Widget Pro",
		Category:   "gadgets",
		ProductURL: "https://shop.example.com/widget-pro",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "Widget Pro", product.Name)
}

func TestCreateProductValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrackerService(db)

	_, err := svc.CreateProduct(&CreateProductRequest{Category: "gadgets"})
	assert.Error(t, err)

	_, err = svc.CreateProduct(&CreateProductRequest{
		Name:       "Widget Pro",
		Category:   "gadgets",
		ProductURL: "not a url",
	})
	assert.Error(t, err)
}

func TestRecordPriceAppendsObservation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrackerService(db)
	catalog := NewCatalogService(db)

	product := seedProduct(t, db, "Widget Pro", "gadgets")

	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.RecordPrice(product.ID, &RecordPriceRequest{Price: 100, RecordedAt: &at})
	require.NoError(t, err)

	later := at.AddDate(0, 1, 0)
	_, err = svc.RecordPrice(product.ID, &RecordPriceRequest{Price: 150, RecordedAt: &later})
	require.NoError(t, err)

	history, err := catalog.PriceHistory(product.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 100.0, history[0].Price)
	assert.Equal(t, 150.0, history[1].Price)
}

func TestRecordPriceDefaultsToNow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrackerService(db)

	product := seedProduct(t, db, "Widget Pro", "gadgets")

	record, err := svc.RecordPrice(product.ID, &RecordPriceRequest{Price: 9.99})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), record.RecordedAt, time.Minute)
}

func TestRecordPriceRejectsNegative(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrackerService(db)

	product := seedProduct(t, db, "Widget Pro", "gadgets")

	_, err := svc.RecordPrice(product.ID, &RecordPriceRequest{Price: -1})
	assert.Error(t, err)
}

func TestRecordPriceUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrackerService(db)

	_, err := svc.RecordPrice(uuid.New(), &RecordPriceRequest{Price: 10})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProductsPaginated(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrackerService(db)

	for i := 0; i < 25; i++ {
		seedProduct(t, db, fmt.Sprintf("Widget %02d", i), "gadgets")
	}

	products, total, err := svc.ListProducts(utils.PaginationParams{
		Page: 1, Limit: 10, Sort: "name", Order: "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, products, 10)

	secondPage, _, err := svc.ListProducts(utils.PaginationParams{
		Page: 2, Limit: 10, Sort: "name", Order: "asc",
	})
	require.NoError(t, err)
	require.Len(t, secondPage, 10)
	assert.NotEqual(t, products[0].ID, secondPage[0].ID)
}

func TestListProductsFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrackerService(db)

	seedProduct(t, db, "Widget Pro", "gadgets")
	seedProduct(t, db, "Desk", "furniture")

	products, total, err := svc.ListProducts(utils.PaginationParams{
		Page: 1, Limit: 10, Order: "desc", Category: "furniture",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "Desk", products[0].Name)

	_, total, err = svc.ListProducts(utils.PaginationParams{
		Page: 1, Limit: 10, Order: "desc", Search: "widget",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
