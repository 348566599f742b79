// internal/services/catalog_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pricetrail/pricetrail-backend/internal/models"
)

const autocompleteLimit = 10

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ProductSearchResult is one enriched row of the search output: the product
// plus its aggregated price trend and the size of its recorded history.
type ProductSearchResult struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	ProductURL string    `json:"product_url"`
	ImageURL   string    `json:"image_url"`
	PriceTrend
	PriceHistoryCount int `json:"price_history_count"`
}

// PricePoint is a single entry of a product's price history as exposed over
// the API.
type PricePoint struct {
	Price float64   `json:"price"`
	Date  time.Time `json:"date"`
}

// SearchProducts returns every product whose name contains the query
// case-insensitively, enriched with its price trend. An empty query returns
// the full catalog. Products without any price observation are included with
// a nil current price. Results are not paginated.
func (s *CatalogService) SearchProducts(query string) ([]ProductSearchResult, error) {
	dbQuery := s.db.Model(&models.Product{}).Preload("PriceHistory")

	if query = strings.TrimSpace(query); query != "" {
		searchTerm := "%" + strings.ToLower(query) + "%"
		dbQuery = dbQuery.Where("LOWER(name) LIKE ?", searchTerm)
	}

	var products []models.Product
	if err := dbQuery.Order("name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	results := make([]ProductSearchResult, 0, len(products))
	for _, product := range products {
		results = append(results, ProductSearchResult{
			ID:                product.ID,
			Name:              product.Name,
			Category:          product.Category,
			ProductURL:        product.ProductURL,
			ImageURL:          product.ImageURL,
			PriceTrend:        ComputePriceTrend(product.PriceHistory),
			PriceHistoryCount: len(product.PriceHistory),
		})
	}

	return results, nil
}

// Autocomplete returns up to ten product names containing the query
// case-insensitively, in store order.
func (s *CatalogService) Autocomplete(query string) ([]string, error) {
	searchTerm := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var names []string
	if err := s.db.Model(&models.Product{}).
		Where("LOWER(name) LIKE ?", searchTerm).
		Limit(autocompleteLimit).
		Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	return names, nil
}

// Categories returns the distinct product categories, sorted.
func (s *CatalogService) Categories() ([]string, error) {
	var categories []string
	if err := s.db.Model(&models.Product{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	return categories, nil
}

// PriceHistory returns a product's price observations ordered by date
// ascending. A product with no observations yields an empty history.
func (s *CatalogService) PriceHistory(productID uuid.UUID) ([]PricePoint, error) {
	var records []models.PriceRecord
	if err := s.db.Where("product_id = ?", productID).
		Order("recorded_at").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch price history: %w", err)
	}

	history := make([]PricePoint, 0, len(records))
	for _, record := range records {
		history = append(history, PricePoint{
			Price: record.Price,
			Date:  record.RecordedAt,
		})
	}

	return history, nil
}
