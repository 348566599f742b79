// internal/services/tracker_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pricetrail/pricetrail-backend/internal/models"
	"github.com/pricetrail/pricetrail-backend/internal/utils"
)

// TrackerService is the ingestion side of the tracker: it registers products
// and appends price observations to their history.
type TrackerService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name       string                 `json:"name" validate:"required,min=1,max=255"`
	Category   string                 `json:"category" validate:"required,max=100"`
	ProductURL string                 `json:"product_url" validate:"omitempty,url"`
	ImageURL   string                 `json:"image_url" validate:"omitempty,url"`
	Tags       []string               `json:"tags,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

type RecordPriceRequest struct {
	Price      float64    `json:"price" validate:"min=0"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

func NewTrackerService(db *gorm.DB) *TrackerService {
	return &TrackerService{db: db}
}

func (s *TrackerService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product := &models.Product{
		Name:       req.Name,
		Category:   req.Category,
		ProductURL: req.ProductURL,
		ImageURL:   req.ImageURL,
		Tags:       req.Tags,
		Metadata:   models.JSONB(req.Metadata),
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// RecordPrice appends a price observation for a product. Observations are
// append-only; when no timestamp is supplied the current time is used.
func (s *TrackerService) RecordPrice(productID uuid.UUID, req *RecordPriceRequest) (*models.PriceRecord, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	recordedAt := time.Now()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	record := &models.PriceRecord{
		ProductID:  productID,
		Price:      req.Price,
		RecordedAt: recordedAt,
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to record price: %w", err)
	}

	return record, nil
}

// ListProducts is the tracker-side product listing. Unlike the public search
// endpoint it is paginated, since the tracked catalog can grow without bound.
func (s *TrackerService) ListProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchTerm)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "name", "category"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// SetProductImage stores the uploaded image URL on the product.
func (s *TrackerService) SetProductImage(productID uuid.UUID, imageURL string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&product).Update("image_url", imageURL).Error; err != nil {
		return nil, fmt.Errorf("failed to update product image: %w", err)
	}

	return &product, nil
}
