// internal/services/wishlist_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pricetrail/pricetrail-backend/internal/models"
)

var (
	ErrWishlistNotFound     = errors.New("wishlist not found")
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrNotItemOwner         = errors.New("wishlist item does not belong to this user")
)

type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// WishlistItemView is one wishlist entry enriched with its product and the
// product's current price trend.
type WishlistItemView struct {
	ID      uuid.UUID      `json:"id"`
	Product models.Product `json:"product"`
	PriceTrend
}

type WishlistView struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	Items      []WishlistItemView `json:"items"`
	TotalPrice float64            `json:"total_price"`
}

// Get returns the user's wishlist with each item's price trend and a running
// total of current prices. Items whose product has no recorded price
// contribute zero to the total.
func (s *WishlistService) Get(userID uuid.UUID) (*WishlistView, error) {
	wishlist, err := s.findByUser(userID)
	if err != nil {
		return nil, err
	}

	var items []models.WishlistItem
	if err := s.db.Where("wishlist_id = ?", wishlist.ID).
		Preload("Product").
		Preload("Product.PriceHistory").
		Order("created_at").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch wishlist items: %w", err)
	}

	view := &WishlistView{
		ID:    wishlist.ID,
		Name:  wishlist.Name,
		Items: make([]WishlistItemView, 0, len(items)),
	}

	for _, item := range items {
		trend := ComputePriceTrend(item.Product.PriceHistory)
		item.Product.PriceHistory = nil
		view.Items = append(view.Items, WishlistItemView{
			ID:         item.ID,
			Product:    item.Product,
			PriceTrend: trend,
		})
		view.TotalPrice += trend.ContributionToTotal()
	}

	return view, nil
}

// Add links a product to the user's wishlist. Adding the same product twice
// is a no-op rather than a duplicate row.
func (s *WishlistService) Add(userID, productID uuid.UUID) (*models.WishlistItem, error) {
	wishlist, err := s.findByUser(userID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	item := models.WishlistItem{
		WishlistID: wishlist.ID,
		ProductID:  productID,
	}
	if err := s.db.Where(models.WishlistItem{WishlistID: wishlist.ID, ProductID: productID}).
		FirstOrCreate(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return &item, nil
}

// Remove deletes an item by id, but only if it belongs to the requesting
// user's wishlist.
func (s *WishlistService) Remove(userID, itemID uuid.UUID) error {
	wishlist, err := s.findByUser(userID)
	if err != nil {
		return err
	}

	var item models.WishlistItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWishlistItemNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if item.WishlistID != wishlist.ID {
		return ErrNotItemOwner
	}

	if err := s.db.Delete(&item).Error; err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	return nil
}

func (s *WishlistService) findByUser(userID uuid.UUID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := s.db.Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWishlistNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &wishlist, nil
}
