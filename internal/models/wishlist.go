// internal/models/wishlist.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Wishlist struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name   string    `json:"name" gorm:"size:100;not null"`

	// Relationships
	Items []WishlistItem `json:"items,omitempty" gorm:"foreignKey:WishlistID"`
}

// WishlistItem links a wishlist to a product. Items are created on add and
// hard-deleted on remove; the composite unique index makes repeated adds
// idempotent instead of piling up duplicate rows.
type WishlistItem struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt  time.Time `json:"created_at"`
	WishlistID uuid.UUID `json:"wishlist_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_items_wishlist_product"`
	ProductID  uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_items_wishlist_product"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (i *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
