// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Product struct {
	BaseModel
	Name       string         `json:"name" gorm:"size:255;not null;index"`
	Category   string         `json:"category" gorm:"size:100;index"`
	ProductURL string         `json:"product_url" gorm:"size:2048"`
	ImageURL   string         `json:"image_url" gorm:"size:2048"`
	Tags       pq.StringArray `json:"tags,omitempty" gorm:"type:text[]"`
	Metadata   JSONB          `json:"metadata,omitempty" gorm:"type:jsonb"`

	// Relationships
	PriceHistory []PriceRecord `json:"price_history,omitempty" gorm:"foreignKey:ProductID"`
}

// PriceRecord is a single append-only price observation for a product.
// Observations are never updated or deleted.
type PriceRecord struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt  time.Time `json:"created_at"`
	ProductID  uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Price      float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	RecordedAt time.Time `json:"recorded_at" gorm:"not null;index"`
}

func (r *PriceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
