// internal/services/service_test.go
package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pricetrail/pricetrail-backend/internal/config"
	"github.com/pricetrail/pricetrail-backend/internal/models"
)

// setupTestDB opens an isolated in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.PriceRecord{},
		&models.Wishlist{},
		&models.WishlistItem{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 1,
			CookieName:     "session_token",
		},
	}
}

// seedProduct creates a product with one price observation per given
// (price, recordedAt) pair.
func seedProduct(t *testing.T, db *gorm.DB, name, category string, prices ...priceAt) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:     name,
		Category: category,
	}
	require.NoError(t, db.Create(product).Error)

	for _, p := range prices {
		require.NoError(t, db.Create(&models.PriceRecord{
			ProductID:  product.ID,
			Price:      p.price,
			RecordedAt: p.at,
		}).Error)
	}

	return product
}

type priceAt struct {
	price float64
	at    time.Time
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:  email,
		Name:   "Test User",
		Status: models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("correct-horse-9"))
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Wishlist{UserID: user.ID, Name: "My Wishlist"}).Error)

	return user
}
