// internal/handlers/api_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pricetrail/pricetrail-backend/internal/config"
	"github.com/pricetrail/pricetrail-backend/internal/middleware"
	"github.com/pricetrail/pricetrail-backend/internal/models"
	"github.com/pricetrail/pricetrail-backend/internal/services"
	"github.com/pricetrail/pricetrail-backend/internal/utils"
)

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	cfg    *config.Config
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.PriceRecord{},
		&models.Wishlist{},
		&models.WishlistItem{},
	))
	suite.db = db

	suite.cfg = &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 1,
			CookieName:     "session_token",
		},
	}
	utils.SetJWTSecret(suite.cfg.JWT.SecretKey)

	authService := services.NewAuthService(db, suite.cfg)
	catalogService := services.NewCatalogService(db)
	wishlistService := services.NewWishlistService(db)

	authHandler := NewAuthHandler(authService, suite.cfg.JWT)
	catalogHandler := NewCatalogHandler(catalogService)
	wishlistHandler := NewWishlistHandler(wishlistService)

	r := gin.New()
	r.GET("/", catalogHandler.Home)
	r.GET("/autocomplete", catalogHandler.Autocomplete)
	r.GET("/search", catalogHandler.Search)
	r.GET("/product/:id/history", catalogHandler.PriceHistory)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	wishlist := r.Group("/wishlist")
	wishlist.Use(middleware.AuthRequired(suite.cfg.JWT.CookieName))
	{
		wishlist.GET("", wishlistHandler.Get)
		wishlist.POST("/add/:product_id", wishlistHandler.Add)
		wishlist.POST("/remove/:item_id", wishlistHandler.Remove)
	}
	suite.router = r
}

func (suite *APITestSuite) seedProduct(name, category string, prices ...float64) *models.Product {
	product := &models.Product{Name: name, Category: category}
	suite.Require().NoError(suite.db.Create(product).Error)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, price := range prices {
		suite.Require().NoError(suite.db.Create(&models.PriceRecord{
			ProductID:  product.ID,
			Price:      price,
			RecordedAt: base.AddDate(0, i, 0),
		}).Error)
	}

	return product
}

func (suite *APITestSuite) register(email string) []*http.Cookie {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": "correct-horse-9",
		"name":     "Test User",
	})
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusCreated, w.Code)

	return w.Result().Cookies()
}

func (suite *APITestSuite) doJSON(method, path string, cookies []*http.Cookie) (*httptest.ResponseRecorder, map[string]interface{}) {
	req, _ := http.NewRequest(method, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func (suite *APITestSuite) TestSearchEndpoint() {
	suite.seedProduct("Widget Pro", "gadgets", 100, 150)
	suite.seedProduct("Gizmo", "gadgets", 20)

	w, response := suite.doJSON("GET", "/search?query=wid", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), response["success"].(bool))

	products := response["products"].([]interface{})
	require.Len(suite.T(), products, 1)

	product := products[0].(map[string]interface{})
	assert.Equal(suite.T(), "Widget Pro", product["name"])
	assert.Equal(suite.T(), 150.0, product["current_price"])
	assert.Equal(suite.T(), 50.0, product["price_change"])
	assert.Equal(suite.T(), 50.0, product["price_change_pct"])
	assert.Equal(suite.T(), 2.0, product["price_history_count"])
}

func (suite *APITestSuite) TestSearchEmptyQueryReturnsEverything() {
	suite.seedProduct("Widget Pro", "gadgets", 100)
	suite.seedProduct("Gizmo", "gadgets")

	w, response := suite.doJSON("GET", "/search", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Len(suite.T(), response["products"].([]interface{}), 2)
}

func (suite *APITestSuite) TestHomeListsCategories() {
	suite.seedProduct("Widget Pro", "gadgets")
	suite.seedProduct("Desk", "furniture")

	w, response := suite.doJSON("GET", "/", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	categories := response["categories"].([]interface{})
	assert.Equal(suite.T(), []interface{}{"furniture", "gadgets"}, categories)
}

func (suite *APITestSuite) TestAutocompleteEndpoint() {
	for i := 0; i < 12; i++ {
		suite.seedProduct(fmt.Sprintf("Widget %02d", i), "gadgets")
	}

	w, response := suite.doJSON("GET", "/autocomplete?q=widget", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Len(suite.T(), response["suggestions"].([]interface{}), 10)
}

func (suite *APITestSuite) TestPriceHistoryEndpoint() {
	product := suite.seedProduct("Widget Pro", "gadgets", 100, 150)

	w, response := suite.doJSON("GET", "/product/"+product.ID.String()+"/history", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), response["success"].(bool))

	history := response["history"].([]interface{})
	require.Len(suite.T(), history, 2)
	first := history[0].(map[string]interface{})
	assert.Equal(suite.T(), 100.0, first["price"])
}

func (suite *APITestSuite) TestPriceHistoryInvalidID() {
	w, response := suite.doJSON("GET", "/product/not-a-uuid/history", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.False(suite.T(), response["success"].(bool))
}

func (suite *APITestSuite) TestWishlistRequiresAuth() {
	w, response := suite.doJSON("GET", "/wishlist", nil)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.False(suite.T(), response["success"].(bool))
}

func (suite *APITestSuite) TestWishlistFlow() {
	cookies := suite.register("alice@example.com")
	widget := suite.seedProduct("Widget Pro", "gadgets", 100, 150)
	unpriced := suite.seedProduct("Unpriced Thing", "misc")

	// Add both products.
	w, _ := suite.doJSON("POST", "/wishlist/add/"+widget.ID.String(), cookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	w, _ = suite.doJSON("POST", "/wishlist/add/"+unpriced.ID.String(), cookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// The unpriced product contributes nothing to the total.
	w, response := suite.doJSON("GET", "/wishlist", cookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), response["success"].(bool))
	items := response["items"].([]interface{})
	require.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), 150.0, response["total_price"])

	// Remove one item.
	itemID := items[0].(map[string]interface{})["id"].(string)
	w, _ = suite.doJSON("POST", "/wishlist/remove/"+itemID, cookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	_, response = suite.doJSON("GET", "/wishlist", cookies)
	assert.Len(suite.T(), response["items"].([]interface{}), 1)
}

func (suite *APITestSuite) TestWishlistRemoveForeignItemForbidden() {
	aliceCookies := suite.register("alice@example.com")
	malloryCookies := suite.register("mallory@example.com")
	widget := suite.seedProduct("Widget Pro", "gadgets", 100)

	w, _ := suite.doJSON("POST", "/wishlist/add/"+widget.ID.String(), aliceCookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	_, response := suite.doJSON("GET", "/wishlist", aliceCookies)
	items := response["items"].([]interface{})
	itemID := items[0].(map[string]interface{})["id"].(string)

	w, _ = suite.doJSON("POST", "/wishlist/remove/"+itemID, malloryCookies)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *APITestSuite) TestLoginSetsSessionCookie() {
	suite.register("alice@example.com")

	body, _ := json.Marshal(map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse-9",
	})
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var found bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == suite.cfg.JWT.CookieName && cookie.Value != "" {
			found = true
		}
	}
	assert.True(suite.T(), found, "login should set the session cookie")
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
