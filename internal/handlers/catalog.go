// internal/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pricetrail/pricetrail-backend/internal/services"
	"github.com/pricetrail/pricetrail-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /
// The home view only needs the category dropdown; a failed lookup degrades
// to an empty list rather than an error page.
func (h *CatalogHandler) Home(c *gin.Context) {
	categories, err := h.catalogService.Categories()
	if err != nil {
		logrus.WithError(err).Error("Error fetching categories")
		categories = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// GET /autocomplete?q=
// Failures degrade to an empty suggestion list instead of an error payload.
func (h *CatalogHandler) Autocomplete(c *gin.Context) {
	query := c.Query("q")

	suggestions, err := h.catalogService.Autocomplete(query)
	if err != nil {
		logrus.WithError(err).Error("Error fetching autocomplete suggestions")
		c.JSON(http.StatusInternalServerError, gin.H{"suggestions": []string{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GET /search?query=
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("query")

	products, err := h.catalogService.SearchProducts(query)
	if err != nil {
		logrus.WithError(err).Error("Search error")
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
	})
}

// GET /product/:id/history
func (h *CatalogHandler) PriceHistory(c *gin.Context) {
	idStr := c.Param("id")
	productID, err := uuid.Parse(idStr)
	if err != nil {
		utils.BadRequestResponse(c, "invalid product ID")
		return
	}

	history, err := h.catalogService.PriceHistory(productID)
	if err != nil {
		logrus.WithError(err).Error("Error fetching price history")
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": history,
	})
}
