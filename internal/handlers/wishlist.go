// internal/handlers/wishlist.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pricetrail/pricetrail-backend/internal/services"
	"github.com/pricetrail/pricetrail-backend/internal/utils"
)

type WishlistHandler struct {
	wishlistService *services.WishlistService
}

func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
	}
}

// GET /wishlist
func (h *WishlistHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.wishlistService.Get(userID)
	if err != nil {
		if errors.Is(err, services.ErrWishlistNotFound) {
			utils.NotFoundResponse(c, err.Error())
			return
		}
		logrus.WithError(err).Error("Error fetching wishlist")
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"items":       view.Items,
		"total_price": view.TotalPrice,
	})
}

// POST /wishlist/add/:product_id
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid product ID")
		return
	}

	item, err := h.wishlistService.Add(userID, productID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrWishlistNotFound):
			utils.NotFoundResponse(c, err.Error())
		default:
			logrus.WithError(err).Error("Error adding wishlist item")
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"item": item,
	})
}

// POST /wishlist/remove/:item_id
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid item ID")
		return
	}

	if err := h.wishlistService.Remove(userID, itemID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotItemOwner):
			utils.ForbiddenResponse(c, err.Error())
		case errors.Is(err, services.ErrWishlistItemNotFound), errors.Is(err, services.ErrWishlistNotFound):
			utils.NotFoundResponse(c, err.Error())
		default:
			logrus.WithError(err).Error("Error removing wishlist item")
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, nil)
}

// currentUserID resolves the authenticated user id from the request context
// and writes the error response itself when it is missing or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "invalid user ID")
		return uuid.Nil, false
	}

	return userID, true
}
