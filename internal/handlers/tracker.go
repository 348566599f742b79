// internal/handlers/tracker.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pricetrail/pricetrail-backend/internal/services"
	"github.com/pricetrail/pricetrail-backend/internal/utils"
)

type TrackerHandler struct {
	trackerService *services.TrackerService
	storageService *services.StorageService
}

func NewTrackerHandler(trackerService *services.TrackerService, storageService *services.StorageService) *TrackerHandler {
	return &TrackerHandler{
		trackerService: trackerService,
		storageService: storageService,
	}
}

// GET /tracker/products
func (h *TrackerHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.trackerService.ListProducts(params)
	if err != nil {
		logrus.WithError(err).Error("Error listing products")
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /tracker/products
func (h *TrackerHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid input")
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	product, err := h.trackerService.CreateProduct(&req)
	if err != nil {
		logrus.WithError(err).Error("Error creating product")
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"product": product,
	})
}

// POST /tracker/products/:id/prices
func (h *TrackerHandler) RecordPrice(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid product ID")
		return
	}

	var req services.RecordPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid input")
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	record, err := h.trackerService.RecordPrice(productID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, err.Error())
			return
		}
		logrus.WithError(err).Error("Error recording price")
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"record": record,
	})
}

// POST /tracker/products/:id/image
func (h *TrackerHandler) UploadProductImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid product ID")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "no image uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "failed to read image")
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	result, err := h.storageService.UploadFile(file, fileHeader, h.storageService.ProductImageUploadOptions())
	if err != nil {
		logrus.WithError(err).Error("Error uploading product image")
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	product, err := h.trackerService.SetProductImage(productID, result.URL)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, err.Error())
			return
		}
		logrus.WithError(err).Error("Error updating product image")
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
		"image":   result,
	})
}
