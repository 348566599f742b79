// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pricetrail/pricetrail-backend/internal/config"
	"github.com/pricetrail/pricetrail-backend/internal/services"
	"github.com/pricetrail/pricetrail-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	jwtConfig   config.JWTConfig
}

func NewAuthHandler(authService *services.AuthService, jwtConfig config.JWTConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtConfig:   jwtConfig,
	}
}

// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid input")
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	authResponse, err := h.authService.Register(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	h.setSessionCookie(c, authResponse.AccessToken, authResponse.ExpiresIn)

	utils.CreatedResponse(c, gin.H{
		"message": "registration successful",
		"user":    authResponse.User,
		"token":   authResponse.AccessToken,
	})
}

// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid input")
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	authResponse, err := h.authService.Login(&req)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	h.setSessionCookie(c, authResponse.AccessToken, authResponse.ExpiresIn)

	utils.SuccessResponse(c, gin.H{
		"message": "login successful",
		"user":    authResponse.User,
		"token":   authResponse.AccessToken,
	})
}

// GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.jwtConfig.CookieName, "", -1, "/", "", h.jwtConfig.CookieSecure, true)

	utils.SuccessResponse(c, gin.H{
		"message": "logged out",
	})
}

// GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "invalid user ID")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		utils.NotFoundResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user": user,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(h.jwtConfig.CookieName, token, maxAge, "/", "", h.jwtConfig.CookieSecure, true)
}
