package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/tillpoint/internal/application/service"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/request"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/response"
)

// AuthHandler handles PIN login and logout
type AuthHandler struct {
	authService *service.AuthService
	cartService *service.CartService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, cartService *service.CartService) *AuthHandler {
	return &AuthHandler{authService: authService, cartService: cartService}
}

// Login handles cashier login
// @Summary Login
// @Description Authenticate a cashier by PIN and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "PIN"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), req.PIN)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"cashier":      output.Cashier,
		"access_token": output.AccessToken,
		"token_type":   "Bearer",
	})
}

// Logout drops the session's cart. The token simply expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	h.cartService.Discard(session.ID)
	response.OK(c, "Logged out", nil)
}

// Me returns the current session
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	response.OK(c, "Session retrieved", gin.H{
		"cashier_id": session.CashierID,
		"name":       session.CashierName,
		"role":       session.Role,
	})
}
