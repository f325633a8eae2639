package handlers

import (
	"github.com/docgen/backend/internal/config"
	"github.com/docgen/backend/internal/middleware"
	"github.com/docgen/backend/internal/services"
	"github.com/docgen/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, jwtCfg),
	}
}

// SignUp registers a new member
// POST /authentication/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req services.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	id, err := h.authService.SignUp(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"id": id}, "member registered")
}

// SignIn authenticates a member and returns a token pair
// POST /authentication/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req services.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tokens, err := h.authService.SignIn(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tokens, "signed in")
}

// SignOut revokes the member's refresh tokens
// POST /authentication/signout
func (h *AuthHandler) SignOut(c *gin.Context) {
	memberID := middleware.GetMemberID(c)
	if err := h.authService.SignOut(memberID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "signed out")
}

// Refresh rotates a refresh token into a new token pair
// POST /authentication/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req services.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tokens, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tokens, "token refreshed")
}
