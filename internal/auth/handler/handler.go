package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftmarket/catalog-service/internal/auth"
	"github.com/craftmarket/catalog-service/internal/httputil"
	"github.com/craftmarket/catalog-service/pkg/logger"
)

type AuthHandler struct {
	uc     auth.UseCase
	logger logger.ZapLogger
}

func NewAuthHandler(uc auth.UseCase, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: log,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /login: credentials in, bearer token out.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	token, admin, err := h.uc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		httputil.RespondError(c, h.logger, err, "An unexpected error occurred during login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    admin, // password column is never serialized
	})
}
