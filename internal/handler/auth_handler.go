package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectboard/internal/model"
	"projectboard/internal/service/auth"
)

const sessionMaxAge = 60 * 60 * 24 * 7

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	service *auth.Service
	logger  *zap.Logger
}

func NewAuthHandler(service *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// Login handles POST /login. On success it sets the bearer token and a
// plain role marker as HttpOnly, secure cookies with a one-week expiry.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Login: validation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "validationError",
			"error": gin.H{
				"status":  http.StatusBadRequest,
				"message": "Please provide valid email and password.",
			},
		})
		return
	}

	session, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "validationError",
				"error": gin.H{
					"status":  http.StatusBadRequest,
					"message": "Please provide valid email and password.",
				},
			})
			return
		}
		h.logger.Error("Login: failed to create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error": gin.H{
				"status":  http.StatusInternalServerError,
				"message": "Internal Server Error!",
			},
		})
		return
	}

	c.SetCookie("jwt", session.Token, sessionMaxAge, "/", "", true, true)
	c.SetCookie("userRole", session.Role, sessionMaxAge, "/", "", true, true)

	h.logger.Info("Login: success",
		zap.String("email", session.Email),
		zap.String("role", session.Role),
	)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Successfully Logged In.",
		"token":   session.Token,
		"user": model.User{
			Email: session.Email,
			Role:  session.Role,
		},
	})
}
