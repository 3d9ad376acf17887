package delivery

import (
	"errors"
	"net/http"

	"github.com/BitSparkCode/online-shop-api/internal/domain"
	"github.com/BitSparkCode/online-shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	useCase usecase.AuthUseCase
	log     *logrus.Logger
}

func NewAuthHandler(uc usecase.AuthUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		useCase: uc,
		log:     logger,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ResetPasswordRequest struct {
	Username    string `json:"username"    binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// RegisterPublicRoutes mounts the endpoints that need no token.
func (h *AuthHandler) RegisterPublicRoutes(router gin.IRouter) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
}

func (h *AuthHandler) RegisterProtectedRoutes(router gin.IRouter) {
	router.POST("/reset-password", h.ResetPassword)
}

func (h *AuthHandler) Register(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Register")
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind register request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.useCase.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		handlerLogger.Errorf("Failed to register user %s: %v", req.Username, err)
		c.JSON(mapErrorToStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	handlerLogger.Infof("User registered: ID %d", user.ID)
	c.JSON(http.StatusCreated, RegisterResponse{ID: user.ID, Username: user.Username, Role: user.Role})
}

func (h *AuthHandler) Login(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Login")
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind login request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	token, err := h.useCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			handlerLogger.Warnf("Authentication failed for %s", req.Username)
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
			return
		}
		handlerLogger.Errorf("Login for %s failed: %v", req.Username, err)
		c.JSON(mapErrorToStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// ResetPassword lets any authenticated caller set any user's password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "ResetPassword")
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind reset-password request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if _, err := h.useCase.ResetPassword(c.Request.Context(), req.Username, req.NewPassword); err != nil {
		handlerLogger.Errorf("Failed to reset password for %s: %v", req.Username, err)
		c.JSON(mapErrorToStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password reset successfully"})
}
