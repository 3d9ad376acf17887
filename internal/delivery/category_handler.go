package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BitSparkCode/online-shop-api/internal/domain"
	"github.com/BitSparkCode/online-shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.GET("/:id", h.GetCategoryByID)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

// parseID reads the :id path parameter. Only positive integers are accepted.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories(c.Request.Context())
	if err != nil {
		h.log.WithField("handler", "ListCategories").Errorf("Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "CreateCategory")
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind JSON for create category: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	created, err := h.useCase.CreateCategory(c.Request.Context(), &domain.Category{Name: req.Name})
	if err != nil {
		handlerLogger.Errorf("Failed to create category '%s': %v", req.Name, err)
		c.JSON(mapErrorToStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetCategoryByID answers an unknown id with 200 and a message body.
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "GetCategoryByID")
	id, ok := parseID(c)
	if !ok {
		handlerLogger.Warnf("Invalid category ID parameter: %s", c.Param("id"))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid category ID format"})
		return
	}

	category, err := h.useCase.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusOK, MessageResponse{Message: "Category not found"})
			return
		}
		handlerLogger.Errorf("Failed to get category by ID %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "UpdateCategory")
	id, ok := parseID(c)
	if !ok {
		handlerLogger.Warnf("Invalid category ID parameter for update: %s", c.Param("id"))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid category ID format"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind JSON for update category ID %d: %v", id, err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	updated, err := h.useCase.UpdateCategory(c.Request.Context(), &domain.Category{ID: id, Name: req.Name})
	if err != nil {
		handlerLogger.Errorf("Failed to update category ID %d: %v", id, err)
		c.JSON(mapErrorToStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "DeleteCategory")
	id, ok := parseID(c)
	if !ok {
		handlerLogger.Warnf("Invalid category ID parameter for delete: %s", c.Param("id"))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid category ID format"})
		return
	}

	if err := h.useCase.DeleteCategory(c.Request.Context(), id); err != nil {
		handlerLogger.Errorf("Failed to delete category ID %d: %v", id, err)
		c.JSON(mapErrorToStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Category deleted"})
}
