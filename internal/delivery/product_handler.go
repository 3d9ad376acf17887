package delivery

import (
	"errors"
	"net/http"

	"github.com/BitSparkCode/online-shop-api/internal/domain"
	"github.com/BitSparkCode/online-shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

// ProductRequest uses pointers so that a zero price or category 0 still
// counts as present.
type ProductRequest struct {
	Name       string   `json:"name"       binding:"required"`
	Price      *float64 `json:"price"      binding:"required"`
	CategoryID *int64   `json:"categoryId" binding:"required"`
}

func (r ProductRequest) toProduct(id int64) *domain.Product {
	return &domain.Product{
		ID:         id,
		Name:       r.Name,
		Price:      *r.Price,
		CategoryID: *r.CategoryID,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProductByID)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		h.log.WithField("handler", "ListProducts").Errorf("Failed to list products: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "CreateProduct")
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind JSON for create product: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	created, err := h.useCase.CreateProduct(c.Request.Context(), req.toProduct(0))
	if err != nil {
		handlerLogger.Errorf("Failed to create product '%s': %v", req.Name, err)
		c.JSON(mapErrorToStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "GetProductByID")
	id, ok := parseID(c)
	if !ok {
		handlerLogger.Warnf("Invalid product ID parameter: %s", c.Param("id"))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid product ID format"})
		return
	}

	product, err := h.useCase.GetProductByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusOK, MessageResponse{Message: "Product not found"})
			return
		}
		handlerLogger.Errorf("Failed to get product by ID %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "UpdateProduct")
	id, ok := parseID(c)
	if !ok {
		handlerLogger.Warnf("Invalid product ID parameter for update: %s", c.Param("id"))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid product ID format"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind JSON for update product ID %d: %v", id, err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	updated, err := h.useCase.UpdateProduct(c.Request.Context(), req.toProduct(id))
	if err != nil {
		handlerLogger.Errorf("Failed to update product ID %d: %v", id, err)
		c.JSON(mapErrorToStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "DeleteProduct")
	id, ok := parseID(c)
	if !ok {
		handlerLogger.Warnf("Invalid product ID parameter for delete: %s", c.Param("id"))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid product ID format"})
		return
	}

	if err := h.useCase.DeleteProduct(c.Request.Context(), id); err != nil {
		handlerLogger.Errorf("Failed to delete product ID %d: %v", id, err)
		c.JSON(mapErrorToStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Product deleted"})
}
