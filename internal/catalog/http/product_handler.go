// Package http provides HTTP handlers for the product catalog.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/catalog/http/dto"
	catalogUseCase "github.com/allisson/vmadmin/internal/catalog/usecase"
	apperrors "github.com/allisson/vmadmin/internal/errors"
	"github.com/allisson/vmadmin/internal/httputil"
	customValidation "github.com/allisson/vmadmin/internal/validation"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	productUseCase catalogUseCase.ProductUseCase
	logger         *slog.Logger
}

// NewProductHandler creates a new product handler with required dependencies.
func NewProductHandler(productUseCase catalogUseCase.ProductUseCase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		logger:         logger,
	}
}

// ListHandler returns every product, newest first.
// GET /get-products - Public.
// GET /v1/products - Requires webhook_receive permission.
func (h *ProductHandler) ListHandler(c *gin.Context) {
	products, err := h.productUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductsToListResponse(products))
}

// CreateHandler creates a product.
// POST /v1/products - Requires api_access permission.
func (h *ProductHandler) CreateHandler(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	product, err := h.productUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapProductToResponse(product))
}

// UpdateHandler replaces the writable fields of a product.
// PUT /v1/products/:id - Requires api_access permission.
func (h *ProductHandler) UpdateHandler(c *gin.Context) {
	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	product, err := h.productUseCase.Update(c.Request.Context(), productID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductToResponse(product))
}

// DeleteHandler removes a product.
// DELETE /v1/products/:id - Requires api_access permission.
func (h *ProductHandler) DeleteHandler(c *gin.Context) {
	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	if err := h.productUseCase.Delete(c.Request.Context(), productID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleStatusHandler flips a product between active and inactive.
// POST /v1/products/:id/toggle-status - Requires api_access permission.
func (h *ProductHandler) ToggleStatusHandler(c *gin.Context) {
	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	product, err := h.productUseCase.ToggleStatus(c.Request.Context(), productID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductToResponse(product))
}

func (h *ProductHandler) parseProductID(c *gin.Context) (uuid.UUID, bool) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("invalid product id format: must be a valid UUID"), h.logger)
		return uuid.Nil, false
	}
	return productID, true
}
