package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/apitoken/http/dto"
	tokenUseCase "github.com/allisson/vmadmin/internal/apitoken/usecase"
	apperrors "github.com/allisson/vmadmin/internal/errors"
	"github.com/allisson/vmadmin/internal/httputil"
	customValidation "github.com/allisson/vmadmin/internal/validation"
)

// TokenHandler handles HTTP requests for the caller's API tokens.
// The owner of every operation is the owner of the token that authenticated the request.
type TokenHandler struct {
	tokenUseCase tokenUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(tokenUseCase tokenUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// AccessHandler confirms the presented token is valid.
// GET /v1/access - Requires webhook_receive permission.
func (h *TokenHandler) AccessHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapPrincipalToAccessResponse(principal))
}

// ListHandler lists the caller's tokens, newest first.
// GET /v1/tokens - Requires api_access permission.
func (h *TokenHandler) ListHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	tokens, err := h.tokenUseCase.List(c.Request.Context(), principal.OwnerID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokensToListResponse(tokens))
}

// CreateHandler issues a new token for the caller.
// POST /v1/tokens - Requires api_access permission.
// Returns 201 Created with the raw token, which is never shown again.
func (h *TokenHandler) CreateHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.tokenUseCase.Create(c.Request.Context(), principal.OwnerID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateTokenResponse{
		TokenResponse: dto.MapTokenToResponse(output.Token),
		Token:         output.RawToken,
	})
}

// RevokeHandler deactivates one of the caller's tokens.
// POST /v1/tokens/:id/revoke - Requires api_access permission.
func (h *TokenHandler) RevokeHandler(c *gin.Context) {
	principal, tokenID, ok := h.ownerAndTokenID(c)
	if !ok {
		return
	}

	if err := h.tokenUseCase.Revoke(c.Request.Context(), principal, tokenID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteHandler permanently removes one of the caller's tokens.
// DELETE /v1/tokens/:id - Requires api_access permission.
func (h *TokenHandler) DeleteHandler(c *gin.Context) {
	principal, tokenID, ok := h.ownerAndTokenID(c)
	if !ok {
		return
	}

	if err := h.tokenUseCase.Delete(c.Request.Context(), principal, tokenID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TokenHandler) ownerAndTokenID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return uuid.Nil, uuid.Nil, false
	}

	tokenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("invalid token id format: must be a valid UUID"), h.logger)
		return uuid.Nil, uuid.Nil, false
	}

	return principal.OwnerID, tokenID, true
}
