package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allisson/vmadmin/internal/apitoken/domain"
	tokenUseCase "github.com/allisson/vmadmin/internal/apitoken/usecase"
	apperrors "github.com/allisson/vmadmin/internal/errors"
	"github.com/allisson/vmadmin/internal/httputil"
)

// AuthenticationMiddleware verifies the bearer token of the request and requires the given
// permission. An empty permission only checks the token itself.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
//
// Error handling:
//   - Missing or malformed header → 401 Unauthorized
//   - Malformed, unknown, inactive or expired token → 401 Unauthorized
//   - Missing permission or owner not approved → 403 Forbidden
//   - Other errors → 500 Internal Server Error
//
// The response body never names the specific reason; it is logged instead.
func AuthenticationMiddleware(
	tokenUseCase tokenUseCase.TokenUseCase,
	required domain.Permission,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		presented := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if presented == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		principal, err := tokenUseCase.Verify(c.Request.Context(), presented, required)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("reason", err.Error()),
				slog.String("permission", string(required)))
			httputil.HandleErrorGin(c, verificationError(err), logger)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("token_id", principal.TokenID.String()),
			slog.String("owner_id", principal.OwnerID.String()))

		c.Next()
	}
}

// verificationError turns an unknown token into an authentication failure so the gateway
// does not answer 404 for a credential it cannot find.
func verificationError(err error) error {
	if apperrors.Is(err, domain.ErrTokenNotFound) {
		return apperrors.Wrap(apperrors.ErrUnauthorized, err.Error())
	}
	return err
}
