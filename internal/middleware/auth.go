// Package middleware provides HTTP middleware components for the application.
// It includes authentication and authorization for the fiber web framework.
package middleware

import (
	"strings"

	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/services/auth"
	"github.com/llshivamsinghll/bank-wallet/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the user claims to the request context.
type AuthMiddleware struct {
	authService auth.Service
	log         logrus.FieldLogger
}

func NewAuthMiddleware(authService auth.Service, log logrus.FieldLogger) *AuthMiddleware {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AuthMiddleware{
		authService: authService,
		log:         log,
	}
}

// Handler validates the bearer token and stores the claims and user ID in
// the request locals.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	claims, err := m.authService.VerifyToken(c.UserContext(), tokenString)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"path":  c.Path(),
			"error": err.Error(),
		}).Debug("token rejected")
		return utils.Unauthorized(c, "invalid token")
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)

	return c.Next()
}

// AdminAuthMiddleware verifies that the request has valid admin claims.
// It must run after AuthMiddleware.Handler.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	if !claims.IsAdmin() {
		return utils.Forbidden(c, "insufficient permissions")
	}

	return c.Next()
}
