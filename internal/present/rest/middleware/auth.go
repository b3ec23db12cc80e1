package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/vitrineapp/vitrine/internal/present/rest/presenter"
	"github.com/vitrineapp/vitrine/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// RequireOperator gates the back-office surface behind the operator bearer
// token. The public page and preview websocket stay outside this group.
func (m *AuthMiddleware) RequireOperator(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.RequireOperator")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")
		if authHeader == "" {
			return presenter.Unauthorized(c, "missing authorization header")
		}

		split := strings.Split(authHeader, " ")
		if len(split) != 2 {
			span.RecordError(fmt.Errorf("invalid authentication header"))
			return presenter.Unauthorized(c, "invalid authorization header")
		}

		authType, token := split[0], split[1]
		if authType != "Bearer" {
			span.RecordError(fmt.Errorf("only Bearer is acceptable"))
			return presenter.Unauthorized(c, "invalid authorization header")
		}

		if err := m.auth.ValidateOperatorToken(ctx, token); err != nil {
			span.RecordError(errors.Wrap(err, "AuthMiddleware.RequireOperator: token validation failed"))
			return presenter.Unauthorized(c, "invalid operator token")
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
