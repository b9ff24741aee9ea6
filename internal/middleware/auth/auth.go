// Package auth guards protected routes: it verifies the bearer token,
// loads the user it names and attaches it to the request context.
package auth

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/primestore/backend/internal/apperr"
	"github.com/primestore/backend/internal/models"
	"github.com/primestore/backend/internal/repo"
	"github.com/primestore/backend/internal/tokens"
)

// ContextKey is where the authenticated user lands on the echo context.
const ContextKey = "user"

type Middleware struct {
	Issuer *tokens.Issuer
	Repo   *repo.GormRepo
}

func New(issuer *tokens.Issuer, r *repo.GormRepo) *Middleware {
	return &Middleware{Issuer: issuer, Repo: r}
}

// RequireAuth authenticates the request. All verification failures report
// the same 401 so the client learns nothing about why the token failed.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return apperr.Unauthorized("Authentication token required")
		}

		claims, err := m.Issuer.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return apperr.Unauthorized("Invalid or expired token")
		}

		user, err := m.Repo.GetUserByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Unauthorized("Invalid token")
			}
			return err
		}

		c.Set(ContextKey, user)
		return next(c)
	}
}

// RequireAdmin gates admin-only operations. It must be chained after
// RequireAuth; without an attached user it denies.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := UserFrom(c)
		if user == nil || user.Role != "admin" {
			return apperr.Forbidden("Admin access required")
		}
		return next(c)
	}
}

// UserFrom returns the authenticated user attached by RequireAuth, or nil.
func UserFrom(c echo.Context) *models.User {
	if u, ok := c.Get(ContextKey).(*models.User); ok {
		return u
	}
	return nil
}
