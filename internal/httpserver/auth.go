package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/primestore/backend/internal/apperr"
	"github.com/primestore/backend/internal/logging"
	authmw "github.com/primestore/backend/internal/middleware/auth"
	"github.com/primestore/backend/internal/models"
	"github.com/primestore/backend/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_bind_failed", "error", err)
		return apperr.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: res.User, Token: res.Token})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_bind_failed", "error", err)
		return apperr.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{User: res.User, Token: res.Token})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	if user := authmw.UserFrom(c); user != nil {
		h.Svc.Logout(c.Request().Context(), user.ID)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}
