package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/primestore/backend/internal/apperr"
	"github.com/primestore/backend/internal/logging"
	authmw "github.com/primestore/backend/internal/middleware/auth"
	"github.com/primestore/backend/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) userID(c echo.Context) (uint, error) {
	user := authmw.UserFrom(c)
	if user == nil {
		return 0, apperr.Unauthorized("")
	}
	return user.ID, nil
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	userID, err := h.userID(c)
	if err != nil {
		return err
	}

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_bind_failed", "error", err)
		return apperr.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cart, err := h.Svc.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Item added to cart", "cart": cart})
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	userID, err := h.userID(c)
	if err != nil {
		return err
	}

	productID, err := parseID(c.Param("productId"), "product")
	if err != nil {
		return err
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_bind_failed", "error", err)
		return apperr.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cart, err := h.Svc.UpdateItemQuantity(ctx, userID, productID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Cart updated", "cart": cart})
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return err
	}

	productID, err := parseID(c.Param("productId"), "product")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveItem(c.Request().Context(), userID, productID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Item removed from cart"})
}

func (h *CartHTTP) Clear(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Cart cleared"})
}
