package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/primestore/backend/internal/metrics"
	authmw "github.com/primestore/backend/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	AuthMW         *authmw.Middleware
	Metrics        *metrics.Metrics
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewErrorHandler()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics.Handler())
	}

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.Logout, d.AuthMW.RequireAuth)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.List)
	products.GET("/search", d.ProductHandler.Search)
	products.GET("/:id", d.ProductHandler.Get)

	admin := products.Group("", d.AuthMW.RequireAuth, d.AuthMW.RequireAdmin)
	admin.POST("", d.ProductHandler.Create)
	admin.PUT("/:id", d.ProductHandler.Update)
	admin.DELETE("/:id", d.ProductHandler.Delete)

	cart := e.Group("/cart", d.AuthMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/items", d.CartHandler.AddItem)
	cart.PUT("/items/:productId", d.CartHandler.UpdateItem)
	cart.DELETE("/items/:productId", d.CartHandler.RemoveItem)
	cart.DELETE("", d.CartHandler.Clear)
}
