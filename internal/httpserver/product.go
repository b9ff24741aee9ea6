package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/primestore/backend/internal/apperr"
	"github.com/primestore/backend/internal/logging"
	"github.com/primestore/backend/internal/models"
	"github.com/primestore/backend/internal/search"
	"github.com/primestore/backend/internal/service"
)

type ProductHTTP struct {
	Svc     *service.ProductService
	Indexer *search.Indexer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseID(s, resource string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.BadRequest("Invalid " + resource + " ID")
	}
	return uint(id), nil
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	params := service.ListParams{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     parseIntDefault(c.QueryParam("page"), service.DefaultPage),
		Limit:    parseIntDefault(c.QueryParam("limit"), service.DefaultLimit),
		Sort:     c.QueryParam("sort"),
		Order:    c.QueryParam("order"),
	}

	list, err := h.Svc.List(ctx, params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ProductHTTP) Get(c echo.Context) error {
	id, err := parseID(c.Param("id"), "product")
	if err != nil {
		return err
	}

	product, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_bind_failed", "error", err)
		return apperr.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product := models.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          *req.Price,
		OriginalPrice:  req.OriginalPrice,
		Image:          req.Image,
		Images:         req.Images,
		Category:       req.Category,
		Brand:          req.Brand,
		Discount:       req.Discount,
		Specifications: req.Specifications,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsPrime != nil {
		product.IsPrime = *req.IsPrime
	}

	created, err := h.Svc.Create(ctx, &product)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := parseID(c.Param("id"), "product")
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_bind_failed", "error", err)
		return apperr.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.Svc.Update(ctx, id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	id, err := parseID(c.Param("id"), "product")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

// Search serves the optional full-text endpoint. With no Elasticsearch
// configured the route answers 503 rather than faking an empty result.
func (h *ProductHTTP) Search(c echo.Context) error {
	if !h.Indexer.Enabled() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if !search.ValidQuery(q) {
		return apperr.BadRequest("Search query is required")
	}

	page := parseIntDefault(c.QueryParam("page"), service.DefaultPage)
	limit := parseIntDefault(c.QueryParam("limit"), service.DefaultLimit)
	if page < 1 {
		page = service.DefaultPage
	}
	if limit < 1 {
		limit = service.DefaultLimit
	}
	if limit > service.MaxLimit {
		limit = service.MaxLimit
	}

	total, products, err := h.Indexer.Search(c.Request().Context(), q, (page-1)*limit, limit)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("search_failed", "error", err)
		return apperr.Internal("")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
