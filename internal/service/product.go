package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/primestore/backend/internal/apperr"
	"github.com/primestore/backend/internal/events"
	"github.com/primestore/backend/internal/logging"
	"github.com/primestore/backend/internal/models"
	"github.com/primestore/backend/internal/repo"
	"github.com/primestore/backend/internal/search"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// sortColumns is the allow-list of sortable fields; keys are the wire
// names, values the column names. Anything else falls back to id.
var sortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"price":     "price",
	"rating":    "rating",
	"createdAt": "created_at",
}

type ProductService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Indexer  *search.Indexer
}

type ListParams struct {
	Category string
	Search   string
	Page     int
	Limit    int
	Sort     string
	Order    string
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type ProductList struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// UpdateProductInput carries the recognized fields of a partial update;
// nil means "not provided". Unknown payload keys never reach this struct.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	Price          *int64
	OriginalPrice  *int64
	Image          *string
	Images         *[]string
	Category       *string
	Stock          *int
	Brand          *string
	IsPrime        *bool
	Discount       *int
	Specifications *map[string]string
}

func (p ListParams) normalize() (repo.ListQuery, int, int) {
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	column, ok := sortColumns[p.Sort]
	if !ok {
		column = "id"
	}
	order := "asc"
	if strings.EqualFold(p.Order, "desc") {
		order = "desc"
	}

	return repo.ListQuery{
		Category: p.Category,
		Search:   p.Search,
		Sort:     column,
		Order:    order,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}, page, limit
}

func (s *ProductService) List(ctx context.Context, params ListParams) (*ProductList, error) {
	q, page, limit := params.normalize()

	total, items, err := s.Repo.ListProducts(ctx, q)
	if err != nil {
		return nil, err
	}

	for i := range items {
		normalizeProduct(&items[i])
	}

	return &ProductList{
		Products: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product", id)
		}
		return nil, err
	}
	normalizeProduct(product)
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.create")

	normalizeProduct(product)
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.syncIndex(ctx, product)
	s.publish(ctx, product.ID, map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})

	l.Info("product_created", "product_id", product.ID)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, in UpdateProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.update")

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !applyUpdate(product, in) {
		return nil, apperr.BadRequest("No fields to update")
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.syncIndex(ctx, product)
	s.publish(ctx, product.ID, map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})

	l.Info("product_updated", "product_id", product.ID)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "product.delete")

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product", id)
		}
		return err
	}

	s.dropIndex(ctx, id)
	s.publish(ctx, id, map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	l.Info("product_deleted", "product_id", id)
	return nil
}

// applyUpdate copies the provided fields onto the product and reports
// whether anything was provided at all.
func applyUpdate(p *models.Product, in UpdateProductInput) bool {
	touched := false

	if in.Name != nil {
		p.Name = *in.Name
		touched = true
	}
	if in.Description != nil {
		p.Description = in.Description
		touched = true
	}
	if in.Price != nil {
		p.Price = *in.Price
		touched = true
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = in.OriginalPrice
		touched = true
	}
	if in.Image != nil {
		p.Image = in.Image
		touched = true
	}
	if in.Images != nil {
		p.Images = *in.Images
		touched = true
	}
	if in.Category != nil {
		p.Category = in.Category
		touched = true
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
		touched = true
	}
	if in.Brand != nil {
		p.Brand = in.Brand
		touched = true
	}
	if in.IsPrime != nil {
		p.IsPrime = *in.IsPrime
		touched = true
	}
	if in.Discount != nil {
		p.Discount = in.Discount
		touched = true
	}
	if in.Specifications != nil {
		p.Specifications = *in.Specifications
		touched = true
	}
	if touched {
		normalizeProduct(p)
	}
	return touched
}

// normalizeProduct keeps the collection fields non-nil so they serialize
// as [] and {} rather than null.
func normalizeProduct(p *models.Product) {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Specifications == nil {
		p.Specifications = map[string]string{}
	}
}

func (s *ProductService) publish(ctx context.Context, id uint, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(id), event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", events.TopicProductEvents, "error", err)
	}
}

func (s *ProductService) syncIndex(ctx context.Context, p *models.Product) {
	if err := s.Indexer.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "product_id", p.ID, "error", err)
	}
}

func (s *ProductService) dropIndex(ctx context.Context, id uint) {
	if err := s.Indexer.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("search_delete_failed", "product_id", id, "error", err)
	}
}
