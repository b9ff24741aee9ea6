package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/primestore/backend/internal/models"
)

// ListQuery is a pre-validated catalog query: Sort is a column name from
// the service's allow-list and Order is "asc" or "desc".
type ListQuery struct {
	Category string
	Search   string
	Sort     string
	Order    string
	Offset   int
	Limit    int
}

func (r *GormRepo) applyProductFilter(tx *gorm.DB, q ListQuery) *gorm.DB {
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return tx
}

func (r *GormRepo) ListProducts(ctx context.Context, q ListQuery) (int64, []models.Product, error) {
	var total int64
	if err := r.applyProductFilter(r.DB.WithContext(ctx).Model(&models.Product{}), q).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := r.applyProductFilter(r.DB.WithContext(ctx).Model(&models.Product{}), q).
		Order(fmt.Sprintf("%s %s", q.Sort, strings.ToUpper(q.Order))).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
