package httpserver

import "github.com/primestore/backend/internal/service"

type RegisterRequest struct {
	Name     string  `json:"name"     validate:"required,min=2"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone"    validate:"omitempty,e164"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateProductRequest struct {
	Name           string            `json:"name"           validate:"required"`
	Description    *string           `json:"description"`
	Price          *int64            `json:"price"          validate:"required,gte=0"`
	OriginalPrice  *int64            `json:"originalPrice"  validate:"omitempty,gte=0"`
	Image          *string           `json:"image"`
	Images         []string          `json:"images"`
	Category       *string           `json:"category"`
	Stock          *int              `json:"stock"          validate:"omitempty,gte=0"`
	Brand          *string           `json:"brand"`
	IsPrime        *bool             `json:"isPrime"`
	Discount       *int              `json:"discount"       validate:"omitempty,gte=0,lte=100"`
	Specifications map[string]string `json:"specifications"`
}

// UpdateProductRequest is the allow-list for partial updates: nil means
// "not provided", unknown JSON keys are silently dropped by the decoder.
type UpdateProductRequest struct {
	Name           *string            `json:"name"`
	Description    *string            `json:"description"`
	Price          *int64             `json:"price"          validate:"omitempty,gte=0"`
	OriginalPrice  *int64             `json:"originalPrice"  validate:"omitempty,gte=0"`
	Image          *string            `json:"image"`
	Images         *[]string          `json:"images"`
	Category       *string            `json:"category"`
	Stock          *int               `json:"stock"          validate:"omitempty,gte=0"`
	Brand          *string            `json:"brand"`
	IsPrime        *bool              `json:"isPrime"`
	Discount       *int               `json:"discount"       validate:"omitempty,gte=0,lte=100"`
	Specifications *map[string]string `json:"specifications"`
}

func (r UpdateProductRequest) input() service.UpdateProductInput {
	return service.UpdateProductInput{
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		OriginalPrice:  r.OriginalPrice,
		Image:          r.Image,
		Images:         r.Images,
		Category:       r.Category,
		Stock:          r.Stock,
		Brand:          r.Brand,
		IsPrime:        r.IsPrime,
		Discount:       r.Discount,
		Specifications: r.Specifications,
	}
}

type AddCartItemRequest struct {
	ProductID uint `json:"productId" validate:"required,gte=1"`
	Quantity  uint `json:"quantity"  validate:"required,gte=1"`
}

type UpdateCartItemRequest struct {
	Quantity uint `json:"quantity" validate:"required,gte=1"`
}
