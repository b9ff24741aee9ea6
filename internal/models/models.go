package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Email     string    `gorm:"uniqueIndex;not null"     json:"email"`
	Password  string    `gorm:"not null"                 json:"-"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	Role      string    `gorm:"not null;default:user"    json:"role"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Product struct {
	ID             uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string            `gorm:"not null;index"           json:"name"`
	Description    *string           `json:"description"`
	Price          int64             `gorm:"not null;check:price >= 0" json:"price"`
	OriginalPrice  *int64            `json:"originalPrice"`
	Image          *string           `json:"image"`
	Images         []string          `gorm:"serializer:json"          json:"images"`
	Category       *string           `gorm:"index"                    json:"category"`
	Stock          int               `gorm:"not null;default:0"       json:"stock"`
	Rating         float64           `gorm:"not null;default:0"       json:"rating"`
	ReviewCount    int               `gorm:"not null;default:0"       json:"reviewCount"`
	Brand          *string           `json:"brand"`
	IsPrime        bool              `gorm:"not null;default:false"   json:"isPrime"`
	Discount       *int              `json:"discount"`
	Specifications map[string]string `gorm:"serializer:json"          json:"specifications"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// CartItem relates a user to a product. The composite unique index is the
// authoritative guard for the one-row-per-(user,product) invariant.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                        json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_cart_user_product;not null"      json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_user_product;not null"      json:"product_id"`
	Quantity  uint      `gorm:"not null;default:1;check:quantity > 0"           json:"quantity"`
	CreatedAt time.Time `json:"created_at"`

	Product Product `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (CartItem) TableName() string { return "cart_items" }
