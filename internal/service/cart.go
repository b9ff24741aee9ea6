package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/primestore/backend/internal/apperr"
	"github.com/primestore/backend/internal/events"
	"github.com/primestore/backend/internal/logging"
	"github.com/primestore/backend/internal/repo"
)

type CartService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

type CartProduct struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price int64   `json:"price"`
	Image *string `json:"image"`
}

type CartLine struct {
	Product  CartProduct `json:"product"`
	Quantity uint        `json:"quantity"`
}

type Cart struct {
	Items      []CartLine `json:"items"`
	TotalItems uint       `json:"totalItems"`
	TotalPrice int64      `json:"totalPrice"`
}

// GetCart re-reads the user's cart from storage and derives the totals.
// There is no in-process cart state anywhere.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	items, err := s.Repo.GetCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := Cart{Items: make([]CartLine, 0, len(items))}
	for _, item := range items {
		cart.Items = append(cart.Items, CartLine{
			Product: CartProduct{
				ID:    item.Product.ID,
				Name:  item.Product.Name,
				Price: item.Product.Price,
				Image: item.Product.Image,
			},
			Quantity: item.Quantity,
		})
		cart.TotalItems += item.Quantity
		cart.TotalPrice += item.Product.Price * int64(item.Quantity)
	}
	return &cart, nil
}

// AddItem merges quantity into an existing row or inserts a new one, then
// returns the recomputed cart.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity uint) (*Cart, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add_item")

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product", productID)
		}
		return nil, err
	}

	if err := s.Repo.UpsertCartItem(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":       "cart_item_added",
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	l.Info("cart_item_added", "user_id", userID, "product_id", productID)
	return s.GetCart(ctx, userID)
}

// UpdateItemQuantity sets (never increments) the quantity of an existing
// cart row.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, productID uint, quantity uint) (*Cart, error) {
	l := logging.FromContext(ctx).With("svc", "cart.update_item")

	if err := s.Repo.SetCartItemQuantity(ctx, userID, productID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Cart item", 0)
		}
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":       "cart_item_updated",
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	l.Info("cart_item_updated", "user_id", userID, "product_id", productID)
	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	l := logging.FromContext(ctx).With("svc", "cart.remove_item")

	if err := s.Repo.DeleteCartItem(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Cart item", 0)
		}
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":       "cart_item_removed",
		"user_id":    userID,
		"product_id": productID,
	})

	l.Info("cart_item_removed", "user_id", userID, "product_id", productID)
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	l := logging.FromContext(ctx).With("svc", "cart.clear")

	if err := s.Repo.ClearCart(ctx, userID); err != nil {
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":    "cart_cleared",
		"user_id": userID,
	})

	l.Info("cart_cleared", "user_id", userID)
	return nil
}

func (s *CartService) publish(ctx context.Context, userID uint, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, events.TopicCartEvents, fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", events.TopicCartEvents, "error", err)
	}
}
