package localstore

import (
	"context"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
)

const cartsFile = "carts.json"

type CartStore struct {
	store *Store
}

func NewCartStore(s *Store) repository.CartRepository {
	return &CartStore{store: s}
}

func (r *CartStore) GetCart(ctx context.Context, userID string) (models.Cart, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	carts := map[string]models.Cart{}
	if err := r.store.load(cartsFile, &carts); err != nil {
		return models.Cart{}, err
	}
	if cart, ok := carts[userID]; ok {
		return cart, nil
	}
	return models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
}

func (r *CartStore) SaveCart(ctx context.Context, cart models.Cart) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	carts := map[string]models.Cart{}
	if err := r.store.load(cartsFile, &carts); err != nil {
		return err
	}
	cart.UpdatedAt = time.Now()
	carts[cart.UserID] = cart
	return r.store.save(cartsFile, carts)
}

func (r *CartStore) ClearCart(ctx context.Context, userID string) error {
	return r.SaveCart(ctx, models.Cart{UserID: userID, Items: []models.CartItem{}})
}
