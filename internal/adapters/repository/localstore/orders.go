package localstore

import (
	"context"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
)

// File names mirror the storefront's original storage keys.
const (
	adminOrdersFile = "adminOrders.json"
	userOrdersFile  = "userOrders.json"
)

type OrderStore struct {
	store *Store
}

func NewOrderStore(s *Store) repository.OrderRepository {
	return &OrderStore{store: s}
}

func (r *OrderStore) InsertOrder(ctx context.Context, order models.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var orders []models.Order
	if err := r.store.load(adminOrdersFile, &orders); err != nil {
		return err
	}
	orders = append(orders, order)
	return r.store.save(adminOrdersFile, orders)
}

func (r *OrderStore) InsertUserOrder(ctx context.Context, order models.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	userOrders := map[string][]models.Order{}
	if err := r.store.load(userOrdersFile, &userOrders); err != nil {
		return err
	}
	userOrders[order.UserID] = append(userOrders[order.UserID], order)
	return r.store.save(userOrdersFile, userOrders)
}

func (r *OrderStore) GetOrderByID(ctx context.Context, orderID string) (models.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.findOrder(orderID)
}

func (r *OrderStore) findOrder(orderID string) (models.Order, error) {
	var orders []models.Order
	if err := r.store.load(adminOrdersFile, &orders); err != nil {
		return models.Order{}, err
	}
	for _, order := range orders {
		if order.ID == orderID {
			return order, nil
		}
	}
	return models.Order{}, repository.ErrOrderNotFound
}

func (r *OrderStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var orders []models.Order
	if err := r.store.load(adminOrdersFile, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderStore) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	userOrders := map[string][]models.Order{}
	if err := r.store.load(userOrdersFile, &userOrders); err != nil {
		return nil, err
	}
	return userOrders[userID], nil
}

func (r *OrderStore) UpdateOrder(ctx context.Context, orderID string, expected models.OrderStatus, update repository.OrderUpdate) (models.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var orders []models.Order
	if err := r.store.load(adminOrdersFile, &orders); err != nil {
		return models.Order{}, err
	}

	idx := -1
	for i, order := range orders {
		if order.ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Order{}, repository.ErrOrderNotFound
	}
	if orders[idx].Status != expected {
		return models.Order{}, repository.ErrStaleStatus
	}

	applyOrderUpdate(&orders[idx], update)
	if err := r.store.save(adminOrdersFile, orders); err != nil {
		return models.Order{}, err
	}

	// Mirror into the per-customer copy when one exists.
	userOrders := map[string][]models.Order{}
	if err := r.store.load(userOrdersFile, &userOrders); err == nil {
		for userID, list := range userOrders {
			for i := range list {
				if list[i].ID == orderID {
					applyOrderUpdate(&list[i], update)
					userOrders[userID] = list
				}
			}
		}
		if err := r.store.save(userOrdersFile, userOrders); err != nil {
			return models.Order{}, err
		}
	}

	return orders[idx], nil
}

// WatchOrders reports that the JSON store has no change feed; admin
// views poll instead.
func (r *OrderStore) WatchOrders(ctx context.Context, fn func(repository.OrderEvent)) error {
	return repository.ErrWatchUnsupported
}

func applyOrderUpdate(order *models.Order, update repository.OrderUpdate) {
	if update.Status != nil {
		order.Status = *update.Status
	}
	if update.PaymentStatus != nil {
		order.Payment.Status = *update.PaymentStatus
	}
	if update.PaidAt != nil {
		order.Payment.PaidAt = update.PaidAt
	}
	order.UpdatedAt = time.Now()
}
