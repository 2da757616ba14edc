package repository

import (
	"context"
	"time"

	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderUpdate is a merge patch for the mutable part of an order.
// Nil fields are left untouched; UpdatedAt is always refreshed.
type OrderUpdate struct {
	Status        *models.OrderStatus
	PaymentStatus *models.PaymentStatus
	PaidAt        *time.Time
}

// OrderEvent is delivered by WatchOrders for live admin views.
type OrderEvent struct {
	Type  string // insert, update, replace
	Order models.Order
}

type OrderRepository interface {
	// InsertOrder writes the admin-global copy of a new order.
	InsertOrder(ctx context.Context, order models.Order) error
	// InsertUserOrder writes the per-customer copy (order.UserID must be set).
	InsertUserOrder(ctx context.Context, order models.Order) error
	GetOrderByID(ctx context.Context, orderID string) (models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	// UpdateOrder applies the patch only if the order's status still equals
	// expected (optimistic concurrency). Returns ErrOrderNotFound or
	// ErrStaleStatus accordingly, and the updated order on success.
	UpdateOrder(ctx context.Context, orderID string, expected models.OrderStatus, update OrderUpdate) (models.Order, error)
}

// OrderWatcher is the optional live-push capability. Only the Mongo
// backend implements it; everyone else polls.
type OrderWatcher interface {
	WatchOrders(ctx context.Context, fn func(OrderEvent)) error
}

type MongoOrderRepository struct {
	DB *mongo.Database
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &MongoOrderRepository{DB: db}
}

func (r *MongoOrderRepository) InsertOrder(ctx context.Context, order models.Order) error {
	_, err := r.DB.Collection("orders").InsertOne(ctx, order)
	return err
}

func (r *MongoOrderRepository) InsertUserOrder(ctx context.Context, order models.Order) error {
	_, err := r.DB.Collection("user_orders").InsertOne(ctx, order)
	return err
}

func (r *MongoOrderRepository) GetOrderByID(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := r.DB.Collection("orders").FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, ErrOrderNotFound
	}
	return order, err
}

func (r *MongoOrderRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.DB.Collection("orders").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoOrderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.DB.Collection("user_orders").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoOrderRepository) UpdateOrder(ctx context.Context, orderID string, expected models.OrderStatus, update OrderUpdate) (models.Order, error) {
	set := bson.M{"updated_at": time.Now()}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.PaymentStatus != nil {
		set["payment.payment_status"] = *update.PaymentStatus
	}
	if update.PaidAt != nil {
		set["payment.paid_at"] = *update.PaidAt
	}

	// The status filter makes the write a compare-and-set: a concurrent
	// admin session that already moved the order leaves MatchedCount at 0.
	filter := bson.M{"order_id": orderID, "status": expected}
	res, err := r.DB.Collection("orders").UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return models.Order{}, err
	}
	if res.MatchedCount == 0 {
		if _, getErr := r.GetOrderByID(ctx, orderID); getErr != nil {
			return models.Order{}, getErr
		}
		return models.Order{}, ErrStaleStatus
	}

	// Keep the customer's copy in step. Best effort: the admin-global
	// record is authoritative, so a miss here is logged, not fatal.
	if _, err := r.DB.Collection("user_orders").UpdateOne(ctx, bson.M{"order_id": orderID}, bson.M{"$set": set}); err != nil {
		logrus.Warnf("failed to sync user order copy for %s: %v", orderID, err)
	}

	return r.GetOrderByID(ctx, orderID)
}

// WatchOrders streams order inserts and updates via a change stream.
func (r *MongoOrderRepository) WatchOrders(ctx context.Context, fn func(OrderEvent)) error {
	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.M{
		"operationType": bson.M{"$in": []string{"insert", "update", "replace"}},
	}}}}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := r.DB.Collection("orders").Watch(ctx, pipeline, opts)
	if err != nil {
		return err
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var event struct {
			OperationType string       `bson:"operationType"`
			FullDocument  models.Order `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			logrus.Warnf("failed to decode order change event: %v", err)
			continue
		}
		fn(OrderEvent{Type: event.OperationType, Order: event.FullDocument})
	}
	return stream.Err()
}
