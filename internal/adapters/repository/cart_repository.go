package repository

import (
	"context"
	"time"

	"github.com/arnelectric/storefront-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartRepository persists the session cart. The cart service saves on
// every mutation so a page reload resumes where the customer left off.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (models.Cart, error)
	SaveCart(ctx context.Context, cart models.Cart) error
	ClearCart(ctx context.Context, userID string) error
}

type MongoCartRepository struct {
	DB *mongo.Database
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &MongoCartRepository{DB: db}
}

func (r *MongoCartRepository) GetCart(ctx context.Context, userID string) (models.Cart, error) {
	var cart models.Cart
	err := r.DB.Collection("carts").FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func (r *MongoCartRepository) SaveCart(ctx context.Context, cart models.Cart) error {
	cart.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := r.DB.Collection("carts").ReplaceOne(ctx, bson.M{"user_id": cart.UserID}, cart, opts)
	return err
}

func (r *MongoCartRepository) ClearCart(ctx context.Context, userID string) error {
	update := bson.M{
		"$set": bson.M{
			"items":      []models.CartItem{},
			"updated_at": time.Now(),
		},
	}
	_, err := r.DB.Collection("carts").UpdateOne(ctx, bson.M{"user_id": userID}, update)
	return err
}
