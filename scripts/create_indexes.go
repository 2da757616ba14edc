package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Run this script once to create database indexes
// Usage: go run scripts/create_indexes.go
func main() {
	godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI is not set")
	}
	clientOptions := options.Client().ApplyURI(mongoURI).SetServerSelectionTimeout(30 * time.Second)

	log.Println("Connecting to MongoDB...")
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "arn_storefront"
	}
	db := client.Database(dbName)

	createIndex(ctx, db.Collection("products"), bson.D{{Key: "product_id", Value: 1}}, "idx_product_id", true)
	createIndex(ctx, db.Collection("products"), bson.D{{Key: "category", Value: 1}, {Key: "is_active", Value: 1}}, "idx_category_active", false)

	createIndex(ctx, db.Collection("orders"), bson.D{{Key: "order_id", Value: 1}}, "idx_order_id", true)
	createIndex(ctx, db.Collection("orders"), bson.D{{Key: "status", Value: 1}}, "idx_order_status", false)
	createIndex(ctx, db.Collection("orders"), bson.D{{Key: "created_at", Value: -1}}, "idx_order_created", false)

	createIndex(ctx, db.Collection("user_orders"), bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, "idx_user_orders", false)

	createIndex(ctx, db.Collection("return_requests"), bson.D{{Key: "return_id", Value: 1}}, "idx_return_id", true)
	createIndex(ctx, db.Collection("return_requests"), bson.D{{Key: "user_id", Value: 1}, {Key: "requested_at", Value: -1}}, "idx_user_returns", false)
	createIndex(ctx, db.Collection("return_requests"), bson.D{{Key: "order_id", Value: 1}}, "idx_return_order", false)

	createIndex(ctx, db.Collection("users"), bson.D{{Key: "email", Value: 1}}, "idx_user_email", true)
	createIndex(ctx, db.Collection("users"), bson.D{{Key: "user_id", Value: 1}}, "idx_user_id", true)

	createIndex(ctx, db.Collection("carts"), bson.D{{Key: "user_id", Value: 1}}, "idx_cart_user", true)

	log.Println("All indexes created")
}

func createIndex(ctx context.Context, coll *mongo.Collection, keys bson.D, name string, unique bool) {
	opts := options.Index().SetName(name)
	if unique {
		opts.SetUnique(true)
	}
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts})
	if err != nil {
		log.Printf("Failed to create %s: %v", name, err)
	} else {
		log.Printf("Created index %s on %s", name, coll.Name())
	}
}
