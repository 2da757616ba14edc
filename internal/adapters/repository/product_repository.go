package repository

import (
	"context"
	"time"

	"github.com/arnelectric/storefront-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	GetProductByID(ctx context.Context, productID string) (models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, productID string, input models.UpdateProductInput) error
	DeleteProduct(ctx context.Context, productID string) error
}

type MongoProductRepository struct {
	DB *mongo.Database
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &MongoProductRepository{DB: db}
}

func (r *MongoProductRepository) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{"is_active": true}
	if category != "" && category != "all" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.DB.Collection("products").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) GetProductByID(ctx context.Context, productID string) (models.Product, error) {
	var product models.Product
	err := r.DB.Collection("products").FindOne(ctx, bson.M{"product_id": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return models.Product{}, ErrRecordNotFound
	}
	return product, err
}

func (r *MongoProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	values, err := r.DB.Collection("products").Distinct(ctx, "category", bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (r *MongoProductRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	if _, err := r.DB.Collection("products").InsertOne(ctx, product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (r *MongoProductRepository) UpdateProduct(ctx context.Context, productID string, input models.UpdateProductInput) error {
	update := bson.M{
		"$set": bson.M{
			"name":           input.Name,
			"description":    input.Description,
			"category":       input.Category,
			"price":          input.Price,
			"original_price": input.OriginalPrice,
			"discount":       input.Discount,
			"image_url":      input.ImageURL,
			"features":       input.Features,
			"specifications": input.Specifications,
			"is_active":      input.IsActive,
			"updated_at":     time.Now(),
		},
	}

	res, err := r.DB.Collection("products").UpdateOne(ctx, bson.M{"product_id": productID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *MongoProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	res, err := r.DB.Collection("products").DeleteOne(ctx, bson.M{"product_id": productID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
