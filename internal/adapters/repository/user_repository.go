package repository

import (
	"context"
	"errors"

	"github.com/arnelectric/storefront-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrEmailTaken = errors.New("email already registered")

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID string) (models.User, error)
}

type MongoUserRepository struct {
	DB *mongo.Database
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &MongoUserRepository{DB: db}
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user models.User) error {
	count, err := r.DB.Collection("users").CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	_, err = r.DB.Collection("users").InsertOne(ctx, user)
	return err
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.DB.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrRecordNotFound
	}
	return user, err
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := r.DB.Collection("users").FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrRecordNotFound
	}
	return user, err
}
