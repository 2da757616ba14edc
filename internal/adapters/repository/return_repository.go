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

// ReturnUpdate is a merge patch for the mutable part of a return request.
type ReturnUpdate struct {
	Status     *models.ReturnStatus
	RefundDate *time.Time
}

type ReturnEvent struct {
	Type   string
	Return models.ReturnRequest
}

type ReturnRepository interface {
	InsertReturn(ctx context.Context, req models.ReturnRequest) error
	GetReturnByID(ctx context.Context, returnID string) (models.ReturnRequest, error)
	ListReturns(ctx context.Context) ([]models.ReturnRequest, error)
	ListReturnsByUser(ctx context.Context, userID string) ([]models.ReturnRequest, error)
	// UpdateReturn applies the patch only if the request's status still
	// equals expected, mirroring the order CAS semantics.
	UpdateReturn(ctx context.Context, returnID string, expected models.ReturnStatus, update ReturnUpdate) (models.ReturnRequest, error)
}

type ReturnWatcher interface {
	WatchReturns(ctx context.Context, fn func(ReturnEvent)) error
}

type MongoReturnRepository struct {
	DB *mongo.Database
}

func NewReturnRepository(db *mongo.Database) ReturnRepository {
	return &MongoReturnRepository{DB: db}
}

func (r *MongoReturnRepository) InsertReturn(ctx context.Context, req models.ReturnRequest) error {
	_, err := r.DB.Collection("return_requests").InsertOne(ctx, req)
	return err
}

func (r *MongoReturnRepository) GetReturnByID(ctx context.Context, returnID string) (models.ReturnRequest, error) {
	var req models.ReturnRequest
	err := r.DB.Collection("return_requests").FindOne(ctx, bson.M{"return_id": returnID}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return models.ReturnRequest{}, ErrRecordNotFound
	}
	return req, err
}

func (r *MongoReturnRepository) ListReturns(ctx context.Context) ([]models.ReturnRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})
	cursor, err := r.DB.Collection("return_requests").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reqs []models.ReturnRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *MongoReturnRepository) ListReturnsByUser(ctx context.Context, userID string) ([]models.ReturnRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})
	cursor, err := r.DB.Collection("return_requests").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reqs []models.ReturnRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *MongoReturnRepository) UpdateReturn(ctx context.Context, returnID string, expected models.ReturnStatus, update ReturnUpdate) (models.ReturnRequest, error) {
	set := bson.M{"updated_at": time.Now()}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.RefundDate != nil {
		set["refund_date"] = *update.RefundDate
	}

	filter := bson.M{"return_id": returnID, "status": expected}
	res, err := r.DB.Collection("return_requests").UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return models.ReturnRequest{}, err
	}
	if res.MatchedCount == 0 {
		if _, getErr := r.GetReturnByID(ctx, returnID); getErr != nil {
			return models.ReturnRequest{}, getErr
		}
		return models.ReturnRequest{}, ErrStaleStatus
	}

	return r.GetReturnByID(ctx, returnID)
}

func (r *MongoReturnRepository) WatchReturns(ctx context.Context, fn func(ReturnEvent)) error {
	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.M{
		"operationType": bson.M{"$in": []string{"insert", "update", "replace"}},
	}}}}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := r.DB.Collection("return_requests").Watch(ctx, pipeline, opts)
	if err != nil {
		return err
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var event struct {
			OperationType string               `bson:"operationType"`
			FullDocument  models.ReturnRequest `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			logrus.Warnf("failed to decode return change event: %v", err)
			continue
		}
		fn(ReturnEvent{Type: event.OperationType, Return: event.FullDocument})
	}
	return stream.Err()
}
