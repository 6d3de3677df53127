package mongodb

import (
	"context"
	"errors"
	"time"

	"cvforge/internal/cv/domain/model"
	"cvforge/internal/cv/domain/repository"
	apperrors "cvforge/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cvCollection = "cvs"

// MongoCVRepository implements CVRepository using MongoDB. The unique index on
// user_id plus the atomic upsert in Save preserve the at-most-one-document-per-
// user invariant under concurrent saves.
type MongoCVRepository struct {
	collection *mongo.Collection
}

// NewMongoCVRepository creates a MongoDB CV repository and ensures its indexes.
func NewMongoCVRepository(db *mongo.Database) (*MongoCVRepository, error) {
	repo := &MongoCVRepository{
		collection: db.Collection(cvCollection),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, userIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// Save upserts the user's document in a single atomic operation. Two
// concurrent first saves can still race the upsert into a duplicate-key error;
// the retry then matches the freshly inserted document and updates it.
func (r *MongoCVRepository) Save(ctx context.Context, userID string, data interface{}) (repository.SaveOutcome, error) {
	now := time.Now().UTC()
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"cv_data":    data,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)

	res, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		res, err = r.collection.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return repository.SaveUpdated, apperrors.NewUnavailableError("document store write failed").WithCause(err)
	}

	if res.UpsertedCount > 0 {
		return repository.SaveCreated, nil
	}
	return repository.SaveUpdated, nil
}

// Get returns the user's document.
func (r *MongoCVRepository) Get(ctx context.Context, userID string) (*model.CV, error) {
	var cv model.CV
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrCVNotFound
	}
	if err != nil {
		return nil, apperrors.NewUnavailableError("document store read failed").WithCause(err)
	}
	return &cv, nil
}
