package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	rostererrors "cabroster/internal/roster/errors"
	"cabroster/pkg/config"
	"cabroster/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ShiftCollectionName = "Shifts"
)

type mongoShiftRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type ShiftRepository interface {
	FindByID(ctx context.Context, id int) (*model.Shift, error)
	FindPage(ctx context.Context, limit int, offset int64) ([]*model.Shift, error)
	Count(ctx context.Context) (int64, error)
}

func NewMongoShiftRepository(cfg *config.Config) ShiftRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoShiftRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(ShiftCollectionName),
	}
}

func (r *mongoShiftRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoShiftRepository) FindByID(ctx context.Context, id int) (*model.Shift, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var shift model.Shift
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&shift)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", rostererrors.ErrShiftNotFound, id)
		}
		return nil, fmt.Errorf("failed to find shift: %w", err)
	}
	return &shift, nil
}

func (r *mongoShiftRepository) FindPage(ctx context.Context, limit int, offset int64) ([]*model.Shift, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer cursor.Close(ctx)

	var shifts []*model.Shift
	if err = cursor.All(ctx, &shifts); err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}
	return shifts, nil
}

func (r *mongoShiftRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count shifts: %w", err)
	}
	return count, nil
}
