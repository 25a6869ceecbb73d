package repository

import (
	"context"
	"errors"
	"fmt"

	rostererrors "cabroster/internal/roster/errors"
	"cabroster/pkg/config"
	"cabroster/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	NodalPointCollectionName = "Nodal_points"
	CounterCollectionName    = "Counters"
)

type mongoNodalPointRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	counters   *mongo.Collection
}

type NodalPointRepository interface {
	Create(ctx context.Context, np *model.NodalPoint) error
	FindByID(ctx context.Context, id int) (*model.NodalPoint, error)
	FindAll(ctx context.Context) ([]*model.NodalPoint, error)
}

func NewMongoNodalPointRepository(cfg *config.Config) NodalPointRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoNodalPointRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(NodalPointCollectionName),
		counters:   db.Collection(CounterCollectionName),
	}
}

func (r *mongoNodalPointRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.cfg.WriteTimeout)
}

// nextID hands out sequential int ids from a named counter document.
func (r *mongoNodalPointRepository) nextID(ctx context.Context, name string) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate id for %s: %w", name, err)
	}
	return counter.Seq, nil
}

func (r *mongoNodalPointRepository) Create(ctx context.Context, np *model.NodalPoint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	id, err := r.nextID(ctx, NodalPointCollectionName)
	if err != nil {
		return err
	}
	np.ID = id

	if _, err := r.collection.InsertOne(ctx, np); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", rostererrors.ErrDuplicateName, np.LocationName)
		}
		return fmt.Errorf("failed to create nodal point: %w", err)
	}
	return nil
}

func (r *mongoNodalPointRepository) FindByID(ctx context.Context, id int) (*model.NodalPoint, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var np model.NodalPoint
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&np)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", rostererrors.ErrNodalPointNotFound, id)
		}
		return nil, fmt.Errorf("failed to find nodal point: %w", err)
	}
	return &np, nil
}

func (r *mongoNodalPointRepository) FindAll(ctx context.Context) ([]*model.NodalPoint, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodal points: %w", err)
	}
	defer cursor.Close(ctx)

	var points []*model.NodalPoint
	if err = cursor.All(ctx, &points); err != nil {
		return nil, fmt.Errorf("failed to decode nodal points: %w", err)
	}
	return points, nil
}
