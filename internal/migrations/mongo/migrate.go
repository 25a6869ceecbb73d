package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cabroster/internal/migrations/mongo/validators"
	"cabroster/pkg/auth"
	"cabroster/pkg/config"
	"cabroster/pkg/model"

	"github.com/google/uuid"
)

var (
	BookingsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "shift_id", Value: 1},
				{Key: "nodal_point_id", Value: 1},
				{Key: "booking_date", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	UsersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "approved", Value: 1}, {Key: "rejected", Value: 1}}},
	}

	NodalPointsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "location_name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	BookingLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
)

// seedShifts is the fixed shift roster bookings reference by id.
var seedShifts = []model.Shift{
	{ID: 1, ShiftTime: "10AM to 7PM"},
	{ID: 2, ShiftTime: "12PM to 9PM"},
	{ID: 3, ShiftTime: "4PM to 1AM"},
	{ID: 4, ShiftTime: "6PM to 3AM"},
}

var seedNodalPoints = []model.NodalPoint{
	{ID: 1, LocationName: "Central Station"},
	{ID: 2, LocationName: "Tech Park"},
	{ID: 3, LocationName: "Airport Road"},
}

func RunMigration(ctx context.Context, client *mongo.Client, cfg *config.Config) error {
	db := client.Database(cfg.MongoDatabaseName)
	fmt.Printf("🚀 Running CabRoster Mongo migrations on database: %s\n", cfg.MongoDatabaseName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		"Users": {
			Indexes:   UsersIndexes,
			Validator: validators.UserValidator,
		},
		"Shifts": {
			Validator: validators.ShiftValidator,
		},
		"Nodal_points": {
			Indexes:   NodalPointsIndexes,
			Validator: validators.NodalPointValidator,
		},
		"Booking_locks": {
			Indexes:   BookingLocksIndexes,
			Validator: validators.BookingLockValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if len(def.Indexes) == 0 {
			continue
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	if err := seedReferenceData(ctx, db); err != nil {
		return fmt.Errorf("failed to seed reference data: %w", err)
	}

	if err := seedAdmin(ctx, db, cfg); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("ℹ️ Collection %s already exists — updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}

func seedReferenceData(ctx context.Context, db *mongo.Database) error {
	shifts := db.Collection("Shifts")
	for _, shift := range seedShifts {
		filter := bson.M{"_id": shift.ID}
		update := bson.M{"$setOnInsert": shift}
		if _, err := shifts.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("failed seeding shift %d: %w", shift.ID, err)
		}
	}
	fmt.Printf("🚖 Seeded %d shifts\n", len(seedShifts))

	points := db.Collection("Nodal_points")
	maxID := 0
	for _, np := range seedNodalPoints {
		filter := bson.M{"_id": np.ID}
		update := bson.M{"$setOnInsert": np}
		if _, err := points.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("failed seeding nodal point %d: %w", np.ID, err)
		}
		if np.ID > maxID {
			maxID = np.ID
		}
	}

	// Advance the id counter past the seeded ids so admin-created points
	// never collide with them.
	counters := db.Collection("Counters")
	_, err := counters.UpdateOne(ctx,
		bson.M{"_id": "Nodal_points"},
		bson.M{"$max": bson.M{"seq": maxID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed seeding nodal point counter: %w", err)
	}

	fmt.Printf("📍 Seeded %d nodal points\n", len(seedNodalPoints))
	return nil
}

func seedAdmin(ctx context.Context, db *mongo.Database, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		fmt.Println("⚠️ ADMIN_EMAIL/ADMIN_PASSWORD not set — skipping admin seed")
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed hashing admin password: %w", err)
	}

	admin := model.User{
		ID:           uuid.NewString(),
		Name:         "Administrator",
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Approved:     true,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	filter := bson.M{"email": admin.Email}
	update := bson.M{"$setOnInsert": admin}
	result, err := db.Collection("Users").UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed seeding admin user: %w", err)
	}

	if result.UpsertedCount > 0 {
		fmt.Printf("👤 Seeded admin account: %s\n", admin.Email)
	} else {
		fmt.Printf("ℹ️ Admin account already exists: %s\n", admin.Email)
	}
	return nil
}
