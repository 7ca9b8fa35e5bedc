package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	tourserrors "voyago/internal/tours/errors"
	"voyago/pkg/config"
	"voyago/pkg/model"
)

const CollectionName = "Tours"

// sortFields whitelists the client-facing sort keys and maps them to their
// stored field names. Unknown keys fall back to createdAt.
var sortFields = map[string]string{
	"title":        "title",
	"price":        "price",
	"duration":     "duration",
	"category":     "category",
	"displayOrder": "displayOrder",
	"createdAt":    "createdAt",
	"updatedAt":    "updatedAt",
}

// TourQuery is the explicit filter/sort/page form every admin listing is
// translated into.
type TourQuery struct {
	IsActive  *bool
	SortBy    string
	SortOrder string
	Skip      int64
	Limit     int64
}

type TourRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, tour *model.Tour) error
	FindByID(ctx context.Context, id string) (*model.Tour, error)
	FindActive(ctx context.Context) ([]*model.Tour, error)
	FindPage(ctx context.Context, q TourQuery) ([]*model.Tour, error)
	Count(ctx context.Context, q TourQuery) (int64, error)
	Update(ctx context.Context, id string, tour *model.Tour) error
	SetActive(ctx context.Context, id string, isActive bool) (*model.Tour, error)
	Delete(ctx context.Context, id string) error
}

type mongoTourRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTourRepository(cfg *config.Config) TourRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTourRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds a store call without shortening an earlier deadline.
func (r *mongoTourRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureIndexes creates the unique title index that backs the conflict
// check, plus the compound index the public listing reads through.
func (r *mongoTourRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "displayOrder", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "isActive", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create tour indexes: %w", err)
	}
	return nil
}

func (r *mongoTourRepository) Create(ctx context.Context, tour *model.Tour) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	tour.CreatedAt = now
	tour.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, tour)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return tourserrors.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to create tour: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		tour.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTourRepository) FindByID(ctx context.Context, id string) (*model.Tour, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", tourserrors.ErrInvalidID, id)
	}

	var tour model.Tour
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&tour)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, tourserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tour: %w", err)
	}

	return &tour, nil
}

// FindActive returns the full active set ordered for the public listing:
// displayOrder ascending, newest first within the same order slot.
func (r *mongoTourRepository) FindActive(ctx context.Context) ([]*model.Tour, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "displayOrder", Value: 1}, {Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find active tours: %w", err)
	}
	defer cursor.Close(ctx)

	tours := []*model.Tour{}
	if err = cursor.All(ctx, &tours); err != nil {
		return nil, fmt.Errorf("failed to decode tours: %w", err)
	}

	return tours, nil
}

func (r *mongoTourRepository) FindPage(ctx context.Context, q TourQuery) ([]*model.Tour, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(sortSpec(q.SortBy, q.SortOrder)).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cursor, err := r.collection.Find(ctx, buildTourFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find tours: %w", err)
	}
	defer cursor.Close(ctx)

	tours := []*model.Tour{}
	if err = cursor.All(ctx, &tours); err != nil {
		return nil, fmt.Errorf("failed to decode tours: %w", err)
	}

	return tours, nil
}

func (r *mongoTourRepository) Count(ctx context.Context, q TourQuery) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildTourFilter(q))
	if err != nil {
		return 0, fmt.Errorf("failed to count tours: %w", err)
	}
	return count, nil
}

func (r *mongoTourRepository) Update(ctx context.Context, id string, tour *model.Tour) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", tourserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"title":        tour.Title,
			"price":        tour.Price,
			"duration":     tour.Duration,
			"category":     tour.Category,
			"description":  tour.Description,
			"imageUrl":     tour.ImageURL,
			"displayOrder": tour.DisplayOrder,
			"isActive":     tour.IsActive,
			"updatedAt":    time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return tourserrors.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to update tour: %w", err)
	}
	if result.MatchedCount == 0 {
		return tourserrors.ErrNotFound
	}

	return nil
}

func (r *mongoTourRepository) SetActive(ctx context.Context, id string, isActive bool) (*model.Tour, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", tourserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"isActive":  isActive,
			"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var tour model.Tour
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&tour)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, tourserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update tour status: %w", err)
	}

	return &tour, nil
}

func (r *mongoTourRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", tourserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	if result.DeletedCount == 0 {
		return tourserrors.ErrNotFound
	}

	return nil
}

func buildTourFilter(q TourQuery) bson.M {
	filter := bson.M{}
	if q.IsActive != nil {
		filter["isActive"] = *q.IsActive
	}
	return filter
}

func sortSpec(sortBy, sortOrder string) bson.D {
	field, ok := sortFields[sortBy]
	if !ok {
		field = "createdAt"
	}
	order := -1
	if sortOrder == "asc" {
		order = 1
	}
	return bson.D{{Key: field, Value: order}}
}
