package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"refdeck/models"
)

type ReferenceRepository struct {
	col *mongo.Collection
}

func NewReferenceRepository(db *mongo.Database) *ReferenceRepository {
	return &ReferenceRepository{col: db.Collection("references")}
}

// Insert stores a new reference and returns its ObjectID hex.
func (r *ReferenceRepository) Insert(ctx context.Context, ref *models.Reference) (string, error) {
	now := time.Now()
	if ref.CreatedAt.IsZero() {
		ref.CreatedAt = now
	}
	ref.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, ref)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", mongo.ErrNilDocument
	}
	ref.ID = oid
	return oid.Hex(), nil
}

// FindByID returns a reference by its ObjectID hex.
func (r *ReferenceRepository) FindByID(ctx context.Context, hexID string) (*models.Reference, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, err
	}
	var ref models.Reference
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// List returns references ordered newest first with simple pagination.
func (r *ReferenceRepository) List(ctx context.Context, page, pageSize int) ([]models.Reference, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []models.Reference
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// FindSmartAnalyze returns up to limit references flagged for enrichment.
func (r *ReferenceRepository) FindSmartAnalyze(ctx context.Context, limit int) ([]models.Reference, error) {
	if limit <= 0 {
		limit = 5
	}
	opts := options.Find().SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{"smart_analyze": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Reference
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTagSet replaces the tag set of a reference and clears the
// smart_analyze flag, marking the enrichment pass as done.
func (r *ReferenceRepository) UpdateTagSet(ctx context.Context, id primitive.ObjectID, ts models.TagSet) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"tag_set":       ts,
			"smart_analyze": false,
			"updated_at":    time.Now(),
		},
	})
	return err
}
