package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pinkcart/api/internal/domain/catalog"
)

type categoryDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Image       string             `bson:"image,omitempty"`
	StorageID   string             `bson:"storageId,omitempty"`
	IsActive    bool               `bson:"isActive"`
	SortOrder   int                `bson:"sortOrder"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *categoryDoc) toDomain() *catalog.Category {
	return &catalog.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Image:       d.Image,
		StorageID:   d.StorageID,
		IsActive:    d.IsActive,
		SortOrder:   d.SortOrder,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func categoryDocFromDomain(c *catalog.Category) *categoryDoc {
	return &categoryDoc{
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		StorageID:   c.StorageID,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type mongoCategoryRepo struct {
	coll *mongo.Collection
}

func NewMongoCategoryRepo(ctx context.Context, db *mongo.Database) (CategoryRepository, error) {
	repo := &mongoCategoryRepo{coll: db.Collection("categories")}
	// Category names are unique case-insensitively. Strength 2 collation
	// ignores case and diacritics.
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *mongoCategoryRepo) Create(ctx context.Context, c *catalog.Category) error {
	res, err := r.coll.InsertOne(ctx, categoryDocFromDomain(c))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCategoryAlreadyExists
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCategoryRepo) List(ctx context.Context, activeOnly bool) ([]*catalog.Category, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "sortOrder", Value: 1},
		{Key: "createdAt", Value: -1},
	})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*catalog.Category, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *mongoCategoryRepo) GetByID(ctx context.Context, id string) (*catalog.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	var doc categoryDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *mongoCategoryRepo) Update(ctx context.Context, c *catalog.Category) error {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return ErrCategoryNotFound
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, categoryDocFromDomain(c))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCategoryAlreadyExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *mongoCategoryRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrCategoryNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
