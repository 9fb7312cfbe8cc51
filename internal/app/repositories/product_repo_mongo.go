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

type productDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Price            float64            `bson:"price"`
	OriginalPrice    float64            `bson:"originalPrice,omitempty"`
	Image            string             `bson:"image,omitempty"`
	StorageID        string             `bson:"storageId,omitempty"`
	Images           []string           `bson:"images,omitempty"`
	StorageIDs       []string           `bson:"storageIds,omitempty"`
	Category         string             `bson:"category"`
	Description      string             `bson:"description,omitempty"`
	Features         []string           `bson:"features,omitempty"`
	InStock          bool               `bson:"inStock"`
	JoinedCount      int                `bson:"joinedCount"`
	ShippingEstimate string             `bson:"shippingEstimate,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func (d *productDoc) toDomain() *catalog.Product {
	return &catalog.Product{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Price:            d.Price,
		OriginalPrice:    d.OriginalPrice,
		Image:            d.Image,
		StorageID:        d.StorageID,
		Images:           d.Images,
		StorageIDs:       d.StorageIDs,
		Category:         d.Category,
		Description:      d.Description,
		Features:         d.Features,
		InStock:          d.InStock,
		JoinedCount:      d.JoinedCount,
		ShippingEstimate: d.ShippingEstimate,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func productDocFromDomain(p *catalog.Product) *productDoc {
	return &productDoc{
		Name:             p.Name,
		Price:            p.Price,
		OriginalPrice:    p.OriginalPrice,
		Image:            p.Image,
		StorageID:        p.StorageID,
		Images:           p.Images,
		StorageIDs:       p.StorageIDs,
		Category:         p.Category,
		Description:      p.Description,
		Features:         p.Features,
		InStock:          p.InStock,
		JoinedCount:      p.JoinedCount,
		ShippingEstimate: p.ShippingEstimate,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

type mongoProductRepo struct {
	coll *mongo.Collection
}

func NewMongoProductRepo(db *mongo.Database) ProductRepository {
	return &mongoProductRepo{coll: db.Collection("products")}
}

func (r *mongoProductRepo) Create(ctx context.Context, p *catalog.Product) error {
	doc := productDocFromDomain(p)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *mongoProductRepo) List(ctx context.Context) ([]*catalog.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*catalog.Product, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *mongoProductRepo) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	var doc productDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *mongoProductRepo) Update(ctx context.Context, p *catalog.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return ErrProductNotFound
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, productDocFromDomain(p))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *mongoProductRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrProductNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
