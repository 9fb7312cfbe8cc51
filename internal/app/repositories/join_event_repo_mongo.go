package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pinkcart/api/internal/domain/shipment"
)

type joinEventDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	ProductID   string             `bson:"productId"`
	ProductName string             `bson:"productName"`
	JoinedAt    time.Time          `bson:"joinedAt"`
}

func (d *joinEventDoc) toDomain() *shipment.JoinEvent {
	return &shipment.JoinEvent{
		ID:          d.ID.Hex(),
		DisplayName: d.Name,
		ProductID:   d.ProductID,
		ProductName: d.ProductName,
		JoinedAt:    d.JoinedAt,
	}
}

type mongoJoinEventRepo struct {
	coll *mongo.Collection
}

// NewMongoJoinEventRepo stores join events in the "customers" collection.
// retention > 0 installs a TTL index on joinedAt so history does not grow
// unbounded; retention == 0 keeps events forever.
func NewMongoJoinEventRepo(ctx context.Context, db *mongo.Database, retention time.Duration) (JoinEventRepository, error) {
	repo := &mongoJoinEventRepo{coll: db.Collection("customers")}

	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "joinedAt", Value: -1}}},
	}
	if retention > 0 {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: "joinedAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(retention / time.Second)),
		})
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, models); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *mongoJoinEventRepo) Create(ctx context.Context, e *shipment.JoinEvent) error {
	doc := &joinEventDoc{
		Name:        e.DisplayName,
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		JoinedAt:    e.JoinedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid.Hex()
	}
	return nil
}

func (r *mongoJoinEventRepo) ListSince(ctx context.Context, since time.Time, limit int64) ([]*shipment.JoinEvent, error) {
	filter := bson.M{"joinedAt": bson.M{"$gte": since}}
	opts := options.Find().SetSort(bson.D{{Key: "joinedAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []joinEventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*shipment.JoinEvent, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *mongoJoinEventRepo) GetByID(ctx context.Context, id string) (*shipment.JoinEvent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrJoinEventNotFound
	}
	var doc joinEventDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrJoinEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}
