package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pinkcart/api/internal/domain/shipment"
)

type phoneNumberDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	PhoneNumber string             `bson:"phoneNumber"`
	CreatedAt   time.Time          `bson:"createdAt"`
	IPAddress   string             `bson:"ipAddress,omitempty"`
	UserAgent   string             `bson:"userAgent,omitempty"`
}

func (d *phoneNumberDoc) toDomain() *shipment.PhoneNumber {
	return &shipment.PhoneNumber{
		ID:          d.ID.Hex(),
		PhoneNumber: d.PhoneNumber,
		CreatedAt:   d.CreatedAt,
		IPAddress:   d.IPAddress,
		UserAgent:   d.UserAgent,
	}
}

type mongoPhoneRepo struct {
	coll *mongo.Collection
}

func NewMongoPhoneRepo(ctx context.Context, db *mongo.Database) (PhoneNumberRepository, error) {
	repo := &mongoPhoneRepo{coll: db.Collection("phoneNumbers")}
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phoneNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *mongoPhoneRepo) Create(ctx context.Context, p *shipment.PhoneNumber) error {
	doc := &phoneNumberDoc{
		PhoneNumber: p.PhoneNumber,
		CreatedAt:   p.CreatedAt,
		IPAddress:   p.IPAddress,
		UserAgent:   p.UserAgent,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrPhoneNumberExists
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPhoneRepo) List(ctx context.Context) ([]*shipment.PhoneNumber, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []phoneNumberDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*shipment.PhoneNumber, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}
