package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

const (
	contactCollection = "contacts"
	careerCollection  = "career_applications"
)

type ContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: db.Collection(contactCollection)}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	doc := *c
	doc.ID = primitive.NewObjectID().Hex()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return &doc, nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	var c domain.Contact
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return &c, nil
}

func (r *ContactRepository) List(ctx context.Context, filter ports.ListContactsFilter) ([]*domain.Contact, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Contact
	for cur.Next(ctx) {
		var c domain.Contact
		if err := cur.Decode(&c); err != nil {
			return nil, 0, fmt.Errorf("decode contact: %w", err)
		}
		out = append(out, &c)
	}
	return out, total, cur.Err()
}

// SetResponse stores the reply and flips the submission to resolved in the
// same write.
func (r *ContactRepository) SetResponse(ctx context.Context, id, response, adminID string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"response":     response,
		"responded_by": adminID,
		"status":       domain.ContactResolved,
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set contact response: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update contact status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

type CareerRepository struct {
	coll *mongo.Collection
}

func NewCareerRepository(db *mongo.Database) *CareerRepository {
	return &CareerRepository{coll: db.Collection(careerCollection)}
}

func (r *CareerRepository) Create(ctx context.Context, a *domain.CareerApplication) (*domain.CareerApplication, error) {
	doc := *a
	doc.ID = primitive.NewObjectID().Hex()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert career application: %w", err)
	}
	return &doc, nil
}

func (r *CareerRepository) FindByID(ctx context.Context, id string) (*domain.CareerApplication, error) {
	var a domain.CareerApplication
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCareerNotFound
		}
		return nil, fmt.Errorf("find career application: %w", err)
	}
	return &a, nil
}

func (r *CareerRepository) List(ctx context.Context, filter ports.ListCareersFilter) ([]*domain.CareerApplication, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Position != "" {
		query["position"] = filter.Position
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count career applications: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list career applications: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.CareerApplication
	for cur.Next(ctx) {
		var a domain.CareerApplication
		if err := cur.Decode(&a); err != nil {
			return nil, 0, fmt.Errorf("decode career application: %w", err)
		}
		out = append(out, &a)
	}
	return out, total, cur.Err()
}

func (r *CareerRepository) UpdateStatus(ctx context.Context, id string, status domain.CareerStatus) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update career status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCareerNotFound
	}
	return nil
}

func (r *CareerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete career application: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCareerNotFound
	}
	return nil
}
