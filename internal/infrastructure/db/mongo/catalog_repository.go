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
)

const (
	serviceCollection = "services"
	planCollection    = "pricing_plans"
)

// CatalogRepository persists the two public catalog collections. Both are
// small enough that listings return everything matching the status filter.
type CatalogRepository struct {
	services *mongo.Collection
	plans    *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		services: db.Collection(serviceCollection),
		plans:    db.Collection(planCollection),
	}
}

func (r *CatalogRepository) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	doc := *s
	doc.ID = primitive.NewObjectID().Hex()

	if _, err := r.services.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrServiceExists
		}
		return nil, fmt.Errorf("insert service: %w", err)
	}
	return &doc, nil
}

func (r *CatalogRepository) FindServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	return r.findService(ctx, bson.M{"_id": id})
}

func (r *CatalogRepository) FindServiceBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	return r.findService(ctx, bson.M{"slug": slug})
}

func (r *CatalogRepository) findService(ctx context.Context, filter bson.M) (*domain.Service, error) {
	var s domain.Service
	if err := r.services.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service: %w", err)
	}
	return &s, nil
}

func (r *CatalogRepository) ListServices(ctx context.Context, status domain.CatalogStatus) ([]*domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	cur, err := r.services.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Service
	for cur.Next(ctx) {
		var s domain.Service
		if err := cur.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode service: %w", err)
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}

func (r *CatalogRepository) UpdateService(ctx context.Context, s *domain.Service) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := r.services.UpdateOne(ctx, bson.M{"_id": s.ID}, bson.M{"$set": bson.M{
		"name":        s.Name,
		"slug":        s.Slug,
		"description": s.Description,
		"thumbnail":   s.Thumbnail,
		"features":    s.Features,
		"status":      s.Status,
		"updated_at":  s.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrServiceExists
		}
		return fmt.Errorf("update service: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteService(ctx context.Context, id string) error {
	res, err := r.services.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *CatalogRepository) CreatePlan(ctx context.Context, p *domain.PricingPlan) (*domain.PricingPlan, error) {
	doc := *p
	doc.ID = primitive.NewObjectID().Hex()

	if _, err := r.plans.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert pricing plan: %w", err)
	}
	return &doc, nil
}

func (r *CatalogRepository) FindPlanByID(ctx context.Context, id string) (*domain.PricingPlan, error) {
	var p domain.PricingPlan
	if err := r.plans.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("find pricing plan: %w", err)
	}
	return &p, nil
}

func (r *CatalogRepository) ListPlans(ctx context.Context, status domain.CatalogStatus) ([]*domain.PricingPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	cur, err := r.plans.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "price", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list pricing plans: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.PricingPlan
	for cur.Next(ctx) {
		var p domain.PricingPlan
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode pricing plan: %w", err)
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *CatalogRepository) UpdatePlan(ctx context.Context, p *domain.PricingPlan) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.plans.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"name":           p.Name,
		"price":          p.Price,
		"currency":       p.Currency,
		"billing_period": p.BillingPeriod,
		"features":       p.Features,
		"popular":        p.Popular,
		"status":         p.Status,
		"updated_at":     p.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update pricing plan: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

func (r *CatalogRepository) DeletePlan(ctx context.Context, id string) error {
	res, err := r.plans.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete pricing plan: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

func (r *CatalogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.services.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
