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

const clientCollection = "clients"

type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection(clientCollection)}
}

type clientDoc struct {
	ID                  string    `bson:"_id"`
	FullName            string    `bson:"full_name"`
	Email               string    `bson:"email"`
	Phone               string    `bson:"phone"`
	PasswordHash        string    `bson:"password_hash"`
	Role                string    `bson:"role"`
	Address             string    `bson:"address,omitempty"`
	IsEmailVerified     bool      `bson:"is_email_verified"`
	IsPhoneVerified     bool      `bson:"is_phone_verified"`
	Status              string    `bson:"status"`
	RefreshToken        string    `bson:"refresh_token,omitempty"`
	ResetPasswordToken  string    `bson:"reset_password_token,omitempty"`
	ResetPasswordExpiry time.Time `bson:"reset_password_expiry,omitempty"`
	BlogIDs             []string  `bson:"blog_ids,omitempty"`
	ServiceRequestIDs   []string  `bson:"service_request_ids,omitempty"`
	CreatedAt           time.Time `bson:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at"`
}

func toClientDoc(c *domain.Client) clientDoc {
	return clientDoc{
		ID:                  c.ID,
		FullName:            c.FullName,
		Email:               c.Email,
		Phone:               c.Phone,
		PasswordHash:        c.PasswordHash,
		Role:                c.Role,
		Address:             c.Address,
		IsEmailVerified:     c.IsEmailVerified,
		IsPhoneVerified:     c.IsPhoneVerified,
		Status:              string(c.Status),
		RefreshToken:        c.RefreshToken,
		ResetPasswordToken:  c.ResetPasswordToken,
		ResetPasswordExpiry: c.ResetPasswordExpiry,
		BlogIDs:             c.BlogIDs,
		ServiceRequestIDs:   c.ServiceRequestIDs,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func (d clientDoc) toDomain() *domain.Client {
	return &domain.Client{
		ID:                  d.ID,
		FullName:            d.FullName,
		Email:               d.Email,
		Phone:               d.Phone,
		PasswordHash:        d.PasswordHash,
		Role:                d.Role,
		Address:             d.Address,
		IsEmailVerified:     d.IsEmailVerified,
		IsPhoneVerified:     d.IsPhoneVerified,
		Status:              domain.ClientStatus(d.Status),
		RefreshToken:        d.RefreshToken,
		ResetPasswordToken:  d.ResetPasswordToken,
		ResetPasswordExpiry: d.ResetPasswordExpiry,
		BlogIDs:             d.BlogIDs,
		ServiceRequestIDs:   d.ServiceRequestIDs,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	doc := toClientDoc(c)
	doc.ID = primitive.NewObjectID().Hex()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrClientExists
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ClientRepository) FindByResetToken(ctx context.Context, tokenHash string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"reset_password_token": tokenHash})
}

func (r *ClientRepository) findOne(ctx context.Context, filter bson.M) (*domain.Client, error) {
	var doc clientDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) List(ctx context.Context, filter ports.ListClientsFilter) ([]*domain.Client, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"full_name": pattern},
			bson.M{"email": pattern},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Client
	for cur.Next(ctx) {
		var doc clientDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode client: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, total, cur.Err()
}

func (r *ClientRepository) SetRefreshToken(ctx context.Context, id, tokenVal string) error {
	return r.update(ctx, id, bson.M{"refresh_token": tokenVal})
}

// SetPassword stores the new hash and clears the session and reset state in
// the same write: a password change invalidates everything outstanding.
func (r *ClientRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	return r.update(ctx, id, bson.M{
		"password_hash":         passwordHash,
		"refresh_token":         "",
		"reset_password_token":  "",
		"reset_password_expiry": time.Time{},
	})
}

func (r *ClientRepository) SetResetToken(ctx context.Context, id, tokenHash string, expiry time.Time) error {
	return r.update(ctx, id, bson.M{
		"reset_password_token":  tokenHash,
		"reset_password_expiry": expiry,
	})
}

func (r *ClientRepository) UpdateStatus(ctx context.Context, id string, status domain.ClientStatus) error {
	return r.update(ctx, id, bson.M{"status": string(status)})
}

func (r *ClientRepository) update(ctx context.Context, id string, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) PushBlogID(ctx context.Context, clientID, blogID string) error {
	return r.pushPull(ctx, clientID, "$push", "blog_ids", blogID)
}

func (r *ClientRepository) PullBlogID(ctx context.Context, clientID, blogID string) error {
	return r.pushPull(ctx, clientID, "$pull", "blog_ids", blogID)
}

func (r *ClientRepository) PushRequestID(ctx context.Context, clientID, requestID string) error {
	return r.pushPull(ctx, clientID, "$push", "service_request_ids", requestID)
}

func (r *ClientRepository) PullRequestID(ctx context.Context, clientID, requestID string) error {
	return r.pushPull(ctx, clientID, "$pull", "service_request_ids", requestID)
}

func (r *ClientRepository) pushPull(ctx context.Context, clientID, op, field, value string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": clientID}, bson.M{op: bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("update client %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// EnsureIndexes creates the unique indexes backing duplicate detection.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "full_name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
