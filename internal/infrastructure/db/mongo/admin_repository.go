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

const adminCollection = "admins"

type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection(adminCollection)}
}

type adminDoc struct {
	ID                  string               `bson:"_id"`
	FullName            string               `bson:"full_name"`
	Email               string               `bson:"email"`
	PasswordHash        string               `bson:"password_hash"`
	Role                string               `bson:"role"`
	Permissions         domain.PermissionSet `bson:"permissions"`
	IsActive            bool                 `bson:"is_active"`
	LastLogin           time.Time            `bson:"last_login,omitempty"`
	LoginIP             string               `bson:"login_ip,omitempty"`
	RefreshToken        string               `bson:"refresh_token,omitempty"`
	ResetPasswordToken  string               `bson:"reset_password_token,omitempty"`
	ResetPasswordExpiry time.Time            `bson:"reset_password_expiry,omitempty"`
	CreatedAt           time.Time            `bson:"created_at"`
	UpdatedAt           time.Time            `bson:"updated_at"`
}

func toAdminDoc(a *domain.Admin) adminDoc {
	return adminDoc{
		ID:                  a.ID,
		FullName:            a.FullName,
		Email:               a.Email,
		PasswordHash:        a.PasswordHash,
		Role:                a.Role,
		Permissions:         a.Permissions,
		IsActive:            a.IsActive,
		LastLogin:           a.LastLogin,
		LoginIP:             a.LoginIP,
		RefreshToken:        a.RefreshToken,
		ResetPasswordToken:  a.ResetPasswordToken,
		ResetPasswordExpiry: a.ResetPasswordExpiry,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func (d adminDoc) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:                  d.ID,
		FullName:            d.FullName,
		Email:               d.Email,
		PasswordHash:        d.PasswordHash,
		Role:                d.Role,
		Permissions:         d.Permissions,
		IsActive:            d.IsActive,
		LastLogin:           d.LastLogin,
		LoginIP:             d.LoginIP,
		RefreshToken:        d.RefreshToken,
		ResetPasswordToken:  d.ResetPasswordToken,
		ResetPasswordExpiry: d.ResetPasswordExpiry,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	doc := toAdminDoc(a)
	doc.ID = primitive.NewObjectID().Hex()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAdminExists
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	var doc adminDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) List(ctx context.Context) ([]*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Admin
	for cur.Next(ctx) {
		var doc adminDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode admin: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *AdminRepository) SetRefreshToken(ctx context.Context, id, tokenVal string) error {
	return r.update(ctx, id, bson.M{"refresh_token": tokenVal})
}

func (r *AdminRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	return r.update(ctx, id, bson.M{
		"password_hash":         passwordHash,
		"refresh_token":         "",
		"reset_password_token":  "",
		"reset_password_expiry": time.Time{},
	})
}

func (r *AdminRepository) UpdatePermissions(ctx context.Context, id string, perms domain.PermissionSet) error {
	return r.update(ctx, id, bson.M{"permissions": perms})
}

func (r *AdminRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.update(ctx, id, bson.M{"is_active": active})
}

func (r *AdminRepository) RecordLogin(ctx context.Context, id string, at time.Time, ip string) error {
	return r.update(ctx, id, bson.M{"last_login": at, "login_ip": ip})
}

func (r *AdminRepository) update(ctx context.Context, id string, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
