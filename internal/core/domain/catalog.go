package domain

import "time"

// CatalogStatus controls public visibility of catalog entries.
type CatalogStatus string

const (
	CatalogActive   CatalogStatus = "active"
	CatalogInactive CatalogStatus = "inactive"
)

// Service is a published offering on the agency site.
type Service struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	Slug        string        `json:"slug" bson:"slug"`
	Description string        `json:"description" bson:"description"`
	Thumbnail   Attachment    `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Features    []string      `json:"features,omitempty" bson:"features,omitempty"`
	Status      CatalogStatus `json:"status" bson:"status"`
	CreatedBy   string        `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

// BillingPeriod is the charge cadence of a pricing plan.
type BillingPeriod string

const (
	BillingMonthly BillingPeriod = "monthly"
	BillingYearly  BillingPeriod = "yearly"
	BillingOneTime BillingPeriod = "one_time"
)

// PricingPlan is a purchasable tier displayed on the pricing page.
type PricingPlan struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	Name          string        `json:"name" bson:"name"`
	Price         float64       `json:"price" bson:"price"`
	Currency      string        `json:"currency" bson:"currency"`
	BillingPeriod BillingPeriod `json:"billing_period" bson:"billing_period"`
	Features      []string      `json:"features,omitempty" bson:"features,omitempty"`
	Popular       bool          `json:"popular" bson:"popular"`
	Status        CatalogStatus `json:"status" bson:"status"`
	CreatedBy     string        `json:"created_by" bson:"created_by"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}
