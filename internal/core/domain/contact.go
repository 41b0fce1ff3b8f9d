package domain

import "time"

// ContactStatus tracks the handling state of a contact-form submission.
type ContactStatus string

const (
	ContactPending  ContactStatus = "pending"
	ContactResolved ContactStatus = "resolved"
	ContactClosed   ContactStatus = "closed"
)

// ValidContactStatus reports whether s is a known contact status.
func ValidContactStatus(s ContactStatus) bool {
	switch s {
	case ContactPending, ContactResolved, ContactClosed:
		return true
	}
	return false
}

// Contact is an inbound contact-form submission. ClientID is empty for
// anonymous visitors and set when a logged-in client submits the form.
type Contact struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	FullName    string        `json:"full_name" bson:"full_name"`
	Email       string        `json:"email" bson:"email"`
	Subject     string        `json:"subject" bson:"subject"`
	Message     string        `json:"message" bson:"message"`
	ClientID    string        `json:"client_id,omitempty" bson:"client_id,omitempty"`
	Response    string        `json:"response,omitempty" bson:"response,omitempty"`
	RespondedBy string        `json:"responded_by,omitempty" bson:"responded_by,omitempty"`
	Status      ContactStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
