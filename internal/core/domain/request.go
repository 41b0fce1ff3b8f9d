package domain

import "time"

// RequestStatus is the review state of a client service request.
type RequestStatus string

const (
	RequestPending     RequestStatus = "pending"
	RequestUnderReview RequestStatus = "under_review"
	RequestApproved    RequestStatus = "approved"
	RequestDeclined    RequestStatus = "declined"
	RequestCompleted   RequestStatus = "completed"
)

// requestTransitions defines the allowed review state machine. Declined and
// completed are terminal.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:     {RequestUnderReview, RequestApproved, RequestDeclined},
	RequestUnderReview: {RequestApproved, RequestDeclined},
	RequestApproved:    {RequestCompleted},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ServiceRequest is a client's request for agency work on a catalog service,
// optionally with uploaded attachments. ClientID gates read and mutation
// rights for non-admin callers.
type ServiceRequest struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	ClientID    string        `json:"client_id" bson:"client_id"`
	ServiceID   string        `json:"service_id" bson:"service_id"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	Budget      float64       `json:"budget,omitempty" bson:"budget,omitempty"`
	Attachments []Attachment  `json:"attachments,omitempty" bson:"attachments,omitempty"`
	Status      RequestStatus `json:"status" bson:"status"`
	AdminNotes  string        `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	ReviewedBy  string        `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
