package domain

import "time"

// CareerStatus tracks a job application through review.
type CareerStatus string

const (
	CareerPending     CareerStatus = "pending"
	CareerReviewed    CareerStatus = "reviewed"
	CareerShortlisted CareerStatus = "shortlisted"
	CareerRejected    CareerStatus = "rejected"
)

// ValidCareerStatus reports whether s is a known application status.
func ValidCareerStatus(s CareerStatus) bool {
	switch s {
	case CareerPending, CareerReviewed, CareerShortlisted, CareerRejected:
		return true
	}
	return false
}

// CareerApplication is a public job application with an uploaded resume.
// Deleting the application also deletes the resume from the media store
// (best-effort).
type CareerApplication struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	FullName    string       `json:"full_name" bson:"full_name"`
	Email       string       `json:"email" bson:"email"`
	Phone       string       `json:"phone" bson:"phone"`
	Position    string       `json:"position" bson:"position"`
	CoverLetter string       `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	Resume      Attachment   `json:"resume" bson:"resume"`
	Status      CareerStatus `json:"status" bson:"status"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}
