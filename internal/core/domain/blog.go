package domain

import "time"

// BlogStatus is the publication state of a blog post.
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
	BlogArchived  BlogStatus = "archived"
)

// blogTransitions defines the allowed publication state machine.
var blogTransitions = map[BlogStatus][]BlogStatus{
	BlogDraft:     {BlogPublished},
	BlogPublished: {BlogArchived, BlogDraft},
	BlogArchived:  {BlogDraft},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s BlogStatus) CanTransitionTo(next BlogStatus) bool {
	for _, allowed := range blogTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Blog is client-authored content. AuthorID gates mutation: only the owning
// client or an admin holding the relevant blog permission may change it.
type Blog struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Slug        string     `json:"slug" bson:"slug"`
	Content     string     `json:"content" bson:"content"`
	AuthorID    string     `json:"author_id" bson:"author_id"`
	CoverImage  Attachment `json:"cover_image,omitempty" bson:"cover_image,omitempty"`
	Tags        []string   `json:"tags,omitempty" bson:"tags,omitempty"`
	Status      BlogStatus `json:"status" bson:"status"`
	PublishedAt time.Time  `json:"published_at,omitempty" bson:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}
