package domain

// ResourceKind classifies an object held in the external media store.
type ResourceKind string

const (
	KindImage ResourceKind = "image"
	KindVideo ResourceKind = "video"
	KindRaw   ResourceKind = "raw"
)

// Attachment references an object in the external media store. PublicID is
// the store's identifier, required for deletion.
type Attachment struct {
	URL      string       `json:"url" bson:"url"`
	PublicID string       `json:"public_id" bson:"public_id"`
	Kind     ResourceKind `json:"resource_kind" bson:"resource_kind"`
}

// IsZero reports whether the attachment is unset.
func (a Attachment) IsZero() bool {
	return a.URL == "" && a.PublicID == ""
}
