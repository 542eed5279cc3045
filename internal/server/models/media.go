package models

import "time"

// Media kinds, derived from the uploaded file's content type.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

// Media is a user-owned media record. StorageKey identifies the blob in
// object storage; URL is the public retrieval location reported by the
// store at upload time.
type Media struct {
	ID         string
	UserID     string
	Title      string
	StorageKey string
	URL        string
	Kind       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
