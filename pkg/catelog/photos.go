package catelog

import (
	"strings"
	"time"
)

// Photo belongs to exactly one album.
type Photo struct {
	ID      string    `json:"id" db:"id"`
	AlbumID string    `json:"album" db:"album_id"`
	Title   string    `json:"title" db:"title"`
	URL     string    `json:"url" db:"url"`
	Date    time.Time `json:"date" db:"date"`
}

// CreatePhotoRequest is the body accepted when adding a photo to an album.
// AlbumID is never decoded: it is set from the album in the request path.
type CreatePhotoRequest struct {
	AlbumID string     `json:"-"`
	Title   string     `json:"title"`
	URL     string     `json:"url"`
	Date    *time.Time `json:"date,omitempty"`
}

// Validate checks the required photo fields are present.
func (r CreatePhotoRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if strings.TrimSpace(r.URL) == "" {
		return &ValidationError{Field: "url", Reason: "is required"}
	}
	return nil
}

// UpdatePhotoRequest is a partial update. A photo can't be moved between
// albums, so there is no album field.
type UpdatePhotoRequest struct {
	Title *string    `json:"title,omitempty"`
	URL   *string    `json:"url,omitempty"`
	Date  *time.Time `json:"date,omitempty"`
}

// Validate rejects updates that would blank a required field.
func (r UpdatePhotoRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if r.URL != nil && strings.TrimSpace(*r.URL) == "" {
		return &ValidationError{Field: "url", Reason: "must not be empty"}
	}
	return nil
}

// Empty reports whether the update carries no fields.
func (r UpdatePhotoRequest) Empty() bool {
	return r.Title == nil && r.URL == nil && r.Date == nil
}

// Apply returns a copy of the photo with the update applied.
func (r UpdatePhotoRequest) Apply(p Photo) Photo {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.URL != nil {
		p.URL = *r.URL
	}
	if r.Date != nil {
		p.Date = *r.Date
	}
	return p
}

// DeletePhotoRes is returned after a photo has been removed.
type DeletePhotoRes struct {
	Message string `json:"message"`
	Photo   Photo  `json:"photo"`
}
