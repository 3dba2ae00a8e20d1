package catelog

import "strings"

// Album is a top level collection owning zero or more photos.
type Album struct {
	ID       string  `json:"id" db:"id"`
	Title    string  `json:"title" db:"title"`
	Artist   string  `json:"artist" db:"artist"`
	Year     *int    `json:"year,omitempty" db:"year"`
	CoverURL *string `json:"coverUrl,omitempty" db:"cover_url"`
}

// CreateAlbumRequest is the body accepted when creating an album.
type CreateAlbumRequest struct {
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Year     *int    `json:"year,omitempty"`
	CoverURL *string `json:"coverUrl,omitempty"`
}

// Validate checks the required album fields are present.
func (r CreateAlbumRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if strings.TrimSpace(r.Artist) == "" {
		return &ValidationError{Field: "artist", Reason: "is required"}
	}
	return nil
}

// UpdateAlbumRequest is a partial update: nil fields are left untouched.
type UpdateAlbumRequest struct {
	Title    *string `json:"title,omitempty"`
	Artist   *string `json:"artist,omitempty"`
	Year     *int    `json:"year,omitempty"`
	CoverURL *string `json:"coverUrl,omitempty"`
}

// Validate rejects updates that would blank a required field.
func (r UpdateAlbumRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if r.Artist != nil && strings.TrimSpace(*r.Artist) == "" {
		return &ValidationError{Field: "artist", Reason: "must not be empty"}
	}
	return nil
}

// Empty reports whether the update carries no fields.
func (r UpdateAlbumRequest) Empty() bool {
	return r.Title == nil && r.Artist == nil && r.Year == nil && r.CoverURL == nil
}

// Apply returns a copy of the album with the update applied.
func (r UpdateAlbumRequest) Apply(a Album) Album {
	if r.Title != nil {
		a.Title = *r.Title
	}
	if r.Artist != nil {
		a.Artist = *r.Artist
	}
	if r.Year != nil {
		y := *r.Year
		a.Year = &y
	}
	if r.CoverURL != nil {
		c := *r.CoverURL
		a.CoverURL = &c
	}
	return a
}

// DeleteAlbumRes is returned after an album has been removed.
type DeleteAlbumRes struct {
	Message string `json:"message"`
	Album   Album  `json:"album"`
}
