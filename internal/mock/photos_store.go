package mock

import (
	"context"
	cl "album-service/pkg/catelog"
)

// PhotoStore implements internal.PhotoStore for mocking purposes.
type PhotoStore struct {
	ListPhotosFn        func(ctx context.Context, albumID string) ([]cl.Photo, error)
	GetPhotoFn          func(ctx context.Context, albumID, photoID string) (cl.Photo, error)
	CreatePhotoFn       func(ctx context.Context, req cl.CreatePhotoRequest) (cl.Photo, error)
	UpdatePhotoFn       func(ctx context.Context, albumID, photoID string, req cl.UpdatePhotoRequest) (cl.Photo, error)
	DeletePhotoFn       func(ctx context.Context, albumID, photoID string) (cl.Photo, error)
	DeleteAlbumPhotosFn func(ctx context.Context, albumID string) (int64, error)
}

// ListPhotos calls the PhotoStore's ListPhotosFn.
func (s *PhotoStore) ListPhotos(ctx context.Context, albumID string) ([]cl.Photo, error) {
	return s.ListPhotosFn(ctx, albumID)
}

// GetPhoto calls the PhotoStore's GetPhotoFn.
func (s *PhotoStore) GetPhoto(ctx context.Context, albumID, photoID string) (cl.Photo, error) {
	return s.GetPhotoFn(ctx, albumID, photoID)
}

// CreatePhoto calls the PhotoStore's CreatePhotoFn.
func (s *PhotoStore) CreatePhoto(ctx context.Context, req cl.CreatePhotoRequest) (cl.Photo, error) {
	return s.CreatePhotoFn(ctx, req)
}

// UpdatePhoto calls the PhotoStore's UpdatePhotoFn.
func (s *PhotoStore) UpdatePhoto(ctx context.Context, albumID, photoID string, req cl.UpdatePhotoRequest) (cl.Photo, error) {
	return s.UpdatePhotoFn(ctx, albumID, photoID, req)
}

// DeletePhoto calls the PhotoStore's DeletePhotoFn.
func (s *PhotoStore) DeletePhoto(ctx context.Context, albumID, photoID string) (cl.Photo, error) {
	return s.DeletePhotoFn(ctx, albumID, photoID)
}

// DeleteAlbumPhotos calls the PhotoStore's DeleteAlbumPhotosFn.
func (s *PhotoStore) DeleteAlbumPhotos(ctx context.Context, albumID string) (int64, error) {
	return s.DeleteAlbumPhotosFn(ctx, albumID)
}
