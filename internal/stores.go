package internal

import (
	"context"
	cl "album-service/pkg/catelog"
)

// AlbumStore is the persistence contract for albums. Lookups of a missing
// album return cl.ErrAlbumNotFound.
type AlbumStore interface {
	ListAlbums(ctx context.Context) ([]cl.Album, error)
	GetAlbum(ctx context.Context, id string) (cl.Album, error)
	CreateAlbum(ctx context.Context, req cl.CreateAlbumRequest) (cl.Album, error)
	UpdateAlbum(ctx context.Context, id string, req cl.UpdateAlbumRequest) (cl.Album, error)
	DeleteAlbum(ctx context.Context, id string) (cl.Album, error)
}

// PhotoStore is the persistence contract for photos. Every single-photo
// operation is scoped to an album: a photo that exists under a different
// album is reported as cl.ErrPhotoNotFound.
type PhotoStore interface {
	ListPhotos(ctx context.Context, albumID string) ([]cl.Photo, error)
	GetPhoto(ctx context.Context, albumID, photoID string) (cl.Photo, error)
	CreatePhoto(ctx context.Context, req cl.CreatePhotoRequest) (cl.Photo, error)
	UpdatePhoto(ctx context.Context, albumID, photoID string, req cl.UpdatePhotoRequest) (cl.Photo, error)
	DeletePhoto(ctx context.Context, albumID, photoID string) (cl.Photo, error)
	DeleteAlbumPhotos(ctx context.Context, albumID string) (int64, error)
}

// Store is a backend serving both resources.
type Store interface {
	AlbumStore
	PhotoStore
}
