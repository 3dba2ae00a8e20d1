// Package memory is an in-process album and photo store, used for local runs
// and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"album-service/internal"
	cl "album-service/pkg/catelog"

	"github.com/google/uuid"
)

var _ internal.Store = (*Store)(nil)

// Store keeps albums and photos in maps guarded by a single RWMutex.
// Insertion order is kept so lists are stable.
type Store struct {
	mu         sync.RWMutex
	albums     map[string]cl.Album
	albumOrder []string
	photos     map[string]cl.Photo
	photoOrder []string
	newID      func() string
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		albums: make(map[string]cl.Album),
		photos: make(map[string]cl.Photo),
		newID:  uuid.NewString,
	}
}

func (s *Store) ListAlbums(ctx context.Context) ([]cl.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]cl.Album, 0, len(s.albums))
	for _, id := range s.albumOrder {
		res = append(res, copyAlbum(s.albums[id]))
	}
	return res, nil
}

func (s *Store) GetAlbum(ctx context.Context, id string) (cl.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.albums[id]
	if !ok {
		return cl.Album{}, cl.ErrAlbumNotFound
	}
	return copyAlbum(a), nil
}

func (s *Store) CreateAlbum(ctx context.Context, req cl.CreateAlbumRequest) (cl.Album, error) {
	a := copyAlbum(cl.Album{
		ID:       s.newID(),
		Title:    req.Title,
		Artist:   req.Artist,
		Year:     req.Year,
		CoverURL: req.CoverURL,
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.albums[a.ID] = a
	s.albumOrder = append(s.albumOrder, a.ID)
	return copyAlbum(a), nil
}

func (s *Store) UpdateAlbum(ctx context.Context, id string, req cl.UpdateAlbumRequest) (cl.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.albums[id]
	if !ok {
		return cl.Album{}, cl.ErrAlbumNotFound
	}
	a = req.Apply(a)
	s.albums[id] = a
	return copyAlbum(a), nil
}

func (s *Store) DeleteAlbum(ctx context.Context, id string) (cl.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.albums[id]
	if !ok {
		return cl.Album{}, cl.ErrAlbumNotFound
	}
	delete(s.albums, id)
	s.albumOrder = remove(s.albumOrder, id)
	return a, nil
}

func (s *Store) ListPhotos(ctx context.Context, albumID string) ([]cl.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]cl.Photo, 0)
	for _, id := range s.photoOrder {
		if p := s.photos[id]; p.AlbumID == albumID {
			res = append(res, p)
		}
	}
	return res, nil
}

func (s *Store) GetPhoto(ctx context.Context, albumID, photoID string) (cl.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.photos[photoID]
	if !ok || p.AlbumID != albumID {
		return cl.Photo{}, cl.ErrPhotoNotFound
	}
	return p, nil
}

func (s *Store) CreatePhoto(ctx context.Context, req cl.CreatePhotoRequest) (cl.Photo, error) {
	p := cl.Photo{
		ID:      s.newID(),
		AlbumID: req.AlbumID,
		Title:   req.Title,
		URL:     req.URL,
	}
	if req.Date != nil {
		p.Date = req.Date.UTC().Truncate(time.Millisecond)
	} else {
		p.Date = time.Now().UTC().Truncate(time.Millisecond)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos[p.ID] = p
	s.photoOrder = append(s.photoOrder, p.ID)
	return p, nil
}

func (s *Store) UpdatePhoto(ctx context.Context, albumID, photoID string, req cl.UpdatePhotoRequest) (cl.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.photos[photoID]
	if !ok || p.AlbumID != albumID {
		return cl.Photo{}, cl.ErrPhotoNotFound
	}
	p = req.Apply(p)
	p.Date = p.Date.UTC().Truncate(time.Millisecond)
	s.photos[photoID] = p
	return p, nil
}

func (s *Store) DeletePhoto(ctx context.Context, albumID, photoID string) (cl.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.photos[photoID]
	if !ok || p.AlbumID != albumID {
		return cl.Photo{}, cl.ErrPhotoNotFound
	}
	delete(s.photos, photoID)
	s.photoOrder = remove(s.photoOrder, photoID)
	return p, nil
}

func (s *Store) DeleteAlbumPhotos(ctx context.Context, albumID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	kept := s.photoOrder[:0]
	for _, id := range s.photoOrder {
		if s.photos[id].AlbumID == albumID {
			delete(s.photos, id)
			n++
			continue
		}
		kept = append(kept, id)
	}
	s.photoOrder = kept
	return n, nil
}

// copyAlbum detaches the optional fields so callers can't mutate stored
// albums through the pointers.
func copyAlbum(a cl.Album) cl.Album {
	if a.Year != nil {
		y := *a.Year
		a.Year = &y
	}
	if a.CoverURL != nil {
		c := *a.CoverURL
		a.CoverURL = &c
	}
	return a
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
