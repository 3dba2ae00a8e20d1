package mongo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"album-service/internal/metrics"
	cl "album-service/pkg/catelog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newMongo(t *testing.T) *Mongo {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping mongo integration test")
	}
	ctx := context.Background()
	m, err := New(ctx, Config{
		URI:      uri,
		Database: "album_service_test",
		Timeout:  5 * time.Second,
	}, metrics.Nop)
	if err != nil {
		t.Fatalf("Unable to create mongo instance: %s", err.Error())
	}
	clearMongo(ctx, t, m)
	t.Cleanup(func() { _ = m.Close(ctx) })
	return m
}

func clearMongo(ctx context.Context, t *testing.T, m *Mongo) {
	t.Helper()
	if _, err := m.albums.DeleteMany(ctx, bson.M{}); err != nil {
		t.Fatalf("Unable to clear albums: %s", err.Error())
	}
	if _, err := m.photos.DeleteMany(ctx, bson.M{}); err != nil {
		t.Fatalf("Unable to clear photos: %s", err.Error())
	}
}

func TestObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, ok := objectID(oid.Hex())
	if !ok || got != oid {
		t.Fatalf("expected %s to parse", oid.Hex())
	}
	if _, ok := objectID("1234"); ok {
		t.Fatalf("expected a short id to be rejected")
	}
	if _, ok := photoFilter(oid.Hex(), "zz"); ok {
		t.Fatalf("expected a malformed photo id to be rejected")
	}
}

func TestDocumentsExposePublicID(t *testing.T) {
	oid := primitive.NewObjectID()
	year := 1999
	a := albumDocument{ID: oid, Title: "A", Artist: "B", Year: &year}.album()
	if a.ID != oid.Hex() || a.Title != "A" || *a.Year != 1999 {
		t.Fatalf("unexpected album: %+v", a)
	}
}

func TestMongoAlbumsAndPhotos(t *testing.T) {
	m := newMongo(t)
	ctx := context.Background()

	a, err := m.CreateAlbum(ctx, cl.CreateAlbumRequest{Title: "A", Artist: "B"})
	if err != nil {
		t.Fatalf("unexpected error creating album: %s", err.Error())
	}
	got, err := m.GetAlbum(ctx, a.ID)
	if err != nil || got.Title != "A" || got.Artist != "B" {
		t.Fatalf("unexpected album: %+v %v", got, err)
	}
	if _, err := m.GetAlbum(ctx, primitive.NewObjectID().Hex()); !errors.Is(err, cl.ErrAlbumNotFound) {
		t.Fatalf("expected album not found, got %v", err)
	}
	if _, err := m.GetAlbum(ctx, "not-an-object-id"); !errors.Is(err, cl.ErrAlbumNotFound) {
		t.Fatalf("expected album not found for a malformed id, got %v", err)
	}

	other, _ := m.CreateAlbum(ctx, cl.CreateAlbumRequest{Title: "C", Artist: "D"})
	p, err := m.CreatePhoto(ctx, cl.CreatePhotoRequest{AlbumID: a.ID, Title: "one", URL: "u1"})
	if err != nil {
		t.Fatalf("unexpected error creating photo: %s", err.Error())
	}
	if _, err := m.GetPhoto(ctx, other.ID, p.ID); !errors.Is(err, cl.ErrPhotoNotFound) {
		t.Fatalf("expected scoped photo not found, got %v", err)
	}

	title := "renamed"
	up, err := m.UpdatePhoto(ctx, a.ID, p.ID, cl.UpdatePhotoRequest{Title: &title})
	if err != nil || up.Title != "renamed" || up.URL != "u1" {
		t.Fatalf("unexpected updated photo: %+v %v", up, err)
	}

	n, err := m.DeleteAlbumPhotos(ctx, a.ID)
	if err != nil || n != 1 {
		t.Fatalf("unexpected cascade result: %d %v", n, err)
	}
	if _, err := m.DeleteAlbum(ctx, a.ID); err != nil {
		t.Fatalf("unexpected error deleting album: %s", err.Error())
	}
	if _, err := m.DeleteAlbum(ctx, a.ID); !errors.Is(err, cl.ErrAlbumNotFound) {
		t.Fatalf("expected album not found on second delete, got %v", err)
	}
}
