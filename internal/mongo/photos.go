package mongo

import (
	"context"
	"time"

	cl "album-service/pkg/catelog"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type photoDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Album primitive.ObjectID `bson:"album"`
	Title string             `bson:"title"`
	URL   string             `bson:"url"`
	Date  time.Time          `bson:"date"`
}

func (d photoDocument) photo() cl.Photo {
	return cl.Photo{
		ID:      d.ID.Hex(),
		AlbumID: d.Album.Hex(),
		Title:   d.Title,
		URL:     d.URL,
		Date:    d.Date.UTC(),
	}
}

// photoFilter matches a photo by id within an album.
func photoFilter(albumID, photoID string) (bson.M, bool) {
	aid, ok := objectID(albumID)
	if !ok {
		return nil, false
	}
	pid, ok := objectID(photoID)
	if !ok {
		return nil, false
	}
	return bson.M{"_id": pid, "album": aid}, true
}

func (m *Mongo) ListPhotos(ctx context.Context, albumID string) ([]cl.Photo, error) {
	aid, ok := objectID(albumID)
	if !ok {
		return []cl.Photo{}, nil
	}

	var docs []photoDocument
	err := m.do(ctx, "list_photos", func(ctx context.Context) error {
		cur, err := m.photos.Find(ctx, bson.M{"album": aid})
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, errors.Wrap(err, "list photos")
	}

	res := make([]cl.Photo, 0, len(docs))
	for _, d := range docs {
		res = append(res, d.photo())
	}
	return res, nil
}

func (m *Mongo) GetPhoto(ctx context.Context, albumID, photoID string) (cl.Photo, error) {
	filter, ok := photoFilter(albumID, photoID)
	if !ok {
		return cl.Photo{}, cl.ErrPhotoNotFound
	}

	var doc photoDocument
	err := m.do(ctx, "get_photo", func(ctx context.Context) error {
		return m.photos.FindOne(ctx, filter).Decode(&doc)
	})
	if err == mongo.ErrNoDocuments {
		return cl.Photo{}, cl.ErrPhotoNotFound
	}
	if err != nil {
		return cl.Photo{}, errors.Wrap(err, "find photo")
	}
	return doc.photo(), nil
}

func (m *Mongo) CreatePhoto(ctx context.Context, req cl.CreatePhotoRequest) (cl.Photo, error) {
	aid, ok := objectID(req.AlbumID)
	if !ok {
		return cl.Photo{}, cl.ErrAlbumNotFound
	}
	doc := photoDocument{
		ID:    primitive.NewObjectID(),
		Album: aid,
		Title: req.Title,
		URL:   req.URL,
		Date:  time.Now().UTC().Truncate(time.Millisecond),
	}
	if req.Date != nil {
		doc.Date = req.Date.UTC().Truncate(time.Millisecond)
	}

	err := m.do(ctx, "create_photo", func(ctx context.Context) error {
		_, err := m.photos.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		return cl.Photo{}, errors.Wrap(err, "insert photo")
	}
	return doc.photo(), nil
}

func (m *Mongo) UpdatePhoto(ctx context.Context, albumID, photoID string, req cl.UpdatePhotoRequest) (cl.Photo, error) {
	filter, ok := photoFilter(albumID, photoID)
	if !ok {
		return cl.Photo{}, cl.ErrPhotoNotFound
	}
	if req.Empty() {
		return m.GetPhoto(ctx, albumID, photoID)
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.URL != nil {
		set["url"] = *req.URL
	}
	if req.Date != nil {
		set["date"] = req.Date.UTC()
	}

	var doc photoDocument
	err := m.do(ctx, "update_photo", func(ctx context.Context) error {
		return m.photos.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, afterUpdate()).Decode(&doc)
	})
	if err == mongo.ErrNoDocuments {
		return cl.Photo{}, cl.ErrPhotoNotFound
	}
	if err != nil {
		return cl.Photo{}, errors.Wrap(err, "update photo")
	}
	return doc.photo(), nil
}

func (m *Mongo) DeletePhoto(ctx context.Context, albumID, photoID string) (cl.Photo, error) {
	filter, ok := photoFilter(albumID, photoID)
	if !ok {
		return cl.Photo{}, cl.ErrPhotoNotFound
	}

	var doc photoDocument
	err := m.do(ctx, "delete_photo", func(ctx context.Context) error {
		return m.photos.FindOneAndDelete(ctx, filter).Decode(&doc)
	})
	if err == mongo.ErrNoDocuments {
		return cl.Photo{}, cl.ErrPhotoNotFound
	}
	if err != nil {
		return cl.Photo{}, errors.Wrap(err, "delete photo")
	}
	return doc.photo(), nil
}

func (m *Mongo) DeleteAlbumPhotos(ctx context.Context, albumID string) (int64, error) {
	aid, ok := objectID(albumID)
	if !ok {
		return 0, nil
	}

	var n int64
	err := m.do(ctx, "delete_album_photos", func(ctx context.Context) error {
		res, err := m.photos.DeleteMany(ctx, bson.M{"album": aid})
		if err != nil {
			return err
		}
		n = res.DeletedCount
		return nil
	})
	return n, errors.Wrap(err, "delete album photos")
}
