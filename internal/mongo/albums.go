package mongo

import (
	"context"

	cl "album-service/pkg/catelog"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type albumDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Title    string             `bson:"title"`
	Artist   string             `bson:"artist"`
	Year     *int               `bson:"year,omitempty"`
	CoverURL *string            `bson:"coverUrl,omitempty"`
}

func (d albumDocument) album() cl.Album {
	return cl.Album{
		ID:       d.ID.Hex(),
		Title:    d.Title,
		Artist:   d.Artist,
		Year:     d.Year,
		CoverURL: d.CoverURL,
	}
}

func (m *Mongo) ListAlbums(ctx context.Context) ([]cl.Album, error) {
	var docs []albumDocument
	err := m.do(ctx, "list_albums", func(ctx context.Context) error {
		cur, err := m.albums.Find(ctx, bson.M{})
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, errors.Wrap(err, "list albums")
	}

	res := make([]cl.Album, 0, len(docs))
	for _, d := range docs {
		res = append(res, d.album())
	}
	return res, nil
}

func (m *Mongo) GetAlbum(ctx context.Context, id string) (cl.Album, error) {
	oid, ok := objectID(id)
	if !ok {
		return cl.Album{}, cl.ErrAlbumNotFound
	}

	var doc albumDocument
	err := m.do(ctx, "get_album", func(ctx context.Context) error {
		return m.albums.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	})
	if err == mongo.ErrNoDocuments {
		return cl.Album{}, cl.ErrAlbumNotFound
	}
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "find album")
	}
	return doc.album(), nil
}

func (m *Mongo) CreateAlbum(ctx context.Context, req cl.CreateAlbumRequest) (cl.Album, error) {
	doc := albumDocument{
		ID:       primitive.NewObjectID(),
		Title:    req.Title,
		Artist:   req.Artist,
		Year:     req.Year,
		CoverURL: req.CoverURL,
	}
	err := m.do(ctx, "create_album", func(ctx context.Context) error {
		_, err := m.albums.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "insert album")
	}
	return doc.album(), nil
}

func (m *Mongo) UpdateAlbum(ctx context.Context, id string, req cl.UpdateAlbumRequest) (cl.Album, error) {
	oid, ok := objectID(id)
	if !ok {
		return cl.Album{}, cl.ErrAlbumNotFound
	}
	if req.Empty() {
		return m.GetAlbum(ctx, id)
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Artist != nil {
		set["artist"] = *req.Artist
	}
	if req.Year != nil {
		set["year"] = *req.Year
	}
	if req.CoverURL != nil {
		set["coverUrl"] = *req.CoverURL
	}

	var doc albumDocument
	err := m.do(ctx, "update_album", func(ctx context.Context) error {
		return m.albums.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, afterUpdate()).Decode(&doc)
	})
	if err == mongo.ErrNoDocuments {
		return cl.Album{}, cl.ErrAlbumNotFound
	}
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "update album")
	}
	return doc.album(), nil
}

func (m *Mongo) DeleteAlbum(ctx context.Context, id string) (cl.Album, error) {
	oid, ok := objectID(id)
	if !ok {
		return cl.Album{}, cl.ErrAlbumNotFound
	}

	var doc albumDocument
	err := m.do(ctx, "delete_album", func(ctx context.Context) error {
		return m.albums.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	})
	if err == mongo.ErrNoDocuments {
		return cl.Album{}, cl.ErrAlbumNotFound
	}
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "delete album")
	}
	return doc.album(), nil
}
