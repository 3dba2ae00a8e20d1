package postgres

import (
	"context"
	"database/sql"
	"time"

	cl "album-service/pkg/catelog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const tablePhotos = "photos"

const (
	photosColumnID      = `"id"`
	photosColumnAlbumID = `"album_id"`
	photosColumnTitle   = `"title"`
	photosColumnURL     = `"url"`
	photosColumnDate    = `"date"`
)

var photosColumns = []string{
	photosColumnID,
	photosColumnAlbumID,
	photosColumnTitle,
	photosColumnURL,
	photosColumnDate,
}

// photoRow fields are mapped to columns by ToSnakeCase.
type photoRow struct {
	ID      string
	AlbumID string
	Title   string
	URL     string
	Date    time.Time
}

func (r photoRow) photo() cl.Photo {
	return cl.Photo{
		ID:      r.ID,
		AlbumID: r.AlbumID,
		Title:   r.Title,
		URL:     r.URL,
		Date:    r.Date.UTC(),
	}
}

func scoped(albumID, photoID string) sq.Eq {
	return sq.Eq{photosColumnID: photoID, photosColumnAlbumID: albumID}
}

func (p *Postgres) ListPhotos(ctx context.Context, albumID string) ([]cl.Photo, error) {
	q, args, err := psql.
		Select(tableColumns(tablePhotos, photosColumns)...).
		From(tablePhotos).
		Where(sq.Eq{photosColumnAlbumID: albumID}).
		OrderBy(photosColumnDate + " ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build list photos query")
	}

	var rows []photoRow
	err = p.do(ctx, "list_photos", func(ctx context.Context) error {
		return p.sqldb.SelectContext(ctx, &rows, q, args...)
	})
	if err != nil {
		return nil, errors.Wrap(err, "execute list photos query")
	}

	res := make([]cl.Photo, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.photo())
	}
	return res, nil
}

func (p *Postgres) GetPhoto(ctx context.Context, albumID, photoID string) (cl.Photo, error) {
	q, args, err := psql.
		Select(tableColumns(tablePhotos, photosColumns)...).
		From(tablePhotos).
		Where(scoped(albumID, photoID)).
		ToSql()
	if err != nil {
		return cl.Photo{}, errors.Wrap(err, "build get photo query")
	}
	return p.getPhoto(ctx, "get_photo", QueryValues{q, args})
}

func (p *Postgres) CreatePhoto(ctx context.Context, req cl.CreatePhotoRequest) (cl.Photo, error) {
	date := time.Now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}
	q, args, err := psql.
		Insert(tablePhotos).
		Columns(photosColumns...).
		Values(uuid.NewString(), req.AlbumID, req.Title, req.URL, date).
		Suffix(returning(photosColumns)).
		ToSql()
	if err != nil {
		return cl.Photo{}, errors.Wrap(err, "build create photo query")
	}
	return p.getPhoto(ctx, "create_photo", QueryValues{q, args})
}

func (p *Postgres) UpdatePhoto(ctx context.Context, albumID, photoID string, req cl.UpdatePhotoRequest) (cl.Photo, error) {
	if req.Empty() {
		return p.GetPhoto(ctx, albumID, photoID)
	}
	set := map[string]interface{}{}
	if req.Title != nil {
		set[photosColumnTitle] = *req.Title
	}
	if req.URL != nil {
		set[photosColumnURL] = *req.URL
	}
	if req.Date != nil {
		set[photosColumnDate] = req.Date.UTC()
	}
	q, args, err := psql.
		Update(tablePhotos).
		SetMap(set).
		Where(scoped(albumID, photoID)).
		Suffix(returning(photosColumns)).
		ToSql()
	if err != nil {
		return cl.Photo{}, errors.Wrap(err, "build update photo query")
	}
	return p.getPhoto(ctx, "update_photo", QueryValues{q, args})
}

func (p *Postgres) DeletePhoto(ctx context.Context, albumID, photoID string) (cl.Photo, error) {
	q, args, err := psql.
		Delete(tablePhotos).
		Where(scoped(albumID, photoID)).
		Suffix(returning(photosColumns)).
		ToSql()
	if err != nil {
		return cl.Photo{}, errors.Wrap(err, "build delete photo query")
	}
	return p.getPhoto(ctx, "delete_photo", QueryValues{q, args})
}

func (p *Postgres) DeleteAlbumPhotos(ctx context.Context, albumID string) (int64, error) {
	q, args, err := psql.
		Delete(tablePhotos).
		Where(sq.Eq{photosColumnAlbumID: albumID}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build delete album photos query")
	}

	var n int64
	err = p.do(ctx, "delete_album_photos", func(ctx context.Context) error {
		res, err := p.sqldb.ExecContext(ctx, q, args...)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	return n, errors.Wrap(err, "execute delete album photos query")
}

// getPhoto runs a query returning at most one photo row.
func (p *Postgres) getPhoto(ctx context.Context, label string, qv QueryValues) (cl.Photo, error) {
	var r photoRow
	err := p.do(ctx, label, func(ctx context.Context) error {
		return p.sqldb.GetContext(ctx, &r, qv.query, qv.args...)
	})
	if err == sql.ErrNoRows {
		return cl.Photo{}, cl.ErrPhotoNotFound
	}
	if err != nil {
		return cl.Photo{}, errors.Wrapf(err, "execute %s query", label)
	}
	return r.photo(), nil
}
