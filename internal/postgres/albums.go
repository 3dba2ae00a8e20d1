package postgres

import (
	"context"
	"database/sql"

	cl "album-service/pkg/catelog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"
)

const tableAlbums = "albums"

const (
	albumsColumnID        = `"id"`
	albumsColumnTitle     = `"title"`
	albumsColumnArtist    = `"artist"`
	albumsColumnYear      = `"year"`
	albumsColumnCoverURL  = `"cover_url"`
	albumsColumnCreatedAt = `"created_at"`
)

var albumsColumns = []string{
	albumsColumnID,
	albumsColumnTitle,
	albumsColumnArtist,
	albumsColumnYear,
	albumsColumnCoverURL,
}

// albumRow fields are mapped to columns by ToSnakeCase.
type albumRow struct {
	ID       string
	Title    string
	Artist   string
	Year     null.Int
	CoverURL null.String
}

func (r albumRow) album() cl.Album {
	a := cl.Album{
		ID:     r.ID,
		Title:  r.Title,
		Artist: r.Artist,
	}
	if r.Year.Valid {
		y := int(r.Year.Int64)
		a.Year = &y
	}
	a.CoverURL = r.CoverURL.Ptr()
	return a
}

func (p *Postgres) ListAlbums(ctx context.Context) ([]cl.Album, error) {
	qv, err := buildListAlbumsQuery()
	if err != nil {
		return nil, errors.Wrap(err, "build list albums query")
	}

	var rows []albumRow
	err = p.do(ctx, "list_albums", func(ctx context.Context) error {
		return p.sqldb.SelectContext(ctx, &rows, qv.query, qv.args...)
	})
	if err != nil {
		return nil, errors.Wrap(err, "execute list albums query")
	}

	res := make([]cl.Album, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.album())
	}
	return res, nil
}

func buildListAlbumsQuery() (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableAlbums, albumsColumns)...).
		From(tableAlbums).
		OrderBy(albumsColumnCreatedAt + " ASC").
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "list albums build query into SQL string")
}

func (p *Postgres) GetAlbum(ctx context.Context, id string) (cl.Album, error) {
	qv, err := buildGetAlbumQuery(id)
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "build get album query")
	}
	return p.getAlbum(ctx, "get_album", qv)
}

func buildGetAlbumQuery(id string) (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableAlbums, albumsColumns)...).
		From(tableAlbums).
		Where(sq.Eq{albumsColumnID: id}).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "get album build query into SQL string")
}

func (p *Postgres) CreateAlbum(ctx context.Context, req cl.CreateAlbumRequest) (cl.Album, error) {
	qv, err := buildCreateAlbumQuery(uuid.NewString(), req)
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "build create album query")
	}
	return p.getAlbum(ctx, "create_album", qv)
}

func buildCreateAlbumQuery(id string, req cl.CreateAlbumRequest) (QueryValues, error) {
	q, args, err := psql.
		Insert(tableAlbums).
		Columns(albumsColumnID, albumsColumnTitle, albumsColumnArtist, albumsColumnYear, albumsColumnCoverURL).
		Values(id, req.Title, req.Artist, nullInt(req.Year), null.StringFromPtr(req.CoverURL)).
		Suffix(returning(albumsColumns)).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "create album build query into SQL string")
}

func (p *Postgres) UpdateAlbum(ctx context.Context, id string, req cl.UpdateAlbumRequest) (cl.Album, error) {
	if req.Empty() {
		return p.GetAlbum(ctx, id)
	}
	qv, err := buildUpdateAlbumQuery(id, req)
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "build update album query")
	}
	return p.getAlbum(ctx, "update_album", qv)
}

func buildUpdateAlbumQuery(id string, req cl.UpdateAlbumRequest) (QueryValues, error) {
	set := map[string]interface{}{}
	if req.Title != nil {
		set[albumsColumnTitle] = *req.Title
	}
	if req.Artist != nil {
		set[albumsColumnArtist] = *req.Artist
	}
	if req.Year != nil {
		set[albumsColumnYear] = *req.Year
	}
	if req.CoverURL != nil {
		set[albumsColumnCoverURL] = *req.CoverURL
	}
	q, args, err := psql.
		Update(tableAlbums).
		SetMap(set).
		Where(sq.Eq{albumsColumnID: id}).
		Suffix(returning(albumsColumns)).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "update album build query into SQL string")
}

func (p *Postgres) DeleteAlbum(ctx context.Context, id string) (cl.Album, error) {
	q, args, err := psql.
		Delete(tableAlbums).
		Where(sq.Eq{albumsColumnID: id}).
		Suffix(returning(albumsColumns)).
		ToSql()
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "build delete album query")
	}
	return p.getAlbum(ctx, "delete_album", QueryValues{q, args})
}

// getAlbum runs a query returning at most one album row.
func (p *Postgres) getAlbum(ctx context.Context, label string, qv QueryValues) (cl.Album, error) {
	var r albumRow
	err := p.do(ctx, label, func(ctx context.Context) error {
		return p.sqldb.GetContext(ctx, &r, qv.query, qv.args...)
	})
	if err == sql.ErrNoRows {
		return cl.Album{}, cl.ErrAlbumNotFound
	}
	if err != nil {
		return cl.Album{}, errors.Wrapf(err, "execute %s query", label)
	}
	return r.album(), nil
}

func nullInt(i *int) null.Int {
	if i == nil {
		return null.Int{}
	}
	return null.IntFrom(int64(*i))
}
