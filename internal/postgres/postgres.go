package postgres

import (
	"context"
	"regexp"
	"strings"
	"time"

	"album-service/internal"
	"album-service/internal/metrics"

	sq "github.com/Masterminds/squirrel"

	"github.com/jmoiron/sqlx"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/postgres"
)

type Config postgres.Config

var matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
var matchAllCap = regexp.MustCompile("([a-z0-9])([A-Z])")

func ToSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}

// Postgres represents the type to interact with the PostgreSQL database.
type Postgres struct {
	sqldb *sqlx.DB
	db    *postgres.DB
}

var _ internal.Store = (*Postgres)(nil)

type QueryValues struct {
	query string
	args  []interface{}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// New creates a new Postgres store. Every query runs through the DB's Do
// method, bounded by timeout and timed into the StatsClient.
func New(c Config, timeout time.Duration, sc tools.StatsClient) (*Postgres, error) {
	if sc == nil {
		sc = metrics.Nop
	}
	ops := []postgres.Option{
		postgres.WithOnComplete(onComplete(sc)),
	}
	if timeout > 0 {
		ops = append(ops, postgres.WithTimeout(timeout))
	}
	db, err := postgres.NewDB(postgres.Config(c), ops...)
	if err != nil {
		return nil, err
	}
	sqldb := sqlx.NewDb(db.SQLDB(), "postgres")
	sqldb.MapperFunc(ToSnakeCase)
	return &Postgres{sqldb: sqldb, db: db}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

func onComplete(sc tools.StatsClient) func(context.Context, string, time.Time, error) error {
	return func(_ context.Context, label string, start time.Time, err error) error {
		status := "ok"
		if err != nil {
			status = "error"
		}
		sc.Histogram(metrics.StoreDuration, time.Since(start).Seconds(), []string{"postgres", label, status})
		return err
	}
}

// do runs fn through the DB so the configured timeout and stats apply.
func (p *Postgres) do(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	return p.db.Do(ctx, label, func(ctx context.Context, _ postgres.Conn) error {
		return fn(ctx)
	})
}
