package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"syscall"
	"time"

	"album-service/internal"
	"album-service/internal/auth"
	"album-service/internal/http"
	"album-service/internal/memory"
	"album-service/internal/metrics"
	"album-service/internal/mongo"
	"album-service/internal/postgres"

	"cloud.google.com/go/compute/metadata"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/lifecycle"
	"github.com/twitsprout/tools/zap"
	"golang.org/x/time/rate"
)

const appName = "album-service"

var version string

type variables struct {
	Addr         string        `required:"true" envconfig:"addr"`
	AppName      string        `required:"true" envconfig:"app_name"`
	JWTSecret    string        `required:"true" envconfig:"jwt_secret"`
	Store        string        `required:"false" envconfig:"store" default:"mongo"`
	MongoURI     string        `required:"false" envconfig:"mongo_uri" default:"mongodb://localhost:27017"`
	MongoDB      string        `required:"false" envconfig:"mongo_db" default:"albums"`
	PostgresHost string        `required:"false" envconfig:"postgres_host"`
	PostgresPort int           `required:"false" envconfig:"postgres_port"`
	PostgresDB   string        `required:"false" envconfig:"postgres_db"`
	PostgresUser string        `required:"false" envconfig:"postgres_user"`
	PostgresPass string        `required:"false" envconfig:"postgres_pass"`
	StoreTimeout time.Duration `required:"false" envconfig:"store_timeout" default:"5s"`
	RateLimit    float64       `required:"false" envconfig:"rate_limit" default:"0"`
	RateBurst    int           `required:"false" envconfig:"rate_burst" default:"20"`
	LogLevel     string        `required:"false" envconfig:"log_level"`
}

var v variables

func init() {
	if metadata.OnGCE() {
		port := os.Getenv("PORT")
		err := os.Setenv("ADDR", ":"+port)
		if err != nil {
			log.Fatal(err)
		}
	}

	envconfig.MustProcess("album_service", &v)
	fmt.Printf("Env variables : addr=%s store=%s app_name=%s\n", v.Addr, v.Store, v.AppName)
	if v.LogLevel == "" {
		v.LogLevel = "info"
	}
}

func main() {
	logger := zap.New(appName, version, os.Stdout)
	if err := logger.SetLevel(v.LogLevel); err != nil {
		logger.Error("failed to set log level", "error", err.Error())
	}

	stats := metrics.New("album_service")

	ctx := context.Background()

	lc, ctx := lifecycle.New(ctx, logger)
	lc.Start("album-service root context", func() error {
		<-ctx.Done()
		return ctx.Err()
	})

	store, closeStore, err := newStore(ctx, v, stats)
	if err != nil {
		logger.Error("unable to open store", "store", v.Store, "error", err.Error())
		os.Exit(1)
	}
	defer closeStore()
	logger.Info("store ready", "store", v.Store)

	h := http.Handler{
		Logger:     logger,
		Stats:      stats,
		Version:    version,
		AppName:    v.AppName,
		Auth:       auth.NewJWT(v.JWTSecret, nil),
		AlbumStore: store,
		PhotoStore: store,
		RateLimit:  rate.Limit(v.RateLimit),
		RateBurst:  v.RateBurst,
	}
	server := httputils.NewServer(v.Addr, h.Handler())
	lc.StartServer(server)
	lc.StartSignals(syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	_ = lc.Wait(15 * time.Second)
}

// newStore opens the backend named by v.Store. The returned func releases it.
func newStore(ctx context.Context, v variables, sc tools.StatsClient) (internal.Store, func(), error) {
	switch v.Store {
	case "mongo":
		m, err := mongo.New(ctx, mongo.Config{
			URI:      v.MongoURI,
			Database: v.MongoDB,
			Timeout:  v.StoreTimeout,
		}, sc)
		if err != nil {
			return nil, nil, err
		}
		return m, func() {
			cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = m.Close(cctx)
		}, nil
	case "postgres":
		pg, err := newPostgres(v, sc)
		if err != nil {
			return nil, nil, err
		}
		return pg, func() { _ = pg.Close() }, nil
	case "memory":
		return memory.New(), func() {}, nil
	default:
		return nil, nil, errors.Errorf("unknown store %q", v.Store)
	}
}

func newPostgres(v variables, sc tools.StatsClient) (*postgres.Postgres, error) {
	if v.PostgresHost == "" || v.PostgresDB == "" || v.PostgresUser == "" {
		return nil, errors.New("postgres store needs host, db and user")
	}
	pgConfig := postgres.Config{
		Host:       v.PostgresHost,
		Name:       v.PostgresDB,
		Password:   v.PostgresPass,
		Username:   v.PostgresUser,
		DisableSSL: true,
	}
	// Only use a Postgres port if one was provided
	if v.PostgresPort > 0 {
		pgConfig.Port = v.PostgresPort
	}
	return postgres.New(pgConfig, v.StoreTimeout, sc)
}
