package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-agent/internal/config"
	"github.com/sells-group/lead-agent/internal/fetcher"
	"github.com/sells-group/lead-agent/internal/model"
)

// Catalog drivers.
const (
	DriverStatic   = "static"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRemote   = "remote"
)

// Store is a writable catalog database.
type Store interface {
	Source
	Migrate(ctx context.Context) error
	Replace(ctx context.Context, source string, leads []model.Lead) (string, error)
	Close() error
}

// OpenStore opens a Postgres store for postgres:// DSNs and a SQLite store
// for anything else.
func OpenStore(ctx context.Context, dsn string) (Store, error) {
	if isPostgresDSN(dsn) {
		st, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	st, err := OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open loads the catalog described by cfg. Database connections are closed
// once the leads are read.
func Open(ctx context.Context, cfg config.CatalogConfig) (*Catalog, error) {
	if cfg.TimeoutSecs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutSecs)*time.Second)
		defer cancel()
	}

	driver := cfg.Driver
	if driver == "" {
		driver = DriverStatic
	}

	var src Source
	switch driver {
	case DriverStatic:
		src = Static{}
	case DriverFile:
		src = File{Path: cfg.Path, Format: cfg.Format}
	case DriverSQLite:
		st, err := OpenSQLite(cfg.DSN)
		if err != nil {
			return nil, err
		}
		defer st.Close() //nolint:errcheck
		src = st
	case DriverPostgres:
		st, err := OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		defer st.Close() //nolint:errcheck
		src = st
	case DriverRemote:
		f, err := fetcher.ForURL(cfg.URL, time.Duration(cfg.TimeoutSecs)*time.Second)
		if err != nil {
			return nil, eris.Wrap(err, "catalog: remote fetcher")
		}
		src = Remote{URL: cfg.URL, Format: cfg.Format, Fetcher: f}
	default:
		return nil, eris.Errorf("catalog: unknown driver %q", driver)
	}

	c, err := Load(ctx, src)
	if err != nil {
		return nil, err
	}
	zap.L().Info("catalog: loaded",
		zap.String("driver", driver),
		zap.Int("leads", c.Len()),
	)
	return c, nil
}
