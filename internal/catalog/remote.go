package catalog

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-agent/internal/fetcher"
	"github.com/sells-group/lead-agent/internal/model"
)

// Remote downloads a catalog file over HTTP(S) or FTP and parses it like File.
type Remote struct {
	URL string
	// Format overrides detection from the URL path when set.
	Format  string
	Fetcher fetcher.Fetcher
}

// Load implements Source.
func (r Remote) Load(ctx context.Context) ([]model.Lead, error) {
	format := strings.ToLower(r.Format)
	if format == "" {
		u, err := url.Parse(r.URL)
		if err != nil {
			return nil, eris.Wrap(err, "catalog: parse remote url")
		}
		if format, err = FormatFor(path.Base(u.Path)); err != nil {
			return nil, err
		}
	}

	dir, err := os.MkdirTemp("", "lead-agent-catalog-*")
	if err != nil {
		return nil, eris.Wrap(err, "catalog: create temp dir")
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	local := filepath.Join(dir, "catalog."+format)
	n, err := r.Fetcher.DownloadToFile(ctx, r.URL, local)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: download %s", r.URL)
	}
	zap.L().Debug("catalog: downloaded remote catalog",
		zap.String("url", r.URL),
		zap.Int64("bytes", n),
	)

	return File{Path: local, Format: format}.Load(ctx)
}
