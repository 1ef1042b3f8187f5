package catalog

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-agent/internal/fetcher"
	"github.com/sells-group/lead-agent/internal/model"
)

//go:embed seed.json
var seedJSON []byte

// Static serves the seed catalog compiled into the binary.
type Static struct{}

// Load implements Source.
func (Static) Load(ctx context.Context) ([]model.Lead, error) {
	leads, err := fetcher.DecodeJSONArray[model.Lead](ctx, bytes.NewReader(seedJSON))
	if err != nil {
		return nil, eris.Wrap(err, "catalog: decode seed catalog")
	}
	return leads, nil
}
