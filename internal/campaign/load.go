package campaign

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-agent/internal/model"
)

// LoadFile reads and validates a campaign from a .json, .yaml or .yml file.
func LoadFile(path string) (model.Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Campaign{}, eris.Wrapf(err, "campaign: read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// IsCampaignFile reports whether path has an extension LoadFile understands.
func IsCampaignFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
