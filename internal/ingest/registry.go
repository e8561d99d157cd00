package ingest

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed config/sources.yaml
var sourcesYAML embed.FS

// Registry holds the configured data sources, in priority order. When two
// sources carry a record with the same title, the earlier source wins.
type Registry struct {
	Sources []SourceConfig `yaml:"sources"`
}

// FetchConfig defines HTTP fetching configuration for a source.
type FetchConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"` // Default: 30
	MaxRetries     int `yaml:"max_retries,omitempty"`     // Default: 3
}

// SourceConfig defines a single JSON source. URL may be an http(s) endpoint
// or a local file path.
type SourceConfig struct {
	ID    string      `yaml:"id"`
	Name  string      `yaml:"name"`
	URL   string      `yaml:"url"`
	Fetch FetchConfig `yaml:"fetch,omitempty"`
}

// LoadRegistry reads the embedded sources.yaml, or the file at path when one
// is given. Environment variables inside the YAML (e.g. ${DATA_DIR}) are
// expanded.
func LoadRegistry(path string) (*Registry, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = sourcesYAML.ReadFile("config/sources.yaml")
	}
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	var reg Registry
	if err := yaml.Unmarshal([]byte(expanded), &reg); err != nil {
		return nil, err
	}
	if len(reg.Sources) == 0 {
		return nil, fmt.Errorf("source registry is empty")
	}
	for i, src := range reg.Sources {
		if src.ID == "" || src.URL == "" {
			return nil, fmt.Errorf("source %d is missing id or url", i)
		}
	}
	return &reg, nil
}
