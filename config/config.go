package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/nzgridlab/gridsim/core/metrics"
)

// Config is the root configuration of the gridsim service.
type Config struct {
	Data    DataConfig     `json:"data"`
	Server  ServerConfig   `json:"server"`
	Metrics metrics.Config `json:"metrics"`
}

// DataConfig locates the source files the engine consumes.
type DataConfig struct {
	// Fleet is the vehicle register extract CSV.
	Fleet string `json:"fleet"`
	// Generation is the monthly generation extract CSV.
	Generation string `json:"generation"`
	// DemandZone and DemandNode are the demand trend extracts for zone and
	// territorial views respectively.
	DemandZone string `json:"demand_zone"`
	DemandNode string `json:"demand_node"`
	// Network is the network supply points table CSV.
	Network string `json:"network"`
	// ZoneBoundaries and TABoundaries are the region GeoJSON files.
	ZoneBoundaries string `json:"zone_boundaries"`
	TABoundaries   string `json:"ta_boundaries"`
	// DemandSkipRows is the metadata preamble length of demand extracts.
	DemandSkipRows int `json:"demand_skip_rows"`
}

// ServerConfig holds the API listener settings.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *DataConfig) SetDefaults() {
	if c.DemandSkipRows == 0 {
		c.DemandSkipRows = 11
	}
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Validate checks mandatory fields.
func (c DataConfig) Validate() error {
	required := map[string]string{
		"data.fleet":           c.Fleet,
		"data.generation":      c.Generation,
		"data.demand_zone":     c.DemandZone,
		"data.network":         c.Network,
		"data.zone_boundaries": c.ZoneBoundaries,
		"data.ta_boundaries":   c.TABoundaries,
	}
	for name, v := range required {
		if v == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	return nil
}

// Load reads the configuration file, applying environment overrides with
// the GRIDSIM_ prefix ("GRIDSIM_SERVER__ADDR" overrides "server.addr").
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("GRIDSIM_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "gridsim_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Data.SetDefaults()
	cfg.Server.SetDefaults()
	if err := cfg.Data.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
