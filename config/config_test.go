package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `data:
  fleet: "data/Fleet-31Mar2025.csv"
  generation: "data/202503_Generation_MD.csv"
  demand_zone: "data/Demand_trends_zone_202503.csv"
  demand_node: "data/Demand_trends_node_202503.csv"
  network: "data/20250614_NetworkSupplyPointsTable.csv"
  zone_boundaries: "data/WGS84_GeoJSON_Zone.JSON"
  ta_boundaries: "data/territorial-authority-2025.json"
server:
  addr: ":9000"
metrics:
  sinks:
    - type: "nop"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"fleet", cfg.Data.Fleet, "data/Fleet-31Mar2025.csv"},
		{"generation", cfg.Data.Generation, "data/202503_Generation_MD.csv"},
		{"demand_zone", cfg.Data.DemandZone, "data/Demand_trends_zone_202503.csv"},
		{"network", cfg.Data.Network, "data/20250614_NetworkSupplyPointsTable.csv"},
		{"demand_skip_rows default", cfg.Data.DemandSkipRows, 11},
		{"server addr", cfg.Server.Addr, ":9000"},
		{"metrics sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadMissingRequired(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":8080\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for missing data paths")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatal("expected unsupported format error")
	}
}
