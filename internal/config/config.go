package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// NOTE: This file provides the configuration model and full YAML-based
// load/save behavior, including first-run config creation and 0600
// permissions.

// ServiceConfig is one entry of the service catalog offered when booking.
type ServiceConfig struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Category    string `yaml:"category" json:"category"`
	Description string `yaml:"description" json:"description"`
	// Price is kept as written ("25", "25,50"); the planner formats it.
	Price string `yaml:"price" json:"price"`
	// DurationMinutes is used when a submitted end is not after the start.
	DurationMinutes int `yaml:"duration_minutes" json:"duration_minutes"`
}

// ClientConfig is a client record that can be attached to an appointment.
type ClientConfig struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// CatalogConfig groups the pre-rendered select options of the new-event form.
type CatalogConfig struct {
	Services []ServiceConfig `yaml:"services" json:"services"`
	Clients  []ClientConfig  `yaml:"clients" json:"clients"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the dashboard.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// LabelsConfig holds the localized planner range labels.
type LabelsConfig struct {
	Week string `yaml:"week" json:"week"`
	Day  string `yaml:"day" json:"day"`
}

// LogConfig controls internal/log.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// SnapshotConfig controls the headless planner capture.
type SnapshotConfig struct {
	// Cron, if set, captures the planner on this schedule (e.g. "0 7 * * *").
	Cron   string `yaml:"cron" json:"cron"`
	URL    string `yaml:"url" json:"url"`
	Output string `yaml:"output" json:"output"`
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the dashboard.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone used for the planner. Empty or "Local"
	// means the system clock's zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	// Locale and Currency drive price formatting (BCP 47 / ISO 4217).
	Locale   string `yaml:"locale" json:"locale"`
	Currency string `yaml:"currency" json:"currency"`

	Labels LabelsConfig `yaml:"labels" json:"labels"`

	// Owner is displayed as the creator of appointments booked from the dashboard.
	Owner string `yaml:"owner" json:"owner"`

	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`

	// SeedICS, if set, is an ICS file imported into the planner at startup.
	SeedICS string `yaml:"seed_ics" json:"seed_ics"`

	// AssetsDir, if set, serves planner.wasm and wasm_exec.js under /static/.
	AssetsDir string `yaml:"assets_dir" json:"assets_dir"`

	Log      LogConfig      `yaml:"log" json:"log"`
	Snapshot SnapshotConfig `yaml:"snapshot" json:"snapshot"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:   "127.0.0.1:8080",
		Timezone: "Local",
		Locale:   "fr",
		Currency: "EUR",
		Labels:   LabelsConfig{Week: "Vue semaine", Day: "Vue jour"},
		Owner:    "",
		Catalog: CatalogConfig{
			Services: []ServiceConfig{},
			Clients:  []ClientConfig{},
		},
		Log: LogConfig{Level: "info"},
		Snapshot: SnapshotConfig{
			Output: "./cache/planner.png",
			Width:  1280,
			Height: 900,
		},
		BasicAuth: nil,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.Locale == "" {
		c.Locale = def.Locale
	}
	if c.Currency == "" {
		c.Currency = def.Currency
	}
	if c.Labels.Week == "" {
		c.Labels.Week = def.Labels.Week
	}
	if c.Labels.Day == "" {
		c.Labels.Day = def.Labels.Day
	}
	if c.Catalog.Services == nil {
		c.Catalog.Services = []ServiceConfig{}
	}
	if c.Catalog.Clients == nil {
		c.Catalog.Clients = []ClientConfig{}
	}
	for i := range c.Catalog.Services {
		if c.Catalog.Services[i].DurationMinutes < 0 {
			c.Catalog.Services[i].DurationMinutes = 0
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Snapshot.Output == "" {
		c.Snapshot.Output = def.Snapshot.Output
	}
	if c.Snapshot.Width <= 0 {
		c.Snapshot.Width = def.Snapshot.Width
	}
	if c.Snapshot.Height <= 0 {
		c.Snapshot.Height = def.Snapshot.Height
	}
	if c.Snapshot.URL == "" {
		c.Snapshot.URL = "http://" + c.Listen + "/?section=planning"
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path atomically
// (temp file in the same directory, then rename) with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".kitplanner-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
