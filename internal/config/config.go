package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"barberbook/internal/model"
)

// NOTE: This file provides the configuration model and full YAML-based
// load/save behavior, including first-run config creation and 0600
// permissions.

// ShopConfig describes the shop shown on confirmations and invites.
type ShopConfig struct {
	Name     string `yaml:"name" json:"name"`
	Location string `yaml:"location" json:"location"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the Web UI/API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	// Level is one of "debug", "info", "error".
	Level string `yaml:"level" json:"level"`
	// Format is "json" (default) or "console".
	Format string `yaml:"format" json:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the booking page and API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone in which "today" is evaluated.
	Timezone string `yaml:"timezone" json:"timezone"`

	// WeekStart controls which weekday opens each calendar row.
	// Supported values:
	//   - "sunday" (default)
	//   - "monday"
	WeekStart string `yaml:"week_start" json:"week_start"`

	// ClosedWeekdays lists the two weekdays on which no date is selectable.
	ClosedWeekdays []string `yaml:"closed_weekdays" json:"closed_weekdays"`

	// Opening is the first slot of the day as "15:04".
	Opening string `yaml:"opening" json:"opening"`

	// SlotMinutes is the length of one slot.
	SlotMinutes int `yaml:"slot_minutes" json:"slot_minutes"`

	// SlotCount is the number of slots in the daily catalog.
	SlotCount int `yaml:"slot_count" json:"slot_count"`

	// SubmitDelayMs is the simulated submission latency. Zero or missing
	// means the default 1500 ms.
	SubmitDelayMs int `yaml:"submit_delay_ms" json:"submit_delay_ms"`

	// SessionTTLMinutes is how long an idle booking session is kept.
	SessionTTLMinutes int `yaml:"session_ttl_minutes" json:"session_ttl_minutes"`

	// Sweep is a cron-style schedule (e.g. "*/5 * * * *") for evicting
	// idle sessions.
	Sweep string `yaml:"sweep" json:"sweep"`

	Shop    ShopConfig     `yaml:"shop" json:"shop"`
	Barbers []model.Barber `yaml:"barbers" json:"barbers"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`

	Log LogConfig `yaml:"log" json:"log"`
}

const (
	defaultListen        = "127.0.0.1:8080"
	defaultTimezone      = "America/New_York"
	defaultOpening       = "10:00"
	defaultSlotMinutes   = 30
	defaultSlotCount     = 20
	defaultSubmitDelayMs = 1500
	defaultSessionTTL    = 30
	defaultSweep         = "*/5 * * * *"
)

func defaultClosedWeekdays() []string {
	return []string{"sunday", "monday"}
}

func defaultBarbers() []model.Barber {
	return []model.Barber{
		{ID: "marcus", Name: "Marcus"},
		{ID: "dre", Name: "Dre"},
		{ID: "any", Name: "Any Available"},
	}
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:            defaultListen,
		Timezone:          defaultTimezone,
		WeekStart:         "sunday",
		ClosedWeekdays:    defaultClosedWeekdays(),
		Opening:           defaultOpening,
		SlotMinutes:       defaultSlotMinutes,
		SlotCount:         defaultSlotCount,
		SubmitDelayMs:     defaultSubmitDelayMs,
		SessionTTLMinutes: defaultSessionTTL,
		Sweep:             defaultSweep,
		Shop: ShopConfig{
			Name:     "Fade Co.",
			Location: "Fade Co. Barbershop",
		},
		Barbers:   defaultBarbers(),
		BasicAuth: nil,
		Log:       LogConfig{Level: "info", Format: "json"},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	switch c.WeekStart {
	case "monday", "sunday":
		// ok
	default:
		// Unknown value; fall back to sunday to avoid surprising layouts.
		c.WeekStart = "sunday"
	}

	// Exactly two distinct, known weekdays; anything else reverts to the default pair.
	if days, err := ParseWeekdays(c.ClosedWeekdays); err != nil || len(days) != 2 || days[0] == days[1] {
		c.ClosedWeekdays = defaultClosedWeekdays()
	}

	if _, err := time.Parse("15:04", c.Opening); err != nil {
		c.Opening = defaultOpening
	}
	if c.SlotMinutes <= 0 {
		c.SlotMinutes = defaultSlotMinutes
	}
	if c.SlotCount <= 0 {
		c.SlotCount = defaultSlotCount
	}
	if c.SubmitDelayMs <= 0 {
		c.SubmitDelayMs = defaultSubmitDelayMs
	}
	if c.SessionTTLMinutes <= 0 {
		c.SessionTTLMinutes = defaultSessionTTL
	}
	if c.Sweep == "" {
		c.Sweep = defaultSweep
	}
	if len(c.Barbers) == 0 {
		c.Barbers = defaultBarbers()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Location resolves Timezone, falling back to time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local, err
	}
	return loc, nil
}

// WeekStartDay returns WeekStart as a time.Weekday.
func (c *Config) WeekStartDay() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// ClosedDays returns the parsed closed weekdays. Normalize guarantees they parse.
func (c *Config) ClosedDays() []time.Weekday {
	days, err := ParseWeekdays(c.ClosedWeekdays)
	if err != nil {
		days, _ = ParseWeekdays(defaultClosedWeekdays())
	}
	return days
}

// OpeningClock returns the opening hour and minute.
func (c *Config) OpeningClock() (hour, minute int) {
	t, err := time.Parse("15:04", c.Opening)
	if err != nil {
		t, _ = time.Parse("15:04", defaultOpening)
	}
	return t.Hour(), t.Minute()
}

func (c *Config) SlotLength() time.Duration {
	return time.Duration(c.SlotMinutes) * time.Minute
}

func (c *Config) SubmitDelay() time.Duration {
	return time.Duration(c.SubmitDelayMs) * time.Millisecond
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// ParseWeekdays converts English weekday names (case-insensitive, full or
// three-letter) to time.Weekday values.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		found := false
		for d := time.Sunday; d <= time.Saturday; d++ {
			full := strings.ToLower(d.String())
			if key == full || key == full[:3] {
				out = append(out, d)
				found = true
				break
			}
		}
		if !found {
			return nil, errors.New("unknown weekday: " + n)
		}
	}
	return out, nil
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

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
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

	tmp, err := os.CreateTemp(dir, ".barberbook-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
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

	// Set permissions to 0600 on temp file before rename.
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
