package config

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/vsinha/explan/pkg/infrastructure/repositories/tabular"
)

// EnvPrefix prefixes environment overrides, e.g. EXPLAN_SCHEDULING__LEAD_TIME_DAYS
const EnvPrefix = "EXPLAN_"

// Supported output formats
var OutputFormats = []string{"text", "json", "csv", "xlsx"}

// Config is the complete planner configuration
type Config struct {
	Input      InputConfig      `koanf:"input" toml:"input"`
	Scheduling SchedulingConfig `koanf:"scheduling" toml:"scheduling"`
	Output     OutputConfig     `koanf:"output" toml:"output"`
	Server     ServerConfig     `koanf:"server" toml:"server"`
	Logging    LoggingConfig    `koanf:"logging" toml:"logging"`
}

// InputConfig locates the source workbook (or CSV directory) and its layout
type InputConfig struct {
	Path              string          `koanf:"path" toml:"path"`
	DemandSheet       string          `koanf:"demand_sheet" toml:"demand_sheet"`
	ProductivitySheet string          `koanf:"productivity_sheet" toml:"productivity_sheet"`
	Columns           tabular.Columns `koanf:"columns" toml:"columns"`
}

// SchedulingConfig externalizes the scheduling constants
type SchedulingConfig struct {
	LeadTimeDays int `koanf:"lead_time_days" toml:"lead_time_days"`
	ShiftsPerDay int `koanf:"shifts_per_day" toml:"shifts_per_day"`
	// PriorityPrefixes lists mold prefixes from highest to lowest priority
	PriorityPrefixes []string `koanf:"priority_prefixes" toml:"priority_prefixes"`
}

// OutputConfig selects the plan rendering
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"`
	Path   string `koanf:"path" toml:"path"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr    string `koanf:"addr" toml:"addr"`
	DevMode bool   `koanf:"dev_mode" toml:"dev_mode"`
}

// LoggingConfig configures the process logger
type LoggingConfig struct {
	Level  string `koanf:"level" toml:"level"`
	Format string `koanf:"format" toml:"format"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:              "PRODUCCION KARDEX.xlsx",
			DemandSheet:       "BASE1",
			ProductivitySheet: "BASE2",
			Columns:           tabular.DefaultColumns(),
		},
		Scheduling: SchedulingConfig{
			LeadTimeDays:     2,
			ShiftsPerDay:     3,
			PriorityPrefixes: []string{"MYIFZ", "MYOP"},
		},
		Output: OutputConfig{
			Format: "text",
			Path:   "Plan_de_Fabricacion.xlsx",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, an optional file (.toml,
// .yaml, .yml or .json) and EXPLAN_ environment overrides, in that order.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(defaultsProvider{}, TOMLParser()); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return TOMLParser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// envValue maps EXPLAN_SCHEDULING__PRIORITY_PREFIXES=A,B to
// scheduling.priority_prefixes = [A B]
func envValue(key, value string) (string, interface{}) {
	key = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "__", ".")
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return key, parts
	}
	return key, value
}

// Validate checks enumerations and mandatory fields
func (c *Config) Validate() error {
	if c.Input.DemandSheet == "" || c.Input.ProductivitySheet == "" {
		return fmt.Errorf("input sheets are required")
	}
	if c.Scheduling.LeadTimeDays < 0 {
		return fmt.Errorf("scheduling.lead_time_days cannot be negative, got %d", c.Scheduling.LeadTimeDays)
	}
	if c.Scheduling.ShiftsPerDay <= 0 {
		return fmt.Errorf("scheduling.shifts_per_day must be positive, got %d", c.Scheduling.ShiftsPerDay)
	}
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return fmt.Errorf("unknown output format %s (expected one of %s)", c.Output.Format, strings.Join(OutputFormats, ", "))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("unknown logging format %s", c.Logging.Format)
	}
	return nil
}

// WriteTOML encodes the configuration as a TOML document
func (c *Config) WriteTOML(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}
