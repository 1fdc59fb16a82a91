package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the entire fraudsim configuration.
type Config struct {
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Simulation SimulationConfig `yaml:"simulation"`
	Warehouse  WarehouseConfig  `yaml:"warehouse"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// PipelineConfig holds the flat-file paths for the enrichment run.
type PipelineConfig struct {
	InputPath  string `yaml:"input_path"`
	OutputPath string `yaml:"output_path"`
}

// SimulationConfig holds every knob of the fraud-ring synthesis.
type SimulationConfig struct {
	Seed                 int64    `yaml:"seed"`
	HubFraction          float64  `yaml:"hub_fraction"`
	ClusterMinSize       int      `yaml:"cluster_min_size"`
	ClusterMaxSize       int      `yaml:"cluster_max_size"`
	EmailPoolSize        int      `yaml:"email_pool_size"`
	EmailHandleRoot      string   `yaml:"email_handle_root"`
	GeoNoiseFraction     float64  `yaml:"geo_noise_fraction"`
	AdCatalog            []string `yaml:"ad_catalog"`
	FraudTargetAds       []string `yaml:"fraud_target_ads"`
	Countries            []string `yaml:"countries"`
	ConnectionTypes      []string `yaml:"connection_types"`
	BaselineEmailDomains []string `yaml:"baseline_email_domains"`
	FraudEmailDomains    []string `yaml:"fraud_email_domains"`
}

// WarehouseConfig holds Postgres connection settings for the data-movement
// commands. The enrichment core never touches the warehouse.
type WarehouseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// adRange generates sequential ad identifiers ADxxx for [from, to].
func adRange(from, to int) []string {
	ads := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		ads = append(ads, fmt.Sprintf("AD%03d", i))
	}
	return ads
}

// DefaultConfig returns a Config with sane defaults — zero-config works out of the box.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			InputPath:  "data/train_sample.csv",
			OutputPath: "data/train_sample_enriched.csv",
		},
		Simulation: SimulationConfig{
			Seed:             42,
			HubFraction:      0.05,
			ClusterMinSize:   2,
			ClusterMaxSize:   5,
			EmailPoolSize:    30,
			EmailHandleRoot:  "frauder",
			GeoNoiseFraction: 0.30,
			AdCatalog:        adRange(1, 20),
			FraudTargetAds:   adRange(1, 5),
			Countries:        []string{"US", "FR", "IN", "CN", "BR", "GB", "DE", "ES", "IT", "MX"},
			ConnectionTypes:  []string{"wifi", "4g", "5g"},
			BaselineEmailDomains: []string{
				"gmail.com", "yahoo.com", "outlook.com", "proton.me",
			},
			FraudEmailDomains: []string{
				"tempmail.dev", "mail.ru", "inbox.lv", "rambler.ru",
			},
		},
		Warehouse: WarehouseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Database: "fraud_detection",
			SSLMode:  "disable",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from a YAML file, falling back to defaults.
// A `.env` file in the working directory is honored first so the environment
// overrides below behave the same as in the original deployment.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers environment overrides on top of file values.
func (c *Config) applyEnv() {
	if v := firstEnv("FRAUDSIM_INPUT", "KAGGLE_FILE"); v != "" {
		c.Pipeline.InputPath = v
	}
	if v := os.Getenv("FRAUDSIM_OUTPUT"); v != "" {
		c.Pipeline.OutputPath = v
	}
	if v := firstEnv("DB_USER", "PGUSER"); v != "" {
		c.Warehouse.User = v
	}
	if v := firstEnv("DB_PASSWORD", "PGPASSWORD"); v != "" {
		c.Warehouse.Password = v
	}
	if v := firstEnv("DB_HOST", "PGHOST"); v != "" {
		c.Warehouse.Host = v
	}
	if v := firstEnv("DB_PORT", "PGPORT"); v != "" {
		c.Warehouse.Port = v
	}
	if v := firstEnv("DB_NAME", "PGDATABASE"); v != "" {
		c.Warehouse.Database = v
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate rejects knob combinations the simulation cannot run with.
func (c *Config) Validate() error {
	s := c.Simulation
	if s.HubFraction <= 0 || s.HubFraction >= 1 {
		return fmt.Errorf("simulation.hub_fraction must be in (0,1), got %v", s.HubFraction)
	}
	if s.ClusterMinSize < 1 {
		return fmt.Errorf("simulation.cluster_min_size must be >= 1, got %d", s.ClusterMinSize)
	}
	if s.ClusterMaxSize < s.ClusterMinSize {
		return fmt.Errorf("simulation.cluster_max_size (%d) must be >= cluster_min_size (%d)",
			s.ClusterMaxSize, s.ClusterMinSize)
	}
	if s.EmailPoolSize < 1 {
		return fmt.Errorf("simulation.email_pool_size must be >= 1, got %d", s.EmailPoolSize)
	}
	if s.GeoNoiseFraction < 0 || s.GeoNoiseFraction > 1 {
		return fmt.Errorf("simulation.geo_noise_fraction must be in [0,1], got %v", s.GeoNoiseFraction)
	}
	if len(s.AdCatalog) == 0 || len(s.FraudTargetAds) == 0 {
		return fmt.Errorf("simulation ad catalog and fraud_target_ads must be non-empty")
	}
	for _, ad := range s.FraudTargetAds {
		if !contains(s.AdCatalog, ad) {
			return fmt.Errorf("fraud target ad %q is not in the ad catalog", ad)
		}
	}
	if len(s.Countries) == 0 || len(s.ConnectionTypes) == 0 {
		return fmt.Errorf("simulation country and connection_type lists must be non-empty")
	}
	if len(s.BaselineEmailDomains) == 0 || len(s.FraudEmailDomains) == 0 {
		return fmt.Errorf("simulation email domain lists must be non-empty")
	}
	return nil
}

// SaveConfig writes the configuration to a YAML file.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// DSN builds a lib/pq connection string from the warehouse settings.
func (w WarehouseConfig) DSN() string {
	parts := []string{
		"host=" + w.Host,
		"port=" + w.Port,
		"user=" + w.User,
		"dbname=" + w.Database,
	}
	if w.Password != "" {
		parts = append(parts, "password="+w.Password)
	}
	sslmode := w.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	parts = append(parts, "sslmode="+sslmode)
	return strings.Join(parts, " ")
}

// LogLevel returns the parsed log level string.
func (c *Config) LogLevel() string {
	return strings.ToLower(c.Logging.Level)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
