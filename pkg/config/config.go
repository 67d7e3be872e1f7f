package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "GYM_REPORTS"

type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Store     StoreConfig      `mapstructure:"store"`
	Report    ReportConfig     `mapstructure:"report"`
	Auth      AuthConfig       `mapstructure:"auth"`
	SMTP      SMTPConfig       `mapstructure:"smtp"`
	Delivery  DeliveryConfig   `mapstructure:"delivery"`
	Tenants   string           `mapstructure:"tenants_file"`
	Schedules []ScheduleConfig `mapstructure:"schedules"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type StoreConfig struct {
	// Driver is "duckdb" or "postgres".
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	DuckDBPath   string `mapstructure:"duckdb_path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type ReportConfig struct {
	BusinessName   string `mapstructure:"business_name"`
	Currency       string `mapstructure:"currency"`
	MaxPDFRows     int    `mapstructure:"max_pdf_rows"`
	Timezone       string `mapstructure:"timezone"`
	WkhtmltopdfBin string `mapstructure:"wkhtmltopdf_bin"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type DeliveryConfig struct {
	QueueSize   int           `mapstructure:"queue_size"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	Backoff     time.Duration `mapstructure:"backoff"`
	// RatePerMinute caps outgoing emails.
	RatePerMinute int `mapstructure:"rate_per_minute"`
}

type ScheduleConfig struct {
	Spec       string   `mapstructure:"spec"`
	AccountID  int64    `mapstructure:"account_id"`
	Family     string   `mapstructure:"family"`
	Format     string   `mapstructure:"format"`
	Recipients []string `mapstructure:"recipients"`
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) Location() (*time.Location, error) {
	if c.Report.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid report timezone %q: %w", c.Report.Timezone, err)
	}
	return loc, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("store.driver", "duckdb")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.duckdb_path", "gym-reports.db")
	v.SetDefault("store.max_open_conns", 10)
	v.SetDefault("report.business_name", "Gym Management System")
	v.SetDefault("report.currency", "PHP")
	v.SetDefault("report.max_pdf_rows", 1000)
	v.SetDefault("report.timezone", "Asia/Manila")
	v.SetDefault("report.wkhtmltopdf_bin", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("delivery.queue_size", 64)
	v.SetDefault("delivery.max_attempts", 3)
	v.SetDefault("delivery.backoff", "30s")
	v.SetDefault("delivery.rate_per_minute", 30)
	v.SetDefault("tenants_file", "")
}

// LoadConfig reads the YAML file at path, when given, and applies
// GYM_REPORTS_* environment overrides on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "duckdb":
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	if c.Delivery.MaxAttempts < 1 {
		return fmt.Errorf("delivery.max_attempts must be at least 1")
	}
	return nil
}
