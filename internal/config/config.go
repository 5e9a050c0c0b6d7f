package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/payermatch/")
	v.AddConfigPath("$HOME/.payermatch")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("PAYERMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Resolver defaults
	v.SetDefault("resolver.profile", "default")
	v.SetDefault("resolver.name_mode", "off")
	v.SetDefault("resolver.contact_type", "Individual")
	v.SetDefault("resolver.output_field", "contact_id")
	v.SetDefault("resolver.required_fields", []string{"name"})
	v.SetDefault("resolver.field_mapping", []string{})
	v.SetDefault("resolver.fail_open", true)

	// First-name oracle defaults
	v.SetDefault("names.source", "static")
	v.SetDefault("names.ttl", "168h")
	v.SetDefault("names.exclude_deleted", true)
	v.SetDefault("names.static_names", []string{})
	v.SetDefault("names.mysql_dsn", "user:password@tcp(localhost:3306)/crm")
	v.SetDefault("names.mysql_table", "contacts")
	v.SetDefault("names.postgres_url", "postgres://localhost:5432/crm")
	v.SetDefault("names.postgres_table", "contacts")

	// KV store defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.sqlite_path", "/data/payermatch.db")

	// Contact directory defaults
	v.SetDefault("directory.type", "http")
	v.SetDefault("directory.base_url", "http://localhost:8080/api/contacts")
	v.SetDefault("directory.api_key", "")
	v.SetDefault("directory.timeout", "10s")

	// Intake defaults
	v.SetDefault("intake.type", "csv")
	v.SetDefault("intake.csv.spool_dir", "/var/spool/payermatch")
	v.SetDefault("intake.csv.done_dir", "/var/spool/payermatch/done")
	v.SetDefault("intake.smtp.listen_address", "0.0.0.0:10025")
	v.SetDefault("intake.smtp.domain", "localhost")
	v.SetDefault("intake.smtp.max_message_bytes", 30*1024*1024)

	// Sink defaults
	v.SetDefault("sink.type", "jsonl")
	v.SetDefault("sink.path", "/var/lib/payermatch/resolved.jsonl")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 gets an int64 value from the configuration
func (c *Config) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
