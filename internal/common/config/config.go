package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Checkout CheckoutConfig `mapstructure:"checkout"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // seconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

// --- Domain Configuration Sections ---

// PricingConfig controls the remote-first quote flow and its local fallback.
type PricingConfig struct {
	// RemoteURL is the external pricing endpoint. Empty means compute locally.
	RemoteURL     string `mapstructure:"remote_url"`
	RemoteTimeout int    `mapstructure:"remote_timeout"` // milliseconds
}

type CheckoutConfig struct {
	// ApprovalRate is the simulated authorization success rate for the
	// probabilistic authorizer, in [0,1].
	ApprovalRate float64 `mapstructure:"approval_rate"`
	// AuthorizeDelay is the artificial processing delay in milliseconds.
	AuthorizeDelay int `mapstructure:"authorize_delay"`
	// IssuanceURL is an optional external policy issuance endpoint. Empty
	// means policies are issued through the local store only.
	IssuanceURL     string `mapstructure:"issuance_url"`
	IssuanceTimeout int    `mapstructure:"issuance_timeout"` // milliseconds
}

// AdminConfig holds the demo admin credentials and session settings. This is
// explicitly not production-grade authentication.
type AdminConfig struct {
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	SessionTTL int    `mapstructure:"session_ttl"` // minutes
}

type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Index   string `mapstructure:"index"`
}

type NotifyConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	AWSRegion string `mapstructure:"aws_region"`
	FromEmail string `mapstructure:"from_email"`
	// OpsEmail receives the policy-issued confirmation copies.
	OpsEmail string `mapstructure:"ops_email"`
	// AlertTopicARN receives degraded-issuance reconciliation alerts.
	AlertTopicARN string `mapstructure:"alert_topic_arn"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
