package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	RefData RefDataConfig
	DB      DBConfig
	Storage StorageConfig
	Parser  ParserConfig
	Email   EmailConfig
	Extract ExtractConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RefDataConfig locates the JSON reference files (state codes, company
// profile, product catalog).
type RefDataConfig struct {
	Dir string `mapstructure:"dir"`
}

// DBConfig holds PostgreSQL connection settings for the invoice register.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StorageConfig selects where rendered invoice PDFs are archived.
type StorageConfig struct {
	Backend       string `mapstructure:"backend"` // "local" or "s3"
	LocalDir      string `mapstructure:"local_dir"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// ParserProviderConfig holds settings for a single LLM parser provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds LLM document parser settings with fallback providers.
type ParserConfig struct {
	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
	Tertiary  ParserProviderConfig `mapstructure:"tertiary"`
}

// Providers returns the configured provider configs in fallback order.
func (p *ParserConfig) Providers() []*ParserProviderConfig {
	var out []*ParserProviderConfig
	for _, c := range []*ParserProviderConfig{&p.Primary, &p.Secondary, &p.Tertiary} {
		if c.Provider != "" {
			out = append(out, c)
		}
	}
	return out
}

// EmailConfig holds invoice notification settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"` // "ses" or "noop"
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// ExtractConfig holds upload limits for document extraction.
type ExtractConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the GSTBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Reference data defaults
	v.SetDefault("refdata.dir", "config")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstbill")
	v.SetDefault("db.password", "gstbill_secret")
	v.SetDefault("db.name", "gstbill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Storage defaults
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local_dir", "generated_invoices")
	v.SetDefault("storage.region", "ap-south-1")
	v.SetDefault("storage.bucket", "gstbill-invoices")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.presign_expiry", 3600)

	// Parser defaults
	v.SetDefault("parser.primary.provider", "openai")
	v.SetDefault("parser.primary.api_key", "")
	v.SetDefault("parser.primary.default_model", "")
	v.SetDefault("parser.primary.timeout_secs", 120)
	v.SetDefault("parser.secondary.provider", "")
	v.SetDefault("parser.secondary.api_key", "")
	v.SetDefault("parser.secondary.default_model", "")
	v.SetDefault("parser.secondary.timeout_secs", 120)
	v.SetDefault("parser.tertiary.provider", "")
	v.SetDefault("parser.tertiary.api_key", "")
	v.SetDefault("parser.tertiary.default_model", "")
	v.SetDefault("parser.tertiary.timeout_secs", 120)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "billing@globelinteriors.in")
	v.SetDefault("email.from_name", "Globel Interiors India")

	// Extract defaults
	v.SetDefault("extract.max_file_size_mb", 10)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "GSTBILL_SERVER_PORT",
		"server.read_timeout":            "GSTBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "GSTBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":             "GSTBILL_SERVER_ENVIRONMENT",
		"log.level":                      "GSTBILL_LOG_LEVEL",
		"log.format":                     "GSTBILL_LOG_FORMAT",
		"refdata.dir":                    "GSTBILL_REFDATA_DIR",
		"db.host":                        "GSTBILL_DB_HOST",
		"db.port":                        "GSTBILL_DB_PORT",
		"db.user":                        "GSTBILL_DB_USER",
		"db.password":                    "GSTBILL_DB_PASSWORD",
		"db.name":                        "GSTBILL_DB_NAME",
		"db.sslmode":                     "GSTBILL_DB_SSLMODE",
		"db.max_open":                    "GSTBILL_DB_MAX_OPEN",
		"db.max_idle":                    "GSTBILL_DB_MAX_IDLE",
		"storage.backend":                "GSTBILL_STORAGE_BACKEND",
		"storage.local_dir":              "GSTBILL_STORAGE_LOCAL_DIR",
		"storage.region":                 "GSTBILL_STORAGE_REGION",
		"storage.bucket":                 "GSTBILL_STORAGE_BUCKET",
		"storage.endpoint":               "GSTBILL_STORAGE_ENDPOINT",
		"storage.access_key":             "GSTBILL_STORAGE_ACCESS_KEY",
		"storage.secret_key":             "GSTBILL_STORAGE_SECRET_KEY",
		"storage.presign_expiry":         "GSTBILL_STORAGE_PRESIGN_EXPIRY",
		"parser.primary.provider":        "GSTBILL_PARSER_PRIMARY_PROVIDER",
		"parser.primary.api_key":         "GSTBILL_PARSER_PRIMARY_API_KEY",
		"parser.primary.default_model":   "GSTBILL_PARSER_PRIMARY_DEFAULT_MODEL",
		"parser.primary.timeout_secs":    "GSTBILL_PARSER_PRIMARY_TIMEOUT_SECS",
		"parser.secondary.provider":      "GSTBILL_PARSER_SECONDARY_PROVIDER",
		"parser.secondary.api_key":       "GSTBILL_PARSER_SECONDARY_API_KEY",
		"parser.secondary.default_model": "GSTBILL_PARSER_SECONDARY_DEFAULT_MODEL",
		"parser.secondary.timeout_secs":  "GSTBILL_PARSER_SECONDARY_TIMEOUT_SECS",
		"parser.tertiary.provider":       "GSTBILL_PARSER_TERTIARY_PROVIDER",
		"parser.tertiary.api_key":        "GSTBILL_PARSER_TERTIARY_API_KEY",
		"parser.tertiary.default_model":  "GSTBILL_PARSER_TERTIARY_DEFAULT_MODEL",
		"parser.tertiary.timeout_secs":   "GSTBILL_PARSER_TERTIARY_TIMEOUT_SECS",
		"email.provider":                 "GSTBILL_EMAIL_PROVIDER",
		"email.region":                   "GSTBILL_EMAIL_REGION",
		"email.from_address":             "GSTBILL_EMAIL_FROM_ADDRESS",
		"email.from_name":                "GSTBILL_EMAIL_FROM_NAME",
		"extract.max_file_size_mb":       "GSTBILL_EXTRACT_MAX_FILE_SIZE_MB",
		"cors.allowed_origins":           "GSTBILL_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTBILL_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.RefData = RefDataConfig{
		Dir: v.GetString("refdata.dir"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Storage = StorageConfig{
		Backend:       v.GetString("storage.backend"),
		LocalDir:      v.GetString("storage.local_dir"),
		Region:        v.GetString("storage.region"),
		Bucket:        v.GetString("storage.bucket"),
		Endpoint:      v.GetString("storage.endpoint"),
		AccessKey:     v.GetString("storage.access_key"),
		SecretKey:     v.GetString("storage.secret_key"),
		PresignExpiry: v.GetInt64("storage.presign_expiry"),
	}
	cfg.Parser = ParserConfig{
		Primary: ParserProviderConfig{
			Provider:     v.GetString("parser.primary.provider"),
			APIKey:       v.GetString("parser.primary.api_key"),
			DefaultModel: v.GetString("parser.primary.default_model"),
			TimeoutSecs:  v.GetInt("parser.primary.timeout_secs"),
		},
		Secondary: ParserProviderConfig{
			Provider:     v.GetString("parser.secondary.provider"),
			APIKey:       v.GetString("parser.secondary.api_key"),
			DefaultModel: v.GetString("parser.secondary.default_model"),
			TimeoutSecs:  v.GetInt("parser.secondary.timeout_secs"),
		},
		Tertiary: ParserProviderConfig{
			Provider:     v.GetString("parser.tertiary.provider"),
			APIKey:       v.GetString("parser.tertiary.api_key"),
			DefaultModel: v.GetString("parser.tertiary.default_model"),
			TimeoutSecs:  v.GetInt("parser.tertiary.timeout_secs"),
		},
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Extract = ExtractConfig{
		MaxFileSizeMB: v.GetInt64("extract.max_file_size_mb"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
