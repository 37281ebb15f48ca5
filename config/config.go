package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Document generation pipeline
	Docgen    DocgenConfig
	Converter ConverterConfig

	// MinIO - Generated artifact mirroring (optional)
	MinIO MinIOConfig

	// PostgreSQL - Address mapping / migration tooling
	Postgres PostgresConfig

	// SQLite - Migration source database
	SQLite SQLiteConfig

	// Monitoring & Notification Configuration
	Discord DiscordConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// HTTPServerConfig is the configuration for the HTTP server
type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// DocgenConfig is the configuration for the document generation pipeline.
type DocgenConfig struct {
	TemplatePath string
	StampPath    string
	ReportsDir   string
	PreviewsDir  string
	MaxWorkers   int
	PreviewScale float64
}

// ConverterConfig selects the document-to-PDF converter backend.
type ConverterConfig struct {
	Backend string
	Binary  string
	Timeout int // in seconds
}

// MinIOConfig is the configuration for MinIO
type MinIOConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

// PostgresConfig is the configuration for Postgres
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Schema   string
}

// SQLiteConfig points at the legacy database used as a migration source.
type SQLiteConfig struct {
	Path string
}

type DiscordConfig struct {
	WebhookID    string
	WebhookToken string
}

// Load loads configuration using Viper
func Load() (*Config, error) {
	// Set config file name and paths
	viper.SetConfigName("docgen-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/docgen/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults()

	// Read config file (optional - will use env vars if file not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Host = viper.GetString("http_server.host")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Document generation
	cfg.Docgen.TemplatePath = viper.GetString("docgen.template_path")
	cfg.Docgen.StampPath = viper.GetString("docgen.stamp_path")
	cfg.Docgen.ReportsDir = viper.GetString("docgen.reports_dir")
	cfg.Docgen.PreviewsDir = viper.GetString("docgen.previews_dir")
	cfg.Docgen.MaxWorkers = viper.GetInt("docgen.max_workers")
	cfg.Docgen.PreviewScale = viper.GetFloat64("docgen.preview_scale")

	// Converter
	cfg.Converter.Backend = viper.GetString("converter.backend")
	cfg.Converter.Binary = viper.GetString("converter.binary")
	cfg.Converter.Timeout = viper.GetInt("converter.timeout")

	// MinIO - Generated artifact mirroring
	cfg.MinIO.Enabled = viper.GetBool("minio.enabled")
	cfg.MinIO.Endpoint = viper.GetString("minio.endpoint")
	cfg.MinIO.AccessKey = viper.GetString("minio.access_key")
	cfg.MinIO.SecretKey = viper.GetString("minio.secret_key")
	cfg.MinIO.UseSSL = viper.GetBool("minio.use_ssl")
	cfg.MinIO.Region = viper.GetString("minio.region")
	cfg.MinIO.Bucket = viper.GetString("minio.bucket")

	// PostgreSQL - Address mapping / migration tooling
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")
	cfg.Postgres.Schema = viper.GetString("postgres.schema")

	// SQLite - Migration source
	cfg.SQLite.Path = viper.GetString("sqlite.path")

	// Discord
	cfg.Discord.WebhookID = viper.GetString("discord.webhook_id")
	cfg.Discord.WebhookToken = viper.GetString("discord.webhook_token")

	// Validate required fields
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// HTTP Server
	viper.SetDefault("http_server.host", "")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")

	// Logger
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// 1. Document generation
	viper.SetDefault("docgen.template_path", "assets/template.docx")
	viper.SetDefault("docgen.stamp_path", "assets/stamp.png")
	viper.SetDefault("docgen.reports_dir", "reports")
	viper.SetDefault("docgen.previews_dir", "previews")
	viper.SetDefault("docgen.max_workers", 10)
	viper.SetDefault("docgen.preview_scale", 1.5)

	// 2. Converter
	viper.SetDefault("converter.backend", "libreoffice")
	viper.SetDefault("converter.binary", "soffice")
	viper.SetDefault("converter.timeout", 120)

	// 3. MinIO (artifact mirror is opt-in)
	viper.SetDefault("minio.enabled", false)
	viper.SetDefault("minio.endpoint", "localhost:9000")
	viper.SetDefault("minio.access_key", "minioadmin")
	viper.SetDefault("minio.secret_key", "minioadmin")
	viper.SetDefault("minio.use_ssl", false)
	viper.SetDefault("minio.region", "us-east-1")
	viper.SetDefault("minio.bucket", "service-reports")

	// 4. PostgreSQL
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "postgres")
	viper.SetDefault("postgres.dbname", "postgres")
	viper.SetDefault("postgres.sslmode", "prefer")
	viper.SetDefault("postgres.schema", "public")

	// 5. SQLite migration source
	viper.SetDefault("sqlite.path", "database.db")
}

func validate(cfg *Config) error {
	if cfg.Docgen.TemplatePath == "" {
		return fmt.Errorf("docgen.template_path is required")
	}
	if cfg.Docgen.StampPath == "" {
		return fmt.Errorf("docgen.stamp_path is required")
	}
	if cfg.Docgen.ReportsDir == "" {
		return fmt.Errorf("docgen.reports_dir is required")
	}
	if cfg.Docgen.PreviewsDir == "" {
		return fmt.Errorf("docgen.previews_dir is required")
	}
	if cfg.Docgen.MaxWorkers <= 0 {
		return fmt.Errorf("docgen.max_workers must be greater than 0")
	}
	if cfg.Docgen.PreviewScale <= 0 {
		return fmt.Errorf("docgen.preview_scale must be greater than 0")
	}

	if cfg.Converter.Backend == "" {
		return fmt.Errorf("converter.backend is required")
	}
	if cfg.Converter.Timeout <= 0 {
		return fmt.Errorf("converter.timeout must be greater than 0")
	}

	// MinIO fields only matter when the mirror is enabled
	if cfg.MinIO.Enabled {
		if cfg.MinIO.Endpoint == "" {
			return fmt.Errorf("minio.endpoint is required")
		}
		if cfg.MinIO.AccessKey == "" {
			return fmt.Errorf("minio.access_key is required")
		}
		if cfg.MinIO.SecretKey == "" {
			return fmt.Errorf("minio.secret_key is required")
		}
		if cfg.MinIO.Bucket == "" {
			return fmt.Errorf("minio.bucket is required")
		}
	}

	return nil
}
