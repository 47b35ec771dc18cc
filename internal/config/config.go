package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Google   GoogleConfig   `mapstructure:"google"`
	Mail     MailConfig     `mapstructure:"mail"`
	Sync     SyncConfig     `mapstructure:"sync"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// GoogleConfig holds the OAuth2 application credentials shared by all
// accounts. Per-account refresh tokens live in the account registry.
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

// MailConfig holds mail retrieval configuration
type MailConfig struct {
	Sender       string `mapstructure:"sender"`
	Keywords     string `mapstructure:"keywords"`
	UseIMAP      bool   `mapstructure:"use_imap"`
	IMAPHost     string `mapstructure:"imap_host"`
	IMAPPort     int    `mapstructure:"imap_port"`
	IMAPUser     string `mapstructure:"imap_user"`
	IMAPPassword string `mapstructure:"imap_password"`
}

// SyncConfig holds sync cycle configuration
type SyncConfig struct {
	IntervalMinutes   int    `mapstructure:"interval_minutes"`
	BatchSize         int64  `mapstructure:"batch_size"`
	TransactionsRange string `mapstructure:"transactions_range"`
	ReferenceRange    string `mapstructure:"reference_range"`
	WatermarkCell     string `mapstructure:"watermark_cell"`
}

// LoadConfig loads configuration from environment variables and config file
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Environment variables override config file
	viper.AutomaticEnv()
	bindEnvVars()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)

	viper.SetDefault("mail.sender", "alerts@hdfcbank.net")
	viper.SetDefault("mail.keywords", "(credited OR debited)")
	viper.SetDefault("mail.use_imap", false)
	viper.SetDefault("mail.imap_host", "imap.gmail.com")
	viper.SetDefault("mail.imap_port", 993)

	viper.SetDefault("sync.interval_minutes", 5)
	viper.SetDefault("sync.batch_size", 50)
	viper.SetDefault("sync.transactions_range", "Transactions!A:K")
	viper.SetDefault("sync.reference_range", "Transactions!G:G")
	viper.SetDefault("sync.watermark_cell", "Meta!B1")
}

// bindEnvVars binds environment variables to configuration keys
func bindEnvVars() {
	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	viper.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")

	// Database
	viper.BindEnv("database.host", "DB_HOST")
	viper.BindEnv("database.port", "DB_PORT")
	viper.BindEnv("database.user", "DB_USER")
	viper.BindEnv("database.password", "DB_PASSWORD")
	viper.BindEnv("database.dbname", "DB_NAME")

	// Google OAuth2
	viper.BindEnv("google.client_id", "GOOGLE_CLIENT_ID")
	viper.BindEnv("google.client_secret", "GOOGLE_CLIENT_SECRET")

	// Mail
	viper.BindEnv("mail.sender", "MAIL_SENDER")
	viper.BindEnv("mail.keywords", "MAIL_KEYWORDS")
	viper.BindEnv("mail.use_imap", "MAIL_USE_IMAP")
	viper.BindEnv("mail.imap_host", "MAIL_IMAP_HOST")
	viper.BindEnv("mail.imap_port", "MAIL_IMAP_PORT")
	viper.BindEnv("mail.imap_user", "MAIL_IMAP_USER")
	viper.BindEnv("mail.imap_password", "MAIL_IMAP_PASSWORD")

	// Sync
	viper.BindEnv("sync.interval_minutes", "SYNC_INTERVAL_MINUTES")
	viper.BindEnv("sync.batch_size", "SYNC_BATCH_SIZE")
	viper.BindEnv("sync.transactions_range", "SYNC_TRANSACTIONS_RANGE")
	viper.BindEnv("sync.reference_range", "SYNC_REFERENCE_RANGE")
	viper.BindEnv("sync.watermark_cell", "SYNC_WATERMARK_CELL")
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("database host, user, and dbname are required")
	}

	if c.Mail.Sender == "" {
		return fmt.Errorf("mail sender is required")
	}

	if !c.Mail.UseIMAP {
		if c.Google.ClientID == "" || c.Google.ClientSecret == "" {
			return fmt.Errorf("Google OAuth2 credentials are required when not using IMAP")
		}
	} else {
		if c.Mail.IMAPUser == "" || c.Mail.IMAPPassword == "" {
			return fmt.Errorf("IMAP credentials are required when using IMAP")
		}
	}

	if c.Sync.IntervalMinutes <= 0 {
		return fmt.Errorf("sync interval must be greater than 0")
	}
	if c.Sync.BatchSize <= 0 {
		return fmt.Errorf("sync batch size must be greater than 0")
	}

	return nil
}
