package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			User:     "app",
			Password: "secret",
			DBName:   "bankmail",
		},
		Google: GoogleConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
		},
		Mail: MailConfig{
			Sender:   "alerts@hdfcbank.net",
			Keywords: "(credited OR debited)",
		},
		Sync: SyncConfig{
			IntervalMinutes:   5,
			BatchSize:         50,
			TransactionsRange: "Transactions!A:K",
			ReferenceRange:    "Transactions!G:G",
			WatermarkCell:     "Meta!B1",
		},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsMissingServerPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Database.User = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingSender(t *testing.T) {
	cfg := validConfig()
	cfg.Mail.Sender = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresOAuthWithoutIMAP(t *testing.T) {
	cfg := validConfig()
	cfg.Google.ClientSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresIMAPCredentialsInIMAPMode(t *testing.T) {
	cfg := validConfig()
	cfg.Mail.UseIMAP = true
	cfg.Google = GoogleConfig{}
	assert.Error(t, cfg.Validate())

	cfg.Mail.IMAPUser = "user@example.com"
	cfg.Mail.IMAPPassword = "app-password"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveInterval(t *testing.T) {
	cfg := validConfig()
	cfg.Sync.IntervalMinutes = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveBatchSize(t *testing.T) {
	cfg := validConfig()
	cfg.Sync.BatchSize = 0
	assert.Error(t, cfg.Validate())
}

func TestGetDSN(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t,
		"app:secret@tcp(localhost:3306)/bankmail?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.GetDSN())
}
