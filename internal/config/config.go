package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/goatherd/internal/domain/models"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	WhatsApp  WhatsAppConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	MongoDB   MongoDBConfig
	Herd      models.AppConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	BaseURL       string
	APIVersion    string
	ManagerID     string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance. Herd thresholds are read from the YAML file
// named by HERD_CONFIG_FILE when set.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when the environment is set directly.
		_ = godotenv.Load()
	}

	herd, err := LoadHerdConfig(os.Getenv("HERD_CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			VerifyToken:   os.Getenv("META_VERIFY_TOKEN"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			ManagerID:     os.Getenv("WHATSAPP_MANAGER_ID"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * 5"),
			Timezone:     getenvWithDefault("TIMEZONE", "America/Bogota"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "goatherd"),
		},
		Herd: herd,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadHerdConfig reads herd thresholds from a YAML file and merges them over
// the defaults. An empty path returns the defaults.
func LoadHerdConfig(path string) (models.AppConfig, error) {
	if path == "" {
		return models.DefaultAppConfig(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return models.AppConfig{}, fmt.Errorf("read herd config %s: %w", path, err)
	}

	var herd models.AppConfig
	if err := yaml.Unmarshal(raw, &herd); err != nil {
		return models.AppConfig{}, fmt.Errorf("parse herd config %s: %w", path, err)
	}

	return herd.WithDefaults(), nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.WhatsApp.AccessToken == "":
		return errors.New("WHATSAPP_TOKEN must be provided")
	case c.WhatsApp.PhoneNumberID == "":
		return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
	case c.WhatsApp.VerifyToken == "":
		return errors.New("META_VERIFY_TOKEN must be provided")
	case c.WhatsApp.ManagerID == "":
		return errors.New("WHATSAPP_MANAGER_ID must be provided")
	}

	if c.WhatsApp.BaseURL == "" {
		return errors.New("WHATSAPP_BASE_URL must not be empty")
	}

	if c.WhatsApp.APIVersion == "" {
		return errors.New("WHATSAPP_API_VERSION must not be empty")
	}

	if err := c.Sheets.Validate(); err != nil {
		return err
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.Herd.GrowthAlertThreshold >= 0.95 {
		return fmt.Errorf("growth_alert_threshold %.2f must stay under the on-target band", c.Herd.GrowthAlertThreshold)
	}

	return nil
}

// Validate checks the settings needed to read the herd book.
func (s SheetsConfig) Validate() error {
	if s.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
	}

	if s.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided")
	}
	return nil
}

// LoadSheetsOnly reads just what the CLI needs: sheet access and herd thresholds.
func LoadSheetsOnly(envFile string) (SheetsConfig, models.AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return SheetsConfig{}, models.AppConfig{}, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	herd, err := LoadHerdConfig(os.Getenv("HERD_CONFIG_FILE"))
	if err != nil {
		return SheetsConfig{}, models.AppConfig{}, err
	}

	sheets := SheetsConfig{
		CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
		SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
	}
	if err := sheets.Validate(); err != nil {
		return SheetsConfig{}, models.AppConfig{}, err
	}
	return sheets, herd, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
