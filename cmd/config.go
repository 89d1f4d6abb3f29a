package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds every setting the application needs. Values come from an
// optional YAML file and may be overridden by environment variables, so
// deployments can ship a base file and inject secrets through the
// environment.
type Config struct {
	// Environment selects runtime behavior such as the log handler:
	// "dev" gets the colorized console handler, anything else JSON.
	Environment string `yaml:"environment"`

	HTTPPort string `yaml:"http_port"`

	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSslMode  string `yaml:"db_sslmode"`

	AmqpURL string `yaml:"amqp_url"`

	OneSignalAppID  string `yaml:"onesignal_app_id"`
	OneSignalAPIKey string `yaml:"onesignal_api_key"`

	SMSEndpoint   string `yaml:"sms_endpoint"`
	SMSAPIKey     string `yaml:"sms_api_key"`
	SMSFromNumber string `yaml:"sms_from_number"`

	// Role ids the admin console uses when acting on behalf of users.
	CustomerRoleID   string `yaml:"customer_role_id"`
	AdminRoleID      string `yaml:"admin_role_id"`
	SuperAdminRoleID string `yaml:"superadmin_role_id"`

	// Business hours bound when deferred pushes may fire, 24h clock.
	BusinessDayStart int `yaml:"business_day_start"`
	BusinessDayEnd   int `yaml:"business_day_end"`
}

// LoadConfig reads the YAML file at path (skipped when path is empty or
// the file does not exist), applies environment overrides and validates
// the result.
func LoadConfig(path string) (Config, error) {
	config := Config{
		Environment:      "dev",
		DBSslMode:        "disable",
		BusinessDayStart: 7,
		BusinessDayEnd:   21,
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(raw, &config); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyEnvOverrides(&config)

	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func applyEnvOverrides(config *Config) {
	overrideString(&config.Environment, "ENVIRONMENT")
	overrideString(&config.HTTPPort, "HTTP_PORT")
	overrideString(&config.DBHost, "DB_HOST")
	overrideString(&config.DBPort, "DB_PORT")
	overrideString(&config.DBUser, "DB_USER")
	overrideString(&config.DBPassword, "DB_PASSWORD")
	overrideString(&config.DBName, "DB_NAME")
	overrideString(&config.DBSslMode, "DB_SSLMODE")
	overrideString(&config.AmqpURL, "AMQP_URL")
	overrideString(&config.OneSignalAppID, "ONESIGNAL_APP_ID")
	overrideString(&config.OneSignalAPIKey, "ONESIGNAL_API_KEY")
	overrideString(&config.SMSEndpoint, "SMS_ENDPOINT")
	overrideString(&config.SMSAPIKey, "SMS_API_KEY")
	overrideString(&config.SMSFromNumber, "SMS_FROM_NUMBER")
	overrideString(&config.CustomerRoleID, "CUSTOMER_ROLE_ID")
	overrideString(&config.AdminRoleID, "ADMIN_ROLE_ID")
	overrideString(&config.SuperAdminRoleID, "SUPERADMIN_ROLE_ID")
	overrideInt(&config.BusinessDayStart, "BUSINESS_DAY_START")
	overrideInt(&config.BusinessDayEnd, "BUSINESS_DAY_END")
}

func overrideString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func overrideInt(target *int, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func (c Config) validate() error {
	if c.HTTPPort == "" {
		return errors.New("http port is required")
	}
	if c.DBHost == "" || c.DBPort == "" || c.DBUser == "" || c.DBName == "" {
		return errors.New("database connection settings are incomplete")
	}
	if c.AmqpURL == "" {
		return errors.New("amqp url is required")
	}
	return nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
