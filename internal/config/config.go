package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config contains app config
type Config struct {
	HTTPConfig
	MattermostConfig
	SMTPConfig
	LogLevel string
}

// HTTPConfig contains config of the poll HTTP server
type HTTPConfig struct {
	HTTPAddr string
}

// MattermostConfig contains Mattermost config
type MattermostConfig struct {
	MattermostBotHTTPAddr string
	MattermostBotURL      string
	MattermostToken       string
	MattermostChannelID   string
}

// Enabled reports whether the Mattermost bot should be started
func (c MattermostConfig) Enabled() bool {
	return c.MattermostToken != ""
}

// SMTPConfig contains config of the mail export
type SMTPConfig struct {
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
	MailTo   string
}

// NewConfig creates a new config
func NewConfig() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("Error loading .env file", "error", err)
	}

	return &Config{
		HTTPConfig: HTTPConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		MattermostConfig: MattermostConfig{
			MattermostBotHTTPAddr: getEnv("MATTERMOST_BOT_HTTP_ADDR", "http://localhost:8080"),
			MattermostBotURL:      getEnv("MATTERMOST_URL", "http://localhost:8065"),
			MattermostToken:       getEnv("MATTERMOST_TOKEN", ""),
			MattermostChannelID:   getEnv("MATTERMOST_CHANNEL_ID", ""),
		},
		SMTPConfig: SMTPConfig{
			SMTPHost: getEnv("SMTP_HOST", ""),
			SMTPPort: getEnvInt("SMTP_PORT", 587),
			SMTPUser: getEnv("SMTP_USER", ""),
			SMTPPass: getEnv("SMTP_PASS", ""),
			SMTPFrom: getEnv("SMTP_FROM", "buurtstemming@localhost"),
			MailTo:   getEnv("MAIL_TO", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv is a helper function for receiving env variables with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("Invalid integer env variable, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return n
}
