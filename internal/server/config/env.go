package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// dotEnvFile is read before the environment is consulted; variables already
// set in the process environment win over the file.
var dotEnvFile = ".env"

// parseEnv overlays config with environment variables:
//
//	HTTP_ADDR, DATABASE_DSN, SECRET_KEY, ACCESS_TOKEN_TTL, OUTBOUND_TIMEOUT,
//	NEWS_API_KEY, NEWS_BASE_URL, REDIS_ADDR, NEWS_CACHE_TTL,
//	TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID, TELEGRAM_BASE_URL,
//	SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD, SMTP_FROM,
//	FEEDBACK_EMAIL_TO, METRICS_PATH, LOG_LEVEL
//
// Durations use time.ParseDuration syntax. Malformed numbers panic, like a
// malformed JSON file does.
func parseEnv(config *Config) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	envString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.SecretKey, "SECRET_KEY")
	envDuration(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_TTL")
	envDuration(&config.OutboundTimeout, "OUTBOUND_TIMEOUT")
	envString(&config.NewsAPIKey, "NEWS_API_KEY")
	envString(&config.NewsBaseURL, "NEWS_BASE_URL")
	envString(&config.NewsCacheAddr, "REDIS_ADDR")
	envDuration(&config.NewsCacheTTL, "NEWS_CACHE_TTL")
	envString(&config.TelegramBotToken, "TELEGRAM_BOT_TOKEN")
	envString(&config.TelegramChatID, "TELEGRAM_CHAT_ID")
	envString(&config.TelegramBaseURL, "TELEGRAM_BASE_URL")
	envString(&config.SMTPHost, "SMTP_HOST")
	envInt(&config.SMTPPort, "SMTP_PORT")
	envString(&config.SMTPUser, "SMTP_USER")
	envString(&config.SMTPPassword, "SMTP_PASSWORD")
	envString(&config.SMTPFrom, "SMTP_FROM")
	envString(&config.FeedbackEmailTo, "FEEDBACK_EMAIL_TO")
	envString(&config.MetricsPath, "METRICS_PATH")
	envString(&config.LogLevel, "LOG_LEVEL")
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	*dst = n
}

func envDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
