package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/daybook/internal/flagx"
	"github.com/dmitrijs2005/daybook/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration, which accepts both "10s" and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	OutboundTimeout             timex.Duration `json:"outbound_timeout"`
	NewsAPIKey                  string         `json:"news_api_key"`
	NewsBaseURL                 string         `json:"news_base_url"`
	NewsCacheAddr               string         `json:"news_cache_addr"`
	NewsCacheTTL                timex.Duration `json:"news_cache_ttl"`
	TelegramBotToken            string         `json:"telegram_bot_token"`
	TelegramChatID              string         `json:"telegram_chat_id"`
	TelegramBaseURL             string         `json:"telegram_base_url"`
	SMTPHost                    string         `json:"smtp_host"`
	SMTPPort                    int            `json:"smtp_port"`
	SMTPUser                    string         `json:"smtp_user"`
	SMTPPassword                string         `json:"smtp_password"`
	SMTPFrom                    string         `json:"smtp_from"`
	FeedbackEmailTo             string         `json:"feedback_email_to"`
	MetricsPath                 string         `json:"metrics_path"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson loads configuration values from the file named by -c or -config.
// Without the flag nothing is loaded. Only keys present with a non-zero
// value override what is already in config. An unreadable file or invalid
// JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.OutboundTimeout.Duration > 0 {
		config.OutboundTimeout = c.OutboundTimeout.Duration
	}
	setString(&config.NewsAPIKey, c.NewsAPIKey)
	setString(&config.NewsBaseURL, c.NewsBaseURL)
	setString(&config.NewsCacheAddr, c.NewsCacheAddr)
	if c.NewsCacheTTL.Duration > 0 {
		config.NewsCacheTTL = c.NewsCacheTTL.Duration
	}
	setString(&config.TelegramBotToken, c.TelegramBotToken)
	setString(&config.TelegramChatID, c.TelegramChatID)
	setString(&config.TelegramBaseURL, c.TelegramBaseURL)
	setString(&config.SMTPHost, c.SMTPHost)
	if c.SMTPPort > 0 {
		config.SMTPPort = c.SMTPPort
	}
	setString(&config.SMTPUser, c.SMTPUser)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.SMTPFrom, c.SMTPFrom)
	setString(&config.FeedbackEmailTo, c.FeedbackEmailTo)
	setString(&config.MetricsPath, c.MetricsPath)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
