// Package relay forwards short text messages to an external channel. It
// carries user feedback to the operator.
package relay

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/server/config"
)

// Relay sends one formatted message. Failures wrap common.ErrorUpstream.
type Relay interface {
	Send(ctx context.Context, text string) error
}

// Unconfigured is used when neither Telegram nor SMTP settings are present.
type Unconfigured struct{}

func (Unconfigured) Send(ctx context.Context, text string) error {
	return fmt.Errorf("%w: feedback channel is not configured", common.ErrorUpstream)
}

// New picks the relay described by cfg: Telegram when a bot token and chat
// are set, otherwise SMTP when a host and recipient are set, otherwise
// Unconfigured.
func New(cfg *config.Config) Relay {
	switch {
	case cfg.TelegramBotToken != "" && cfg.TelegramChatID != "":
		return NewTelegramRelay(cfg.TelegramBaseURL, cfg.TelegramBotToken, cfg.TelegramChatID, cfg.OutboundTimeout)
	case cfg.SMTPHost != "" && cfg.FeedbackEmailTo != "":
		return NewMailRelay(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, cfg.FeedbackEmailTo)
	default:
		return Unconfigured{}
	}
}
