package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
)

// TelegramRelay posts messages through the Bot API sendMessage method.
type TelegramRelay struct {
	baseURL string
	token   string
	chatID  string
	client  *http.Client
}

func NewTelegramRelay(baseURL, token, chatID string, timeout time.Duration) *TelegramRelay {
	return &TelegramRelay{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		chatID:  chatID,
		client:  &http.Client{Timeout: timeout},
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

func (r *TelegramRelay) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: r.chatID, Text: text, ParseMode: "HTML"})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", r.baseURL, r.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		// the URL embeds the bot token, keep it out of the error
		return fmt.Errorf("%w: telegram request failed", common.ErrorUpstream)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: telegram responded %d", common.ErrorUpstream, resp.StatusCode)
	}
	return nil
}
