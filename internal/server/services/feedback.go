package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/server/relay"
)

const anonymousName = "Anonymous"

// FeedbackService formats visitor feedback and hands it to a relay.
type FeedbackService struct {
	relay relay.Relay
	now   func() time.Time
}

func NewFeedbackService(r relay.Relay) *FeedbackService {
	return &FeedbackService{relay: r, now: time.Now}
}

// Submit relays one feedback message. A blank message yields
// common.ErrorInvalidInput; relay failures keep common.ErrorUpstream.
func (s *FeedbackService) Submit(ctx context.Context, name, email, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return common.ErrorInvalidInput
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = anonymousName
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = "not specified"
	}

	text := fmt.Sprintf("<b>New feedback</b>\n\n<b>Name:</b> %s\n<b>Email:</b> %s\n\n<b>Message:</b>\n%s\n\n<i>%s</i>",
		html.EscapeString(name),
		html.EscapeString(email),
		html.EscapeString(message),
		s.now().UTC().Format("2006-01-02 15:04:05 MST"),
	)

	if err := s.relay.Send(ctx, text); err != nil {
		return fmt.Errorf("error relaying feedback: %w", err)
	}
	return nil
}
