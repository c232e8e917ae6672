package relay

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/daybook/internal/common"
	"gopkg.in/gomail.v2"
)

const mailSubject = "Daybook feedback"

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailRelay delivers messages as HTML e-mail over SMTP.
type MailRelay struct {
	from   string
	to     string
	dialer mailSender
}

func NewMailRelay(host string, port int, user, password, from, to string) *MailRelay {
	if from == "" {
		from = user
	}
	return &MailRelay{
		from:   from,
		to:     to,
		dialer: gomail.NewDialer(host, port, user, password),
	}
}

// Send ignores ctx: gomail has no cancellation hook.
func (r *MailRelay) Send(ctx context.Context, text string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", r.from)
	m.SetHeader("To", r.to)
	m.SetHeader("Subject", mailSubject)
	m.SetBody("text/html", text)

	if err := r.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: failed to send email: %v", common.ErrorUpstream, err)
	}
	return nil
}
