package notify

import (
	"context"
	"strings"

	"github.com/goliatone/go-bakery/core"
)

// Notifier sends inquiry notifications to the configured staff inbox.
type Notifier struct {
	sender Sender
	from   string
	to     []string
}

// NewNotifier builds an SMTP notifier from config. Without a host, sender
// and recipient every call reports skipped.
func NewNotifier(cfg core.EmailConfig) *Notifier {
	n := &Notifier{
		from: strings.TrimSpace(cfg.From),
		to:   splitRecipients(cfg.To),
	}
	if strings.TrimSpace(cfg.Host) != "" {
		n.sender = NewSMTPSender(cfg)
	}
	return n
}

// NewNotifierWithSender uses a custom transport, mainly for tests.
func NewNotifierWithSender(sender Sender, from string, to string) *Notifier {
	return &Notifier{
		sender: sender,
		from:   strings.TrimSpace(from),
		to:     splitRecipients(to),
	}
}

func (n *Notifier) Configured() bool {
	return n != nil && n.sender != nil && n.from != "" && len(n.to) > 0
}

func (n *Notifier) NotifyInquiry(ctx context.Context, inquiry core.Inquiry) (core.NotificationResult, error) {
	if !n.Configured() {
		return core.NotificationResult{
			Status: core.NotificationStatusSkipped,
			Reason: "email not configured",
		}, nil
	}
	msg := BuildMessage(inquiry)
	msg.From = n.from
	msg.To = append([]string(nil), n.to...)
	if err := n.sender.Send(ctx, msg); err != nil {
		return core.NotificationResult{Status: core.NotificationStatusFailed, Reason: err.Error()}, err
	}
	return core.NotificationResult{Status: core.NotificationStatusSent}, nil
}

func splitRecipients(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var _ core.Notifier = (*Notifier)(nil)
