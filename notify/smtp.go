package notify

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-bakery/core"
)

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type sendMailFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers messages through a single SMTP relay. PLAIN auth is
// used when a user is configured.
type SMTPSender struct {
	host     string
	port     int
	user     string
	pass     string
	sendMail sendMailFunc
	now      func() time.Time
}

func NewSMTPSender(cfg core.EmailConfig) *SMTPSender {
	port := cfg.Port
	if port <= 0 {
		port = 587
	}
	return &SMTPSender{
		host:     strings.TrimSpace(cfg.Host),
		port:     port,
		user:     strings.TrimSpace(cfg.User),
		pass:     cfg.Pass,
		sendMail: smtp.SendMail,
		now:      time.Now,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if s == nil || s.host == "" {
		return fmt.Errorf("notify: smtp host is not configured")
	}
	if strings.TrimSpace(msg.From) == "" || len(msg.To) == 0 {
		return fmt.Errorf("notify: message sender and recipient are required")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.pass, s.host)
	}
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	return s.sendMail(addr, auth, msg.From, msg.To, s.render(msg))
}

func (s *SMTPSender) render(msg Message) []byte {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.Bytes()
}
