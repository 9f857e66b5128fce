// Package notify renders inquiry notifications and delivers them over SMTP.
package notify

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-bakery/core"
)

const subjectPrefix = "Whisked Away Inquiry"

type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// BuildMessage renders the plain-text staff notification for an inquiry.
// Item lines use the snapshots taken at submission.
func BuildMessage(inquiry core.Inquiry) Message {
	var items []string
	for _, item := range inquiry.Items {
		name := strings.TrimSpace(item.NameSnapshot)
		if name == "" {
			name = item.SKU
		}
		line := fmt.Sprintf("- %s x%d", name, item.Qty)
		if price := strings.TrimSpace(item.PriceSnapshot); price != "" {
			line += fmt.Sprintf(" (%s)", price)
		}
		items = append(items, line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New inquiry %s\n\n", inquiry.ID)
	fmt.Fprintf(&b, "Name: %s\n", inquiry.Name)
	fmt.Fprintf(&b, "Email: %s\n", inquiry.Email)
	fmt.Fprintf(&b, "Phone: %s\n", inquiry.Phone)
	fmt.Fprintf(&b, "Company: %s\n\n", inquiry.Company)
	fmt.Fprintf(&b, "Message:\n%s\n\n", inquiry.Message)
	fmt.Fprintf(&b, "Items:\n%s\n\n", strings.Join(items, "\n"))
	fmt.Fprintf(&b, "Source URL: %s", inquiry.SourceURL)

	return Message{
		Subject: fmt.Sprintf("%s %s", subjectPrefix, inquiry.ID),
		Body:    b.String(),
	}
}
