package messages

import (
	"context"
	"fmt"
	"strings"
)

type Message struct {
	Subject string
	Body    string
	Errors  []error
}

// Markdown renders the message for Telegram's legacy Markdown parse mode. The
// subject is set in bold, the body is passed through untouched.
func (m Message) Markdown() string {
	var b strings.Builder
	if m.Subject != "" {
		fmt.Fprintf(&b, "*%s*\n", m.Subject)
	}
	b.WriteString(m.Body)
	if len(m.Errors) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(formatErrors(m.Errors))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s", m.Subject, m.Body)
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
	Validate() error
}

func formatErrors(errs []error) string {
	switch len(errs) {
	case 0:
		return "There are no errors."
	case 1:
		return fmt.Sprintf("Error: %s", errs[0])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "There are %d errors:", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&b, "\n%d) %s", i+1, err)
	}
	return b.String()
}
