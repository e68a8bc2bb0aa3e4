package messages

import (
	"context"
	"fmt"
	"io"
	"os"
)

// StreamSender prints messages instead of delivering them. It is used in debug
// mode so that nothing reaches real chats.
type StreamSender struct {
	// Out defaults to os.Stdout.
	Out io.Writer
}

// Send writes the message details to Out instead of sending them anywhere. The
// subject and body are printed as given, followed by a summary of the attached
// errors: none, the single error, or a numbered list.
//
// Parameters:
//   - ctx: Unused, present to satisfy Sender.
//   - msg: The Message to be printed.
//
// Returns:
//   - error: The write error from Out, if any.
func (s *StreamSender) Send(ctx context.Context, msg Message) error {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	_, err := fmt.Fprintf(out, "The following message would be sent:\n"+
		"Subject: %s\nBody: %s\n%s\n", msg.Subject, msg.Body, formatErrors(msg.Errors))
	return err
}

func (s *StreamSender) Validate() error {
	return nil
}
