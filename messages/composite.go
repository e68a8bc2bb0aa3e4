package messages

import (
	"context"
	"errors"

	"github.com/ilyakutilin/telegram_notifier/utils"
)

// CompositeSender hands the same message to each sender in turn.
type CompositeSender struct {
	Senders []Sender
}

func (c *CompositeSender) Send(ctx context.Context, msg Message) error {
	var errs utils.Errors
	for _, sdr := range c.Senders {
		errs.Append(sdr.Send(ctx, msg))
	}
	return errs.ErrOrNil()
}

func (c *CompositeSender) Validate() error {
	if len(c.Senders) == 0 {
		return errors.New("composite sender has no senders")
	}
	var errs utils.Errors
	for _, sdr := range c.Senders {
		errs.Append(sdr.Validate())
	}
	return errs.ErrOrNil()
}
