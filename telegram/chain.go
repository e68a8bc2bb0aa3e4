package telegram

import (
	"context"

	"github.com/ilyakutilin/telegram_notifier/utils"
)

// Chain sends several messages in a row and keeps track of how they went.
//
//	err := client.Chain().
//		SendMessage(ctx, IntChatID(1), "first").
//		SendMessage(ctx, IntChatID(2), "second").
//		Err()
//
// A Chain is not safe for concurrent use.
type Chain struct {
	client *Client
	last   *Response
	errs   utils.Errors
}

func (c *Client) Chain() *Chain {
	return &Chain{client: c}
}

func (ch *Chain) SendMessage(ctx context.Context, chatID ChatID, text string) *Chain {
	ch.last = ch.client.SendMessage(ctx, chatID, text)
	ch.errs.Append(ch.last.AsError())
	return ch
}

// LastResult returns the response of the most recent call, or nil before the first.
func (ch *Chain) LastResult() *Response {
	return ch.last
}

// Err returns every failure collected so far, or nil.
func (ch *Chain) Err() error {
	return ch.errs.ErrOrNil()
}
