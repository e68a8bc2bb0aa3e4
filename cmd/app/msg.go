package main

import (
	"context"
	"fmt"

	"github.com/ilyakutilin/telegram_notifier/messages"
)

// getSender returns a stream sender in debug mode so that nothing reaches real
// chats. Otherwise the message goes to Telegram, and is also printed when echo
// is set.
func (app *Application) getSender(recipients []string, echo bool) (messages.Sender, error) {
	if app.debug {
		return &messages.StreamSender{Out: app.out}, nil
	}

	senders := []messages.Sender{
		&messages.TelegramSender{Client: app.client, Recipients: recipients},
	}
	if echo {
		senders = append(senders, &messages.StreamSender{Out: app.out})
	}

	sender := &messages.CompositeSender{Senders: senders}
	if err := sender.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sender configuration: %w", err)
	}
	return sender, nil
}

func (app *Application) sendMsg(ctx context.Context, recipients []string, msg messages.Message, echo bool) error {
	sender, err := app.getSender(recipients, echo)
	if err != nil {
		return err
	}

	if err := sender.Send(ctx, msg); err != nil {
		app.logger.Warn().
			Str("subject", msg.Subject).
			Err(err).
			Msg("Failed to send this message")
		return err
	}

	app.logger.Info().
		Int("recipients", len(recipients)).
		Msg("Message sent")
	return nil
}
