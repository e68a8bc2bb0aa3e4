package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/ilyakutilin/telegram_notifier/messages"
	"github.com/ilyakutilin/telegram_notifier/telegram"
)

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func (app *Application) runSend(ctx context.Context, args []string) error {
	fs := newFlagSet("send", app.errOut)
	chat := fs.String("chat", "", "Chat ID or @channel to send the message to")
	text := fs.String("text", "", "Message text, Markdown is allowed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	chatID := telegram.ParseChatID(*chat)
	if chatID.IsZero() || *text == "" {
		return errors.New("send requires both -chat and -text")
	}

	resp := app.client.SendMessage(ctx, chatID, *text)
	if err := resp.AsError(); err != nil {
		return err
	}

	app.logger.Info().
		Stringer("chat", chatID).
		Str("request_id", resp.RequestID).
		Msg("Message sent")
	return nil
}

func (app *Application) runUpdates(ctx context.Context, args []string) error {
	if err := newFlagSet("updates", app.errOut).Parse(args); err != nil {
		return err
	}

	resp := app.client.GetUpdates(ctx)
	if resp.Body != "" {
		fmt.Fprintln(app.out, resp.Body)
	}
	return resp.AsError()
}

func (app *Application) runChats(ctx context.Context, args []string) error {
	if err := newFlagSet("chats", app.errOut).Parse(args); err != nil {
		return err
	}

	dir, err := app.client.GetUsersChats(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(dir, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode chat directory: %w", err)
	}
	fmt.Fprintln(app.out, string(data))
	return nil
}

func (app *Application) runNotify(ctx context.Context, recipients []string, args []string) error {
	fs := newFlagSet("notify", app.errOut)
	subject := fs.String("subject", "", "Message subject, shown in bold")
	body := fs.String("body", "", "Message body, Markdown is allowed")
	echo := fs.Bool("echo", false, "Also print the message to stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *subject == "" && *body == "" {
		return errors.New("notify requires -subject or -body")
	}

	msg := messages.Message{Subject: *subject, Body: *body}
	return app.sendMsg(ctx, recipients, msg, *echo)
}
