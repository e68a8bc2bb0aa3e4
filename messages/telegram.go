package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ilyakutilin/telegram_notifier/telegram"
	"github.com/ilyakutilin/telegram_notifier/utils"
)

// TelegramAPI is the part of *telegram.Client that TelegramSender relies on.
type TelegramAPI interface {
	SendMessage(ctx context.Context, chatID telegram.ChatID, text string) *telegram.Response
	GetUsersChats(ctx context.Context) (telegram.ChatDirectory, error)
}

// TelegramSender delivers a message to every recipient through the Bot API.
//
// A recipient is either a chat id ("123456789", "-100987654321"), a public
// channel ("@channel") or the username of someone who has written to the bot
// ("alice"). Usernames are looked up in the bot's pending updates on every Send.
type TelegramSender struct {
	Client     TelegramAPI
	Recipients []string
}

func (t *TelegramSender) Validate() error {
	if t.Client == nil {
		return errors.New("telegram sender has no client configured")
	}
	if len(t.Recipients) == 0 {
		return errors.New("telegram sender has no recipients configured")
	}
	for _, r := range t.Recipients {
		if telegram.ParseChatID(r).IsZero() {
			return errors.New("telegram sender has an empty recipient")
		}
	}
	if dups := utils.FindDuplicates(t.Recipients); len(dups) > 0 {
		return fmt.Errorf("telegram sender has duplicate recipients: %s",
			strings.Join(dups, ", "))
	}
	return nil
}

// Send keeps going after a failed recipient and returns all failures together.
func (t *TelegramSender) Send(ctx context.Context, msg Message) error {
	if err := t.Validate(); err != nil {
		return err
	}

	var errs utils.Errors
	chatIDs, err := t.resolveRecipients(ctx)
	errs.Append(err)

	text := msg.Markdown()
	for _, chatID := range chatIDs {
		errs.Append(t.Client.SendMessage(ctx, chatID, text).AsError())
	}

	return errs.ErrOrNil()
}

// resolveRecipients keeps the configured order. Recipients that cannot be
// resolved are left out and reported in the error.
func (t *TelegramSender) resolveRecipients(ctx context.Context) ([]telegram.ChatID, error) {
	var usernames []string
	for _, r := range t.Recipients {
		if !isDirectChatID(r) {
			usernames = append(usernames, strings.TrimSpace(r))
		}
	}

	var dir telegram.ChatDirectory
	var errs utils.Errors
	if len(usernames) > 0 {
		var err error
		dir, err = t.Client.GetUsersChats(ctx)
		if err != nil {
			errs.Append(fmt.Errorf("failed to resolve %s: %w",
				strings.Join(usernames, ", "), err))
		} else if missing := utils.FindMissingItems(dir.Usernames(), usernames); len(missing) > 0 {
			errs.Append(fmt.Errorf("no chat found for %s; they need to message "+
				"the bot first", strings.Join(missing, ", ")))
		}
	}

	chatIDs := make([]telegram.ChatID, 0, len(t.Recipients))
	for _, r := range t.Recipients {
		if isDirectChatID(r) {
			chatIDs = append(chatIDs, telegram.ParseChatID(r))
			continue
		}
		if chatID, ok := dir[strings.TrimSpace(r)]; ok {
			chatIDs = append(chatIDs, chatID)
		}
	}

	return chatIDs, errs.ErrOrNil()
}

func isDirectChatID(recipient string) bool {
	if strings.HasPrefix(strings.TrimSpace(recipient), "@") {
		return true
	}
	_, isNum := telegram.ParseChatID(recipient).Int64()
	return isNum
}
