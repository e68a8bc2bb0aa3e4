package telegram

import (
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

var (
	// ErrNoDirectory is wrapped by every error GetUsersChats returns.
	ErrNoDirectory = errors.New("chat directory unavailable")

	ErrMalformedUpdates = fmt.Errorf("%w: getUpdates body is not valid JSON", ErrNoDirectory)
	ErrUpdatesNotOK     = fmt.Errorf("%w: getUpdates response is not ok", ErrNoDirectory)
)

// ChatDirectory maps a sender username to the chat the bot can reach them in.
type ChatDirectory map[string]ChatID

// ParseChatDirectory extracts username/chat pairs from a getUpdates body. Updates
// without both message.chat.id and message.from.username are skipped. If a
// username shows up more than once, the latest update wins.
func ParseChatDirectory(body string) (ChatDirectory, error) {
	if !gjson.Valid(body) {
		return nil, ErrMalformedUpdates
	}

	parsed := gjson.Parse(body)
	if !truthy(lastMember(parsed, "ok")) {
		return nil, ErrUpdatesNotOK
	}

	dir := ChatDirectory{}
	parsed.Get("result").ForEach(func(_, update gjson.Result) bool {
		chatID, ok := chatIDFromResult(update.Get("message.chat.id"))
		if !ok {
			return true
		}
		username := update.Get("message.from.username")
		if username.Type != gjson.String || username.Str == "" {
			return true
		}
		dir[username.Str] = chatID
		return true
	})

	return dir, nil
}

// Usernames returns the directory keys in no particular order.
func (d ChatDirectory) Usernames() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	return names
}

func chatIDFromResult(r gjson.Result) (ChatID, bool) {
	switch r.Type {
	case gjson.Number:
		if r.Num == 0 || r.Num != math.Trunc(r.Num) {
			return ChatID{}, false
		}
		return IntChatID(r.Int()), true
	case gjson.String:
		if r.Str == "" {
			return ChatID{}, false
		}
		return StringChatID(r.Str), true
	default:
		return ChatID{}, false
	}
}

// lastMember returns the last occurrence of key in obj. Get stops at the first
// one, while JSON.parse style decoders keep the last.
func lastMember(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found = v
		}
		return true
	})
	return found
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True, gjson.JSON:
		return true
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return false
	}
}
