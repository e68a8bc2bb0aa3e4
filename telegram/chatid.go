package telegram

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ChatID identifies a Telegram chat. The Bot API accepts either a numeric id or a
// string such as "@channelusername", and both forms are kept as they were
// received so that they serialise back to the same JSON type.
type ChatID struct {
	num   int64
	str   string
	isNum bool
}

func IntChatID(id int64) ChatID {
	return ChatID{num: id, isNum: true}
}

func StringChatID(id string) ChatID {
	return ChatID{str: id}
}

// ParseChatID turns user input (flags, config) into a ChatID. Anything that parses
// as a base-10 integer becomes a numeric id, everything else is kept as a string.
func ParseChatID(s string) ChatID {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntChatID(n)
	}
	return StringChatID(s)
}

// Int64 returns the numeric id and true, or 0 and false for string ids.
func (c ChatID) Int64() (int64, bool) {
	return c.num, c.isNum
}

func (c ChatID) IsZero() bool {
	return !c.isNum && c.str == ""
}

func (c ChatID) String() string {
	if c.isNum {
		return strconv.FormatInt(c.num, 10)
	}
	return c.str
}

func (c ChatID) MarshalJSON() ([]byte, error) {
	if c.isNum {
		return []byte(strconv.FormatInt(c.num, 10)), nil
	}
	return json.Marshal(c.str)
}

func (c *ChatID) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		*c = StringChatID(v)
	case float64:
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("chat id %s is not an integer: %w", data, err)
		}
		*c = IntChatID(n)
	default:
		return fmt.Errorf("chat id must be a number or a string, got %s", data)
	}
	return nil
}
