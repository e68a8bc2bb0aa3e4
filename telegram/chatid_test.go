package telegram

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChatID(t *testing.T) {
	tests := []struct {
		input   string
		want    ChatID
		wantNum bool
	}{
		{"111", IntChatID(111), true},
		{" -1001234567890 ", IntChatID(-1001234567890), true},
		{"@channel", StringChatID("@channel"), false},
		{"alice", StringChatID("alice"), false},
		{"12abc", StringChatID("12abc"), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseChatID(tt.input)
			assert.Equal(t, tt.want, got)
			_, isNum := got.Int64()
			assert.Equal(t, tt.wantNum, isNum)
		})
	}
}

func TestChatID_String(t *testing.T) {
	assert.Equal(t, "111", IntChatID(111).String())
	assert.Equal(t, "@news", StringChatID("@news").String())
	assert.True(t, ChatID{}.IsZero())
	assert.False(t, IntChatID(0).IsZero())
}

func TestChatID_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Numeric ChatID `json:"numeric"`
		Named   ChatID `json:"named"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"numeric":-100200300400,"named":"@news"}`), &payload))
	assert.Equal(t, IntChatID(-100200300400), payload.Numeric)
	assert.Equal(t, StringChatID("@news"), payload.Named)

	var id ChatID
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &id))
}
