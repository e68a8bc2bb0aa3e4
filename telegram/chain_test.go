package telegram

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestChain(t *testing.T) {
	fake, ts := newFakeTelegram(t, func(r recordedRequest) (int, string) {
		if gjson.GetBytes(r.Body, "chat_id").Int() == 404 {
			return http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`
		}
		return http.StatusOK, `{"ok":true,"result":{}}`
	})
	var logs bytes.Buffer
	c := newTestClient(ts.URL, &logs)
	ctx := context.Background()

	chain := c.Chain()
	assert.Nil(t, chain.LastResult())
	assert.NoError(t, chain.Err())

	got := chain.
		SendMessage(ctx, IntChatID(1), "first").
		SendMessage(ctx, IntChatID(404), "second").
		SendMessage(ctx, IntChatID(2), "third")

	assert.Same(t, chain, got)
	assert.Len(t, fake.Requests(), 3)

	require.NotNil(t, chain.LastResult())
	assert.True(t, chain.LastResult().IsSuccess())

	err := chain.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
	assert.Equal(t, 1, countWarnings(&logs))
}
