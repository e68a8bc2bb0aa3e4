// Package telegram is a small client for the Telegram Bot HTTP API covering what a
// notification hook needs: sending a text message, reading pending updates and
// working out which chat belongs to which username.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ilyakutilin/telegram_notifier/metrics"
)

const (
	DefaultBaseURL    = "https://api.telegram.org/bot"
	DefaultTimeout    = 2 * time.Second
	ParseModeMarkdown = "Markdown"
)

const (
	methodSendMessage = "sendMessage"
	methodGetUpdates  = "getUpdates"
)

type Config struct {
	Token string
	// BaseURL is the API prefix the token is appended to. Defaults to DefaultBaseURL.
	BaseURL string
	// Timeout applies to every request. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// OutgoingMessage is the sendMessage payload.
type OutgoingMessage struct {
	ChatID    ChatID `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type Client struct {
	cfg    Config
	http   *resty.Client
	logger zerolog.Logger
}

type Option func(*Client)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New builds a client for the given bot token. The token is not validated
// locally: a wrong or empty token shows up as a failed response from Telegram.
func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		cfg:    cfg,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = resty.New().
		SetBaseURL(cfg.BaseURL+cfg.Token).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetLogger(restyLogger{logger: c.logger})

	return c
}

// SendMessage posts text to the chat with Markdown parse mode. It makes exactly one
// request and never retries. Failures are logged at warn level and reported
// through the returned Response.
func (c *Client) SendMessage(ctx context.Context, chatID ChatID, text string) *Response {
	payload, err := json.Marshal(OutgoingMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: ParseModeMarkdown,
	})
	if err != nil {
		resp := &Response{
			RequestID: uuid.NewString(),
			Method:    methodSendMessage,
			Err:       fmt.Errorf("failed to encode message payload: %w", err),
		}
		c.warn(resp)
		return resp
	}

	return c.request(ctx, methodSendMessage, nil, payload)
}

// GetUpdates returns the raw getUpdates response, failed or not.
func (c *Client) GetUpdates(ctx context.Context) *Response {
	return c.request(ctx, methodGetUpdates, nil, nil)
}

// GetUsersChats builds a username to chat id directory from the pending updates.
// The directory is rebuilt on every call. When the updates cannot be used the
// returned error wraps ErrNoDirectory.
func (c *Client) GetUsersChats(ctx context.Context) (ChatDirectory, error) {
	resp := c.GetUpdates(ctx)

	dir, err := ParseChatDirectory(resp.Body)
	if errors.Is(err, ErrMalformedUpdates) {
		c.logger.Warn().
			Str("request_id", resp.RequestID).
			Err(err).
			Msg("Failed to parse Telegram updates")
	}
	return dir, err
}

// request posts to {base}/{method}. query and body may be nil; they then default to
// no query parameters and an empty body.
func (c *Client) request(ctx context.Context, method string, query map[string]string, body []byte) *Response {
	if query == nil {
		query = map[string]string{}
	}
	if body == nil {
		body = []byte{}
	}

	resp := &Response{
		RequestID: uuid.NewString(),
		Method:    method,
	}

	start := time.Now()
	r, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetBody(body).
		Post("/" + method)
	elapsed := time.Since(start)

	if err != nil {
		resp.Err = fmt.Errorf("telegram %s request failed: %w", method, err)
	}
	if r != nil {
		resp.StatusCode = r.StatusCode()
		resp.Body = r.String()
	}

	metrics.ObserveTelegramRequest(method, resp.IsSuccess(), elapsed)

	if !resp.IsSuccess() {
		c.warn(resp)
	} else {
		c.logger.Debug().
			Str("method", method).
			Str("request_id", resp.RequestID).
			Dur("elapsed", elapsed).
			Msg("Telegram request done")
	}

	return resp
}

func (c *Client) warn(resp *Response) {
	c.logger.Warn().
		Str("method", resp.Method).
		Str("request_id", resp.RequestID).
		Str("details", resp.String()).
		Msg("Failed to post notification to Telegram")
}

// restyLogger routes resty's own diagnostics into the client logger.
type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Str("component", "resty").Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Str("component", "resty").Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Str("component", "resty").Msgf(format, v...)
}
