// Package telegram posts heralds to a Telegram channel through the Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/httpclient"
)

const (
	DefaultBaseURL = "https://api.telegram.org"
	// DefaultPerMinute stays under Telegram's limit of 20 messages a minute per group.
	DefaultPerMinute = 20
)

// ErrRejected is returned when the Bot API answers ok=false.
var ErrRejected = errors.New("telegram rejected message")

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
	DisableNotification   bool   `json:"disable_notification,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Sender delivers herald messages in order, pacing them with a per-minute limiter.
type Sender struct {
	endpoint string
	token    string
	chatID   string
	silent   bool
	http     *retryablehttp.Client
	limiter  ratelimit.Limiter
	logger   *zap.Logger
}

// Config configures a Sender.
type Config struct {
	BaseURL   string
	Token     string
	ChatID    string
	PerMinute int
	// Silent posts without notifying channel members.
	Silent bool
}

// NewSender returns a Sender for cfg.
func NewSender(cfg Config, httpClient *retryablehttp.Client, logger *zap.Logger) *Sender {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = DefaultPerMinute
	}
	return &Sender{
		endpoint: fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(cfg.BaseURL, "/"), cfg.Token),
		token:    cfg.Token,
		chatID:   cfg.ChatID,
		silent:   cfg.Silent,
		http:     httpClient,
		limiter:  ratelimit.New(cfg.PerMinute, ratelimit.Per(time.Minute), ratelimit.WithoutSlack),
		logger:   logger.Named("telegram"),
	}
}

func (s *Sender) Name() string { return "telegram" }

// Deliver sends messages one by one and stops at the first failure.
func (s *Sender) Deliver(ctx context.Context, height uint64, messages []string) error {
	for i, text := range messages {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.limiter.Take()
		if err := s.send(ctx, text); err != nil {
			return fmt.Errorf("height %d message %d/%d: %w", height, i+1, len(messages), err)
		}
	}
	s.logger.Debug("herald sent", zap.Uint64("height", height), zap.Int("messages", len(messages)))
	return nil
}

func (s *Sender) send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                s.chatID,
		Text:                  text,
		DisableWebPagePreview: true,
		DisableNotification:   s.silent,
	})
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	var res apiResponse
	if err = httpclient.DoJSON(s.http, req, &res); err != nil {
		return s.redact(err)
	}
	if !res.OK {
		return fmt.Errorf("%w: %s", ErrRejected, res.Description)
	}
	return nil
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

// redact removes the bot token, which is part of the request URL, from err.
func (s *Sender) redact(err error) error {
	if s.token == "" || !strings.Contains(err.Error(), s.token) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), s.token, "<token>"), err: err}
}
