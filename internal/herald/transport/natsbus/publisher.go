// Package natsbus publishes heralds on a NATS subject.
package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	DefaultSubject = "ecash.herald"
	eventType      = "herald"
	chainName      = "ecash"
)

// Event is the published payload.
type Event struct {
	Type      string   `json:"type"`
	Chain     string   `json:"chain"`
	Height    uint64   `json:"height"`
	Messages  []string `json:"messages"`
	Timestamp int64    `json:"timestamp"`
}

type conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
}

// Publisher emits one Event per heralded block.
type Publisher struct {
	conn    conn
	subject string
	now     func() time.Time
	logger  *zap.Logger
}

// Connect dials url with unlimited reconnects.
func Connect(url string, logger *zap.Logger) (*nats.Conn, error) {
	logger = logger.Named("nats")
	nc, err := nats.Connect(url,
		nats.Name("ecash-herald"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("disconnected from NATS", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			logger.Error("NATS error", zap.Error(err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}

// NewPublisher returns a Publisher on subject, or DefaultSubject when empty.
func NewPublisher(nc *nats.Conn, subject string, logger *zap.Logger) *Publisher {
	return newPublisher(nc, subject, logger)
}

func newPublisher(c conn, subject string, logger *zap.Logger) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Publisher{conn: c, subject: subject, now: time.Now, logger: logger.Named("nats")}
}

func (p *Publisher) Name() string { return "nats" }

// Deliver publishes the messages of one block and waits for the server to take them.
func (p *Publisher) Deliver(ctx context.Context, height uint64, messages []string) error {
	data, err := json.Marshal(Event{
		Type:      eventType,
		Chain:     chainName,
		Height:    height,
		Messages:  messages,
		Timestamp: p.now().Unix(),
	})
	if err != nil {
		return err
	}
	if err = p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	if err = p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush %s: %w", p.subject, err)
	}
	p.logger.Debug("herald published", zap.Uint64("height", height), zap.String("subject", p.subject))
	return nil
}
