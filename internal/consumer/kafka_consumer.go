package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"beadshop/internal/sender"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type EmailMessage struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

var (
	errEmptyRecipient  = errors.New("empty recipient")
	errUnknownTemplate = errors.New("unknown template")
)

// decodeEmailMessage parses a topic record and rejects anything the sender
// could not deliver: missing recipient or a template we have no files for.
func decodeEmailMessage(value []byte) (EmailMessage, error) {
	var em EmailMessage
	if err := json.Unmarshal(value, &em); err != nil {
		return EmailMessage{}, err
	}
	if em.To == "" {
		return EmailMessage{}, errEmptyRecipient
	}
	if !sender.KnownTemplate(em.Template) {
		return EmailMessage{}, fmt.Errorf("%w: %q", errUnknownTemplate, em.Template)
	}
	return em, nil
}

type KafkaEmailConsumer struct {
	reader      *kafka.Reader
	emailSender *sender.EmailSender
	log         *zap.Logger
}

func NewKafkaEmailConsumer(brokers []string, groupID, topic string, emailSender *sender.EmailSender, log *zap.Logger) *KafkaEmailConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          10e3,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &KafkaEmailConsumer{reader: r, emailSender: emailSender, log: log}
}

// Run consumes email messages until ctx is cancelled. Broken messages and
// send failures are logged and skipped, never retried.
func (c *KafkaEmailConsumer) Run(ctx context.Context) error {
	c.log.Info("kafka consumer started")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.log.Error("read message", zap.Error(err))
			continue
		}
		em, err := decodeEmailMessage(m.Value)
		if err != nil {
			c.log.Warn("skip email message", zap.ByteString("value", m.Value), zap.Error(err))
			continue
		}
		err = c.emailSender.SendEmail(sender.EmailNotification{
			To:       em.To,
			Subject:  em.Subject,
			Template: em.Template,
			Data:     em.Data,
		})
		if err != nil {
			c.log.Error("send email failed", zap.String("to", em.To), zap.String("template", em.Template), zap.Error(err))
			continue
		}
		c.log.Info("email sent", zap.String("to", em.To), zap.String("template", em.Template))
	}
}

func (c *KafkaEmailConsumer) Close() error { return c.reader.Close() }
