package producer

import (
	"context"
	"encoding/json"
	"time"

	"beadshop/internal/sender"
	"beadshop/internal/service"

	"github.com/segmentio/kafka-go"
)

// EmailProducer publishes checkout emails to the notification topic.
// Implements service.Notifier.
type EmailProducer struct {
	writer     *kafka.Writer
	adminEmail string
}

func NewEmailProducer(brokers []string, topic, adminEmail string) *EmailProducer {
	return &EmailProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
		adminEmail: adminEmail,
	}
}

type EmailMessage struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

func (p *EmailProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return p.send(ctx, e.OrderID.String(), EmailMessage{
		To:       e.CustomerEmail,
		Subject:  "Your Order Details",
		Template: sender.TemplateOrderCreated,
		Data: map[string]any{
			"order_id":       e.OrderID.String(),
			"customer_email": e.CustomerEmail,
			"products":       e.Items,
			"total_amount":   e.Total,
		},
	})
}

func (p *EmailProducer) PublishAdminOrderAlert(ctx context.Context, e service.OrderCreatedEvent) error {
	return p.send(ctx, e.OrderID.String(), EmailMessage{
		To:       p.adminEmail,
		Subject:  "ADMIN: New order",
		Template: sender.TemplateAdminNewOrder,
		Data: map[string]any{
			"order_id": e.OrderID.String(),
			"country":  e.Country,
			"total":    e.Total,
		},
	})
}

func (p *EmailProducer) send(ctx context.Context, key string, msg EmailMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *EmailProducer) Close() error {
	return p.writer.Close()
}
