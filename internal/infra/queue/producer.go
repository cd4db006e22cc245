package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

// NotificationPayload is one templated message about a candidate.
type NotificationPayload struct {
	ID            string              `json:"id"`
	CandidateID   string              `json:"candidate_id"`
	CandidateName string              `json:"candidate_name"`
	Email         string              `json:"email"`
	Position      string              `json:"position,omitempty"`
	Template      entity.TemplateType `json:"template"`
	Stage         entity.Stage        `json:"stage,omitempty"`
	InterviewDate *time.Time          `json:"interview_date,omitempty"`
	InterviewType string              `json:"interview_type,omitempty"`
	Origin        string              `json:"origin"`
	QueuedAt      time.Time           `json:"queued_at"`
}

// Publisher is the slice of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishNotification(ctx context.Context, payload NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    payload.ID,
			Timestamp:    payload.QueuedAt,
			Type:         string(payload.Template),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}
	return nil
}
