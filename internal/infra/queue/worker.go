package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationHandler turns a payload into an actual message.
type NotificationHandler interface {
	Deliver(ctx context.Context, payload NotificationPayload) error
}

// Consumer is the slice of *amqp.Channel the worker needs.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel Consumer
	Handler NotificationHandler
}

func NewWorker(ch Consumer, handler NotificationHandler) *Worker {
	return &Worker{
		Channel: ch,
		Handler: handler,
	}
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register RabbitMQ consumer: %w", err)
	}

	log.Printf("[WORKER] waiting on queue '%s'", queueName)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[WORKER] stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel for '%s' closed", queueName)
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks on success. Malformed or failed messages are dropped to the DLQ, never requeued.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload NotificationPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		log.Printf("[WORKER] invalid JSON: %v", err)
		nack(d)
		return
	}

	if err := w.Handler.Deliver(ctx, payload); err != nil {
		log.Printf("[WORKER] delivering %s for candidate %s: %v", payload.Template, payload.CandidateID, err)
		nack(d)
		return
	}

	log.Printf("[WORKER] delivered %s for candidate %s", payload.Template, payload.CandidateID)
	if err := d.Ack(false); err != nil {
		log.Printf("[WORKER] ack delivery %d: %v", d.DeliveryTag, err)
	}
}

func nack(d amqp.Delivery) {
	if err := d.Nack(false, false); err != nil {
		log.Printf("[WORKER] nack delivery %d: %v", d.DeliveryTag, err)
	}
}
