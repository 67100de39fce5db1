package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	Exchange     = "notifications_fanout"
	exchangeKind = "fanout"
)

// AMQPPublisher fans notification events out through a durable RabbitMQ exchange.
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	mu   sync.Mutex
}

func DialAMQP(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(Exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, events ...Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range events {
		msg, err := encodeEvent(e, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := p.ch.PublishWithContext(ctx, Exchange, "", false, false, msg); err != nil {
			return fmt.Errorf("failed to publish event %s: %w", e.ID, err)
		}
	}
	return nil
}

// encodeEvent builds the persistent JSON message for one event.
func encodeEvent(e Event, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode event %s: %w", e.ID, err)
	}
	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		ContentType:  "application/json",
		MessageId:    e.ID,
		Body:         body,
	}, nil
}

func (p *AMQPPublisher) Close() error {
	if p == nil {
		return nil
	}
	var err error
	if p.ch != nil {
		err = p.ch.Close()
	}
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
