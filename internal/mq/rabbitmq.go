// Package mq publishes audit events for destructive and administrative
// operations. It is publisher-only: nothing in this service consumes.
package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeAudit = "classvault.audit.exchange"
	QueueAudit    = "classvault.audit.queue"
	RoutingAudit  = "audit"
)

// AuditEvent describes one mutation worth a trace.
type AuditEvent struct {
	Action     string    `json:"action"`
	TeamNumber int       `json:"team_number"`
	FileID     uint64    `json:"file_id,omitempty"`
	Assignment string    `json:"assignment,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher wraps a RabbitMQ channel. A nil Publisher is valid and drops
// every event, so the rest of the service never branches on "mq configured".
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Dial connects and declares the audit topology. An empty URL disables
// publishing entirely.
func Dial(url string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := declareTopology(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch}, nil
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeAudit, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(QueueAudit, true, false, false, false, nil); err != nil {
		return err
	}
	return ch.QueueBind(QueueAudit, RoutingAudit, ExchangeAudit, false, nil)
}

// Publish sends one audit event, best-effort: failures are logged, never
// surfaced to the request that triggered them.
func (p *Publisher) Publish(ctx context.Context, event AuditEvent) {
	if p == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal audit event: %v", err)
		return
	}
	err = p.channel.PublishWithContext(ctx, ExchangeAudit, RoutingAudit, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Printf("publish audit event %s: %v", event.Action, err)
	}
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
