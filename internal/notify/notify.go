// Package notify announces committed campaigns to interested collaborators
// over AMQP. The creation flow never depends on delivery succeeding.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Event is the payload published after a campaign commits.
type Event struct {
	EventID            string    `json:"event_id"`
	CampaignID         int64     `json:"campaign_id"`
	CampaignCode       string    `json:"campaign_code"`
	TicketCount        int       `json:"ticket_count"`
	PrizeCategoryCount int       `json:"prize_category_count"`
	CommittedAt        time.Time `json:"committed_at"`
}

// RoutingKey is the routing key used for campaign creation events.
const RoutingKey = "campaign.created"

// channel is the subset of *amqp.Channel the notifier uses.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPNotifier publishes campaign events to a durable fanout exchange.
type AMQPNotifier struct {
	ch       channel
	exchange string
}

// Dial connects to the broker, declares the exchange and returns a notifier
// plus a close function for shutdown.
func Dial(url, exchange string) (*AMQPNotifier, func(), error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	closeFn := func() {
		ch.Close()
		conn.Close()
	}
	return &AMQPNotifier{ch: ch, exchange: exchange}, closeFn, nil
}

// NewWithChannel creates an AMQPNotifier on an existing channel.
// Primarily used for testing.
func NewWithChannel(ch channel, exchange string) *AMQPNotifier {
	return &AMQPNotifier{ch: ch, exchange: exchange}
}

// CampaignCreated publishes the event as persistent JSON.
func (n *AMQPNotifier) CampaignCreated(_ context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal campaign event: %w", err)
	}
	err = n.ch.Publish(n.exchange, RoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    ev.CommittedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish campaign event %s: %w", ev.EventID, err)
	}
	return nil
}

// Noop is a Notifier that drops every event. Used when no broker is
// configured.
type Noop struct{}

// CampaignCreated discards the event.
func (Noop) CampaignCreated(context.Context, Event) error {
	return nil
}
