package notify

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "bank.events"
	routingKey   = "notification.email"
)

// emailMessage is the payload handed to the downstream mailer service.
type emailMessage struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// AMQPNotifier publishes notification requests to a topic exchange for a
// downstream mailer to deliver.
type AMQPNotifier struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// NewAMQPNotifier dials the broker and declares the durable topic exchange.
func NewAMQPNotifier(amqpURL string) (*AMQPNotifier, error) {
	conn, err := amqp091.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := channel.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPNotifier{conn: conn, channel: channel}, nil
}

func (n *AMQPNotifier) Notify(ctx context.Context, recipient, subject, body string) error {
	payload, err := json.Marshal(emailMessage{Recipient: recipient, Subject: subject, Body: body})
	if err != nil {
		return err
	}
	return n.channel.PublishWithContext(ctx,
		exchangeName, routingKey, false, false,
		amqp091.Publishing{ContentType: "application/json", Body: payload})
}

// Close releases the channel and connection.
func (n *AMQPNotifier) Close() {
	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		n.conn.Close()
	}
}
