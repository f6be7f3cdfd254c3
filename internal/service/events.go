// AMQP delivery of ticket purchase events. Errors are logged and returned so
// callers can ignore failures without interrupting the purchase flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-ticketing/internal/queue"
)

// ticketQueue is the durable queue purchase events land on.
const ticketQueue = "ticket.purchased"

// AMQPTicketPublisher publishes TicketPurchasedEvent messages to RabbitMQ.
// A connection is dialed per publish; purchase volume in a single-user
// desktop-class deployment does not justify a held connection.
type AMQPTicketPublisher struct {
	URL string
}

// NewAMQPTicketPublisher returns a publisher for the given broker URL.
func NewAMQPTicketPublisher(url string) *AMQPTicketPublisher {
	return &AMQPTicketPublisher{URL: url}
}

// PublishTicketPurchased publishes the event to the ticket.purchased queue.
// The function never panics; any error is logged and returned so the caller
// can choose to ignore it. Messages are marked persistent.
func (p *AMQPTicketPublisher) PublishTicketPurchased(ctx context.Context, event queue.TicketPurchasedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		ticketQueue, // name
		true,        // durable
		false,       // autoDelete
		false,       // exclusive
		false,       // noWait
		nil,         // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",          // default exchange
		ticketQueue, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
