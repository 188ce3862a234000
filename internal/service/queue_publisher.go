// Package service holds application services that sit outside the
// request/persistence path, currently the broker publisher.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
)

// QueuePublisher announces confirmed reservations on the
// reservation.confirmed queue. A connection is dialed per publish so a
// broker restart between bookings never leaves a dead channel behind;
// booking volume is low enough that connection reuse is not worth the
// reconnect bookkeeping.
type QueuePublisher struct {
	URL string
}

// NewQueuePublisher builds a publisher for the broker at the resolved
// AMQP URL.
func NewQueuePublisher() *QueuePublisher {
	return &QueuePublisher{URL: queue.BrokerURL()}
}

// PublishReservationConfirmed sends the confirmation event for a
// committed reservation. Errors are logged and returned; the caller
// decides whether to ignore them, and the booking itself is already
// durable either way.
func (p *QueuePublisher) PublishReservationConfirmed(ctx context.Context, detail *booking.ReservationDetail) error {
	names := make([]string, 0, len(detail.Attendees))
	for _, a := range detail.Attendees {
		names = append(names, a.Name)
	}
	event := queue.ReservationConfirmedEvent{
		ReservationID:  detail.ID,
		HostID:         detail.HostID,
		HostName:       detail.HostName,
		RestaurantID:   detail.RestaurantID,
		RestaurantName: detail.RestaurantName,
		TableID:        detail.TableID,
		Date:           detail.Date,
		StartTime:      detail.StartTime,
		EndTime:        detail.EndTime,
		PartySize:      detail.PartySize,
		AttendeeNames:  names,
		ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
	}

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

	// Idempotent declare; durable so confirmations survive broker restarts.
	if _, err := ch.QueueDeclare(queue.QueueName, true, false, false, false, nil); err != nil {
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
	if err := ch.PublishWithContext(ctx, "", queue.QueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
