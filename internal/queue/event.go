// Package queue defines message payloads exchanged over the broker
// and the background consumer that processes them.
package queue

// ReservationConfirmedEvent is published after a booking commits. It
// carries enough context for downstream consumers to log or notify
// without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID  uint64   `json:"reservation_id"`
	HostID         uint64   `json:"host_id"`
	HostName       string   `json:"host_name"`
	RestaurantID   uint64   `json:"restaurant_id"`
	RestaurantName string   `json:"restaurant_name"`
	TableID        uint64   `json:"table_id"`
	Date           string   `json:"date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	PartySize      uint32   `json:"party_size"`
	AttendeeNames  []string `json:"attendees"`
	ConfirmedAt    string   `json:"confirmed_at"`
}

// QueueName is the durable queue reservation confirmations flow
// through.
const QueueName = "reservation.confirmed"

// BrokerURL resolves the AMQP connection string from RABBITMQ_URL or
// AMQP_URL, defaulting to a local broker.
func BrokerURL() string {
	return brokerURLFromEnv()
}
