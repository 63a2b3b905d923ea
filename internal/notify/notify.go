package notify

import (
	"context"

	"github.com/Domenick1991/airportops/internal/kafka"
	"github.com/rs/zerolog/log"
)

// Notifier is the worker-side sink for notification events. Delivery is a
// structured log line for now; a mail or push integration slots in here.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(ctx context.Context, event kafka.OpsEvent) error {
	log.Info().
		Str("type", event.Type).
		Str("flight", event.FlightNumber).
		Int64("passenger_id", event.PassengerID).
		Time("occurred_at", event.OccurredAt).
		Msg("dispatching notification")
	return nil
}
