package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusBoarding  FlightStatus = "boarding"
	FlightStatusCompleted FlightStatus = "completed"
)

// ParseFlightStatus validates a raw status value from the API layer.
func ParseFlightStatus(raw string) (FlightStatus, bool) {
	switch FlightStatus(raw) {
	case FlightStatusScheduled, FlightStatusBoarding, FlightStatusCompleted:
		return FlightStatus(raw), true
	}
	return "", false
}

// Active reports whether the flight still holds its gate.
func (s FlightStatus) Active() bool {
	return s == FlightStatusScheduled || s == FlightStatusBoarding
}

type Flight struct {
	ID            int64        `json:"id"`
	FlightNumber  string       `json:"flightNumber"`
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	DepartureTime time.Time    `json:"departureTime"`
	GateID        int64        `json:"gateId"`
	Status        FlightStatus `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`

	// Gate is populated on reads that expand the referenced gate.
	Gate *Gate `json:"gate,omitempty"`
}
