package domain

import "time"

type CheckInStatus string

const (
	CheckInStatusPending CheckInStatus = "pending"
	CheckInStatusDone    CheckInStatus = "done"
)

type Passenger struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	CPF           string        `json:"cpf"`
	FlightID      int64         `json:"flightId"`
	CheckInStatus CheckInStatus `json:"checkInStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	// Flight is populated on reads that expand the referenced flight.
	Flight *Flight `json:"flight,omitempty"`
}
