package flights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/Domenick1991/airportops/internal/kafka"
	"github.com/Domenick1991/airportops/internal/repository"
	"github.com/rs/zerolog/log"
)

type FlightUseCase interface {
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Get(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	UpdateStatus(ctx context.Context, id int64, newStatus domain.FlightStatus) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
	ReconcileGateAssignments(ctx context.Context) (int64, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type FlightService struct {
	flights     repository.FlightRepository
	gates       repository.GateRepository
	cache       Cache
	producer    Producer
	eventsTopic string
}

type CreateFlightInput struct {
	FlightNumber  string
	Origin        string
	Destination   string
	DepartureTime time.Time
	GateID        int64
}

func NewFlightService(flights repository.FlightRepository, gates repository.GateRepository, cache Cache, producer Producer, eventsTopic string) *FlightService {
	return &FlightService{
		flights:     flights,
		gates:       gates,
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
	}
}

// Create schedules a flight on an available gate. The gate claim and the
// flight insert are a single repository transaction, so a failure on either
// side leaves no half-applied state.
func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	gate, err := s.gates.GetByID(ctx, input.GateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("gate %d: %w", input.GateID, domain.ErrNotFound)
		}
		return nil, err
	}
	if !gate.Available {
		return nil, fmt.Errorf("gate %s is already in use: %w", gate.Code, domain.ErrConflict)
	}

	flight := &domain.Flight{
		FlightNumber:  input.FlightNumber,
		Origin:        input.Origin,
		Destination:   input.Destination,
		DepartureTime: input.DepartureTime,
		GateID:        input.GateID,
	}
	if err := s.flights.Create(ctx, flight); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("flight number %s is already in use: %w", input.FlightNumber, domain.ErrDuplicateKey)
		}
		return nil, err
	}

	claimed := *gate
	claimed.Available = false
	flight.Gate = &claimed

	s.invalidate(ctx)
	s.publish(ctx, "flight_created", flight)
	return flight, nil
}

func (s *FlightService) Get(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

// canTransition encodes the forward-only status machine: boarding is
// reachable only from scheduled, completed from any active status, and
// completed is terminal.
func canTransition(from, to domain.FlightStatus) bool {
	switch {
	case from == domain.FlightStatusScheduled && to == domain.FlightStatusBoarding:
		return true
	case from.Active() && to == domain.FlightStatusCompleted:
		return true
	}
	return false
}

func (s *FlightService) UpdateStatus(ctx context.Context, id int64, newStatus domain.FlightStatus) (*domain.Flight, error) {
	current, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(current.Status, newStatus) {
		return nil, fmt.Errorf("cannot change flight status from %s to %s: %w", current.Status, newStatus, domain.ErrInvalidTransition)
	}

	updated, err := s.flights.UpdateStatus(ctx, id, current.Status, newStatus)
	if err != nil {
		return nil, err
	}

	if gate := current.Gate; gate != nil {
		released := *gate
		released.Available = newStatus == domain.FlightStatusCompleted
		updated.Gate = &released
	}

	s.invalidate(ctx)
	s.publish(ctx, "flight_status_changed", updated)
	return updated, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.flights.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.publish(ctx, "flight_deleted", flight)
	return nil
}

// ReconcileGateAssignments restores the gate availability invariant for any
// gate left open while an active flight references it. Run periodically by
// the worker.
func (s *FlightService) ReconcileGateAssignments(ctx context.Context) (int64, error) {
	fixed, err := s.flights.ReconcileGateAvailability(ctx)
	if err != nil {
		return 0, err
	}
	if fixed > 0 {
		log.Warn().Int64("gates", fixed).Msg("closed gates still referenced by active flights")
		s.invalidate(ctx)
	}
	return fixed, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Warn().Err(err).Msg("invalidate flights cache")
	}
}

func (s *FlightService) publish(ctx context.Context, eventType string, flight *domain.Flight) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.OpsEvent{
		Type:         eventType,
		FlightID:     flight.ID,
		FlightNumber: flight.FlightNumber,
		Status:       string(flight.Status),
		GateID:       flight.GateID,
		OccurredAt:   time.Now(),
	}
	if flight.Gate != nil {
		event.GateCode = flight.Gate.Code
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, flight.FlightNumber, event); err != nil {
		log.Warn().Err(err).Str("type", eventType).Str("flight", flight.FlightNumber).Msg("publish flight event")
	}
}

var _ FlightUseCase = (*FlightService)(nil)
