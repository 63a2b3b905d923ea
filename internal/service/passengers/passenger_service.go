package passengers

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

type PassengerUseCase interface {
	Create(ctx context.Context, input CreatePassengerInput) (*domain.Passenger, error)
	Get(ctx context.Context, id int64) (*domain.Passenger, error)
	List(ctx context.Context) ([]domain.Passenger, error)
	Update(ctx context.Context, id int64, input UpdatePassengerInput) (*domain.Passenger, error)
	Delete(ctx context.Context, id int64) error
	CheckIn(ctx context.Context, id int64) (*domain.Passenger, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type PassengerService struct {
	passengers         repository.PassengerRepository
	flights            repository.FlightRepository
	producer           Producer
	notificationsTopic string
}

type CreatePassengerInput struct {
	Name     string
	CPF      string
	FlightID int64
}

type UpdatePassengerInput struct {
	Name     *string
	CPF      *string
	FlightID *int64
}

func NewPassengerService(passengers repository.PassengerRepository, flights repository.FlightRepository, producer Producer, notificationsTopic string) *PassengerService {
	return &PassengerService{
		passengers:         passengers,
		flights:            flights,
		producer:           producer,
		notificationsTopic: notificationsTopic,
	}
}

func (s *PassengerService) Create(ctx context.Context, input CreatePassengerInput) (*domain.Passenger, error) {
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("flight %d: %w", input.FlightID, domain.ErrNotFound)
		}
		return nil, err
	}

	passenger := &domain.Passenger{
		Name:     input.Name,
		CPF:      input.CPF,
		FlightID: input.FlightID,
	}
	if err := s.passengers.Create(ctx, passenger); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("cpf %s is already registered: %w", input.CPF, domain.ErrDuplicateKey)
		}
		return nil, err
	}
	passenger.Flight = flight
	return passenger, nil
}

func (s *PassengerService) Get(ctx context.Context, id int64) (*domain.Passenger, error) {
	return s.passengers.GetByID(ctx, id)
}

func (s *PassengerService) List(ctx context.Context) ([]domain.Passenger, error) {
	return s.passengers.List(ctx)
}

// Update applies only the fields supplied; a changed flight reference is
// validated before the write.
func (s *PassengerService) Update(ctx context.Context, id int64, input UpdatePassengerInput) (*domain.Passenger, error) {
	if input.FlightID != nil {
		if _, err := s.flights.GetByID(ctx, *input.FlightID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("flight %d: %w", *input.FlightID, domain.ErrNotFound)
			}
			return nil, err
		}
	}

	updated, err := s.passengers.Update(ctx, id, repository.PassengerUpdate{
		Name:     input.Name,
		CPF:      input.CPF,
		FlightID: input.FlightID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("cpf is already registered: %w", domain.ErrDuplicateKey)
		}
		return nil, err
	}
	return updated, nil
}

func (s *PassengerService) Delete(ctx context.Context, id int64) error {
	return s.passengers.Delete(ctx, id)
}

// checkInEligibility reports why a passenger cannot check in, or nil.
func checkInEligibility(p *domain.Passenger) error {
	if p.CheckInStatus == domain.CheckInStatusDone {
		return domain.ErrAlreadyCheckedIn
	}
	if p.Flight != nil && p.Flight.Status != domain.FlightStatusBoarding {
		return fmt.Errorf("check-in allowed only while the flight is boarding; current status is %s: %w", p.Flight.Status, domain.ErrConflict)
	}
	return nil
}

// CheckIn moves a passenger from pending to done while the flight is
// boarding. Eligibility is diagnosed first for precise error messages; the
// write itself is a single conditional update, so concurrent calls cannot
// both succeed.
func (s *PassengerService) CheckIn(ctx context.Context, id int64) (*domain.Passenger, error) {
	passenger, err := s.passengers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkInEligibility(passenger); err != nil {
		return nil, err
	}

	updated, err := s.passengers.CheckIn(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost a race between the eligibility read and the write;
			// re-read so the caller learns the actual cause.
			if current, readErr := s.passengers.GetByID(ctx, id); readErr == nil {
				if eligErr := checkInEligibility(current); eligErr != nil {
					return nil, eligErr
				}
			}
		}
		return nil, err
	}
	updated.Flight = passenger.Flight

	s.publish(ctx, "passenger_checked_in", updated)
	return updated, nil
}

func (s *PassengerService) publish(ctx context.Context, eventType string, passenger *domain.Passenger) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}
	event := kafka.OpsEvent{
		Type:          eventType,
		PassengerID:   passenger.ID,
		PassengerName: passenger.Name,
		FlightID:      passenger.FlightID,
		OccurredAt:    time.Now(),
	}
	if passenger.Flight != nil {
		event.FlightNumber = passenger.Flight.FlightNumber
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, passenger.CPF, event); err != nil {
		log.Warn().Err(err).Str("type", eventType).Int64("passenger", passenger.ID).Msg("publish passenger event")
	}
}

var _ PassengerUseCase = (*PassengerService)(nil)
