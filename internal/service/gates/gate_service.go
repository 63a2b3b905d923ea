package gates

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/Domenick1991/airportops/internal/repository"
)

type GateUseCase interface {
	Create(ctx context.Context, input CreateGateInput) (*domain.Gate, error)
	Get(ctx context.Context, id int64) (*domain.Gate, error)
	List(ctx context.Context, available *bool) ([]domain.Gate, error)
	Update(ctx context.Context, id int64, input UpdateGateInput) (*domain.Gate, error)
	Delete(ctx context.Context, id int64) error
}

type GateService struct {
	gates   repository.GateRepository
	flights repository.FlightRepository
}

type CreateGateInput struct {
	Code     string
	Terminal string
}

type UpdateGateInput struct {
	Code      *string
	Terminal  *string
	Available *bool
}

func NewGateService(gates repository.GateRepository, flights repository.FlightRepository) *GateService {
	return &GateService{gates: gates, flights: flights}
}

func (s *GateService) Create(ctx context.Context, input CreateGateInput) (*domain.Gate, error) {
	gate := &domain.Gate{
		Code:      domain.NormalizeGateCode(input.Code),
		Terminal:  input.Terminal,
		Available: true,
	}
	if err := s.gates.Create(ctx, gate); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("gate code %s is already in use: %w", gate.Code, domain.ErrDuplicateKey)
		}
		return nil, err
	}
	return gate, nil
}

func (s *GateService) Get(ctx context.Context, id int64) (*domain.Gate, error) {
	return s.gates.GetByID(ctx, id)
}

func (s *GateService) List(ctx context.Context, available *bool) ([]domain.Gate, error) {
	return s.gates.List(ctx, available)
}

// Update applies a partial update. Reopening a closed gate is refused while
// an active flight still references it.
func (s *GateService) Update(ctx context.Context, id int64, input UpdateGateInput) (*domain.Gate, error) {
	gate, err := s.gates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Available != nil && *input.Available && !gate.Available {
		active, err := s.flights.FindActiveByGate(ctx, id)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if active != nil {
			return nil, fmt.Errorf("gate in use by flight %s: %w", active.FlightNumber, domain.ErrConflict)
		}
	}

	upd := repository.GateUpdate{
		Terminal:  input.Terminal,
		Available: input.Available,
	}
	if input.Code != nil {
		code := domain.NormalizeGateCode(*input.Code)
		upd.Code = &code
	}

	updated, err := s.gates.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("gate code is already in use: %w", domain.ErrDuplicateKey)
		}
		return nil, err
	}
	return updated, nil
}

func (s *GateService) Delete(ctx context.Context, id int64) error {
	return s.gates.Delete(ctx, id)
}

var _ GateUseCase = (*GateService)(nil)
