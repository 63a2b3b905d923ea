package reports

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/Domenick1991/airportops/internal/repository"
)

type ReportUseCase interface {
	FlightsToday(ctx context.Context) (*FlightsTodayReport, error)
	PassengerManifest(ctx context.Context, flightID int64) (*Manifest, error)
	DailySummary(ctx context.Context) (*DailySummaryReport, error)
	GatesInUse(ctx context.Context) (*GatesInUseReport, error)
}

type Cache interface {
	GetFlightsToday(ctx context.Context) ([]domain.Flight, error)
	SetFlightsToday(ctx context.Context, flights []domain.Flight) error
}

type FlightsTodayReport struct {
	Flights []domain.Flight `json:"data"`
	Total   int             `json:"total"`
}

type Manifest struct {
	Flight          *domain.Flight     `json:"flight"`
	Passengers      []domain.Passenger `json:"passengers"`
	TotalPassengers int                `json:"totalPassengers"`
	CheckedIn       int                `json:"checkedIn"`
}

type FlightSummary struct {
	domain.Flight
	Passengers      []domain.Passenger `json:"passengers"`
	TotalPassengers int                `json:"totalPassengers"`
	CheckedIn       int                `json:"checkedIn"`
}

type DailyTotals struct {
	TotalFlights      int `json:"totalFlights"`
	TotalPassengers   int `json:"totalPassengers"`
	TotalCheckins     int `json:"totalCheckins"`
	CheckinPercentage int `json:"checkinPercentage"`
}

type DailySummaryReport struct {
	Flights []FlightSummary `json:"data"`
	Summary DailyTotals     `json:"summary"`
}

type GateInUse struct {
	domain.Gate
	FlightNumber *string `json:"flightNumber"`
}

type GatesInUseReport struct {
	Gates []GateInUse `json:"data"`
	Total int         `json:"total"`
}

type ReportService struct {
	flights    repository.FlightRepository
	passengers repository.PassengerRepository
	gates      repository.GateRepository
	cache      Cache
	now        func() time.Time
}

func NewReportService(flights repository.FlightRepository, passengers repository.PassengerRepository, gates repository.GateRepository, cache Cache) *ReportService {
	return &ReportService{
		flights:    flights,
		passengers: passengers,
		gates:      gates,
		cache:      cache,
		now:        time.Now,
	}
}

// dayBounds returns [local midnight, local midnight + 24h).
func dayBounds(at time.Time) (time.Time, time.Time) {
	start := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return start, start.Add(24 * time.Hour)
}

func (s *ReportService) FlightsToday(ctx context.Context) (*FlightsTodayReport, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlightsToday(ctx); err == nil && cached != nil {
			return &FlightsTodayReport{Flights: cached, Total: len(cached)}, nil
		}
	}

	from, to := dayBounds(s.now())
	scheduled := domain.FlightStatusScheduled
	flights, err := s.flights.ListDepartingBetween(ctx, from, to, &scheduled)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlightsToday(ctx, flights)
	}
	return &FlightsTodayReport{Flights: flights, Total: len(flights)}, nil
}

func (s *ReportService) PassengerManifest(ctx context.Context, flightID int64) (*Manifest, error) {
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	passengers, err := s.passengers.ListByFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}

	return &Manifest{
		Flight:          flight,
		Passengers:      passengers,
		TotalPassengers: len(passengers),
		CheckedIn:       countCheckedIn(passengers),
	}, nil
}

func (s *ReportService) DailySummary(ctx context.Context) (*DailySummaryReport, error) {
	from, to := dayBounds(s.now())
	flights, err := s.flights.ListDepartingBetween(ctx, from, to, nil)
	if err != nil {
		return nil, err
	}

	summaries := make([]FlightSummary, 0, len(flights))
	totals := DailyTotals{TotalFlights: len(flights)}
	for _, flight := range flights {
		passengers, err := s.passengers.ListByFlight(ctx, flight.ID)
		if err != nil {
			return nil, err
		}
		checkedIn := countCheckedIn(passengers)
		summaries = append(summaries, FlightSummary{
			Flight:          flight,
			Passengers:      passengers,
			TotalPassengers: len(passengers),
			CheckedIn:       checkedIn,
		})
		totals.TotalPassengers += len(passengers)
		totals.TotalCheckins += checkedIn
	}

	if totals.TotalPassengers > 0 {
		totals.CheckinPercentage = int(math.Round(float64(totals.TotalCheckins) / float64(totals.TotalPassengers) * 100))
	}

	return &DailySummaryReport{Flights: summaries, Summary: totals}, nil
}

func (s *ReportService) GatesInUse(ctx context.Context) (*GatesInUseReport, error) {
	gates, err := s.gates.ListUnavailable(ctx)
	if err != nil {
		return nil, err
	}

	annotated := make([]GateInUse, 0, len(gates))
	for _, gate := range gates {
		entry := GateInUse{Gate: gate}
		flight, err := s.flights.FindActiveByGate(ctx, gate.ID)
		switch {
		case err == nil:
			entry.FlightNumber = &flight.FlightNumber
		case errors.Is(err, domain.ErrNotFound):
			// Gate closed manually, no active flight.
		default:
			return nil, err
		}
		annotated = append(annotated, entry)
	}

	return &GatesInUseReport{Gates: annotated, Total: len(annotated)}, nil
}

func countCheckedIn(passengers []domain.Passenger) int {
	count := 0
	for _, p := range passengers {
		if p.CheckInStatus == domain.CheckInStatusDone {
			count++
		}
	}
	return count
}

var _ ReportUseCase = (*ReportService)(nil)
