package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	// Create inserts a scheduled flight and claims its gate in the same
	// transaction. The claim is conditional on the gate still being
	// available, so a flight can never be created against a busy gate.
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	ListDepartingBetween(ctx context.Context, from, to time.Time, status *domain.FlightStatus) ([]domain.Flight, error)
	// UpdateStatus is a compare-and-swap on the previous status. Completion
	// releases the gate within the same transaction.
	UpdateStatus(ctx context.Context, id int64, from, to domain.FlightStatus) (*domain.Flight, error)
	// Delete refuses while passengers reference the flight and releases the
	// gate when the flight had not completed.
	Delete(ctx context.Context, id int64) error
	FindActiveByGate(ctx context.Context, gateID int64) (*domain.Flight, error)
	ReconcileGateAvailability(ctx context.Context) (int64, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightJoinQuery = `SELECT f.id, f.flight_number, f.origin, f.destination, f.departure_time, f.gate_id, f.status, f.created_at, f.updated_at,
	g.id, g.code, g.terminal, g.available, g.created_at, g.updated_at
	FROM flights f JOIN gates g ON g.id = f.gate_id`

func scanFlightJoin(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	var g domain.Gate
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.GateID, &f.Status, &f.CreatedAt, &f.UpdatedAt,
		&g.ID, &g.Code, &g.Terminal, &g.Available, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	f.Gate = &g
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE gates SET available=false, updated_at=now() WHERE id=$1 AND available`, flight.GateID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("gate %d is already in use: %w", flight.GateID, domain.ErrConflict)
	}

	flight.Status = domain.FlightStatusScheduled
	if err := tx.QueryRow(ctx, `INSERT INTO flights (flight_number, origin, destination, departure_time, gate_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.Origin, flight.Destination, flight.DepartureTime, flight.GateID, flight.Status).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt); err != nil {
		return translateErr(err)
	}

	return tx.Commit(ctx)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlightJoin(r.db.QueryRow(ctx, flightJoinQuery+` WHERE f.id=$1`, id))
	if err != nil {
		return nil, translateErr(err)
	}
	return f, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.queryFlights(ctx, flightJoinQuery+` ORDER BY f.departure_time`)
}

func (r *PGFlightRepository) ListDepartingBetween(ctx context.Context, from, to time.Time, status *domain.FlightStatus) ([]domain.Flight, error) {
	return r.queryFlights(ctx, flightJoinQuery+` WHERE f.departure_time >= $1 AND f.departure_time < $2
		AND ($3::text IS NULL OR f.status = $3) ORDER BY f.departure_time`, from, to, status)
}

func (r *PGFlightRepository) queryFlights(ctx context.Context, query string, args ...any) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlightJoin(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.FlightStatus) (*domain.Flight, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var f domain.Flight
	err = tx.QueryRow(ctx, `UPDATE flights SET status=$3, updated_at=now() WHERE id=$1 AND status=$2
		RETURNING id, flight_number, origin, destination, departure_time, gate_id, status, created_at, updated_at`, id, from, to).
		Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.GateID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight status changed concurrently: %w", domain.ErrConflict)
		}
		return nil, err
	}

	if to == domain.FlightStatusCompleted {
		if _, err := tx.Exec(ctx, `UPDATE gates SET available=true, updated_at=now() WHERE id=$1`, f.GateID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status domain.FlightStatus
	var gateID int64
	err = tx.QueryRow(ctx, `SELECT status, gate_id FROM flights WHERE id=$1 FOR UPDATE`, id).Scan(&status, &gateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
		}
		return err
	}

	var linked int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM passengers WHERE flight_id=$1`, id).Scan(&linked); err != nil {
		return err
	}
	if linked > 0 {
		return fmt.Errorf("flight has %d linked passengers: %w", linked, domain.ErrConflict)
	}

	if status != domain.FlightStatusCompleted {
		if _, err := tx.Exec(ctx, `UPDATE gates SET available=true, updated_at=now() WHERE id=$1`, gateID); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGFlightRepository) FindActiveByGate(ctx context.Context, gateID int64) (*domain.Flight, error) {
	f, err := scanFlightJoin(r.db.QueryRow(ctx, flightJoinQuery+` WHERE f.gate_id=$1 AND f.status IN ('scheduled', 'boarding') LIMIT 1`, gateID))
	if err != nil {
		return nil, translateErr(err)
	}
	return f, nil
}

// ReconcileGateAvailability closes any gate still marked available while an
// active flight references it. Flight creation does this atomically already;
// the sweep exists so a manually toggled gate cannot break the invariant.
func (r *PGFlightRepository) ReconcileGateAvailability(ctx context.Context) (int64, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE gates g SET available=false, updated_at=now()
		WHERE g.available AND EXISTS (
			SELECT 1 FROM flights f WHERE f.gate_id = g.id AND f.status IN ('scheduled', 'boarding')
		)`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
