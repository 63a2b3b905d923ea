package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PassengerUpdate carries a partial update; nil fields are left untouched.
type PassengerUpdate struct {
	Name     *string
	CPF      *string
	FlightID *int64
}

type PassengerRepository interface {
	Create(ctx context.Context, passenger *domain.Passenger) error
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	List(ctx context.Context) ([]domain.Passenger, error)
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Passenger, error)
	Update(ctx context.Context, id int64, upd PassengerUpdate) (*domain.Passenger, error)
	Delete(ctx context.Context, id int64) error
	// CheckIn flips checkin_status to done in a single conditional write:
	// the row must still be pending and the flight must still be boarding.
	// Two racing calls cannot both succeed.
	CheckIn(ctx context.Context, id int64) (*domain.Passenger, error)
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `id, name, cpf, flight_id, checkin_status, created_at, updated_at`

func scanPassenger(row pgx.Row, p *domain.Passenger) error {
	return row.Scan(&p.ID, &p.Name, &p.CPF, &p.FlightID, &p.CheckInStatus, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PGPassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	passenger.CheckInStatus = domain.CheckInStatusPending
	row := r.db.QueryRow(ctx, `INSERT INTO passengers (name, cpf, flight_id, checkin_status)
		VALUES ($1, $2, $3, $4) RETURNING `+passengerColumns,
		passenger.Name, passenger.CPF, passenger.FlightID, passenger.CheckInStatus)
	return translateErr(scanPassenger(row, passenger))
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	var p domain.Passenger
	var f domain.Flight
	row := r.db.QueryRow(ctx, `SELECT p.id, p.name, p.cpf, p.flight_id, p.checkin_status, p.created_at, p.updated_at,
		f.id, f.flight_number, f.origin, f.destination, f.departure_time, f.gate_id, f.status, f.created_at, f.updated_at
		FROM passengers p JOIN flights f ON f.id = p.flight_id WHERE p.id=$1`, id)
	if err := row.Scan(&p.ID, &p.Name, &p.CPF, &p.FlightID, &p.CheckInStatus, &p.CreatedAt, &p.UpdatedAt,
		&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.GateID, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, translateErr(err)
	}
	p.Flight = &f
	return &p, nil
}

func (r *PGPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	return r.queryPassengers(ctx, `SELECT `+passengerColumns+` FROM passengers ORDER BY name`)
}

// ListByFlight returns a flight's passengers in manifest order: pending
// check-ins before completed ones, names alphabetical within each group.
func (r *PGPassengerRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Passenger, error) {
	return r.queryPassengers(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE flight_id=$1 ORDER BY checkin_status DESC, name`, flightID)
}

func (r *PGPassengerRepository) queryPassengers(ctx context.Context, query string, args ...any) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := scanPassenger(rows, &p); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

func (r *PGPassengerRepository) Update(ctx context.Context, id int64, upd PassengerUpdate) (*domain.Passenger, error) {
	var p domain.Passenger
	row := r.db.QueryRow(ctx, `UPDATE passengers SET
			name = COALESCE($2, name),
			cpf = COALESCE($3, cpf),
			flight_id = COALESCE($4, flight_id),
			updated_at = now()
		WHERE id=$1 RETURNING `+passengerColumns, id, upd.Name, upd.CPF, upd.FlightID)
	if err := scanPassenger(row, &p); err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *PGPassengerRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM passengers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("passenger %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PGPassengerRepository) CheckIn(ctx context.Context, id int64) (*domain.Passenger, error) {
	var p domain.Passenger
	row := r.db.QueryRow(ctx, `UPDATE passengers p SET checkin_status=$2, updated_at=now()
		FROM flights f
		WHERE p.id=$1 AND f.id = p.flight_id AND p.checkin_status=$3 AND f.status=$4
		RETURNING p.id, p.name, p.cpf, p.flight_id, p.checkin_status, p.created_at, p.updated_at`,
		id, domain.CheckInStatusDone, domain.CheckInStatusPending, domain.FlightStatusBoarding)
	if err := scanPassenger(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("check-in conditions no longer hold: %w", domain.ErrConflict)
		}
		return nil, err
	}
	return &p, nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
