package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GateUpdate carries a partial update; nil fields are left untouched.
type GateUpdate struct {
	Code      *string
	Terminal  *string
	Available *bool
}

type GateRepository interface {
	Create(ctx context.Context, gate *domain.Gate) error
	GetByID(ctx context.Context, id int64) (*domain.Gate, error)
	List(ctx context.Context, available *bool) ([]domain.Gate, error)
	ListUnavailable(ctx context.Context) ([]domain.Gate, error)
	Update(ctx context.Context, id int64, upd GateUpdate) (*domain.Gate, error)
	Delete(ctx context.Context, id int64) error
}

type PGGateRepository struct {
	db *pgxpool.Pool
}

func NewGateRepository(db *pgxpool.Pool) GateRepository {
	return &PGGateRepository{db: db}
}

const gateColumns = `id, code, terminal, available, created_at, updated_at`

func scanGate(row pgx.Row, g *domain.Gate) error {
	return row.Scan(&g.ID, &g.Code, &g.Terminal, &g.Available, &g.CreatedAt, &g.UpdatedAt)
}

func (r *PGGateRepository) Create(ctx context.Context, gate *domain.Gate) error {
	row := r.db.QueryRow(ctx, `INSERT INTO gates (code, terminal, available) VALUES ($1, $2, true)
		RETURNING `+gateColumns, gate.Code, gate.Terminal)
	return translateErr(scanGate(row, gate))
}

func (r *PGGateRepository) GetByID(ctx context.Context, id int64) (*domain.Gate, error) {
	var g domain.Gate
	row := r.db.QueryRow(ctx, `SELECT `+gateColumns+` FROM gates WHERE id=$1`, id)
	if err := scanGate(row, &g); err != nil {
		return nil, translateErr(err)
	}
	return &g, nil
}

func (r *PGGateRepository) List(ctx context.Context, available *bool) ([]domain.Gate, error) {
	rows, err := r.db.Query(ctx, `SELECT `+gateColumns+` FROM gates WHERE $1::boolean IS NULL OR available=$1 ORDER BY code`, available)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gates := make([]domain.Gate, 0)
	for rows.Next() {
		var g domain.Gate
		if err := scanGate(rows, &g); err != nil {
			return nil, err
		}
		gates = append(gates, g)
	}
	return gates, rows.Err()
}

func (r *PGGateRepository) ListUnavailable(ctx context.Context) ([]domain.Gate, error) {
	unavailable := false
	return r.List(ctx, &unavailable)
}

func (r *PGGateRepository) Update(ctx context.Context, id int64, upd GateUpdate) (*domain.Gate, error) {
	var g domain.Gate
	row := r.db.QueryRow(ctx, `UPDATE gates SET
			code = COALESCE($2, code),
			terminal = COALESCE($3, terminal),
			available = COALESCE($4, available),
			updated_at = now()
		WHERE id=$1 RETURNING `+gateColumns, id, upd.Code, upd.Terminal, upd.Available)
	if err := scanGate(row, &g); err != nil {
		return nil, translateErr(err)
	}
	return &g, nil
}

// Delete removes a gate unless any flight, in any status, still references
// it. The existence check and the delete run in one transaction.
func (r *PGGateRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var referenced bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE gate_id=$1)`, id).Scan(&referenced); err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("gate is linked to a flight: %w", domain.ErrConflict)
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM gates WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("gate %d: %w", id, domain.ErrNotFound)
	}
	return tx.Commit(ctx)
}

var _ GateRepository = (*PGGateRepository)(nil)
