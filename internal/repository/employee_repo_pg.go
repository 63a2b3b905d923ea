package repository

import (
	"context"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
}

type PGEmployeeRepository struct {
	db *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) EmployeeRepository {
	return &PGEmployeeRepository{db: db}
}

const employeeColumns = `id, name, email, password_hash, role, created_at, updated_at`

func scanEmployee(row pgx.Row, e *domain.Employee) error {
	return row.Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Role, &e.CreatedAt, &e.UpdatedAt)
}

func (r *PGEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	row := r.db.QueryRow(ctx, `INSERT INTO employees (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4) RETURNING `+employeeColumns,
		employee.Name, employee.Email, employee.PasswordHash, employee.Role)
	return translateErr(scanEmployee(row, employee))
}

func (r *PGEmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var e domain.Employee
	row := r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id)
	if err := scanEmployee(row, &e); err != nil {
		return nil, translateErr(err)
	}
	return &e, nil
}

func (r *PGEmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var e domain.Employee
	row := r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email=$1`, email)
	if err := scanEmployee(row, &e); err != nil {
		return nil, translateErr(err)
	}
	return &e, nil
}

var _ EmployeeRepository = (*PGEmployeeRepository)(nil)
