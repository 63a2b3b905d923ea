package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/Domenick1991/airportops/internal/repository"
)

// Manager is the access control boundary: it issues credentials on signup
// and login and resolves a bearer token back to a live employee record.
type Manager struct {
	employees repository.EmployeeRepository
	secret    []byte
	tokenTTL  time.Duration
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.EmployeeRole
}

func NewManager(employees repository.EmployeeRepository, secret []byte, tokenTTL time.Duration) *Manager {
	return &Manager{employees: employees, secret: secret, tokenTTL: tokenTTL}
}

func (m *Manager) Signup(ctx context.Context, input SignupInput) (*domain.Employee, string, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleStaff
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	employee := &domain.Employee{
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         role,
	}
	if err := m.employees.Create(ctx, employee); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, "", fmt.Errorf("email is already registered: %w", domain.ErrDuplicateKey)
		}
		return nil, "", err
	}

	token, err := IssueToken(m.secret, m.tokenTTL, employee)
	if err != nil {
		return nil, "", err
	}
	return employee, token, nil
}

func (m *Manager) Login(ctx context.Context, email, password string) (*domain.Employee, string, error) {
	employee, err := m.employees.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !CheckPassword(employee.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := IssueToken(m.secret, m.tokenTTL, employee)
	if err != nil {
		return nil, "", err
	}
	return employee, token, nil
}

// Authenticate verifies the token and confirms the employee still exists,
// so a deleted account cannot ride out its token lifetime.
func (m *Manager) Authenticate(ctx context.Context, tokenString string) (*domain.Employee, error) {
	claims, err := ParseToken(m.secret, tokenString)
	if err != nil {
		return nil, err
	}

	id, err := claims.SubjectID()
	if err != nil {
		return nil, err
	}

	employee, err := m.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("employee for this token no longer exists: %w", ErrTokenInvalid)
		}
		return nil, err
	}
	return employee, nil
}
