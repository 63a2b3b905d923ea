package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

var testSecret = []byte("test-secret")

func TestPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestToken_RoundTrip(t *testing.T) {
	employee := &domain.Employee{ID: 42, Name: "Alice", Role: domain.RoleAdmin}

	token, err := IssueToken(testSecret, 2*time.Minute, employee)
	assert.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)

	id, err := claims.SubjectID()
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestToken_Expired(t *testing.T) {
	employee := &domain.Employee{ID: 1, Name: "Alice", Role: domain.RoleStaff}

	token, err := IssueToken(testSecret, -time.Minute, employee)
	assert.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestToken_WrongSecret(t *testing.T) {
	employee := &domain.Employee{ID: 1, Name: "Alice", Role: domain.RoleStaff}

	token, err := IssueToken(testSecret, 2*time.Minute, employee)
	assert.NoError(t, err)

	claims, err := ParseToken([]byte("other-secret"), token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestManager_Signup_DefaultsToStaffAndNormalizesEmail(t *testing.T) {
	repo := &MockEmployeeRepository{}
	manager := NewManager(repo, testSecret, 2*time.Minute)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Employee) bool {
		return e.Email == "alice@airport.io" && e.Role == domain.RoleStaff && e.PasswordHash != "s3cret"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Employee).ID = 7
	}).Return(nil)

	employee, token, err := manager.Signup(context.Background(), SignupInput{
		Name:     "Alice",
		Email:    "  Alice@Airport.IO ",
		Password: "s3cret",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, employee.Role)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
}

func TestManager_Signup_DuplicateEmail(t *testing.T) {
	repo := &MockEmployeeRepository{}
	manager := NewManager(repo, testSecret, 2*time.Minute)

	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateKey)

	employee, token, err := manager.Signup(context.Background(), SignupInput{
		Name:     "Alice",
		Email:    "alice@airport.io",
		Password: "s3cret",
	})

	assert.Nil(t, employee)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestManager_Login_Success(t *testing.T) {
	repo := &MockEmployeeRepository{}
	manager := NewManager(repo, testSecret, 2*time.Minute)

	hash, err := HashPassword("s3cret")
	assert.NoError(t, err)
	repo.On("GetByEmail", mock.Anything, "alice@airport.io").
		Return(&domain.Employee{ID: 7, Name: "Alice", Email: "alice@airport.io", PasswordHash: hash, Role: domain.RoleAdmin}, nil)

	employee, token, err := manager.Login(context.Background(), " Alice@Airport.IO ", "s3cret")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), employee.ID)

	claims, err := ParseToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestManager_Login_WrongPassword(t *testing.T) {
	repo := &MockEmployeeRepository{}
	manager := NewManager(repo, testSecret, 2*time.Minute)

	hash, err := HashPassword("s3cret")
	assert.NoError(t, err)
	repo.On("GetByEmail", mock.Anything, "alice@airport.io").
		Return(&domain.Employee{ID: 7, PasswordHash: hash}, nil)

	employee, token, err := manager.Login(context.Background(), "alice@airport.io", "wrong")

	assert.Nil(t, employee)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestManager_Login_UnknownEmail(t *testing.T) {
	repo := &MockEmployeeRepository{}
	manager := NewManager(repo, testSecret, 2*time.Minute)

	repo.On("GetByEmail", mock.Anything, "ghost@airport.io").Return(nil, domain.ErrNotFound)

	employee, token, err := manager.Login(context.Background(), "ghost@airport.io", "s3cret")

	assert.Nil(t, employee)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestManager_Authenticate_Success(t *testing.T) {
	repo := &MockEmployeeRepository{}
	manager := NewManager(repo, testSecret, 2*time.Minute)

	stored := &domain.Employee{ID: 7, Name: "Alice", Role: domain.RoleStaff}
	token, err := IssueToken(testSecret, 2*time.Minute, stored)
	assert.NoError(t, err)
	repo.On("GetByID", mock.Anything, int64(7)).Return(stored, nil)

	employee, err := manager.Authenticate(context.Background(), token)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), employee.ID)
}

func TestManager_Authenticate_DeletedEmployee(t *testing.T) {
	repo := &MockEmployeeRepository{}
	manager := NewManager(repo, testSecret, 2*time.Minute)

	token, err := IssueToken(testSecret, 2*time.Minute, &domain.Employee{ID: 7})
	assert.NoError(t, err)
	repo.On("GetByID", mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)

	employee, err := manager.Authenticate(context.Background(), token)

	assert.Nil(t, employee)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
