package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/Domenick1991/airportops/internal/service/passengers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPassengerUseCase struct {
	mock.Mock
}

func (m *MockPassengerUseCase) Create(ctx context.Context, input passengers.CreatePassengerInput) (*domain.Passenger, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerUseCase) Get(ctx context.Context, id int64) (*domain.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerUseCase) List(ctx context.Context) ([]domain.Passenger, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *MockPassengerUseCase) Update(ctx context.Context, id int64, input passengers.UpdatePassengerInput) (*domain.Passenger, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPassengerUseCase) CheckIn(ctx context.Context, id int64) (*domain.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func TestPassengerHandler_create_RejectsBadCPF(t *testing.T) {
	mockService := &MockPassengerUseCase{}
	handler := NewPassengerHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/passengers", `{"name": "Jane", "cpf": "123", "flightId": 1}`)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cpf")
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPassengerHandler_create(t *testing.T) {
	mockService := &MockPassengerUseCase{}
	handler := NewPassengerHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/passengers", `{"name": "Jane", "cpf": "12345678901", "flightId": 1}`)

	mockService.On("Create", c.Request.Context(), passengers.CreatePassengerInput{
		Name:     "Jane",
		CPF:      "12345678901",
		FlightID: 1,
	}).Return(&domain.Passenger{ID: 5, Name: "Jane", CPF: "12345678901", FlightID: 1, CheckInStatus: domain.CheckInStatusPending}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestPassengerHandler_checkIn(t *testing.T) {
	mockService := &MockPassengerUseCase{}
	handler := NewPassengerHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest("PATCH", "/passengers/5/checkin", nil)

	mockService.On("CheckIn", c.Request.Context(), int64(5)).
		Return(&domain.Passenger{ID: 5, CheckInStatus: domain.CheckInStatusDone}, nil)

	handler.checkIn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "check-in completed successfully")
}

func TestPassengerHandler_checkIn_AlreadyCheckedIn(t *testing.T) {
	mockService := &MockPassengerUseCase{}
	handler := NewPassengerHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest("PATCH", "/passengers/5/checkin", nil)

	mockService.On("CheckIn", c.Request.Context(), int64(5)).Return(nil, domain.ErrAlreadyCheckedIn)

	handler.checkIn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPassengerHandler_get_InvalidID(t *testing.T) {
	mockService := &MockPassengerUseCase{}
	handler := NewPassengerHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/passengers/abc", nil)

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
