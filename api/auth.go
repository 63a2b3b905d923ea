package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/airportops/internal/auth"
	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/gin-gonic/gin"
)

type AuthUseCase interface {
	Signup(ctx context.Context, input auth.SignupInput) (*domain.Employee, string, error)
	Login(ctx context.Context, email, password string) (*domain.Employee, string, error)
}

type AuthHandler struct {
	service AuthUseCase
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type credentialsResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    employeePayload `json:"data"`
}

type employeePayload struct {
	ID    int64               `json:"id"`
	Name  string              `json:"name"`
	Email string              `json:"email"`
	Role  domain.EmployeeRole `json:"role"`
}

func NewAuthHandler(service AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.Engine, _ *Guard) {
	router.POST("/auth/signup", h.signup)
	router.POST("/auth/login", h.login)
}

func (h *AuthHandler) signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, token, err := h.service.Signup(c.Request.Context(), auth.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.EmployeeRole(req.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, credentialsResponse{
		Message: "employee registered successfully",
		Token:   token,
		Data:    toEmployeePayload(employee),
	})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, credentialsResponse{
		Message: "login successful",
		Token:   token,
		Data:    toEmployeePayload(employee),
	})
}

func toEmployeePayload(e *domain.Employee) employeePayload {
	return employeePayload{ID: e.ID, Name: e.Name, Email: e.Email, Role: e.Role}
}
