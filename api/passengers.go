package api

import (
	"net/http"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/Domenick1991/airportops/internal/service/passengers"
	"github.com/gin-gonic/gin"
)

type PassengerHandler struct {
	service passengers.PassengerUseCase
}

type createPassengerRequest struct {
	Name     string `json:"name" binding:"required"`
	CPF      string `json:"cpf" binding:"required,len=11,numeric"`
	FlightID int64  `json:"flightId" binding:"required"`
}

type updatePassengerRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	CPF      *string `json:"cpf" binding:"omitempty,len=11,numeric"`
	FlightID *int64  `json:"flightId"`
}

func NewPassengerHandler(service passengers.PassengerUseCase) *PassengerHandler {
	return &PassengerHandler{service: service}
}

func (h *PassengerHandler) Register(router *gin.Engine, guard *Guard) {
	router.GET("/passengers", h.list)
	router.GET("/passengers/:id", h.get)

	admin := []gin.HandlerFunc{guard.RequireAuth(), guard.RequireRole(domain.RoleAdmin)}
	router.POST("/passengers", append(admin, h.create)...)
	router.PUT("/passengers/:id", append(admin, h.update)...)
	router.DELETE("/passengers/:id", append(admin, h.delete)...)
	router.PATCH("/passengers/:id/checkin", append(admin, h.checkIn)...)
}

func (h *PassengerHandler) create(c *gin.Context) {
	var req createPassengerRequest
	if !bindJSON(c, &req) {
		return
	}

	passenger, err := h.service.Create(c.Request.Context(), passengers.CreatePassengerInput{
		Name:     req.Name,
		CPF:      req.CPF,
		FlightID: req.FlightID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "passenger created successfully", "passenger": passenger})
}

func (h *PassengerHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"passengers": list})
}

func (h *PassengerHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	passenger, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"passenger": passenger})
}

func (h *PassengerHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updatePassengerRequest
	if !bindJSON(c, &req) {
		return
	}

	passenger, err := h.service.Update(c.Request.Context(), id, passengers.UpdatePassengerInput{
		Name:     req.Name,
		CPF:      req.CPF,
		FlightID: req.FlightID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "passenger updated successfully", "passenger": passenger})
}

func (h *PassengerHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "passenger deleted successfully"})
}

func (h *PassengerHandler) checkIn(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	passenger, err := h.service.CheckIn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "check-in completed successfully", "passenger": passenger})
}
