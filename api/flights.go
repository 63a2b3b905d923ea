package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/Domenick1991/airportops/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type createFlightRequest struct {
	FlightNumber  string    `json:"flightNumber" binding:"required"`
	Origin        string    `json:"origin" binding:"required"`
	Destination   string    `json:"destination" binding:"required"`
	DepartureTime time.Time `json:"departureTime" binding:"required"`
	GateID        int64     `json:"gateId" binding:"required"`
}

type updateStatusRequest struct {
	NewStatus string `json:"newStatus" binding:"required,oneof=scheduled boarding completed"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.Engine, guard *Guard) {
	router.GET("/flights", h.list)
	router.GET("/flights/:id", h.get)

	admin := []gin.HandlerFunc{guard.RequireAuth(), guard.RequireRole(domain.RoleAdmin)}
	router.POST("/flights", append(admin, h.create)...)
	router.PUT("/flights/:id/status", append(admin, h.updateStatus)...)
	router.DELETE("/flights/:id", append(admin, h.delete)...)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if !bindJSON(c, &req) {
		return
	}

	flight, err := h.service.Create(c.Request.Context(), flights.CreateFlightInput{
		FlightNumber:  req.FlightNumber,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		GateID:        req.GateID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "flight created successfully", "flight": flight})
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flights": list})
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	flight, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight": flight})
}

func (h *FlightHandler) updateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	status, _ := domain.ParseFlightStatus(req.NewStatus)

	flight, err := h.service.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flight status updated to " + req.NewStatus, "flight": flight})
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flight deleted successfully"})
}
