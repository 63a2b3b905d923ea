package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/Domenick1991/airportops/internal/service/gates"
	"github.com/gin-gonic/gin"
)

type GateHandler struct {
	service gates.GateUseCase
}

type createGateRequest struct {
	Code     string `json:"code" binding:"required"`
	Terminal string `json:"terminal"`
}

type updateGateRequest struct {
	Code      *string `json:"code" binding:"omitempty,min=1"`
	Terminal  *string `json:"terminal"`
	Available *bool   `json:"available"`
}

func NewGateHandler(service gates.GateUseCase) *GateHandler {
	return &GateHandler{service: service}
}

func (h *GateHandler) Register(router *gin.Engine, guard *Guard) {
	router.GET("/gates", h.list)
	router.GET("/gates/:id", h.get)

	admin := []gin.HandlerFunc{guard.RequireAuth(), guard.RequireRole(domain.RoleAdmin)}
	router.POST("/gates", append(admin, h.create)...)
	router.PUT("/gates/:id", append(admin, h.update)...)
	router.DELETE("/gates/:id", append(admin, h.delete)...)
}

func (h *GateHandler) create(c *gin.Context) {
	var req createGateRequest
	if !bindJSON(c, &req) {
		return
	}

	gate, err := h.service.Create(c.Request.Context(), gates.CreateGateInput{
		Code:     req.Code,
		Terminal: req.Terminal,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "gate created successfully", "gate": gate})
}

func (h *GateHandler) list(c *gin.Context) {
	var available *bool
	if raw, ok := c.GetQuery("available"); ok {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "available must be a boolean"})
			return
		}
		available = &value
	}

	list, err := h.service.List(c.Request.Context(), available)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gates": list})
}

func (h *GateHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	gate, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gate": gate})
}

func (h *GateHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateGateRequest
	if !bindJSON(c, &req) {
		return
	}

	gate, err := h.service.Update(c.Request.Context(), id, gates.UpdateGateInput{
		Code:      req.Code,
		Terminal:  req.Terminal,
		Available: req.Available,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "gate updated successfully", "gate": gate})
}

func (h *GateHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "gate deleted successfully"})
}
