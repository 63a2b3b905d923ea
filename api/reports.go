package api

import (
	"net/http"

	"github.com/Domenick1991/airportops/internal/service/reports"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(router *gin.Engine, guard *Guard) {
	authed := guard.RequireAuth()
	router.GET("/today", authed, h.today)
	router.GET("/flights/:id/passengers", authed, h.manifest)
	router.GET("/reports/daily", authed, h.daily)
	router.GET("/reports/gates", authed, h.gates)
}

func (h *ReportHandler) today(c *gin.Context) {
	report, err := h.service.FlightsToday(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) manifest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := h.service.PassengerManifest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) daily(c *gin.Context) {
	report, err := h.service.DailySummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) gates(c *gin.Context) {
	report, err := h.service.GatesInUse(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
