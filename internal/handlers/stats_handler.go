package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type StatsHandler struct {
	stats    *infraRepo.StatsGormRepository
	log      zerolog.Logger
	timezone string
}

func NewStatsHandler(stats *infraRepo.StatsGormRepository, log zerolog.Logger, tz string) *StatsHandler {
	return &StatsHandler{stats: stats, log: log, timezone: tz}
}

// General returns dashboard counters. With startDate and endDate it also
// returns the confirmed revenue for that range.
func (h *StatsHandler) General(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.stats.General(ctx, timezone.Today(h.timezone))
	if err != nil {
		writeBookingError(c, h.log, err, "failed_to_load_stats")
		return
	}

	from, to := c.Query("startDate"), c.Query("endDate")
	if from == "" && to == "" {
		c.JSON(http.StatusOK, stats)
		return
	}
	if !validDateRange(from, to) {
		httperr.BadRequest(c, "invalid_date_range", "Rango de fechas inválido")
		return
	}

	revenue, err := h.stats.Revenue(ctx, from, to)
	if err != nil {
		writeBookingError(c, h.log, err, "failed_to_load_revenue")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservas_confirmadas": stats.ConfirmedUpcoming,
		"reservas_pendientes":  stats.PendingUpcoming,
		"total_clientes":       stats.ActiveClients,
		"clientes_vip":         stats.VIPClients,
		"peluqueros_activos":   stats.ActiveStylists,
		"servicios_activos":    stats.ActiveServices,
		"total_revenue":        revenue,
	})
}

func (h *StatsHandler) DailyRevenue(c *gin.Context) {
	from, to := c.Query("startDate"), c.Query("endDate")
	if !validDateRange(from, to) {
		httperr.BadRequest(c, "invalid_date_range", "Rango de fechas inválido")
		return
	}

	daily, err := h.stats.DailyRevenue(c.Request.Context(), from, to)
	if err != nil {
		writeBookingError(c, h.log, err, "failed_to_load_revenue")
		return
	}

	c.JSON(http.StatusOK, daily)
}
