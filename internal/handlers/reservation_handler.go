package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/export"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	log zerolog.Logger

	listByDate   *booking.ListReservationsByDate
	listByPeriod *booking.ListReservationsForPeriod
	confirm      *booking.ConfirmReservation
	cancel       *booking.CancelReservation
	recent       *booking.ListRecentReservations
}

func NewReservationHandler(
	log zerolog.Logger,
	listByDate *booking.ListReservationsByDate,
	listByPeriod *booking.ListReservationsForPeriod,
	confirm *booking.ConfirmReservation,
	cancel *booking.CancelReservation,
	recent *booking.ListRecentReservations,
) *ReservationHandler {
	return &ReservationHandler{
		log:          log,
		listByDate:   listByDate,
		listByPeriod: listByPeriod,
		confirm:      confirm,
		cancel:       cancel,
		recent:       recent,
	}
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *ReservationHandler) ListByDate(c *gin.Context) {
	date := c.Query("fecha")
	if date == "" {
		httperr.BadRequest(c, domain.CodeInvalidDateOrTime, "La fecha es obligatoria")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), date)
	if err != nil {
		writeBookingError(c, h.log, err, "failed_to_list_reservations")
		return
	}

	httpresp.OK(c, out)
}

// Recent lists the newest bookings for the dashboard, ?limit= optional.
func (h *ReservationHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httperr.BadRequest(c, "invalid_limit", "Límite inválido")
			return
		}
		limit = n
	}

	out, err := h.recent.Execute(c.Request.Context(), limit)
	if err != nil {
		writeBookingError(c, h.log, err, "failed_to_list_recent_reservations")
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// STATUS CHANGES
// ======================================================

func (h *ReservationHandler) Confirm(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Reserva inválida")
		return
	}

	r, err := h.confirm.Execute(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, h.log, err, "failed_to_confirm_reservation")
		return
	}

	httpresp.OK(c, r)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Reserva inválida")
		return
	}

	r, err := h.cancel.Execute(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, h.log, err, "failed_to_cancel_reservation")
		return
	}

	httpresp.OK(c, r)
}

// ======================================================
// EXPORT
// ======================================================

func (h *ReservationHandler) Export(c *gin.Context) {
	from := c.Query("desde")
	to := c.Query("hasta")

	rows, err := h.listByPeriod.Execute(c.Request.Context(), from, to)
	if err != nil {
		writeBookingError(c, h.log, err, "failed_to_export_reservations")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteReservations(&buf, from, to, rows); err != nil {
		writeBookingError(c, h.log, err, "failed_to_export_reservations")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(from, to)+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
