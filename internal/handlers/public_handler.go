package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db  *gorm.DB
	log zerolog.Logger
	loc *time.Location

	availability *booking.GetAvailability
	commit       *booking.CommitReservation
}

func NewPublicHandler(
	db *gorm.DB,
	log zerolog.Logger,
	loc *time.Location,
	availability *booking.GetAvailability,
	commit *booking.CommitReservation,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		log:          log,
		loc:          loc,
		availability: availability,
		commit:       commit,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateReservationRequest struct {
	ClientName  string `json:"nombre_cliente"`
	ClientPhone string `json:"telefono_cliente"`
	ClientEmail string `json:"email_cliente"`
	ServiceID   uint   `json:"id_servicio"`
	StylistID   uint   `json:"id_peluquero"`
	Date        string `json:"fecha_turno"`       // YYYY-MM-DD
	StartTime   string `json:"hora_inicio_turno"` // HH:MM
	Notes       string `json:"notas_cliente"`
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	services := []models.Service{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Order("category_order ASC").
		Order("category ASC").
		Order("name ASC").
		Find(&services).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_list_services")
		return
	}

	httpresp.OK(c, services)
}

func (h *PublicHandler) ListStylists(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Model(&models.Stylist{}).
		Where("stylists.active = ?", true)

	if c.Query("servicio_id") != "" {
		serviceID, ok := uintQuery(c, "servicio_id")
		if !ok {
			httperr.BadRequest(c, "invalid_service_id", "Servicio inválido")
			return
		}
		q = q.
			Joins("JOIN stylist_services ON stylist_services.stylist_id = stylists.id").
			Where("stylist_services.service_id = ?", serviceID)
	}

	stylists := []models.Stylist{}
	if err := q.Order("stylists.name ASC").Find(&stylists).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_list_stylists")
		return
	}

	httpresp.OK(c, stylists)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("fecha")

	stylistID, ok := uintQuery(c, "peluquero_id")
	if !ok || dateStr == "" {
		httperr.BadRequest(c, domain.CodeMissingReservationData, "Peluquero y fecha son obligatorios")
		return
	}

	duration, ok := uintQuery(c, "duracion_minutos")
	if !ok || duration > domain.MaxDurationMin {
		httperr.BadRequest(c, domain.CodeInvalidDuration, "La duración debe estar entre 1 y 1440 minutos")
		return
	}

	date, err := parseDateIn(h.loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, domain.CodeInvalidDateOrTime, "Fecha inválida")
		return
	}

	metrics.IncAvailability()

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		StylistID:   stylistID,
		Date:        date,
		DurationMin: int(duration),
	})
	if err != nil {
		writeBookingError(c, h.log, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, slots)
}

////////////////////////////////////////////////////////
// CREATE RESERVATION
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos")
		return
	}

	r, err := h.commit.Execute(c.Request.Context(), booking.Draft{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		StylistID:   req.StylistID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Notes:       req.Notes,
	})
	if err != nil {
		writeBookingError(c, h.log, err, "reservation_failed")
		return
	}

	httpresp.Created(c, r.ID, "Reserva creada exitosamente")
}
