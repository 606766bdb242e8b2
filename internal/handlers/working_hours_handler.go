package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewWorkingHoursHandler(db *gorm.DB, audit *audit.Dispatcher, log zerolog.Logger) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, audit: audit, log: log}
}

type WorkingDayConfig struct {
	Weekday   int    `json:"dia_semana"`
	Active    bool   `json:"activo_horario"`
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fin"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"dias" binding:"required"`
}

func (d WorkingDayConfig) validate() error {
	if d.Weekday < 1 || d.Weekday > 7 {
		return fmt.Errorf("dia_semana %d fuera de rango 1..7", d.Weekday)
	}
	if !validators.IsClockValid(d.StartTime) || !validators.IsClockValid(d.EndTime) {
		return fmt.Errorf("horario inválido para el día %d", d.Weekday)
	}
	if d.StartTime >= d.EndTime {
		return fmt.Errorf("la hora de inicio debe ser anterior a la de fin (día %d)", d.Weekday)
	}
	return nil
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	stylistID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Peluquero inválido")
		return
	}

	hours := []models.WorkingHours{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("stylist_id = ?", stylistID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_get_working_hours")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update replaces the whole week of the stylist in one transaction.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	stylistID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Peluquero inválido")
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos")
		return
	}

	seen := map[int]bool{}
	toCreate := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if err := d.validate(); err != nil {
			httperr.BadRequest(c, "invalid_working_hours", err.Error())
			return
		}
		if seen[d.Weekday] {
			httperr.BadRequest(c, "invalid_working_hours", fmt.Sprintf("día %d repetido", d.Weekday))
			return
		}
		seen[d.Weekday] = true

		toCreate = append(toCreate, models.WorkingHours{
			StylistID: stylistID,
			Weekday:   d.Weekday,
			Active:    d.Active,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var stylist models.Stylist
		if err := tx.First(&stylist, stylistID).Error; err != nil {
			return err
		}
		if err := tx.Where("stylist_id = ?", stylistID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.BadRequest(c, "stylist_not_found", "Peluquero no encontrado")
		return
	}
	if err != nil {
		writeBookingError(c, h.log, err, "failed_to_save_working_hours")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   audit.ActionWorkingHoursUpdated,
		Entity:   "stylist",
		EntityID: audit.EntityRef(stylistID),
		Metadata: req.Days,
	})

	c.JSON(http.StatusOK, toCreate)
}
