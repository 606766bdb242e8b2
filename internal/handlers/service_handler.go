package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher, log zerolog.Logger) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit, log: log}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name          string  `json:"nombre_servicio" binding:"required"`
	Description   string  `json:"descripcion_servicio"`
	Category      string  `json:"categoria_servicio"`
	CategoryOrder int     `json:"orden_categoria"`
	Price         float64 `json:"precio_servicio" binding:"min=0"`
	DurationMin   int     `json:"duracion_minutos" binding:"required,min=1,max=1440"`
}

// Price and duration edits never touch reservations already booked; those
// carry their own final price and end time.
type UpdateServiceRequest struct {
	Name          *string  `json:"nombre_servicio,omitempty"`
	Description   *string  `json:"descripcion_servicio,omitempty"`
	Category      *string  `json:"categoria_servicio,omitempty"`
	CategoryOrder *int     `json:"orden_categoria,omitempty"`
	Price         *float64 `json:"precio_servicio,omitempty"`
	DurationMin   *int     `json:"duracion_minutos,omitempty"`
	Active        *bool    `json:"activo_servicio,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("categoria")))
	activeStr := strings.TrimSpace(c.Query("activo"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	services := []models.Service{}
	if err := q.
		Order("category_order ASC").
		Order("id ASC").
		Find(&services).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_list_services")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos")
		return
	}

	service := models.Service{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Category:      req.Category,
		CategoryOrder: req.CategoryOrder,
		Price:         req.Price,
		DurationMin:   req.DurationMin,
		Active:        true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_create_service")
		return
	}

	h.dispatch(service.ID, "created")
	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos")
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.CategoryOrder != nil {
		service.CategoryOrder = *req.CategoryOrder
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo")
			return
		}
		service.Price = *req.Price
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 || *req.DurationMin > domain.MaxDurationMin {
			httperr.BadRequest(c, domain.CodeInvalidDuration, "La duración debe estar entre 1 y 1440 minutos")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(service).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_update_service")
		return
	}

	h.dispatch(service.ID, "updated")
	c.JSON(http.StatusOK, service)
}

// Delete is a soft delete; reservations keep pointing at the row.
func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(service).
		Update("active", false).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_delete_service")
		return
	}

	h.dispatch(service.ID, "deactivated")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ServiceHandler) load(c *gin.Context) (*models.Service, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Servicio inválido")
		return nil, false
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Servicio no encontrado")
			return nil, false
		}
		writeBookingError(c, h.log, err, "failed_to_get_service")
		return nil, false
	}
	return &service, true
}

func (h *ServiceHandler) dispatch(id uint, change string) {
	h.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   audit.ActionServiceChanged,
		Entity:   "service",
		EntityID: audit.EntityRef(id),
		Metadata: map[string]string{"change": change},
	})
}
