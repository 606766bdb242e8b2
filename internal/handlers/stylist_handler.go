package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/media"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type StylistHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	avatar media.Store
	log    zerolog.Logger
}

// NewStylistHandler accepts a nil store; avatar uploads are then disabled.
func NewStylistHandler(db *gorm.DB, audit *audit.Dispatcher, avatar media.Store, log zerolog.Logger) *StylistHandler {
	return &StylistHandler{db: db, audit: audit, avatar: avatar, log: log}
}

// --------- Requests ---------

type CreateStylistRequest struct {
	Name            string `json:"nombre_peluquero" binding:"required"`
	Specialty       string `json:"especialidad_peluquero"`
	Description     string `json:"descripcion_peluquero"`
	YearsExperience int    `json:"anios_experiencia" binding:"min=0"`
	Phone           string `json:"telefono_peluquero"`
	Email           string `json:"email_peluquero"`
}

type UpdateStylistRequest struct {
	Name            *string `json:"nombre_peluquero,omitempty"`
	Specialty       *string `json:"especialidad_peluquero,omitempty"`
	Description     *string `json:"descripcion_peluquero,omitempty"`
	YearsExperience *int    `json:"anios_experiencia,omitempty"`
	Phone           *string `json:"telefono_peluquero,omitempty"`
	Email           *string `json:"email_peluquero,omitempty"`
	Active          *bool   `json:"activo_peluquero,omitempty"`
}

type SetStylistServicesRequest struct {
	ServiceIDs []uint `json:"servicios"`
}

// --------- Handlers ---------

func (h *StylistHandler) List(c *gin.Context) {
	stylists := []models.Stylist{}
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&stylists).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_list_stylists")
		return
	}
	c.JSON(http.StatusOK, stylists)
}

func (h *StylistHandler) Create(c *gin.Context) {
	var req CreateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos")
		return
	}

	name := strings.TrimSpace(req.Name)
	stylist := models.Stylist{
		Name:            name,
		Specialty:       req.Specialty,
		Description:     req.Description,
		YearsExperience: req.YearsExperience,
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		AvatarInitials:  catalog.Initials(name),
		Active:          true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&stylist).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_create_stylist")
		return
	}

	h.dispatch(stylist.ID, "created")
	c.JSON(http.StatusCreated, stylist)
}

func (h *StylistHandler) Update(c *gin.Context) {
	stylist, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos")
		return
	}

	if req.Name != nil {
		stylist.Name = strings.TrimSpace(*req.Name)
		stylist.AvatarInitials = catalog.Initials(stylist.Name)
	}
	if req.Specialty != nil {
		stylist.Specialty = *req.Specialty
	}
	if req.Description != nil {
		stylist.Description = *req.Description
	}
	if req.YearsExperience != nil {
		stylist.YearsExperience = *req.YearsExperience
	}
	if req.Phone != nil {
		stylist.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		stylist.Email = strings.TrimSpace(*req.Email)
	}
	if req.Active != nil {
		stylist.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(stylist).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_update_stylist")
		return
	}

	h.dispatch(stylist.ID, "updated")
	c.JSON(http.StatusOK, stylist)
}

// Delete deactivates the stylist. Existing reservations stay untouched and
// new bookings are rejected with stylist_not_found.
func (h *StylistHandler) Delete(c *gin.Context) {
	stylist, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(stylist).
		Update("active", false).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_delete_stylist")
		return
	}

	h.dispatch(stylist.ID, "deactivated")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetServices replaces the set of services the stylist performs.
func (h *StylistHandler) SetServices(c *gin.Context) {
	stylist, ok := h.load(c)
	if !ok {
		return
	}

	var req SetStylistServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos")
		return
	}

	services := []models.Service{}
	if len(req.ServiceIDs) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Where("id IN ?", req.ServiceIDs).
			Find(&services).Error; err != nil {
			writeBookingError(c, h.log, err, "failed_to_set_services")
			return
		}
		if len(services) != len(uniqueIDs(req.ServiceIDs)) {
			httperr.BadRequest(c, "service_not_found", "Servicio no encontrado")
			return
		}
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(stylist).
		Association("Services").
		Replace(services); err != nil {
		writeBookingError(c, h.log, err, "failed_to_set_services")
		return
	}

	h.dispatch(stylist.ID, "services")
	c.JSON(http.StatusOK, services)
}

// UploadAvatar stores a square webp thumbnail and points avatar_url at it.
func (h *StylistHandler) UploadAvatar(c *gin.Context) {
	if h.avatar == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "avatar_storage_disabled", "Almacenamiento de imágenes no configurado")
		return
	}

	stylist, ok := h.load(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Archivo requerido")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Archivo inválido")
		return
	}
	defer f.Close()

	data, err := media.EncodeAvatar(f)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			httperr.BadRequest(c, "unsupported_image", "Formato de imagen no soportado")
			return
		}
		writeBookingError(c, h.log, err, "failed_to_process_image")
		return
	}

	key := fmt.Sprintf("stylists/%d-%s.webp", stylist.ID, uuid.NewString())
	url, err := h.avatar.Put(c.Request.Context(), key, data, media.AvatarContentType)
	if err != nil {
		writeBookingError(c, h.log, err, "failed_to_store_image")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(stylist).
		Update("avatar_url", url).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_update_stylist")
		return
	}

	h.dispatch(stylist.ID, "avatar")
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

func (h *StylistHandler) load(c *gin.Context) (*models.Stylist, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Peluquero inválido")
		return nil, false
	}

	var stylist models.Stylist
	if err := h.db.WithContext(c.Request.Context()).First(&stylist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "stylist_not_found", "Peluquero no encontrado")
			return nil, false
		}
		writeBookingError(c, h.log, err, "failed_to_get_stylist")
		return nil, false
	}
	return &stylist, true
}

func (h *StylistHandler) dispatch(id uint, change string) {
	h.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   audit.ActionStylistChanged,
		Entity:   "stylist",
		EntityID: audit.EntityRef(id),
		Metadata: map[string]string{"change": change},
	})
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	out := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
