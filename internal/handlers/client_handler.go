package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type ClientHandler struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewClientHandler(db *gorm.DB, log zerolog.Logger) *ClientHandler {
	return &ClientHandler{db: db, log: log}
}

type CreateClientRequest struct {
	Name  string `json:"nombre_cliente"`
	Phone string `json:"telefono_cliente"`
	Email string `json:"email_cliente"`
	VIP   bool   `json:"cliente_vip"`
}

type UpdateClientRequest struct {
	Name   *string `json:"nombre_cliente,omitempty"`
	Phone  *string `json:"telefono_cliente,omitempty"`
	Email  *string `json:"email_cliente,omitempty"`
	VIP    *bool   `json:"cliente_vip,omitempty"`
	Active *bool   `json:"activo_cliente,omitempty"`
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())
	if c.Query("todos") != "true" {
		q = q.Where("active = ?", true)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	clients := []models.Client{}
	if err := q.
		Order("total_visits DESC").
		Order("name ASC").
		Find(&clients).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_list_clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// ======================================================
// CREATE CLIENT
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos")
		return
	}

	client := models.Client{
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
		Email:  strings.TrimSpace(req.Email),
		VIP:    req.VIP,
		Active: true,
	}

	if client.Name == "" || client.Phone == "" {
		httperr.BadRequest(c, domain.CodeMissingClientData, "Nombre y teléfono son obligatorios")
		return
	}
	if client.Email != "" && !validators.IsEmailFormatValid(client.Email) {
		httperr.BadRequest(c, domain.CodeInvalidEmail, "Formato de email inválido")
		return
	}

	taken, err := h.phoneTaken(c, client.Phone, 0)
	if err != nil {
		writeBookingError(c, h.log, err, "failed_to_create_client")
		return
	}
	if taken {
		httperr.BadRequest(c, "client_phone_taken", "Ya existe un cliente con ese teléfono")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_create_client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// Update edits contact data and flags. Clients are never deleted.
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Cliente inválido")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos")
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "Cliente no encontrado")
			return
		}
		writeBookingError(c, h.log, err, "failed_to_get_client")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, domain.CodeMissingClientData, "Nombre y teléfono son obligatorios")
			return
		}
		client.Name = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			httperr.BadRequest(c, domain.CodeMissingClientData, "Nombre y teléfono son obligatorios")
			return
		}
		if phone != client.Phone {
			taken, err := h.phoneTaken(c, phone, client.ID)
			if err != nil {
				writeBookingError(c, h.log, err, "failed_to_update_client")
				return
			}
			if taken {
				httperr.BadRequest(c, "client_phone_taken", "Ya existe un cliente con ese teléfono")
				return
			}
		}
		client.Phone = phone
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" && !validators.IsEmailFormatValid(email) {
			httperr.BadRequest(c, domain.CodeInvalidEmail, "Formato de email inválido")
			return
		}
		client.Email = email
	}
	if req.VIP != nil {
		client.VIP = *req.VIP
	}
	if req.Active != nil {
		client.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&client).Error; err != nil {
		writeBookingError(c, h.log, err, "failed_to_update_client")
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) phoneTaken(c *gin.Context, phone string, exceptID uint) (bool, error) {
	var count int64
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.Client{}).
		Where("phone = ? AND id <> ?", phone, exceptID).
		Count(&count).Error
	return count > 0, err
}
