package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	config *config.Config
	audit  *audit.Dispatcher
}

func NewAuthHandler(cfg *config.Config, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{config: cfg, audit: audit}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Login checks the single back office account configured through
// ADMIN_EMAIL and ADMIN_PASSWORD_HASH.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos")
		return
	}

	if h.config.AdminEmail == "" || h.config.AdminPasswordHash == "" {
		httperr.Unauthorized(c, "admin_not_configured", "Acceso administrativo no configurado")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != strings.ToLower(strings.TrimSpace(h.config.AdminEmail)) {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.config.AdminPasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas")
		return
	}

	token, expiresAt, err := h.generateToken(email)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Error interno del servidor")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:  email,
		Action: audit.ActionAdminLogin,
		Entity: "admin",
	})

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt.Unix(),
		"email":      email,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tokenTTL)

	claims := jwt.MapClaims{
		"sub":  email,
		"role": middleware.RoleAdmin,
		"exp":  expiresAt.Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.config.JWTSecret))
	return signed, expiresAt, err
}
