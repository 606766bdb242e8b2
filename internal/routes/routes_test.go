package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/ratelimit"
)

const (
	tuesday       = "2025-06-03"
	adminEmail    = "admin@salon.test"
	adminPassword = "s3cret-pass"
)

type testServer struct {
	router  *gin.Engine
	db      *gorm.DB
	stylist models.Stylist
	service models.Service
}

func newTestServer(t *testing.T, limiter ratelimit.Limiter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		AppEnv:            "development",
		Timezone:          "America/Argentina/Buenos_Aires",
		JWTSecret:         "test-secret",
		AdminEmail:        adminEmail,
		AdminPasswordHash: string(hash),
		CORSOrigins:       []string{"http://localhost:3000"},
	}

	log := zerolog.Nop()
	auditLogger := audit.New(gdb)
	dispatcher := audit.NewDispatcher(auditLogger, log)
	t.Cleanup(dispatcher.Close)

	r := gin.New()
	RegisterRoutes(r, gdb, cfg, Deps{
		Log:         log,
		Audit:       dispatcher,
		AuditLogger: auditLogger,
		Limiter:     limiter,
	})

	stylist := models.Stylist{Name: "Lucía Gómez", Active: true}
	require.NoError(t, gdb.Create(&stylist).Error)
	service := models.Service{Name: "Corte", Price: 8500, DurationMin: 60, Active: true}
	require.NoError(t, gdb.Create(&service).Error)
	require.NoError(t, gdb.Create(&models.WorkingHours{
		StylistID: stylist.ID, Weekday: 2, StartTime: "09:00", EndTime: "17:00", Active: true,
	}).Error)

	return &testServer{router: r, db: gdb, stylist: stylist, service: service}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) reservation(start string) map[string]any {
	return map[string]any{
		"nombre_cliente":    "Ana Pérez",
		"telefono_cliente":  "+5491122334455",
		"email_cliente":     "ana@example.com",
		"id_servicio":       s.service.ID,
		"id_peluquero":      s.stylist.ID,
		"fecha_turno":       tuesday,
		"hora_inicio_turno": start,
	}
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/admin/login", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

type slot struct {
	Time      string `json:"hora"`
	Available bool   `json:"disponible"`
}

func availability(t *testing.T, s *testServer) map[string]bool {
	t.Helper()

	w := s.do(t, http.MethodGet,
		"/api/horarios?peluquero_id="+itoa(s.stylist.ID)+"&fecha="+tuesday+"&duracion_minutos=60", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var slots []slot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))

	out := make(map[string]bool, len(slots))
	for _, sl := range slots {
		out[sl.Time] = sl.Available
	}
	return out
}

func itoa(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPublicBookingFlow(t *testing.T) {
	s := newTestServer(t, nil)

	before := availability(t, s)
	assert.Len(t, before, 16)
	assert.True(t, before["10:00"])
	assert.False(t, before["16:30"])

	w := s.do(t, http.MethodPost, "/api/reservas", s.reservation("10:00"), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Success bool `json:"success"`
		ID      uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.NotZero(t, created.ID)

	after := availability(t, s)
	assert.False(t, after["09:30"])
	assert.False(t, after["10:00"])
	assert.False(t, after["10:30"])
	assert.True(t, after["09:00"])
	assert.True(t, after["11:00"])

	w = s.do(t, http.MethodPost, "/api/reservas", s.reservation("10:30"), "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var failure struct {
		Success bool   `json:"success"`
		Code    string `json:"error_code"`
		Message string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
	assert.False(t, failure.Success)
	assert.Equal(t, "slot_unavailable", failure.Code)
	assert.NotEmpty(t, failure.Message)

	var count int64
	require.NoError(t, s.db.Model(&models.Reservation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAvailabilityValidation(t *testing.T) {
	s := newTestServer(t, nil)

	base := "/api/horarios?peluquero_id=" + itoa(s.stylist.ID)
	cases := []struct {
		path string
		code string
	}{
		{"/api/horarios?fecha=" + tuesday + "&duracion_minutos=60", "missing_reservation_data"},
		{base + "&fecha=" + tuesday, "invalid_duration"},
		{base + "&fecha=" + tuesday + "&duracion_minutos=1441", "invalid_duration"},
		{base + "&fecha=" + tuesday + "&duracion_minutos=9223372036854775807", "invalid_duration"},
		{base + "&fecha=03-06-2025&duracion_minutos=60", "invalid_date_or_time"},
	}

	for _, tc := range cases {
		w := s.do(t, http.MethodGet, tc.path, nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.Contains(t, w.Body.String(), tc.code, tc.path)
	}
}

func TestAvailabilityEmptyDayEncodesArray(t *testing.T) {
	s := newTestServer(t, nil)

	// 2025-06-08 is a Sunday with no working hours.
	w := s.do(t, http.MethodGet,
		"/api/horarios?peluquero_id="+itoa(s.stylist.ID)+"&fecha=2025-06-08&duracion_minutos=30", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestReservationRateLimit(t *testing.T) {
	s := newTestServer(t, ratelimit.NewMemoryLimiter(1, time.Minute))

	w := s.do(t, http.MethodPost, "/api/reservas", s.reservation("09:00"), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/reservas", s.reservation("14:00"), "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limited")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/api/admin/reservas?fecha="+tuesday, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/reservas?fecha="+tuesday, nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/admin/login", map[string]string{
		"email":    adminEmail,
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
}

func TestAdminReservationLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/api/reservas", s.reservation("11:00"), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = s.do(t, http.MethodGet, "/api/admin/reservas?fecha="+tuesday, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	w = s.do(t, http.MethodGet, "/api/admin/reservas/recientes?limit=5", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	w = s.do(t, http.MethodPatch, "/api/admin/reservas/"+itoa(created.ID)+"/confirmar", nil, token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPatch, "/api/admin/reservas/"+itoa(created.ID)+"/cancelar", nil, token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPatch, "/api/admin/reservas/"+itoa(created.ID)+"/confirmar", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_state")

	// A cancelled reservation frees its slot.
	assert.True(t, availability(t, s)["11:00"])
}

func TestAdminExport(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/api/reservas", s.reservation("09:00"), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/admin/reservas/export?desde="+tuesday+"&hasta="+tuesday, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, w.Body.Len())
}

func TestAdminWorkingHoursReplace(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.login(t)

	path := "/api/admin/peluqueros/" + itoa(s.stylist.ID) + "/horarios"
	w := s.do(t, http.MethodPut, path, map[string]any{
		"dias": []map[string]any{
			{"dia_semana": 2, "activo_horario": true, "hora_inicio": "13:00", "hora_fin": "15:00"},
		},
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	slots := availability(t, s)
	assert.Len(t, slots, 4)
	assert.True(t, slots["13:00"])
	assert.False(t, slots["14:30"])

	w = s.do(t, http.MethodPut, path, map[string]any{
		"dias": []map[string]any{
			{"dia_semana": 9, "activo_horario": true, "hora_inicio": "13:00", "hora_fin": "15:00"},
		},
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
