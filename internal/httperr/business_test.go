package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessErrorUnwrapsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("commit: %w", ErrConflict("slot_unavailable", "El horario ya no está disponible"))

	assert.True(t, IsBusiness(err, "slot_unavailable"))
	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindValidation))

	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "El horario ya no está disponible", be.Message)
}

func TestIsExclusionConflict(t *testing.T) {
	assert.True(t, IsExclusionConflict(&pgconn.PgError{Code: "23P01"}))
	assert.True(t, IsExclusionConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "40001"})))
	assert.False(t, IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsExclusionConflict(errors.New("boom")))
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", ErrValidation("invalid_email", "Formato de email inválido"), http.StatusBadRequest, "invalid_email", "Formato de email inválido"},
		{"not found is a bad request", ErrNotFound("service_not_found", "Servicio no encontrado"), http.StatusBadRequest, "service_not_found", "Servicio no encontrado"},
		{"conflict", ErrConflict("slot_unavailable", ""), http.StatusBadRequest, "slot_unavailable", "slot_unavailable"},
		{"infrastructure", errors.New("connection refused"), http.StatusInternalServerError, "create_failed", internalMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tc.err, "create_failed")

			assert.Equal(t, tc.wantStatus, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.wantCode, body.Code)
			assert.Equal(t, tc.wantMsg, body.Message)
		})
	}
}
