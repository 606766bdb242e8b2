package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

// writeBookingError maps use case errors onto the response. Domain errors
// become 400 with their code; anything else is logged and hidden behind 500.
func writeBookingError(c *gin.Context, log zerolog.Logger, err error, internalCode string) {
	if !httperr.FromError(c, err, internalCode) {
		_ = c.Error(err)
		log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString(middleware.ContextRequestID)).
			Msg("request failed")
	}
}
