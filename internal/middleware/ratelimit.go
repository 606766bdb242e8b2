package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/ratelimit"
)

// RateLimit rejects clients over budget with 429. Limiter failures let the
// request through.
func RateLimit(l ratelimit.Limiter, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn().Err(err).Str("client_ip", c.ClientIP()).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			httperr.TooManyRequests(c, "rate_limited", "Demasiadas solicitudes, intente nuevamente en unos minutos")
			c.Abort()
			return
		}

		c.Next()
	}
}
