package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tarjeta-joven/internal/service"
)

// MensajeLoginLimitado es la respuesta fija para intentos de login
// estrangulados.
const MensajeLoginLimitado = "Demasiados intentos de inicio de sesión. Intenta de nuevo en un minuto."

// RateLimitLoginMiddleware corta la petición por dirección de cliente antes
// de que el flujo de login gaste trabajo de hash o descifrado.
func RateLimitLoginMiddleware(limiter service.LoginRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		if !limiter.Allow(c.ClientIP()) {
			responderMensaje(c, http.StatusTooManyRequests, MensajeLoginLimitado)
			c.Abort()
			return
		}
		c.Next()
	}
}
