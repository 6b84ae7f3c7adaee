package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tarjeta-joven/internal/service"
)

const authClaimsKey = "auth_claims"

// JWTAuthMiddleware valida el token de sesión y guarda las claims en el
// contexto de la petición.
func JWTAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			responderMensaje(c, http.StatusInternalServerError, "jwt no configurado")
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			responderMensaje(c, http.StatusUnauthorized, "token faltante")
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := jwtSvc.ParseToken(token)
		if err != nil {
			responderMensaje(c, http.StatusUnauthorized, "token inválido")
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// GetAuthClaims obtiene las claims del token desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}

// RequireTipo deja pasar sólo a usuarios cuyo tipo_usuario esté entre los
// permitidos. Debe montarse después de JWTAuthMiddleware.
func RequireTipo(tipos ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			responderMensaje(c, http.StatusUnauthorized, "token faltante")
			c.Abort()
			return
		}
		for _, tipo := range tipos {
			if claims.TipoUsuario == tipo {
				c.Next()
				return
			}
		}
		responderMensaje(c, http.StatusForbidden, "permisos insuficientes")
		c.Abort()
	}
}
