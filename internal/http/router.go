package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tarjeta-joven/internal/domain"
	"tarjeta-joven/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	loginLimiter service.LoginRateLimiter,
	authH *AuthHandler,
	usuarioH *UsuarioHandler,
	tarjetaH *TarjetaHandler,
	negocioH *NegocioHandler,
	descuentoH *DescuentoHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	autenticado := JWTAuthMiddleware(jwtSvc)
	soloAdmin := RequireTipo(domain.TipoAdmin)

	auth := r.Group("/api/auth")
	auth.POST("/registrar", authH.Registrar)
	// El limitador corta intentos estrangulados antes de cualquier trabajo
	// de autenticación.
	auth.POST("/login-token", RateLimitLoginMiddleware(loginLimiter), authH.LoginToken)
	auth.DELETE("/usuario/:id", autenticado, soloAdmin, usuarioH.Eliminar)

	r.GET("/usuarios/lista", autenticado, soloAdmin, usuarioH.Lista)

	r.GET("/tarjetas/lista", autenticado, soloAdmin, tarjetaH.Lista)
	r.GET("/tarjetas/mia", autenticado, tarjetaH.MiTarjeta)

	negocios := r.Group("/negocios")
	negocios.GET("", negocioH.Lista)
	negocios.GET("/:id", negocioH.GetByID)
	negocios.GET("/:id/productos", negocioH.ListaProductos)
	negocios.POST("", autenticado, RequireTipo(domain.TipoNegocio, domain.TipoAdmin), negocioH.Crear)
	negocios.POST("/:id/productos", autenticado, RequireTipo(domain.TipoNegocio, domain.TipoAdmin), negocioH.CrearProducto)

	descuentos := r.Group("/descuentos")
	descuentos.GET("", descuentoH.Lista)
	descuentos.POST("", autenticado, RequireTipo(domain.TipoNegocio), descuentoH.Crear)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
