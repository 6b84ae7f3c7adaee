package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tarjeta-joven/internal/domain"
	"tarjeta-joven/internal/repository"
	"tarjeta-joven/internal/service"
)

// AuthHandler mantiene dependencias para los endpoints de autenticación.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
	jwtServ  *service.JWTService
	negocios repository.NegocioRepository
}

func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, jwtServ *service.JWTService, negocios repository.NegocioRepository) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
		jwtServ:  jwtServ,
		negocios: negocios,
	}
}

// Registrar maneja POST /api/auth/registrar. La validación de campos
// obligatorios vive en el servicio para que los mensajes al cliente salgan
// de un solo lugar.
func (h *AuthHandler) Registrar(c *gin.Context) {
	var req struct {
		Correo      string `json:"correo"`
		Contrasena  string `json:"contrasena"`
		Nombre      string `json:"nombre"`
		Apellidos   string `json:"apellidos"`
		Telefono    string `json:"telefono"`
		Curp        string `json:"curp"`
		Direccion   string `json:"direccion"`
		TipoUsuario string `json:"tipo_usuario"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responderMensaje(c, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	vista, tarjeta, err := h.authServ.Registrar(c.Request.Context(), service.RegistroInput{
		Correo:      req.Correo,
		Contrasena:  req.Contrasena,
		Nombre:      req.Nombre,
		Apellidos:   req.Apellidos,
		Telefono:    req.Telefono,
		Curp:        req.Curp,
		Direccion:   req.Direccion,
		TipoUsuario: req.TipoUsuario,
	})
	if err != nil {
		responderErrorServicio(h.logger, c, err, "registro fallido")
		return
	}

	c.JSON(http.StatusOK, gin.H{"usuario": vista, "tarjeta": tarjeta})
}

// LoginToken maneja POST /api/auth/login-token. El rate limiter por
// dirección de cliente se monta como middleware delante de esta ruta.
func (h *AuthHandler) LoginToken(c *gin.Context) {
	var req struct {
		Correo     string `json:"Correo"`
		Contrasena string `json:"Contrasena"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responderMensaje(c, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	vista, err := h.authServ.Login(c.Request.Context(), req.Correo, req.Contrasena)
	if err != nil {
		responderErrorServicio(h.logger, c, err, "login fallido")
		return
	}

	token, err := h.jwtServ.Emitir(vista)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("emisión de token fallida", zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
		return
	}

	resp := gin.H{"token": token, "usuario": vista}
	if vista.TipoUsuario == domain.TipoNegocio && h.negocios != nil {
		negocio, err := h.negocios.GetByPropietario(c.Request.Context(), vista.ID)
		switch {
		case err == nil:
			resp["id_negocio"] = negocio.ID
		case !errors.Is(err, pgx.ErrNoRows):
			if h.logger != nil {
				h.logger.Warn("no se pudo resolver el negocio del usuario", zap.Error(err), zap.Int64("id_usuario", vista.ID))
			}
		}
	}
	c.JSON(http.StatusOK, resp)
}
