package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tarjeta-joven/internal/service"
)

// UsuarioHandler expone las operaciones administrativas sobre usuarios.
type UsuarioHandler struct {
	logger      *zap.Logger
	usuarioServ *service.UsuarioService
}

func NewUsuarioHandler(logger *zap.Logger, usuarioServ *service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{
		logger:      logger,
		usuarioServ: usuarioServ,
	}
}

// Lista maneja GET /usuarios/lista (sólo administradores).
func (h *UsuarioHandler) Lista(c *gin.Context) {
	usuarios, err := h.usuarioServ.Listar(c.Request.Context())
	if err != nil {
		responderErrorServicio(h.logger, c, err, "listar usuarios fallido")
		return
	}
	c.JSON(http.StatusOK, usuarios)
}

// Eliminar maneja DELETE /api/auth/usuario/:id (sólo administradores).
func (h *UsuarioHandler) Eliminar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responderMensaje(c, http.StatusBadRequest, "identificador de usuario inválido")
		return
	}

	if err := h.usuarioServ.Eliminar(c.Request.Context(), id); err != nil {
		responderErrorServicio(h.logger, c, err, "eliminar usuario fallido")
		return
	}
	responderMensaje(c, http.StatusOK, "Usuario eliminado correctamente")
}
