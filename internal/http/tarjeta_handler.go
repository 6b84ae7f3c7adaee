package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tarjeta-joven/internal/repository"
)

// TarjetaHandler expone consultas sobre tarjetas digitales.
type TarjetaHandler struct {
	logger   *zap.Logger
	tarjetas repository.TarjetaRepository
}

func NewTarjetaHandler(logger *zap.Logger, tarjetas repository.TarjetaRepository) *TarjetaHandler {
	return &TarjetaHandler{
		logger:   logger,
		tarjetas: tarjetas,
	}
}

// Lista maneja GET /tarjetas/lista (sólo administradores).
func (h *TarjetaHandler) Lista(c *gin.Context) {
	tarjetas, err := h.tarjetas.List(c.Request.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error("listar tarjetas fallido", zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
		return
	}
	c.JSON(http.StatusOK, tarjetas)
}

// MiTarjeta maneja GET /tarjetas/mia: devuelve la tarjeta del usuario
// autenticado.
func (h *TarjetaHandler) MiTarjeta(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		responderMensaje(c, http.StatusUnauthorized, "token faltante")
		return
	}

	tarjeta, err := h.tarjetas.GetByUsuario(c.Request.Context(), claims.IDUsuario)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			responderMensaje(c, http.StatusNotFound, "tarjeta no encontrada")
			return
		}
		if h.logger != nil {
			h.logger.Error("consultar tarjeta fallido", zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
		return
	}
	c.JSON(http.StatusOK, tarjeta)
}
