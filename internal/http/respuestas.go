package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tarjeta-joven/internal/service"
)

func responderMensaje(c *gin.Context, status int, mensaje string) {
	c.JSON(status, gin.H{"mensaje": mensaje})
}

// responderErrorServicio traduce la taxonomía de errores del servicio a
// códigos HTTP: validación y conflicto son corregibles por el cliente (400),
// identidad inexistente es 404 y todo lo demás es un 500 genérico que no
// filtra detalles internos.
func responderErrorServicio(logger *zap.Logger, c *gin.Context, err error, accion string) {
	switch {
	case errors.Is(err, service.ErrValidacion), errors.Is(err, service.ErrConflicto):
		responderMensaje(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoEncontrado):
		responderMensaje(c, http.StatusNotFound, err.Error())
	default:
		if logger != nil {
			logger.Error(accion, zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
	}
}
