package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tarjeta-joven/internal/domain"
	"tarjeta-joven/internal/repository"
)

// DescuentoHandler expone el alta y consulta de descuentos.
type DescuentoHandler struct {
	logger     *zap.Logger
	descuentos repository.DescuentoRepository
	negocios   repository.NegocioRepository
}

func NewDescuentoHandler(logger *zap.Logger, descuentos repository.DescuentoRepository, negocios repository.NegocioRepository) *DescuentoHandler {
	return &DescuentoHandler{
		logger:     logger,
		descuentos: descuentos,
		negocios:   negocios,
	}
}

// Crear maneja POST /descuentos. El descuento queda ligado al negocio del
// usuario autenticado.
func (h *DescuentoHandler) Crear(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		responderMensaje(c, http.StatusUnauthorized, "token faltante")
		return
	}

	negocio, err := h.negocios.GetByPropietario(c.Request.Context(), claims.IDUsuario)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			responderMensaje(c, http.StatusBadRequest, "el usuario no tiene un negocio registrado")
			return
		}
		if h.logger != nil {
			h.logger.Error("consultar negocio fallido", zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
		return
	}

	var req struct {
		Titulo         string     `json:"titulo" binding:"required"`
		TipoDescuento  string     `json:"tipo_descuento" binding:"required"`
		ValorDescuento int64      `json:"valor_descuento"`
		IDProducto     *int64     `json:"id_producto"`
		IniciaEn       *time.Time `json:"inicia_en"`
		TerminaEn      *time.Time `json:"termina_en"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responderMensaje(c, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	ahora := time.Now().UTC()
	inicia := ahora
	if req.IniciaEn != nil {
		inicia = req.IniciaEn.UTC()
	}
	termina := inicia
	if req.TerminaEn != nil {
		termina = req.TerminaEn.UTC()
	}

	descuento, err := h.descuentos.Crear(c.Request.Context(), domain.Descuento{
		IDNegocio:      &negocio.ID,
		IDProducto:     req.IDProducto,
		Titulo:         req.Titulo,
		TipoDescuento:  req.TipoDescuento,
		ValorDescuento: req.ValorDescuento,
		IniciaEn:       inicia,
		TerminaEn:      termina,
		EstaActivo:     true,
		CreadoEn:       ahora,
	})
	if err != nil {
		if h.logger != nil {
			h.logger.Error("crear descuento fallido", zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
		return
	}
	c.JSON(http.StatusCreated, descuento)
}

// Lista maneja GET /descuentos.
func (h *DescuentoHandler) Lista(c *gin.Context) {
	descuentos, err := h.descuentos.List(c.Request.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error("listar descuentos fallido", zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
		return
	}
	c.JSON(http.StatusOK, descuentos)
}
