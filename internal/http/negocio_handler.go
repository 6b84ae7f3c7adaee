package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tarjeta-joven/internal/domain"
	"tarjeta-joven/internal/repository"
)

// NegocioHandler expone el CRUD de negocios afiliados y sus productos.
type NegocioHandler struct {
	logger    *zap.Logger
	negocios  repository.NegocioRepository
	productos repository.ProductoRepository
}

func NewNegocioHandler(logger *zap.Logger, negocios repository.NegocioRepository, productos repository.ProductoRepository) *NegocioHandler {
	return &NegocioHandler{
		logger:    logger,
		negocios:  negocios,
		productos: productos,
	}
}

// Crear maneja POST /negocios. El propietario es el usuario autenticado.
func (h *NegocioHandler) Crear(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		responderMensaje(c, http.StatusUnauthorized, "token faltante")
		return
	}

	var req struct {
		Nombre      string `json:"nombre" binding:"required"`
		Direccion   string `json:"direccion"`
		IDCategoria int64  `json:"id_categoria"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responderMensaje(c, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	negocio, err := h.negocios.Crear(c.Request.Context(), domain.Negocio{
		Nombre:               req.Nombre,
		Direccion:            req.Direccion,
		IDCategoria:          req.IDCategoria,
		IDPropietarioUsuario: claims.IDUsuario,
		CreadoEn:             time.Now().UTC(),
	})
	if err != nil {
		if h.logger != nil {
			h.logger.Error("crear negocio fallido", zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
		return
	}
	c.JSON(http.StatusCreated, negocio)
}

// Lista maneja GET /negocios.
func (h *NegocioHandler) Lista(c *gin.Context) {
	negocios, err := h.negocios.List(c.Request.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error("listar negocios fallido", zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
		return
	}
	c.JSON(http.StatusOK, negocios)
}

// GetByID maneja GET /negocios/:id.
func (h *NegocioHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responderMensaje(c, http.StatusBadRequest, "identificador de negocio inválido")
		return
	}

	negocio, err := h.negocios.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			responderMensaje(c, http.StatusNotFound, "negocio no encontrado")
			return
		}
		if h.logger != nil {
			h.logger.Error("consultar negocio fallido", zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
		return
	}
	c.JSON(http.StatusOK, negocio)
}

// CrearProducto maneja POST /negocios/:id/productos. Sólo el propietario del
// negocio (o un administrador) puede dar de alta productos.
func (h *NegocioHandler) CrearProducto(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		responderMensaje(c, http.StatusUnauthorized, "token faltante")
		return
	}

	idNegocio, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responderMensaje(c, http.StatusBadRequest, "identificador de negocio inválido")
		return
	}

	negocio, err := h.negocios.GetByID(c.Request.Context(), idNegocio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			responderMensaje(c, http.StatusNotFound, "negocio no encontrado")
			return
		}
		if h.logger != nil {
			h.logger.Error("consultar negocio fallido", zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
		return
	}
	if negocio.IDPropietarioUsuario != claims.IDUsuario && claims.TipoUsuario != domain.TipoAdmin {
		responderMensaje(c, http.StatusForbidden, "permisos insuficientes")
		return
	}

	var req struct {
		Nombre         string `json:"nombre" binding:"required"`
		PrecioCentavos int64  `json:"precio_centavos"`
		StockCantidad  int64  `json:"stock_cantidad"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responderMensaje(c, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	producto, err := h.productos.Crear(c.Request.Context(), domain.Producto{
		IDNegocio:      idNegocio,
		Nombre:         req.Nombre,
		PrecioCentavos: req.PrecioCentavos,
		StockCantidad:  req.StockCantidad,
		EstaActivo:     true,
		CreadoEn:       time.Now().UTC(),
	})
	if err != nil {
		if h.logger != nil {
			h.logger.Error("crear producto fallido", zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
		return
	}
	c.JSON(http.StatusCreated, producto)
}

// ListaProductos maneja GET /negocios/:id/productos.
func (h *NegocioHandler) ListaProductos(c *gin.Context) {
	idNegocio, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responderMensaje(c, http.StatusBadRequest, "identificador de negocio inválido")
		return
	}

	productos, err := h.productos.ListByNegocio(c.Request.Context(), idNegocio)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("listar productos fallido", zap.Error(err))
		}
		responderMensaje(c, http.StatusInternalServerError, "error interno del servidor")
		return
	}
	c.JSON(http.StatusOK, productos)
}
