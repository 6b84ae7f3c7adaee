package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"tarjeta-joven/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUsuarioRepo struct {
	usuarios  []domain.Usuario
	siguiente int64
}

func (r *memUsuarioRepo) CrearTx(_ context.Context, _ pgx.Tx, usuario domain.Usuario) (domain.Usuario, error) {
	r.siguiente++
	usuario.ID = r.siguiente
	r.usuarios = append(r.usuarios, usuario)
	return usuario, nil
}

func (r *memUsuarioRepo) List(_ context.Context) ([]domain.Usuario, error) {
	return append([]domain.Usuario(nil), r.usuarios...), nil
}

func (r *memUsuarioRepo) GetByID(_ context.Context, id int64) (domain.Usuario, error) {
	for _, u := range r.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.Usuario{}, pgx.ErrNoRows
}

func (r *memUsuarioRepo) Eliminar(_ context.Context, id int64) error {
	for i, u := range r.usuarios {
		if u.ID == id {
			r.usuarios = append(r.usuarios[:i], r.usuarios[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type memTarjetaRepo struct {
	tarjetas  []domain.Tarjeta
	siguiente int64
}

func (r *memTarjetaRepo) CrearTx(_ context.Context, _ pgx.Tx, tarjeta domain.Tarjeta) (domain.Tarjeta, error) {
	r.siguiente++
	tarjeta.ID = r.siguiente
	r.tarjetas = append(r.tarjetas, tarjeta)
	return tarjeta, nil
}

func (r *memTarjetaRepo) ExisteNumero(_ context.Context, numero string) (bool, error) {
	for _, t := range r.tarjetas {
		if t.NumeroTarjeta == numero {
			return true, nil
		}
	}
	return false, nil
}

func (r *memTarjetaRepo) List(_ context.Context) ([]domain.Tarjeta, error) {
	return append([]domain.Tarjeta(nil), r.tarjetas...), nil
}

func (r *memTarjetaRepo) GetByUsuario(_ context.Context, idUsuario int64) (domain.Tarjeta, error) {
	for _, t := range r.tarjetas {
		if t.IDUsuario == idUsuario {
			return t, nil
		}
	}
	return domain.Tarjeta{}, pgx.ErrNoRows
}

type memNegocioRepo struct {
	negocios  []domain.Negocio
	siguiente int64
}

func (r *memNegocioRepo) Crear(_ context.Context, negocio domain.Negocio) (domain.Negocio, error) {
	r.siguiente++
	negocio.ID = r.siguiente
	r.negocios = append(r.negocios, negocio)
	return negocio, nil
}

func (r *memNegocioRepo) List(_ context.Context) ([]domain.Negocio, error) {
	return append([]domain.Negocio(nil), r.negocios...), nil
}

func (r *memNegocioRepo) GetByID(_ context.Context, id int64) (domain.Negocio, error) {
	for _, n := range r.negocios {
		if n.ID == id {
			return n, nil
		}
	}
	return domain.Negocio{}, pgx.ErrNoRows
}

func (r *memNegocioRepo) GetByPropietario(_ context.Context, idUsuario int64) (domain.Negocio, error) {
	for _, n := range r.negocios {
		if n.IDPropietarioUsuario == idUsuario {
			return n, nil
		}
	}
	return domain.Negocio{}, pgx.ErrNoRows
}

type memProductoRepo struct {
	productos []domain.Producto
	siguiente int64
}

func (r *memProductoRepo) Crear(_ context.Context, producto domain.Producto) (domain.Producto, error) {
	r.siguiente++
	producto.ID = r.siguiente
	r.productos = append(r.productos, producto)
	return producto, nil
}

func (r *memProductoRepo) ListByNegocio(_ context.Context, idNegocio int64) ([]domain.Producto, error) {
	var filtrados []domain.Producto
	for _, p := range r.productos {
		if p.IDNegocio == idNegocio {
			filtrados = append(filtrados, p)
		}
	}
	return filtrados, nil
}

type memDescuentoRepo struct {
	descuentos []domain.Descuento
	siguiente  int64
}

func (r *memDescuentoRepo) Crear(_ context.Context, descuento domain.Descuento) (domain.Descuento, error) {
	r.siguiente++
	descuento.ID = r.siguiente
	r.descuentos = append(r.descuentos, descuento)
	return descuento, nil
}

func (r *memDescuentoRepo) List(_ context.Context) ([]domain.Descuento, error) {
	return append([]domain.Descuento(nil), r.descuentos...), nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// hacerJSON ejecuta una petición contra el router con cuerpo JSON opcional y
// token Bearer opcional. La dirección remota es fija para que el limitador de
// login tenga una clave estable.
func hacerJSON(t *testing.T, router *gin.Engine, metodo, ruta string, cuerpo any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var lector *bytes.Reader
	if cuerpo != nil {
		datos, err := json.Marshal(cuerpo)
		if err != nil {
			t.Fatalf("serializar cuerpo: %v", err)
		}
		lector = bytes.NewReader(datos)
	} else {
		lector = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(metodo, ruta, lector)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:4321"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodificar(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var cuerpo map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &cuerpo); err != nil {
		t.Fatalf("decodificar respuesta %q: %v", w.Body.String(), err)
	}
	return cuerpo
}

func mensajeDe(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	mensaje, _ := decodificar(t, w)["mensaje"].(string)
	return mensaje
}
