package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"tarjeta-joven/internal/domain"
)

func TestRutasAdminRequierenRol(t *testing.T) {
	env := nuevoEntornoAPI(t, nil)

	rutas := []struct {
		metodo string
		ruta   string
	}{
		{http.MethodGet, "/usuarios/lista"},
		{http.MethodGet, "/tarjetas/lista"},
		{http.MethodDelete, "/api/auth/usuario/1"},
	}

	tokenJoven := env.tokenPara(t, 1, domain.TipoJoven)
	for _, r := range rutas {
		t.Run(r.ruta, func(t *testing.T) {
			w := hacerJSON(t, env.router, r.metodo, r.ruta, nil, "")
			if w.Code != http.StatusUnauthorized {
				t.Errorf("sin token: status = %d, esperaba 401", w.Code)
			}

			w = hacerJSON(t, env.router, r.metodo, r.ruta, nil, "token-basura")
			if w.Code != http.StatusUnauthorized {
				t.Errorf("token basura: status = %d, esperaba 401", w.Code)
			}

			w = hacerJSON(t, env.router, r.metodo, r.ruta, nil, tokenJoven)
			if w.Code != http.StatusForbidden {
				t.Errorf("token JOVEN: status = %d, esperaba 403", w.Code)
			}
		})
	}
}

func TestListaUsuariosComoAdmin(t *testing.T) {
	env := nuevoEntornoAPI(t, nil)
	env.registrar(t)

	token := env.tokenPara(t, 99, domain.TipoAdmin)
	w := hacerJSON(t, env.router, http.MethodGet, "/usuarios/lista", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, cuerpo %s", w.Code, w.Body.String())
	}
	if cuerpo := w.Body.String(); cuerpo == "[]" || cuerpo == "null" {
		t.Fatalf("listado vacío: %s", cuerpo)
	}
}

func TestEliminarUsuarioComoAdmin(t *testing.T) {
	env := nuevoEntornoAPI(t, nil)
	cuerpo := env.registrar(t)
	usuario := cuerpo["usuario"].(map[string]any)
	id := int64(usuario["id"].(float64))

	token := env.tokenPara(t, 99, domain.TipoAdmin)
	w := hacerJSON(t, env.router, http.MethodDelete, fmt.Sprintf("/api/auth/usuario/%d", id), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, cuerpo %s", w.Code, w.Body.String())
	}
	if mensajeDe(t, w) != "Usuario eliminado correctamente" {
		t.Errorf("mensaje = %q", mensajeDe(t, w))
	}

	// Repetir el borrado debe reportar que ya no existe.
	w = hacerJSON(t, env.router, http.MethodDelete, fmt.Sprintf("/api/auth/usuario/%d", id), nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("segundo borrado: status = %d, esperaba 404", w.Code)
	}
}

func TestEliminarUsuarioIDInvalido(t *testing.T) {
	env := nuevoEntornoAPI(t, nil)

	token := env.tokenPara(t, 99, domain.TipoAdmin)
	w := hacerJSON(t, env.router, http.MethodDelete, "/api/auth/usuario/abc", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperaba 400", w.Code)
	}
}

func TestCrearNegocioRequiereRolNegocio(t *testing.T) {
	env := nuevoEntornoAPI(t, nil)

	cuerpo := map[string]any{"nombre": "Café Centro", "direccion": "Centro 1", "id_categoria": 2}

	w := hacerJSON(t, env.router, http.MethodPost, "/negocios", cuerpo, env.tokenPara(t, 1, domain.TipoJoven))
	if w.Code != http.StatusForbidden {
		t.Fatalf("token JOVEN: status = %d, esperaba 403", w.Code)
	}

	w = hacerJSON(t, env.router, http.MethodPost, "/negocios", cuerpo, env.tokenPara(t, 1, domain.TipoNegocio))
	if w.Code != http.StatusCreated {
		t.Fatalf("token NEGOCIO: status = %d, cuerpo %s", w.Code, w.Body.String())
	}
	creado := decodificar(t, w)
	if int64(creado["id_propietario_usuario"].(float64)) != 1 {
		t.Errorf("id_propietario_usuario = %v, esperaba el usuario autenticado", creado["id_propietario_usuario"])
	}

	// Las lecturas son públicas.
	w = hacerJSON(t, env.router, http.MethodGet, "/negocios", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("listar negocios: status = %d", w.Code)
	}
}

func TestCrearProductoSoloPropietario(t *testing.T) {
	env := nuevoEntornoAPI(t, nil)

	negocio, err := env.negocios.Crear(context.Background(), domain.Negocio{
		Nombre:               "Café Centro",
		IDPropietarioUsuario: 7,
	})
	if err != nil {
		t.Fatalf("sembrar negocio: %v", err)
	}

	ruta := fmt.Sprintf("/negocios/%d/productos", negocio.ID)
	cuerpo := map[string]any{"nombre": "Latte", "precio_centavos": 4500, "stock_cantidad": 10}

	w := hacerJSON(t, env.router, http.MethodPost, ruta, cuerpo, env.tokenPara(t, 8, domain.TipoNegocio))
	if w.Code != http.StatusForbidden {
		t.Fatalf("otro dueño: status = %d, esperaba 403", w.Code)
	}

	w = hacerJSON(t, env.router, http.MethodPost, ruta, cuerpo, env.tokenPara(t, 7, domain.TipoNegocio))
	if w.Code != http.StatusCreated {
		t.Fatalf("dueño: status = %d, cuerpo %s", w.Code, w.Body.String())
	}

	// Un administrador puede operar sobre cualquier negocio.
	w = hacerJSON(t, env.router, http.MethodPost, ruta, cuerpo, env.tokenPara(t, 99, domain.TipoAdmin))
	if w.Code != http.StatusCreated {
		t.Fatalf("admin: status = %d, cuerpo %s", w.Code, w.Body.String())
	}

	w = hacerJSON(t, env.router, http.MethodGet, ruta, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("listar productos: status = %d", w.Code)
	}
}

func TestCrearDescuentoRequiereNegocioPropio(t *testing.T) {
	env := nuevoEntornoAPI(t, nil)

	cuerpo := map[string]any{"titulo": "2x1 en café", "tipo_descuento": "PORCENTAJE", "valor_descuento": 50}

	// Sin negocio registrado el alta se rechaza.
	w := hacerJSON(t, env.router, http.MethodPost, "/descuentos", cuerpo, env.tokenPara(t, 7, domain.TipoNegocio))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("sin negocio: status = %d, esperaba 400", w.Code)
	}
	if mensajeDe(t, w) != "el usuario no tiene un negocio registrado" {
		t.Errorf("mensaje = %q", mensajeDe(t, w))
	}

	negocio, err := env.negocios.Crear(context.Background(), domain.Negocio{
		Nombre:               "Café Centro",
		IDPropietarioUsuario: 7,
	})
	if err != nil {
		t.Fatalf("sembrar negocio: %v", err)
	}

	w = hacerJSON(t, env.router, http.MethodPost, "/descuentos", cuerpo, env.tokenPara(t, 7, domain.TipoNegocio))
	if w.Code != http.StatusCreated {
		t.Fatalf("con negocio: status = %d, cuerpo %s", w.Code, w.Body.String())
	}
	creado := decodificar(t, w)
	if int64(creado["id_negocio"].(float64)) != negocio.ID {
		t.Errorf("id_negocio = %v, esperaba %d", creado["id_negocio"], negocio.ID)
	}

	w = hacerJSON(t, env.router, http.MethodGet, "/descuentos", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("listar descuentos: status = %d", w.Code)
	}
}

func TestMiTarjetaSinTarjeta(t *testing.T) {
	env := nuevoEntornoAPI(t, nil)

	w := hacerJSON(t, env.router, http.MethodGet, "/tarjetas/mia", nil, env.tokenPara(t, 55, domain.TipoJoven))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperaba 404", w.Code)
	}
}
