package domain

import (
	"strings"
	"time"
)

// Tipos de usuario reconocidos por la plataforma.
const (
	TipoJoven   = "JOVEN"
	TipoNegocio = "NEGOCIO"
	TipoAdmin   = "ADMIN"
)

// NormalizarTipoUsuario devuelve el tipo en mayúsculas, con el rol base
// como valor por omisión cuando viene vacío.
func NormalizarTipoUsuario(tipo string) string {
	tipo = strings.ToUpper(strings.TrimSpace(tipo))
	if tipo == "" {
		return TipoJoven
	}
	return tipo
}

// TipoUsuarioValido indica si el tipo pertenece al conjunto cerrado de roles.
func TipoUsuarioValido(tipo string) bool {
	switch tipo {
	case TipoJoven, TipoNegocio, TipoAdmin:
		return true
	}
	return false
}

// Usuario es el registro de identidad tal como se persiste. Los campos PII
// (correo, nombre, apellidos, telefono, curp, direccion) se guardan cifrados
// bajo el propósito de datos de usuario y nunca se serializan hacia clientes.
type Usuario struct {
	ID             int64     `json:"id"`
	Correo         string    `json:"-"`
	HashContrasena string    `json:"-"`
	Nombre         string    `json:"-"`
	Apellidos      string    `json:"-"`
	Telefono       string    `json:"-"`
	Curp           string    `json:"-"`
	Direccion      string    `json:"-"`
	TipoUsuario    string    `json:"tipo_usuario"`
	EstaActivo     bool      `json:"esta_activo"`
	CreadoEn       time.Time `json:"creado_en"`
}

// UsuarioVista es la vista en claro que se devuelve a los clientes tras
// registro o login. Contiene los valores descifrados, nunca ciphertext.
type UsuarioVista struct {
	ID          int64     `json:"id"`
	Correo      string    `json:"correo"`
	Nombre      string    `json:"nombre"`
	Apellidos   string    `json:"apellidos"`
	Telefono    string    `json:"telefono"`
	Curp        string    `json:"curp"`
	Direccion   string    `json:"direccion"`
	TipoUsuario string    `json:"tipo_usuario"`
	EstaActivo  bool      `json:"esta_activo"`
	CreadoEn    time.Time `json:"creado_en"`
}
