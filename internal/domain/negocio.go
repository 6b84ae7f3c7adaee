package domain

import "time"

// Negocio es un comercio afiliado que ofrece descuentos a los tarjetahabientes.
type Negocio struct {
	ID                   int64     `json:"id"`
	Nombre               string    `json:"nombre"`
	Direccion            string    `json:"direccion,omitempty"`
	IDCategoria          int64     `json:"id_categoria"`
	IDPropietarioUsuario int64     `json:"id_propietario_usuario"`
	CreadoEn             time.Time `json:"creado_en"`
}
