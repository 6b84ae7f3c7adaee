package domain

import "time"

// Descuento es una promoción publicada por un negocio, opcionalmente ligada
// a un producto concreto.
type Descuento struct {
	ID             int64     `json:"id"`
	IDNegocio      *int64    `json:"id_negocio,omitempty"`
	IDProducto     *int64    `json:"id_producto,omitempty"`
	Titulo         string    `json:"titulo"`
	TipoDescuento  string    `json:"tipo_descuento"`
	ValorDescuento int64     `json:"valor_descuento"`
	IniciaEn       time.Time `json:"inicia_en"`
	TerminaEn      time.Time `json:"termina_en"`
	EstaActivo     bool      `json:"esta_activo"`
	CreadoEn       time.Time `json:"creado_en"`
}
