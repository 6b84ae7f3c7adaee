package domain

import "time"

// Producto pertenece a un negocio; los precios se guardan en centavos.
type Producto struct {
	ID             int64     `json:"id"`
	IDNegocio      int64     `json:"id_negocio"`
	Nombre         string    `json:"nombre"`
	PrecioCentavos int64     `json:"precio_centavos"`
	StockCantidad  int64     `json:"stock_cantidad"`
	EstaActivo     bool      `json:"esta_activo"`
	CreadoEn       time.Time `json:"creado_en"`
}
