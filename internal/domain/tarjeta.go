package domain

import "time"

// Estados posibles de una tarjeta digital.
const (
	TarjetaActiva     = "ACTIVE"
	TarjetaSuspendida = "SUSPENDED"
	TarjetaExpirada   = "EXPIRED"
)

// LongitudNumeroTarjeta es la longitud fija del número de tarjeta.
const LongitudNumeroTarjeta = 16

// Tarjeta es la credencial digital de lealtad de un usuario. Se emite
// exactamente una por usuario al momento del registro.
type Tarjeta struct {
	ID            int64     `json:"id"`
	IDUsuario     int64     `json:"id_usuario"`
	NumeroTarjeta string    `json:"numero_tarjeta"`
	Estado        string    `json:"estado"`
	EmitidaEn     time.Time `json:"emitida_en"`
	ExpiraEn      time.Time `json:"expira_en"`
}
