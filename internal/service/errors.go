package service

import "errors"

// Clases de error que el borde HTTP traduce a códigos de estado. Los errores
// concretos llevan un mensaje legible para el cliente y envuelven una de
// estas clases, de modo que los handlers clasifican con errors.Is sin
// conocer cada caso.
var (
	ErrValidacion   = errors.New("solicitud inválida")
	ErrConflicto    = errors.New("conflicto de unicidad")
	ErrNoEncontrado = errors.New("recurso no encontrado")
	ErrCifrado      = errors.New("no se pudo descifrar el valor")
)

type errorClasificado struct {
	clase   error
	mensaje string
}

func (e *errorClasificado) Error() string { return e.mensaje }

func (e *errorClasificado) Unwrap() error { return e.clase }

func errValidacion(mensaje string) error {
	return &errorClasificado{clase: ErrValidacion, mensaje: mensaje}
}

func errConflicto(mensaje string) error {
	return &errorClasificado{clase: ErrConflicto, mensaje: mensaje}
}

func errNoEncontrado(mensaje string) error {
	return &errorClasificado{clase: ErrNoEncontrado, mensaje: mensaje}
}
