package service

import (
	"strconv"
	"time"
)

// FechaNacimientoDeCurp extrae la fecha de nacimiento codificada en una CURP.
// Las posiciones 4-5, 6-7 y 8-9 llevan año, mes y día en dos dígitos; un año
// menor o igual al año corriente en dos dígitos se interpreta como 2000s y el
// resto como 1900s. Devuelve nil si la cadena es demasiado corta o la fecha
// no es un día calendario válido.
func FechaNacimientoDeCurp(curp string) *time.Time {
	if len(curp) < 10 {
		return nil
	}

	anio, err := strconv.Atoi(curp[4:6])
	if err != nil {
		return nil
	}
	mes, err := strconv.Atoi(curp[6:8])
	if err != nil {
		return nil
	}
	dia, err := strconv.Atoi(curp[8:10])
	if err != nil {
		return nil
	}

	if anio <= time.Now().UTC().Year()%100 {
		anio += 2000
	} else {
		anio += 1900
	}

	fecha := time.Date(anio, time.Month(mes), dia, 0, 0, 0, 0, time.UTC)
	// time.Date normaliza valores fuera de rango (mes 13, día 32); si la
	// fecha no sobrevive el viaje de ida y vuelta, no era un día válido.
	if fecha.Year() != anio || int(fecha.Month()) != mes || fecha.Day() != dia {
		return nil
	}
	return &fecha
}
