package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tarjeta-joven/internal/domain"
)

// memUsuarioRepo es un repositorio de usuarios en memoria para pruebas.
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

// memTarjetaRepo es un repositorio de tarjetas en memoria. forzarOcupadas hace
// que ExisteNumero reporte ocupado ese número de veces, sin importar el número
// consultado, para simular colisiones.
type memTarjetaRepo struct {
	tarjetas       []domain.Tarjeta
	siguiente      int64
	forzarOcupadas int
	consultas      int
}

func (r *memTarjetaRepo) CrearTx(_ context.Context, _ pgx.Tx, tarjeta domain.Tarjeta) (domain.Tarjeta, error) {
	for _, t := range r.tarjetas {
		if t.NumeroTarjeta == tarjeta.NumeroTarjeta {
			return domain.Tarjeta{}, &pgconn.PgError{Code: "23505"}
		}
	}
	r.siguiente++
	tarjeta.ID = r.siguiente
	r.tarjetas = append(r.tarjetas, tarjeta)
	return tarjeta, nil
}

func (r *memTarjetaRepo) ExisteNumero(_ context.Context, numero string) (bool, error) {
	r.consultas++
	if r.forzarOcupadas > 0 {
		r.forzarOcupadas--
		return true, nil
	}
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

// fakeTxRunner ejecuta la función con una transacción nula. Los errores en
// fallos se consumen en orden antes de ejecutar nada, para simular fallas de
// confirmación.
type fakeTxRunner struct {
	fallos     []error
	ejecutadas int
}

func (r *fakeTxRunner) RunInTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	if len(r.fallos) > 0 {
		err := r.fallos[0]
		r.fallos = r.fallos[1:]
		return err
	}
	r.ejecutadas++
	return fn(nil)
}
