package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"tarjeta-joven/internal/domain"
)

// NegocioRepository define el contrato de persistencia para negocios afiliados.
type NegocioRepository interface {
	Crear(ctx context.Context, negocio domain.Negocio) (domain.Negocio, error)
	List(ctx context.Context) ([]domain.Negocio, error)
	GetByID(ctx context.Context, id int64) (domain.Negocio, error)
	GetByPropietario(ctx context.Context, idUsuario int64) (domain.Negocio, error)
}

// PgNegocioRepository implementa NegocioRepository usando pgxpool.
type PgNegocioRepository struct {
	pool *pgxpool.Pool
}

func NewPgNegocioRepository(pool *pgxpool.Pool) *PgNegocioRepository {
	return &PgNegocioRepository{pool: pool}
}

func (r *PgNegocioRepository) Crear(ctx context.Context, negocio domain.Negocio) (domain.Negocio, error) {
	const query = `
		INSERT INTO negocios (nombre, direccion, id_categoria, id_propietario_usuario, creado_en)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		negocio.Nombre,
		negocio.Direccion,
		negocio.IDCategoria,
		negocio.IDPropietarioUsuario,
		negocio.CreadoEn,
	).Scan(&negocio.ID)
	return negocio, err
}

func (r *PgNegocioRepository) List(ctx context.Context) ([]domain.Negocio, error) {
	const query = `
		SELECT id, nombre, direccion, id_categoria, id_propietario_usuario, creado_en
		FROM negocios
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var negocios []domain.Negocio
	for rows.Next() {
		var n domain.Negocio
		if err := rows.Scan(&n.ID, &n.Nombre, &n.Direccion, &n.IDCategoria, &n.IDPropietarioUsuario, &n.CreadoEn); err != nil {
			return nil, err
		}
		negocios = append(negocios, n)
	}
	return negocios, rows.Err()
}

func (r *PgNegocioRepository) GetByID(ctx context.Context, id int64) (domain.Negocio, error) {
	const query = `
		SELECT id, nombre, direccion, id_categoria, id_propietario_usuario, creado_en
		FROM negocios
		WHERE id = $1
	`
	var n domain.Negocio
	err := r.pool.QueryRow(ctx, query, id).Scan(&n.ID, &n.Nombre, &n.Direccion, &n.IDCategoria, &n.IDPropietarioUsuario, &n.CreadoEn)
	return n, err
}

func (r *PgNegocioRepository) GetByPropietario(ctx context.Context, idUsuario int64) (domain.Negocio, error) {
	const query = `
		SELECT id, nombre, direccion, id_categoria, id_propietario_usuario, creado_en
		FROM negocios
		WHERE id_propietario_usuario = $1
	`
	var n domain.Negocio
	err := r.pool.QueryRow(ctx, query, idUsuario).Scan(&n.ID, &n.Nombre, &n.Direccion, &n.IDCategoria, &n.IDPropietarioUsuario, &n.CreadoEn)
	return n, err
}
