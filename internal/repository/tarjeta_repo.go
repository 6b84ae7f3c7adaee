package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tarjeta-joven/internal/domain"
)

// TarjetaRepository define el contrato de persistencia para tarjetas digitales.
type TarjetaRepository interface {
	CrearTx(ctx context.Context, tx pgx.Tx, tarjeta domain.Tarjeta) (domain.Tarjeta, error)
	ExisteNumero(ctx context.Context, numero string) (bool, error)
	List(ctx context.Context) ([]domain.Tarjeta, error)
	GetByUsuario(ctx context.Context, idUsuario int64) (domain.Tarjeta, error)
}

// PgTarjetaRepository implementa TarjetaRepository usando pgxpool.
type PgTarjetaRepository struct {
	pool *pgxpool.Pool
}

func NewPgTarjetaRepository(pool *pgxpool.Pool) *PgTarjetaRepository {
	return &PgTarjetaRepository{pool: pool}
}

func (r *PgTarjetaRepository) CrearTx(ctx context.Context, tx pgx.Tx, tarjeta domain.Tarjeta) (domain.Tarjeta, error) {
	const query = `
		INSERT INTO tarjetas_digitales (id_usuario, numero_tarjeta, estado, emitida_en, expira_en)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query,
		tarjeta.IDUsuario,
		tarjeta.NumeroTarjeta,
		tarjeta.Estado,
		tarjeta.EmitidaEn,
		tarjeta.ExpiraEn,
	).Scan(&tarjeta.ID)
	return tarjeta, err
}

func (r *PgTarjetaRepository) ExisteNumero(ctx context.Context, numero string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM tarjetas_digitales WHERE numero_tarjeta = $1)`
	var existe bool
	err := r.pool.QueryRow(ctx, query, numero).Scan(&existe)
	return existe, err
}

func (r *PgTarjetaRepository) List(ctx context.Context) ([]domain.Tarjeta, error) {
	const query = `
		SELECT id, id_usuario, numero_tarjeta, estado, emitida_en, expira_en
		FROM tarjetas_digitales
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tarjetas []domain.Tarjeta
	for rows.Next() {
		var t domain.Tarjeta
		if err := rows.Scan(&t.ID, &t.IDUsuario, &t.NumeroTarjeta, &t.Estado, &t.EmitidaEn, &t.ExpiraEn); err != nil {
			return nil, err
		}
		tarjetas = append(tarjetas, t)
	}
	return tarjetas, rows.Err()
}

func (r *PgTarjetaRepository) GetByUsuario(ctx context.Context, idUsuario int64) (domain.Tarjeta, error) {
	const query = `
		SELECT id, id_usuario, numero_tarjeta, estado, emitida_en, expira_en
		FROM tarjetas_digitales
		WHERE id_usuario = $1
	`
	var t domain.Tarjeta
	err := r.pool.QueryRow(ctx, query, idUsuario).Scan(&t.ID, &t.IDUsuario, &t.NumeroTarjeta, &t.Estado, &t.EmitidaEn, &t.ExpiraEn)
	return t, err
}
