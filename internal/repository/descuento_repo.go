package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"tarjeta-joven/internal/domain"
)

// DescuentoRepository define el contrato de persistencia para descuentos.
type DescuentoRepository interface {
	Crear(ctx context.Context, descuento domain.Descuento) (domain.Descuento, error)
	List(ctx context.Context) ([]domain.Descuento, error)
}

// PgDescuentoRepository implementa DescuentoRepository usando pgxpool.
type PgDescuentoRepository struct {
	pool *pgxpool.Pool
}

func NewPgDescuentoRepository(pool *pgxpool.Pool) *PgDescuentoRepository {
	return &PgDescuentoRepository{pool: pool}
}

func (r *PgDescuentoRepository) Crear(ctx context.Context, descuento domain.Descuento) (domain.Descuento, error) {
	const query = `
		INSERT INTO descuentos (id_negocio, id_producto, titulo, tipo_descuento, valor_descuento, inicia_en, termina_en, esta_activo, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		descuento.IDNegocio,
		descuento.IDProducto,
		descuento.Titulo,
		descuento.TipoDescuento,
		descuento.ValorDescuento,
		descuento.IniciaEn,
		descuento.TerminaEn,
		descuento.EstaActivo,
		descuento.CreadoEn,
	).Scan(&descuento.ID)
	return descuento, err
}

func (r *PgDescuentoRepository) List(ctx context.Context) ([]domain.Descuento, error) {
	const query = `
		SELECT id, id_negocio, id_producto, titulo, tipo_descuento, valor_descuento, inicia_en, termina_en, esta_activo, creado_en
		FROM descuentos
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var descuentos []domain.Descuento
	for rows.Next() {
		var d domain.Descuento
		if err := rows.Scan(&d.ID, &d.IDNegocio, &d.IDProducto, &d.Titulo, &d.TipoDescuento, &d.ValorDescuento, &d.IniciaEn, &d.TerminaEn, &d.EstaActivo, &d.CreadoEn); err != nil {
			return nil, err
		}
		descuentos = append(descuentos, d)
	}
	return descuentos, rows.Err()
}
