package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"tarjeta-joven/internal/domain"
)

// ProductoRepository define el contrato de persistencia para productos.
type ProductoRepository interface {
	Crear(ctx context.Context, producto domain.Producto) (domain.Producto, error)
	ListByNegocio(ctx context.Context, idNegocio int64) ([]domain.Producto, error)
}

// PgProductoRepository implementa ProductoRepository usando pgxpool.
type PgProductoRepository struct {
	pool *pgxpool.Pool
}

func NewPgProductoRepository(pool *pgxpool.Pool) *PgProductoRepository {
	return &PgProductoRepository{pool: pool}
}

func (r *PgProductoRepository) Crear(ctx context.Context, producto domain.Producto) (domain.Producto, error) {
	const query = `
		INSERT INTO productos (id_negocio, nombre, precio_centavos, stock_cantidad, esta_activo, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		producto.IDNegocio,
		producto.Nombre,
		producto.PrecioCentavos,
		producto.StockCantidad,
		producto.EstaActivo,
		producto.CreadoEn,
	).Scan(&producto.ID)
	return producto, err
}

func (r *PgProductoRepository) ListByNegocio(ctx context.Context, idNegocio int64) ([]domain.Producto, error) {
	const query = `
		SELECT id, id_negocio, nombre, precio_centavos, stock_cantidad, esta_activo, creado_en
		FROM productos
		WHERE id_negocio = $1
	`
	rows, err := r.pool.Query(ctx, query, idNegocio)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var productos []domain.Producto
	for rows.Next() {
		var p domain.Producto
		if err := rows.Scan(&p.ID, &p.IDNegocio, &p.Nombre, &p.PrecioCentavos, &p.StockCantidad, &p.EstaActivo, &p.CreadoEn); err != nil {
			return nil, err
		}
		productos = append(productos, p)
	}
	return productos, rows.Err()
}
