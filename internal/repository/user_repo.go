package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tarjeta-joven/internal/domain"
)

// UsuarioRepository define el contrato de persistencia para usuarios.
// La búsqueda por correo no existe a propósito: el correo se guarda con
// cifrado no determinista, así que la igualdad sólo puede resolverse
// descifrando cada fila en memoria.
type UsuarioRepository interface {
	CrearTx(ctx context.Context, tx pgx.Tx, usuario domain.Usuario) (domain.Usuario, error)
	List(ctx context.Context) ([]domain.Usuario, error)
	GetByID(ctx context.Context, id int64) (domain.Usuario, error)
	Eliminar(ctx context.Context, id int64) error
}

// PgUsuarioRepository implementa UsuarioRepository usando pgxpool.
type PgUsuarioRepository struct {
	pool *pgxpool.Pool
}

func NewPgUsuarioRepository(pool *pgxpool.Pool) *PgUsuarioRepository {
	return &PgUsuarioRepository{pool: pool}
}

func (r *PgUsuarioRepository) CrearTx(ctx context.Context, tx pgx.Tx, usuario domain.Usuario) (domain.Usuario, error) {
	const query = `
		INSERT INTO usuarios (correo, hash_contrasena, nombre, apellidos, telefono, curp, direccion, tipo_usuario, esta_activo, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query,
		usuario.Correo,
		usuario.HashContrasena,
		usuario.Nombre,
		usuario.Apellidos,
		usuario.Telefono,
		usuario.Curp,
		usuario.Direccion,
		usuario.TipoUsuario,
		usuario.EstaActivo,
		usuario.CreadoEn,
	).Scan(&usuario.ID)
	return usuario, err
}

func (r *PgUsuarioRepository) List(ctx context.Context) ([]domain.Usuario, error) {
	const query = `
		SELECT id, correo, hash_contrasena, nombre, apellidos, telefono, curp, direccion, tipo_usuario, esta_activo, creado_en
		FROM usuarios
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usuarios []domain.Usuario
	for rows.Next() {
		var u domain.Usuario
		if err := rows.Scan(
			&u.ID,
			&u.Correo,
			&u.HashContrasena,
			&u.Nombre,
			&u.Apellidos,
			&u.Telefono,
			&u.Curp,
			&u.Direccion,
			&u.TipoUsuario,
			&u.EstaActivo,
			&u.CreadoEn,
		); err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

func (r *PgUsuarioRepository) GetByID(ctx context.Context, id int64) (domain.Usuario, error) {
	const query = `
		SELECT id, correo, hash_contrasena, nombre, apellidos, telefono, curp, direccion, tipo_usuario, esta_activo, creado_en
		FROM usuarios
		WHERE id = $1
	`
	var u domain.Usuario
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Correo,
		&u.HashContrasena,
		&u.Nombre,
		&u.Apellidos,
		&u.Telefono,
		&u.Curp,
		&u.Direccion,
		&u.TipoUsuario,
		&u.EstaActivo,
		&u.CreadoEn,
	)
	return u, err
}

// Eliminar borra al usuario; las tarjetas asociadas caen en cascada por la
// clave foránea del esquema.
func (r *PgUsuarioRepository) Eliminar(ctx context.Context, id int64) error {
	const query = `DELETE FROM usuarios WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
