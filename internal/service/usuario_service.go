package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tarjeta-joven/internal/repository"
)

// UsuarioService cubre las operaciones administrativas sobre usuarios:
// listado con PII descifrada y eliminación.
type UsuarioService struct {
	logger   *zap.Logger
	usuarios repository.UsuarioRepository
	cifrado  *CipherService
}

func NewUsuarioService(logger *zap.Logger, usuarios repository.UsuarioRepository, cifrado *CipherService) *UsuarioService {
	return &UsuarioService{
		logger:   logger,
		usuarios: usuarios,
		cifrado:  cifrado,
	}
}

// UsuarioListado es la fila que ve un administrador: PII en claro y la fecha
// de nacimiento derivada de la CURP cuando ésta la codifica.
type UsuarioListado struct {
	ID              int64      `json:"id"`
	Nombre          string     `json:"nombre"`
	Apellidos       string     `json:"apellidos"`
	Curp            string     `json:"curp"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento,omitempty"`
	Telefono        string     `json:"telefono"`
	Correo          string     `json:"correo"`
	TipoUsuario     string     `json:"tipo_usuario"`
	EstaActivo      bool       `json:"esta_activo"`
}

// Listar devuelve todos los usuarios con sus campos PII descifrados vía
// SafeUnprotect; las filas con ciphertext irrecuperable se muestran tal cual
// en lugar de romper el listado.
func (s *UsuarioService) Listar(ctx context.Context) ([]UsuarioListado, error) {
	usuarios, err := s.usuarios.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}

	listado := make([]UsuarioListado, 0, len(usuarios))
	for _, u := range usuarios {
		curp := s.cifrado.SafeUnprotect(PropositoDatosUsuario, u.Curp)
		listado = append(listado, UsuarioListado{
			ID:              u.ID,
			Nombre:          s.cifrado.SafeUnprotect(PropositoDatosUsuario, u.Nombre),
			Apellidos:       s.cifrado.SafeUnprotect(PropositoDatosUsuario, u.Apellidos),
			Curp:            curp,
			FechaNacimiento: FechaNacimientoDeCurp(curp),
			Telefono:        s.cifrado.SafeUnprotect(PropositoDatosUsuario, u.Telefono),
			Correo:          s.cifrado.SafeUnprotect(PropositoDatosUsuario, u.Correo),
			TipoUsuario:     u.TipoUsuario,
			EstaActivo:      u.EstaActivo,
		})
	}
	return listado, nil
}

// Eliminar borra al usuario y, en cascada, sus tarjetas.
func (s *UsuarioService) Eliminar(ctx context.Context, id int64) error {
	err := s.usuarios.Eliminar(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return errNoEncontrado("usuario no encontrado")
	}
	if err != nil {
		return fmt.Errorf("eliminar usuario: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("usuario eliminado", zap.Int64("id", id))
	}
	return nil
}
