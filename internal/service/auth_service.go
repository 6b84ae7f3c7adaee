package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tarjeta-joven/internal/domain"
	"tarjeta-joven/internal/repository"
)

// Reintentos del registro completo cuando el índice único de número de
// tarjeta detecta una carrera entre comprobación e inserción.
const maxReintentosRegistro = 3

// AuthService orquesta el registro y el login. Ambos flujos dependen del
// escaneo completo de usuarios con descifrado por fila: como el cifrado es
// no determinista, ninguna igualdad puede empujarse a la base de datos.
type AuthService struct {
	logger   *zap.Logger
	usuarios repository.UsuarioRepository
	tarjetas *TarjetaService
	cifrado  *CipherService
	tx       repository.TxRunner
}

func NewAuthService(logger *zap.Logger, usuarios repository.UsuarioRepository, tarjetas *TarjetaService, cifrado *CipherService, tx repository.TxRunner) *AuthService {
	return &AuthService{
		logger:   logger,
		usuarios: usuarios,
		tarjetas: tarjetas,
		cifrado:  cifrado,
		tx:       tx,
	}
}

// RegistroInput son los datos que el cliente envía al registrarse. Teléfono,
// CURP, dirección y tipo de usuario son opcionales.
type RegistroInput struct {
	Correo      string
	Contrasena  string
	Nombre      string
	Apellidos   string
	Telefono    string
	Curp        string
	Direccion   string
	TipoUsuario string
}

// Registrar valida la entrada, resuelve unicidad de correo/teléfono/CURP
// contra los valores descifrados de todos los usuarios existentes, cifra la
// PII y persiste usuario y tarjeta como una sola transacción. Devuelve la
// vista en claro con los valores que el cliente envió.
func (s *AuthService) Registrar(ctx context.Context, input RegistroInput) (domain.UsuarioVista, domain.Tarjeta, error) {
	correo := strings.TrimSpace(input.Correo)
	if correo == "" {
		return domain.UsuarioVista{}, domain.Tarjeta{}, errValidacion("correo es obligatorio")
	}
	if strings.TrimSpace(input.Contrasena) == "" {
		return domain.UsuarioVista{}, domain.Tarjeta{}, errValidacion("contraseña es obligatoria")
	}
	tipo := domain.NormalizarTipoUsuario(input.TipoUsuario)
	if !domain.TipoUsuarioValido(tipo) {
		return domain.UsuarioVista{}, domain.Tarjeta{}, errValidacion("tipo de usuario no reconocido")
	}

	if err := s.verificarUnicidad(ctx, correo, input.Telefono, input.Curp); err != nil {
		return domain.UsuarioVista{}, domain.Tarjeta{}, err
	}

	hash, err := HashContrasena(input.Contrasena)
	if err != nil {
		return domain.UsuarioVista{}, domain.Tarjeta{}, fmt.Errorf("hashear contraseña: %w", err)
	}

	nuevo := domain.Usuario{
		HashContrasena: hash,
		TipoUsuario:    tipo,
		EstaActivo:     true,
		CreadoEn:       time.Now().UTC(),
	}
	// Los opcionales en blanco se cifran como cadena vacía, nunca como null,
	// para que SafeUnprotect siempre devuelva un valor definido.
	campos := []struct {
		destino *string
		valor   string
	}{
		{&nuevo.Correo, correo},
		{&nuevo.Nombre, input.Nombre},
		{&nuevo.Apellidos, input.Apellidos},
		{&nuevo.Telefono, input.Telefono},
		{&nuevo.Curp, input.Curp},
		{&nuevo.Direccion, input.Direccion},
	}
	for _, campo := range campos {
		cifrado, err := s.cifrado.Protect(PropositoDatosUsuario, campo.valor)
		if err != nil {
			return domain.UsuarioVista{}, domain.Tarjeta{}, fmt.Errorf("cifrar datos de usuario: %w", err)
		}
		*campo.destino = cifrado
	}

	var creado domain.Usuario
	var tarjeta domain.Tarjeta
	for intento := 1; ; intento++ {
		err = s.tx.RunInTx(ctx, func(tx pgx.Tx) error {
			var errTx error
			creado, errTx = s.usuarios.CrearTx(ctx, tx, nuevo)
			if errTx != nil {
				return fmt.Errorf("insertar usuario: %w", errTx)
			}
			tarjeta, errTx = s.tarjetas.ProvisionarTx(ctx, tx, creado.ID)
			if errTx != nil {
				return fmt.Errorf("emitir tarjeta: %w", errTx)
			}
			return nil
		})
		if err == nil {
			break
		}
		if repository.EsViolacionUnicidad(err) && intento < maxReintentosRegistro {
			if s.logger != nil {
				s.logger.Warn("colisión de número de tarjeta, reintentando registro", zap.Int("intento", intento))
			}
			continue
		}
		return domain.UsuarioVista{}, domain.Tarjeta{}, fmt.Errorf("registrar usuario: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("usuario registrado",
			zap.Int64("id", creado.ID),
			zap.String("tipo_usuario", tipo),
			zap.Int64("id_tarjeta", tarjeta.ID),
		)
	}

	vista := domain.UsuarioVista{
		ID:          creado.ID,
		Correo:      correo,
		Nombre:      input.Nombre,
		Apellidos:   input.Apellidos,
		Telefono:    input.Telefono,
		Curp:        input.Curp,
		Direccion:   input.Direccion,
		TipoUsuario: tipo,
		EstaActivo:  true,
		CreadoEn:    creado.CreadoEn,
	}
	return vista, tarjeta, nil
}

// verificarUnicidad descifra correo, teléfono y CURP de cada usuario
// existente y enumera exactamente qué campo choca. Cada campo se agota sobre
// todas las filas antes de pasar al siguiente, de modo que un choque de
// correo siempre se reporta por encima de uno de teléfono o CURP, sin
// importar el orden de las filas. El correo compara con sensibilidad a
// mayúsculas; los opcionales en blanco nunca chocan entre sí.
func (s *AuthService) verificarUnicidad(ctx context.Context, correo, telefono, curp string) error {
	existentes, err := s.usuarios.List(ctx)
	if err != nil {
		return fmt.Errorf("listar usuarios: %w", err)
	}
	for _, u := range existentes {
		if s.cifrado.SafeUnprotect(PropositoDatosUsuario, u.Correo) == correo {
			return errConflicto("el correo ya está registrado")
		}
	}
	if telefono != "" {
		for _, u := range existentes {
			if s.cifrado.SafeUnprotect(PropositoDatosUsuario, u.Telefono) == telefono {
				return errConflicto("el teléfono ya está registrado")
			}
		}
	}
	if curp != "" {
		for _, u := range existentes {
			if s.cifrado.SafeUnprotect(PropositoDatosUsuario, u.Curp) == curp {
				return errConflicto("la curp ya está registrada")
			}
		}
	}
	return nil
}

// Login busca al usuario descifrando el correo de cada fila (coincidencia
// sin sensibilidad a mayúsculas), verifica la contraseña contra el digest y
// devuelve la identidad en claro. Un correo desconocido y una contraseña
// incorrecta producen clases de error distintas a propósito, por paridad con
// el comportamiento histórico de la plataforma.
func (s *AuthService) Login(ctx context.Context, correo, contrasena string) (domain.UsuarioVista, error) {
	correo = strings.TrimSpace(correo)
	if correo == "" {
		return domain.UsuarioVista{}, errValidacion("correo es obligatorio")
	}
	if strings.TrimSpace(contrasena) == "" {
		return domain.UsuarioVista{}, errValidacion("contraseña es obligatoria")
	}

	usuarios, err := s.usuarios.List(ctx)
	if err != nil {
		return domain.UsuarioVista{}, fmt.Errorf("listar usuarios: %w", err)
	}

	var encontrado *domain.Usuario
	for i := range usuarios {
		if strings.EqualFold(s.cifrado.SafeUnprotect(PropositoDatosUsuario, usuarios[i].Correo), correo) {
			encontrado = &usuarios[i]
			break
		}
	}
	if encontrado == nil {
		return domain.UsuarioVista{}, errNoEncontrado("usuario no encontrado")
	}

	if !VerificarContrasena(contrasena, encontrado.HashContrasena) {
		return domain.UsuarioVista{}, errValidacion("contraseña incorrecta")
	}

	vista := domain.UsuarioVista{
		ID:          encontrado.ID,
		Correo:      correo,
		Nombre:      s.cifrado.SafeUnprotect(PropositoDatosUsuario, encontrado.Nombre),
		Apellidos:   s.cifrado.SafeUnprotect(PropositoDatosUsuario, encontrado.Apellidos),
		Telefono:    s.cifrado.SafeUnprotect(PropositoDatosUsuario, encontrado.Telefono),
		Curp:        s.cifrado.SafeUnprotect(PropositoDatosUsuario, encontrado.Curp),
		Direccion:   s.cifrado.SafeUnprotect(PropositoDatosUsuario, encontrado.Direccion),
		TipoUsuario: encontrado.TipoUsuario,
		EstaActivo:  encontrado.EstaActivo,
		CreadoEn:    encontrado.CreadoEn,
	}
	return vista, nil
}
