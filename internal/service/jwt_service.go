package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tarjeta-joven/internal/domain"
)

// JWTService emite y valida los tokens de sesión. La llave, el emisor y la
// vigencia se fijan al arranque y no cambian durante la vida del proceso.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// Claims son las afirmaciones del token de sesión. El sujeto es el correo en
// claro del usuario al momento de emisión; tipo_usuario alimenta las puertas
// de autorización por rol.
type Claims struct {
	IDUsuario   int64  `json:"id"`
	TipoUsuario string `json:"tipo_usuario"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = 3 * time.Hour
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "tarjeta-joven",
	}
}

// Emitir firma un token HS256 para la identidad dada, con jti único y
// expiración absoluta a partir de ahora. No persiste nada: la validez es
// función exclusiva de la firma y la expiración.
func (s *JWTService) Emitir(usuario domain.UsuarioVista) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrJWTInvalid
	}
	ahora := time.Now().UTC()
	claims := Claims{
		IDUsuario:   usuario.ID,
		TipoUsuario: usuario.TipoUsuario,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   usuario.Correo,
			IssuedAt:  jwt.NewNumericDate(ahora),
			ExpiresAt: jwt.NewNumericDate(ahora.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken valida firma, expiración, emisor y forma de las claims.
func (s *JWTService) ParseToken(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrJWTInvalid
	}
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	if !s.sonClaimsValidas(claims) {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (s *JWTService) sonClaimsValidas(claims Claims) bool {
	if claims.IDUsuario <= 0 {
		return false
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return false
	}
	if !domain.TipoUsuarioValido(claims.TipoUsuario) {
		return false
	}
	if claims.ID == "" {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
