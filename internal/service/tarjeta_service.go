package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tarjeta-joven/internal/domain"
	"tarjeta-joven/internal/repository"
)

// Años de vigencia de una tarjeta desde su emisión.
const aniosVigenciaTarjeta = 3

// Intentos máximos de generación antes de rendirse; con 16 dígitos uniformes
// las colisiones reales son prácticamente inexistentes.
const maxIntentosNumero = 5

// TarjetaService emite tarjetas digitales con número único.
type TarjetaService struct {
	logger   *zap.Logger
	tarjetas repository.TarjetaRepository
}

func NewTarjetaService(logger *zap.Logger, tarjetas repository.TarjetaRepository) *TarjetaService {
	return &TarjetaService{
		logger:   logger,
		tarjetas: tarjetas,
	}
}

// ProvisionarTx genera un número de tarjeta libre e inserta la tarjeta dentro
// de la transacción dada, con estado activo y vigencia fija. La comprobación
// de existencia es optimista: entre comprobar e insertar otra petición puede
// tomar el mismo número, y entonces el índice único del esquema hace fallar
// el INSERT con violación de unicidad. El llamador decide si reintenta la
// transacción completa.
func (s *TarjetaService) ProvisionarTx(ctx context.Context, tx pgx.Tx, idUsuario int64) (domain.Tarjeta, error) {
	numero, err := s.numeroLibre(ctx)
	if err != nil {
		return domain.Tarjeta{}, err
	}

	ahora := time.Now().UTC()
	tarjeta := domain.Tarjeta{
		IDUsuario:     idUsuario,
		NumeroTarjeta: numero,
		Estado:        domain.TarjetaActiva,
		EmitidaEn:     ahora,
		ExpiraEn:      ahora.AddDate(aniosVigenciaTarjeta, 0, 0),
	}
	return s.tarjetas.CrearTx(ctx, tx, tarjeta)
}

func (s *TarjetaService) numeroLibre(ctx context.Context) (string, error) {
	for intento := 1; intento <= maxIntentosNumero; intento++ {
		numero, err := numeroAleatorio()
		if err != nil {
			return "", err
		}
		existe, err := s.tarjetas.ExisteNumero(ctx, numero)
		if err != nil {
			return "", err
		}
		if !existe {
			return numero, nil
		}
		if s.logger != nil {
			s.logger.Warn("número de tarjeta en uso, regenerando", zap.Int("intento", intento))
		}
	}
	return "", errors.New("no se pudo generar un número de tarjeta libre")
}

// numeroAleatorio produce una cadena de dígitos uniformes e independientes
// de longitud fija.
func numeroAleatorio() (string, error) {
	var b strings.Builder
	b.Grow(domain.LongitudNumeroTarjeta)
	for i := 0; i < domain.LongitudNumeroTarjeta; i++ {
		digito, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + digito.Int64()))
	}
	return b.String(), nil
}
