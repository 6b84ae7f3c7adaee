package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// PropositoDatosUsuario es el propósito compartido por todos los campos PII
// de usuarios. Un ciphertext producido bajo un propósito no es descifrable
// desde otro.
const PropositoDatosUsuario = "DatosUsuario"

// CipherService cifra y descifra cadenas PII de forma reversible. El cifrado
// es no determinista: el mismo texto plano produce ciphertexts distintos en
// cada llamada, así que la igualdad de valores sólo puede comprobarse
// descifrando.
type CipherService struct {
	masterKey []byte
}

// NewCipherService construye el servicio a partir de una llave maestra de
// 32 bytes codificada en hexadecimal.
func NewCipherService(claveHex string) (*CipherService, error) {
	clave, err := hex.DecodeString(claveHex)
	if err != nil {
		return nil, errors.New("la llave de cifrado no es hexadecimal válido")
	}
	if len(clave) != 32 {
		return nil, errors.New("la llave de cifrado debe tener 32 bytes")
	}
	return &CipherService{masterKey: clave}, nil
}

// Protect cifra el texto plano bajo el propósito dado. Una cadena vacía se
// devuelve vacía, de modo que los campos opcionales en blanco quedan siempre
// definidos en la base.
func (s *CipherService) Protect(proposito, textoPlano string) (string, error) {
	if textoPlano == "" {
		return "", nil
	}
	gcm, err := s.aeadParaProposito(proposito)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sellado := gcm.Seal(nonce, nonce, []byte(textoPlano), nil)
	return base64.StdEncoding.EncodeToString(sellado), nil
}

// Unprotect descifra un ciphertext producido por Protect bajo el mismo
// propósito. Devuelve ErrCifrado si el valor está malformado, fue cifrado
// bajo otro propósito o no es ciphertext en absoluto.
func (s *CipherService) Unprotect(proposito, textoCifrado string) (string, error) {
	if textoCifrado == "" {
		return "", nil
	}
	datos, err := base64.StdEncoding.DecodeString(textoCifrado)
	if err != nil {
		return "", ErrCifrado
	}
	gcm, err := s.aeadParaProposito(proposito)
	if err != nil {
		return "", err
	}
	if len(datos) < gcm.NonceSize() {
		return "", ErrCifrado
	}
	nonce, sellado := datos[:gcm.NonceSize()], datos[gcm.NonceSize():]
	textoPlano, err := gcm.Open(nil, nonce, sellado, nil)
	if err != nil {
		return "", ErrCifrado
	}
	return string(textoPlano), nil
}

// SafeUnprotect nunca falla: ante cualquier error de descifrado devuelve la
// entrada intacta. Registros históricos o malformados no deben romper las
// rutas de lectura.
func (s *CipherService) SafeUnprotect(proposito, valor string) string {
	textoPlano, err := s.Unprotect(proposito, valor)
	if err != nil {
		return valor
	}
	return textoPlano
}

// aeadParaProposito deriva una subclave AES-256 ligada al propósito mediante
// HKDF-SHA256 y construye el AEAD correspondiente.
func (s *CipherService) aeadParaProposito(proposito string) (cipher.AEAD, error) {
	lector := hkdf.New(sha256.New, s.masterKey, nil, []byte(proposito))
	subclave := make([]byte, 32)
	if _, err := io.ReadFull(lector, subclave); err != nil {
		return nil, err
	}
	bloque, err := aes.NewCipher(subclave)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(bloque)
}
