package service

import (
	"errors"
	"strings"
	"testing"
)

const claveHexPruebas = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func nuevoCipherPruebas(t *testing.T) *CipherService {
	t.Helper()
	svc, err := NewCipherService(claveHexPruebas)
	if err != nil {
		t.Fatalf("NewCipherService: %v", err)
	}
	return svc
}

func TestNewCipherServiceRechazaLlaveInvalida(t *testing.T) {
	if _, err := NewCipherService("no-es-hex"); err == nil {
		t.Fatal("esperaba error con llave no hexadecimal")
	}
	if _, err := NewCipherService("abcd"); err == nil {
		t.Fatal("esperaba error con llave corta")
	}
}

func TestProtectUnprotectIdaYVuelta(t *testing.T) {
	svc := nuevoCipherPruebas(t)

	cifrado, err := svc.Protect(PropositoDatosUsuario, "juan@example.com")
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if cifrado == "juan@example.com" {
		t.Fatal("el ciphertext no debe ser igual al texto plano")
	}

	claro, err := svc.Unprotect(PropositoDatosUsuario, cifrado)
	if err != nil {
		t.Fatalf("Unprotect: %v", err)
	}
	if claro != "juan@example.com" {
		t.Fatalf("texto plano = %q, esperaba %q", claro, "juan@example.com")
	}
}

func TestProtectEsNoDeterminista(t *testing.T) {
	svc := nuevoCipherPruebas(t)

	a, err := svc.Protect(PropositoDatosUsuario, "mismo valor")
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}
	b, err := svc.Protect(PropositoDatosUsuario, "mismo valor")
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if a == b {
		t.Fatal("dos cifrados del mismo texto plano no deben coincidir")
	}
}

func TestProtectCadenaVacia(t *testing.T) {
	svc := nuevoCipherPruebas(t)

	cifrado, err := svc.Protect(PropositoDatosUsuario, "")
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if cifrado != "" {
		t.Fatalf("cadena vacía debe quedarse vacía, se obtuvo %q", cifrado)
	}
	if claro := svc.SafeUnprotect(PropositoDatosUsuario, ""); claro != "" {
		t.Fatalf("SafeUnprotect de vacío = %q", claro)
	}
}

func TestUnprotectRechazaPropositoDistinto(t *testing.T) {
	svc := nuevoCipherPruebas(t)

	cifrado, err := svc.Protect(PropositoDatosUsuario, "secreto")
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if _, err := svc.Unprotect("OtroProposito", cifrado); !errors.Is(err, ErrCifrado) {
		t.Fatalf("esperaba ErrCifrado con propósito distinto, se obtuvo %v", err)
	}
}

func TestSafeUnprotectDevuelveEntradaAnteBasura(t *testing.T) {
	svc := nuevoCipherPruebas(t)

	casos := []string{
		"no-es-base64!!",
		"YWJjZA==", // base64 válido pero demasiado corto para llevar nonce
		strings.Repeat("Z", 80),
		"texto plano histórico sin cifrar",
	}
	for _, entrada := range casos {
		if salida := svc.SafeUnprotect(PropositoDatosUsuario, entrada); salida != entrada {
			t.Errorf("SafeUnprotect(%q) = %q, esperaba la entrada intacta", entrada, salida)
		}
	}
}

func TestSafeUnprotectRecuperaCiphertextValido(t *testing.T) {
	svc := nuevoCipherPruebas(t)

	cifrado, err := svc.Protect(PropositoDatosUsuario, "5551234567")
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if claro := svc.SafeUnprotect(PropositoDatosUsuario, cifrado); claro != "5551234567" {
		t.Fatalf("SafeUnprotect = %q, esperaba %q", claro, "5551234567")
	}
}
