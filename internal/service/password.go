package service

import "github.com/alexedwards/argon2id"

// HashContrasena genera un digest argon2id con sal aleatoria embebida en el
// propio digest. Nunca registra ni devuelve la contraseña en claro.
func HashContrasena(contrasena string) (string, error) {
	return argon2id.CreateHash(contrasena, argon2id.DefaultParams)
}

// VerificarContrasena compara una contraseña en claro contra un digest
// almacenado. Un digest malformado cuenta como verificación fallida.
func VerificarContrasena(contrasena, digest string) bool {
	ok, err := argon2id.ComparePasswordAndHash(contrasena, digest)
	return err == nil && ok
}
