// Package password verifica credenciales de usuario.
//
// Los valores guardados pueden ser hashes bcrypt o, para cuentas heredadas,
// la contraseña en texto plano. El texto plano es un marcador temporal: Verify
// lo acepta y NeedsRehash indica que debe reemplazarse por un hash.
package password

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hash genera un hash bcrypt con el costo por defecto.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("password: contraseña vacía")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(h), nil
}

// Verify compara la contraseña recibida con el valor almacenado.
func Verify(stored, plain string) bool {
	if stored == "" {
		return false
	}
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}

// NeedsRehash informa si el valor almacenado no es un hash bcrypt.
func NeedsRehash(stored string) bool {
	return !isBcrypt(stored)
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
