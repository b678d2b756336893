package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Las categorías base se comparan con errors.Is; los errores específicos las envuelven.
var (
	ErrNotFound   = errors.New("recurso no encontrado")
	ErrConflict   = errors.New("conflicto con el estado actual")
	ErrConstraint = errors.New("restricción de integridad")
	ErrValidation = errors.New("entrada inválida")
	ErrAuth       = errors.New("no autenticado")
	ErrForbidden  = errors.New("acceso denegado")
)

// Autenticación.
var (
	ErrUserNotFound       = fmt.Errorf("%w: usuario no encontrado", ErrAuth)
	ErrInvalidCredentials = fmt.Errorf("%w: contraseña incorrecta", ErrAuth)
	ErrInactiveUser       = fmt.Errorf("%w: usuario inactivo", ErrAuth)
)

// Unicidad.
var (
	ErrTaxIDExists = fmt.Errorf("%w: el NIT ya existe", ErrConflict)
	ErrEmailExists = fmt.Errorf("%w: el email ya existe", ErrConflict)
)

// Integridad referencial.
var (
	ErrCompanyHasUsers    = fmt.Errorf("%w: no se puede eliminar una empresa con usuarios asociados", ErrConstraint)
	ErrCompanyHasSurveys  = fmt.Errorf("%w: no se puede eliminar una empresa con encuestas asociadas", ErrConstraint)
	ErrSurveyHasResponses = fmt.Errorf("%w: la encuesta ya tiene respuestas; no se pueden eliminar preguntas u opciones", ErrConstraint)
)

// Validación.
var (
	ErrTitleRequired   = fmt.Errorf("%w: por favor ingresa un título para la encuesta", ErrValidation)
	ErrRequiredAnswers = fmt.Errorf("%w: por favor responde todas las preguntas obligatorias", ErrValidation)
	ErrSurveyClosed    = fmt.Errorf("%w: la encuesta no está disponible para respuestas", ErrValidation)
)

// Validationf construye un error de validación con mensaje propio.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Message devuelve el texto visible para el usuario (sin el prefijo de la categoría).
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, base := range []error{ErrNotFound, ErrConflict, ErrConstraint, ErrValidation, ErrAuth, ErrForbidden} {
		prefix := base.Error() + ": "
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
