package http

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/domain"
)

const (
	forbiddenMessage = "Acceso denegado"
	// LocalError error devuelto por el caso de uso; lo registra RequestLogger.
	LocalError = "error"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Details usa los nombres JSON de los campos.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON decodifica el cuerpo y lo valida. Si falla, ya escribió la respuesta 400
// y devuelve ok=false.
func bindJSON(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		return false, writeValidation(c, err)
	}
	return true, nil
}

func writeValidation(c *fiber.Ctx, err error) error {
	resp := dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Details = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			field := strings.SplitN(fe.Namespace(), ".", 2)
			key := fe.Field()
			if len(field) == 2 {
				key = field[1]
			}
			resp.Details[key] = fe.Tag()
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}

// paramID lee un ID numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
}

// writeError traduce los errores de dominio a status HTTP.
func writeError(c *fiber.Ctx, err error) error {
	c.Locals(LocalError, err)
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor"
	switch {
	case errors.Is(err, domain.ErrInactiveUser):
		status, code, msg = fiber.StatusForbidden, "INACTIVE_USER", domain.Message(err)
	case errors.Is(err, domain.ErrAuth):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", domain.Message(err)
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", forbiddenMessage
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", domain.Message(err)
	case errors.Is(err, domain.ErrConflict):
		status, code, msg = fiber.StatusConflict, "CONFLICT", domain.Message(err)
	case errors.Is(err, domain.ErrConstraint):
		status, code, msg = fiber.StatusConflict, "CONSTRAINT", domain.Message(err)
	case errors.Is(err, domain.ErrValidation):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", domain.Message(err)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
