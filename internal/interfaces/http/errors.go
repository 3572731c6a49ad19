package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/pkg/validator"
)

// LocalError guarda el error interno para que el log de peticiones lo registre.
const LocalError = "error"

var statusByKind = map[string]int{
	domain.KindValidation:        fiber.StatusBadRequest,
	domain.KindNotFound:          fiber.StatusNotFound,
	domain.KindInsufficientStock: fiber.StatusConflict,
	domain.KindForbidden:         fiber.StatusForbidden,
	domain.KindUnauthorized:      fiber.StatusUnauthorized,
	domain.KindConflict:          fiber.StatusConflict,
	domain.KindPersistence:       fiber.StatusInternalServerError,
}

// StatusFor código HTTP de un error de dominio.
func StatusFor(err error) int {
	if s, ok := statusByKind[domain.KindOf(err)]; ok {
		return s
	}
	return fiber.StatusInternalServerError
}

// writeError responde {code, message}. Los errores de persistencia no exponen el detalle.
func writeError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	msg := err.Error()
	if kind == domain.KindPersistence {
		c.Locals(LocalError, err)
		msg = "error interno"
	}
	return c.Status(StatusFor(err)).JSON(dto.ErrorResponse{Code: kind, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// validate aplica las etiquetas `validate` del DTO; ok=false si ya respondió 400.
func validate(c *fiber.Ctx, in interface{}) (bool, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: domain.KindValidation, Message: validator.Message(errs)})
	}
	return true, nil
}
