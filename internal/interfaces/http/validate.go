package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/omnistock-hub/internal/application/dto"
	"github.com/jhoicas/omnistock-hub/internal/domain"
)

// validate instancia compartida; los tags viven en los DTOs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeBody parsea y valida el cuerpo JSON. El handler solo continúa con
// un DTO bien formado; todo lo demás ya respondió 400.
func decodeBody(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return true, nil
}

// decodeQuery parsea y valida los query params.
func decodeQuery(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.QueryParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return true, nil
}

// respondError mapea errores de dominio a códigos HTTP. Los fallos del
// remote store son 502: el hub está sano, el colaborador no.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrStaleSync):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STALE_SYNC", Message: err.Error()})
	case errors.Is(err, domain.ErrExtractionFailed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EXTRACTION_FAILED", Message: err.Error()})
	case errors.Is(err, domain.ErrSyncFailed), errors.Is(err, domain.ErrDecoding):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "REMOTE_STORE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
