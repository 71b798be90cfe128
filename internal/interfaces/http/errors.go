package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	appstatement "github.com/csf-za/tax-compliance-api/internal/application/statement"
	"github.com/csf-za/tax-compliance-api/internal/application/vatreturn"
	"github.com/csf-za/tax-compliance-api/internal/domain"
	stmt "github.com/csf-za/tax-compliance-api/internal/domain/statement"
)

// respondError maps domain and application errors onto HTTP responses.
// Unknown errors come back as 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	var blocked *vatreturn.SubmitBlockedError
	if errors.As(err, &blocked) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "UNCLASSIFIED_ENTRIES", Message: blocked.Error()})
	}
	var format *stmt.FormatError
	if errors.As(err, &format) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: format.Error()})
	}

	switch {
	case errors.Is(err, appstatement.ErrWrongFileType):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "WRONG_FILE_TYPE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input"})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid credentials"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "resource belongs to another company"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrDocumentLocked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DOCUMENT_LOCKED", Message: "document is submitted and no longer editable"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrSettingsMissing):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "SETTINGS_MISSING", Message: "VAT return settings are not configured for this company"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
