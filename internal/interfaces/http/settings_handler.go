package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/application/settings"
)

// SettingsHandler handles the per-company VAT return settings.
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler builds the settings handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Get VAT return settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/settings/vat-return [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Create or replace VAT return settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertSettingsRequest  true  "template map, tax accounts, account classifications"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/vat-return [put]
func (h *SettingsHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Upsert(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
