package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/application/vatreturn"
)

// VATReturnHandler handles the VAT return lifecycle.
type VATReturnHandler struct {
	uc *vatreturn.UseCase
}

// NewVATReturnHandler builds the VAT return handler.
func NewVATReturnHandler(uc *vatreturn.UseCase) *VATReturnHandler {
	return &VATReturnHandler{uc: uc}
}

// Create godoc
// @Summary      Open a VAT return for a period
// @Tags         vat-returns
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVATReturnRequest  true  "date_from, date_to"
// @Success      201   {object}  dto.VATReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/vat-returns [post]
func (h *VATReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVATReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.DateFrom == "" || in.DateTo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_from and date_to are required"})
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Get a VAT return with its GL lines
// @Tags         vat-returns
// @Produce      json
// @Param        id   path      string  true  "return id"
// @Success      200  {object}  dto.VATReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vat-returns/{id} [get]
func (h *VATReturnHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PullGLEntries godoc
// @Summary      Pull and classify the period's GL entries
// @Tags         vat-returns
// @Produce      json
// @Param        id   path      string  true  "return id"
// @Success      200  {object}  dto.VATReturnResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/vat-returns/{id}/pull [post]
func (h *VATReturnHandler) PullGLEntries(c *fiber.Ctx) error {
	out, err := h.uc.PullGLEntries(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Save manual fields and recalculate
// @Tags         vat-returns
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "return id"
// @Param        body  body  dto.SaveVATReturnRequest true  "manual entry fields"
// @Success      200   {object}  dto.VATReturnResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vat-returns/{id} [put]
func (h *VATReturnHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveVATReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Save(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Classify godoc
// @Summary      Manually classify GL lines
// @Tags         vat-returns
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "return id"
// @Param        body  body  dto.ManualClassifyRequest true  "line_ids, classification"
// @Success      200   {object}  dto.VATReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vat-returns/{id}/classify [post]
func (h *VATReturnHandler) Classify(c *fiber.Ctx) error {
	var in dto.ManualClassifyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Classify(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Submit the return
// @Tags         vat-returns
// @Produce      json
// @Param        id   path      string  true  "return id"
// @Success      200  {object}  dto.VATReturnResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/vat-returns/{id}/submit [post]
func (h *VATReturnHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Download the return as a VAT201 PDF
// @Tags         vat-returns
// @Produce      application/pdf
// @Param        id   path  string  true  "return id"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vat-returns/{id}/pdf [get]
func (h *VATReturnHandler) DownloadPDF(c *fiber.Ctx) error {
	content, err := h.uc.DownloadVAT201(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="vat201.pdf"`)
	return c.Send(content)
}
