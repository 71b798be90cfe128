package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/application/report"
)

// ReportHandler handles the VAT return linked-transactions report.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler builds the report handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Run godoc
// @Summary      Run the linked-transactions report
// @Tags         reports
// @Produce      json
// @Param        vat_return                query     string  true   "return id"
// @Param        classification            query     string  false  "restrict to one classification"
// @Param        show_all_classifications  query     bool    false  "group per classification with subtotals"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/linked-transactions [get]
func (h *ReportHandler) Run(c *fiber.Ctx) error {
	var filters dto.ReportFilters
	if err := c.QueryParser(&filters); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid filters"})
	}
	out, err := h.uc.Run(c.Context(), GetCompanyID(c), filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportXLSX godoc
// @Summary      Download the linked-transactions report as a workbook
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        vat_return                query  string  true   "return id"
// @Param        classification            query  string  false  "restrict to one classification"
// @Param        show_all_classifications  query  bool    false  "group per classification with subtotals"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/linked-transactions.xlsx [get]
func (h *ReportHandler) ExportXLSX(c *fiber.Ctx) error {
	var filters dto.ReportFilters
	if err := c.QueryParser(&filters); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid filters"})
	}
	content, err := h.uc.ExportXLSX(c.Context(), GetCompanyID(c), filters)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="linked-transactions.xlsx"`)
	return c.Send(content)
}
