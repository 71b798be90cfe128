package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/application/statement"
)

// StatementHandler handles bank statement imports.
type StatementHandler struct {
	uc *statement.ImportUseCase
}

// NewStatementHandler builds the statement handler.
func NewStatementHandler(uc *statement.ImportUseCase) *StatementHandler {
	return &StatementHandler{uc: uc}
}

// Create godoc
// @Summary      Upload a bank statement
// @Tags         statements
// @Accept       multipart/form-data
// @Produce      json
// @Param        bank          formData  string  true  "source bank"
// @Param        bank_account  formData  string  true  "ledger bank account"
// @Param        file          formData  file    true  "statement export"
// @Success      201  {object}  dto.StatementImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/statements [post]
func (h *StatementHandler) Create(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "file is required"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cannot read uploaded file"})
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cannot read uploaded file"})
	}

	in := dto.CreateStatementImportRequest{
		Bank:        c.FormValue("bank"),
		BankAccount: c.FormValue("bank_account"),
		FileName:    fileHeader.Filename,
		Content:     content,
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Get a statement import
// @Tags         statements
// @Produce      json
// @Param        id   path      string  true  "import id"
// @Success      200  {object}  dto.StatementImportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/statements/{id} [get]
func (h *StatementHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Prepare godoc
// @Summary      Prepare the uploaded statement for import
// @Tags         statements
// @Produce      json
// @Param        id   path      string  true  "import id"
// @Success      200  {object}  dto.PrepareStatementResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/statements/{id}/prepare [post]
func (h *StatementHandler) Prepare(c *fiber.Ctx) error {
	out, err := h.uc.Prepare(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Preview the current import file
// @Tags         statements
// @Produce      json
// @Param        id   path      string  true  "import id"
// @Success      200  {object}  dto.StatementPreviewResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/statements/{id}/preview [get]
func (h *StatementHandler) Preview(c *fiber.Ctx) error {
	out, err := h.uc.Preview(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Download the current import file
// @Tags         statements
// @Produce      text/csv
// @Param        id   path  string  true  "import id"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/statements/{id}/file [get]
func (h *StatementHandler) Download(c *fiber.Ctx) error {
	name, content, err := h.uc.Download(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(content)
}
