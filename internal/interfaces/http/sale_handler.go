package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/pkg/validator"
)

// SaleHandler ventas del punto de venta.
type SaleHandler struct {
	process *sales.ProcessSaleUseCase
	query   *sales.QueryUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(process *sales.ProcessSaleUseCase, query *sales.QueryUseCase) *SaleHandler {
	return &SaleHandler{process: process, query: query}
}

// Submit godoc
// @Summary      Registrar venta
// @Description  Descuenta stock, registra el ledger y persiste la venta en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessSaleRequest  true  "Carrito"
// @Success      201   {object}  dto.ProcessSaleResponse
// @Failure      400   {object}  dto.SaleErrorResponse
// @Failure      403   {object}  dto.SaleErrorResponse
// @Failure      404   {object}  dto.SaleErrorResponse
// @Failure      409   {object}  dto.SaleErrorResponse
// @Failure      500   {object}  dto.SaleErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Submit(c *fiber.Ctx) error {
	var in dto.ProcessSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SaleErrorResponse{Success: false, Error: "cuerpo inválido", Code: domain.KindValidation})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SaleErrorResponse{Success: false, Error: validator.Message(errs), Code: domain.KindValidation})
	}
	out, err := h.process.ProcessSale(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		kind := domain.KindOf(err)
		msg := err.Error()
		if kind == domain.KindPersistence {
			c.Locals(LocalError, err)
			msg = "no se pudo registrar la venta"
		}
		return c.Status(StatusFor(err)).JSON(dto.SaleErrorResponse{Success: false, Error: msg, Code: kind})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetSale(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar factura en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/pdf [get]
func (h *SaleHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.query.DownloadInvoicePDF(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
