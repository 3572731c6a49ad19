package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/reports"
)

// ReportHandler reportes de ventas y dashboard.
type ReportHandler struct {
	sales     *reports.SalesReportUseCase
	dashboard *reports.DashboardUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(sales *reports.SalesReportUseCase, dashboard *reports.DashboardUseCase) *ReportHandler {
	return &ReportHandler{sales: sales, dashboard: dashboard}
}

// Sales godoc
// @Summary      Reporte de ventas
// @Description  Rango de días inclusivo en UTC. Sin fechas usa el día actual.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var in dto.SalesReportRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	if ok, err := validate(c, in); !ok {
		return err
	}
	out, err := h.sales.Report(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      KPIs del día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.Get(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
