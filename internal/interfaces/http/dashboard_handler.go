package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seshu362/kristalball-backend/internal/application/dto"
	appledger "github.com/seshu362/kristalball-backend/internal/application/ledger"
	"github.com/seshu362/kristalball-backend/internal/application/reports"
	domledger "github.com/seshu362/kristalball-backend/internal/domain/ledger"
	"github.com/seshu362/kristalball-backend/pkg/validate"
)

// DashboardHandler serves the reconciled metrics and the net-movement
// drill-down.
type DashboardHandler struct {
	ledgerUC *appledger.UseCase
	reportUC *reports.MovementReportUseCase
}

// NewDashboardHandler builds the dashboard handler.
func NewDashboardHandler(ledgerUC *appledger.UseCase, reportUC *reports.MovementReportUseCase) *DashboardHandler {
	return &DashboardHandler{ledgerUC: ledgerUC, reportUC: reportUC}
}

// Summary godoc
// @Summary      Dashboard metrics
// @Tags         dashboard
// @Produce      json
// @Param        startDate        query  string  false  "YYYY-MM-DD, inclusive"
// @Param        endDate          query  string  false  "YYYY-MM-DD, inclusive"
// @Param        baseId           query  string  false  "restrict to one base"
// @Param        equipmentTypeId  query  string  false  "restrict to one equipment type"
// @Success      200  {object}  dto.DashboardSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	scope, ok, err := h.parseScope(c)
	if !ok {
		return err
	}
	out, err := h.ledgerUC.GetSummary(c.UserContext(), scope)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// MovementDetails godoc
// @Summary      Net-movement drill-down
// @Tags         dashboard
// @Produce      json
// @Param        startDate        query  string  false  "YYYY-MM-DD, inclusive"
// @Param        endDate          query  string  false  "YYYY-MM-DD, inclusive"
// @Param        baseId           query  string  false  "restrict to one base"
// @Param        equipmentTypeId  query  string  false  "restrict to one equipment type"
// @Success      200  {object}  dto.MovementDetailsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/movement-details [get]
func (h *DashboardHandler) MovementDetails(c *fiber.Ctx) error {
	scope, ok, err := h.parseScope(c)
	if !ok {
		return err
	}
	out, err := h.ledgerUC.GetMovementDetails(c.UserContext(), scope)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ExportReport godoc
// @Summary      Export the drill-down as a PDF audit report
// @Tags         dashboard
// @Produce      application/pdf
// @Param        startDate        query  string  false  "YYYY-MM-DD, inclusive"
// @Param        endDate          query  string  false  "YYYY-MM-DD, inclusive"
// @Param        baseId           query  string  false  "restrict to one base"
// @Param        equipmentTypeId  query  string  false  "restrict to one equipment type"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/movement-details/export [get]
func (h *DashboardHandler) ExportReport(c *fiber.Ctx) error {
	scope, ok, err := h.parseScope(c)
	if !ok {
		return err
	}
	pdfBytes, filename, err := h.reportUC.Export(c.UserContext(), scope)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// parseScope parses and validates the filter query params. When ok is false
// the returned error is the already-written HTTP response.
func (h *DashboardHandler) parseScope(c *fiber.Ctx) (domledger.FilterScope, bool, error) {
	var scope domledger.FilterScope
	var q dto.DashboardQuery
	if err := c.QueryParser(&q); err != nil {
		return scope, false, badBody(c)
	}
	if err := validate.Struct(q); err != nil {
		return scope, false, badValidation(c, err)
	}
	scope, err := appledger.ParseScope(q)
	if err != nil {
		return scope, false, respondDomainError(c, err)
	}
	return scope, true, nil
}
