// Package reports produces exportable audit artifacts from ledger data.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/seshu362/kristalball-backend/internal/application/dto"
	appledger "github.com/seshu362/kristalball-backend/internal/application/ledger"
	domledger "github.com/seshu362/kristalball-backend/internal/domain/ledger"
)

// MovementReportGenerator renders the drill-down data as a PDF document.
// Implemented by internal/infrastructure/pdf.
type MovementReportGenerator interface {
	GenerateMovementReport(
		ctx context.Context,
		scope domledger.FilterScope,
		summary *dto.DashboardSummaryResponse,
		details *dto.MovementDetailsResponse,
		generatedAt time.Time,
	) ([]byte, error)
}

// MovementReportUseCase exports the net-movement drill-down for a scope as a
// PDF audit report, stamped with the summary metrics the line items must
// reconcile to.
type MovementReportUseCase struct {
	ledgerUC  *appledger.UseCase
	generator MovementReportGenerator
}

// NewMovementReportUseCase builds the use case.
func NewMovementReportUseCase(ledgerUC *appledger.UseCase, generator MovementReportGenerator) *MovementReportUseCase {
	return &MovementReportUseCase{ledgerUC: ledgerUC, generator: generator}
}

// Export computes summary and drill-down for the scope and renders the PDF.
// Returns the document bytes and a download filename.
func (uc *MovementReportUseCase) Export(ctx context.Context, scope domledger.FilterScope) ([]byte, string, error) {
	summary, err := uc.ledgerUC.GetSummary(ctx, scope)
	if err != nil {
		return nil, "", err
	}
	details, err := uc.ledgerUC.GetMovementDetails(ctx, scope)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	pdfBytes, err := uc.generator.GenerateMovementReport(ctx, scope, summary, details, now)
	if err != nil {
		return nil, "", fmt.Errorf("report: generate pdf: %w", err)
	}
	filename := fmt.Sprintf("movement-report-%s.pdf", now.Format("20060102-150405"))
	return pdfBytes, filename, nil
}
