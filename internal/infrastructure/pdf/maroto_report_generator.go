// Package pdf renders the net-movement audit report with Maroto v2.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Report title  │  Scope (dates, base, type)          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  METRICS: Opening / Net / Expended / Closing / Assigned      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Purchases (date, type, base, qty)                    │
//	│  TABLE: Transfers In (date, type, from, qty)                 │
//	│  TABLE: Transfers Out (date, type, to, qty)                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: generated-at stamp                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/application/reports"
	domledger "github.com/seshu362/kristalball-backend/internal/domain/ledger"
)

var (
	colorPrimary = &props.Color{Red: 27, Green: 54, Blue: 93}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.MovementReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implements reports.MovementReportGenerator.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator builds the generator.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMovementReport renders the report and returns its bytes.
func (g *MarotoReportGenerator) GenerateMovementReport(
	_ context.Context,
	scope domledger.FilterScope,
	summary *dto.DashboardSummaryResponse,
	details *dto.MovementDetailsResponse,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Net Movement Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(scope))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metricsRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	addSection(m, "PURCHASES", "Base", purchaseLines(details.Purchases))
	addSection(m, "TRANSFERS IN", "From", transferLines(details.TransfersIn, true))
	addSection(m, "TRANSFERS OUT", "To", transferLines(details.TransfersOut, false))
	if len(details.Pending) > 0 {
		addSection(m, "PENDING TRANSFERS (not counted)", "Route", pendingLines(details.Pending))
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Generated "+generatedAt.Format("2006-01-02 15:04:05 MST"), props.Text{
			Size: 7, Color: colorGray, Top: 1, Align: align.Right,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// tableLine is one rendered row: date, type, counterparty, quantity.
type tableLine struct {
	date     string
	typeName string
	party    string
	qty      int64
}

func headerRow(scope domledger.FilterScope) core.Row {
	period := "All dates"
	if scope.StartDate != nil || scope.EndDate != nil {
		from, to := "…", "…"
		if scope.StartDate != nil {
			from = scope.StartDate.Format("2006-01-02")
		}
		if scope.EndDate != nil {
			to = scope.EndDate.Format("2006-01-02")
		}
		period = from + " to " + to
	}
	scopeLine := "Base: " + orAll(scope.BaseID) + "   |   Equipment type: " + orAll(scope.EquipmentTypeID)

	return row.New(18).Add(
		col.New(7).Add(
			text.New("NET MOVEMENT REPORT", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(scopeLine, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Period", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{Size: 10, Align: align.Right, Top: 7}),
		),
	)
}

func metricsRow(s *dto.DashboardSummaryResponse) core.Row {
	metric := func(label string, value int64) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(strconv.FormatInt(value, 10), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 6,
			}),
		)
	}
	return row.New(16).Add(
		col.New(1),
		metric("Opening", s.OpeningBalance),
		metric("Net Movement", s.NetMovement),
		metric("Expended", s.ExpendedAssets),
		metric("Closing", s.ClosingBalance),
		metric("Assigned", s.AssignedAssets),
		col.New(1),
	)
}

func addSection(m core.Maroto, title, partyHeader string, lines []tableLine) {
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	)))
	m.AddRows(tableHeaderRow(partyHeader))
	if len(lines) == 0 {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("(none)", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
		)))
		return
	}
	for _, l := range lines {
		m.AddRows(row.New(6).Add(
			col.New(2).Add(text.New(l.date, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(l.typeName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(l.party, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.FormatInt(l.qty, 10), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 2,
			})),
		))
	}
}

func tableHeaderRow(partyHeader string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 2,
		}))
	}
	return row.New(6).Add(
		h("Date", 2, align.Left),
		h("Equipment Type", 5, align.Left),
		h(partyHeader, 3, align.Left),
		h("Qty", 2, align.Right),
	)
}

func purchaseLines(items []dto.MovementPurchaseItem) []tableLine {
	lines := make([]tableLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, tableLine{it.PurchaseDate, it.TypeName, it.BaseName, it.Quantity})
	}
	return lines
}

func transferLines(items []dto.MovementTransferItem, in bool) []tableLine {
	lines := make([]tableLine, 0, len(items))
	for _, it := range items {
		party := it.SourceBase
		if !in {
			party = it.DestinationBase
		}
		lines = append(lines, tableLine{it.TransferDate, it.TypeName, party, it.Quantity})
	}
	return lines
}

func pendingLines(items []dto.MovementTransferItem) []tableLine {
	lines := make([]tableLine, 0, len(items))
	for _, it := range items {
		route := it.SourceBase + " → " + it.DestinationBase
		lines = append(lines, tableLine{it.TransferDate, it.TypeName, route, it.Quantity})
	}
	return lines
}

func orAll(s string) string {
	if s == "" {
		return "All"
	}
	return s
}
