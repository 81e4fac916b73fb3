// Package ledger (application) loads event snapshots and drives the pure
// aggregation core for the dashboard and the net-movement drill-down.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/domain"
	domledger "github.com/seshu362/kristalball-backend/internal/domain/ledger"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase computes dashboard summaries and movement drill-downs.
// All operations are read-only over a snapshot; safe to call concurrently.
type UseCase struct {
	baseRepo        repository.BaseRepository
	equipmentRepo   repository.EquipmentTypeRepository
	purchaseRepo    repository.PurchaseRepository
	transferRepo    repository.TransferRepository
	expenditureRepo repository.ExpenditureRepository
	assignmentRepo  repository.AssignmentRepository
	assetRepo       repository.AssetRepository
}

// NewUseCase builds the ledger use case.
func NewUseCase(
	baseRepo repository.BaseRepository,
	equipmentRepo repository.EquipmentTypeRepository,
	purchaseRepo repository.PurchaseRepository,
	transferRepo repository.TransferRepository,
	expenditureRepo repository.ExpenditureRepository,
	assignmentRepo repository.AssignmentRepository,
	assetRepo repository.AssetRepository,
) *UseCase {
	return &UseCase{
		baseRepo:        baseRepo,
		equipmentRepo:   equipmentRepo,
		purchaseRepo:    purchaseRepo,
		transferRepo:    transferRepo,
		expenditureRepo: expenditureRepo,
		assignmentRepo:  assignmentRepo,
		assetRepo:       assetRepo,
	}
}

// ParseScope turns raw query params into a validated FilterScope.
// The end date is widened to the end of its day so events carrying a
// time-of-day component on the boundary date stay inclusive.
func ParseScope(q dto.DashboardQuery) (domledger.FilterScope, error) {
	var scope domledger.FilterScope
	if q.StartDate != "" {
		t, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return scope, domain.ErrInvalidInput
		}
		scope.StartDate = &t
	}
	if q.EndDate != "" {
		t, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return scope, domain.ErrInvalidInput
		}
		eod := t.Add(24*time.Hour - time.Nanosecond)
		scope.EndDate = &eod
	}
	scope.BaseID = q.BaseID
	scope.EquipmentTypeID = q.EquipmentTypeID
	if err := scope.Validate(); err != nil {
		return scope, err
	}
	return scope, nil
}

// GetSummary validates the scope's references, loads the event snapshot and
// computes the five reconciled metrics.
func (uc *UseCase) GetSummary(ctx context.Context, scope domledger.FilterScope) (*dto.DashboardSummaryResponse, error) {
	if err := uc.checkReferences(scope); err != nil {
		return nil, err
	}
	events, err := uc.loadEvents(ctx, scope)
	if err != nil {
		return nil, err
	}
	sum, err := domledger.ComputeSummary(scope, events)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummaryResponse{
		OpeningBalance: sum.OpeningBalance,
		ClosingBalance: sum.ClosingBalance,
		NetMovement:    sum.NetMovement,
		AssignedAssets: sum.AssignedAssets,
		ExpendedAssets: sum.ExpendedAssets,
	}, nil
}

// GetMovementDetails returns the itemized transactions behind the scope's
// net movement, with base and equipment names resolved for display.
func (uc *UseCase) GetMovementDetails(ctx context.Context, scope domledger.FilterScope) (*dto.MovementDetailsResponse, error) {
	if err := uc.checkReferences(scope); err != nil {
		return nil, err
	}
	events, err := uc.loadEvents(ctx, scope)
	if err != nil {
		return nil, err
	}
	details, err := domledger.ResolveMovementDetails(scope, events)
	if err != nil {
		return nil, err
	}

	baseNames, typeNames, err := uc.referenceNames()
	if err != nil {
		return nil, err
	}

	resp := &dto.MovementDetailsResponse{
		Purchases:    make([]dto.MovementPurchaseItem, 0, len(details.Purchases)),
		TransfersIn:  make([]dto.MovementTransferItem, 0, len(details.TransfersIn)),
		TransfersOut: make([]dto.MovementTransferItem, 0, len(details.TransfersOut)),
	}
	for _, p := range details.Purchases {
		resp.Purchases = append(resp.Purchases, dto.MovementPurchaseItem{
			PurchaseID:   p.ID,
			PurchaseDate: p.PurchaseDate.Format(dateLayout),
			TypeName:     typeNames[p.EquipmentTypeID],
			Quantity:     p.Quantity,
			BaseName:     baseNames[p.ReceivingBaseID],
		})
	}
	for _, t := range details.TransfersIn {
		resp.TransfersIn = append(resp.TransfersIn, dto.MovementTransferItem{
			TransferID:   t.ID,
			TransferDate: t.TransferDate.Format(dateLayout),
			TypeName:     typeNames[t.EquipmentTypeID],
			Quantity:     t.Quantity,
			SourceBase:   baseNames[t.SourceBaseID],
		})
	}
	for _, t := range details.TransfersOut {
		resp.TransfersOut = append(resp.TransfersOut, dto.MovementTransferItem{
			TransferID:      t.ID,
			TransferDate:    t.TransferDate.Format(dateLayout),
			TypeName:        typeNames[t.EquipmentTypeID],
			Quantity:        t.Quantity,
			DestinationBase: baseNames[t.DestinationBaseID],
		})
	}
	for _, t := range details.Pending {
		resp.Pending = append(resp.Pending, dto.MovementTransferItem{
			TransferID:      t.ID,
			TransferDate:    t.TransferDate.Format(dateLayout),
			TypeName:        typeNames[t.EquipmentTypeID],
			Quantity:        t.Quantity,
			SourceBase:      baseNames[t.SourceBaseID],
			DestinationBase: baseNames[t.DestinationBaseID],
			Status:          t.Status,
		})
	}
	return resp, nil
}

// checkReferences rejects scopes that filter on a base or equipment type
// that does not exist, rather than silently aggregating to zeros.
func (uc *UseCase) checkReferences(scope domledger.FilterScope) error {
	if scope.BaseID != "" {
		ok, err := uc.baseRepo.Exists(scope.BaseID)
		if err != nil {
			return fmt.Errorf("check base reference: %w", err)
		}
		if !ok {
			return domain.ErrUnknownReference
		}
	}
	if scope.EquipmentTypeID != "" {
		ok, err := uc.equipmentRepo.Exists(scope.EquipmentTypeID)
		if err != nil {
			return fmt.Errorf("check equipment reference: %w", err)
		}
		if !ok {
			return domain.ErrUnknownReference
		}
	}
	return nil
}

// loadEvents pulls the five event collections in parallel. Base/equipment
// filters are pushed down to the store; date arithmetic stays in the pure
// core so opening balances can replay events before the window.
func (uc *UseCase) loadEvents(ctx context.Context, scope domledger.FilterScope) (domledger.EventSet, error) {
	type result struct {
		apply func(*domledger.EventSet)
		err   error
	}
	ch := make(chan result, 5)

	go func() {
		purchases, err := uc.purchaseRepo.ListForLedger(scope.BaseID, scope.EquipmentTypeID)
		ch <- result{func(e *domledger.EventSet) { e.Purchases = purchases }, err}
	}()
	go func() {
		transfers, err := uc.transferRepo.ListForLedger(scope.BaseID, scope.EquipmentTypeID)
		ch <- result{func(e *domledger.EventSet) { e.Transfers = transfers }, err}
	}()
	go func() {
		expenditures, err := uc.expenditureRepo.ListForLedger(scope.BaseID, scope.EquipmentTypeID)
		ch <- result{func(e *domledger.EventSet) { e.Expenditures = expenditures }, err}
	}()
	go func() {
		assignments, err := uc.assignmentRepo.ListForLedger(scope.BaseID, scope.EquipmentTypeID)
		ch <- result{func(e *domledger.EventSet) { e.Assignments = assignments }, err}
	}()
	go func() {
		assets, err := uc.assetRepo.ListForLedger("", scope.EquipmentTypeID)
		ch <- result{func(e *domledger.EventSet) { e.Assets = assets }, err}
	}()

	var events domledger.EventSet
	for i := 0; i < 5; i++ {
		select {
		case r := <-ch:
			if r.err != nil {
				return domledger.EventSet{}, fmt.Errorf("load ledger events: %w", r.err)
			}
			r.apply(&events)
		case <-ctx.Done():
			return domledger.EventSet{}, ctx.Err()
		}
	}
	return events, nil
}

// referenceNames loads id -> display-name maps for bases and equipment types,
// paging through the catalogs so no row is left nameless.
func (uc *UseCase) referenceNames() (baseNames, typeNames map[string]string, err error) {
	bases, err := listAll(uc.baseRepo.List)
	if err != nil {
		return nil, nil, fmt.Errorf("load bases: %w", err)
	}
	types, err := listAll(uc.equipmentRepo.List)
	if err != nil {
		return nil, nil, fmt.Errorf("load equipment types: %w", err)
	}
	baseNames = make(map[string]string, len(bases))
	for _, b := range bases {
		baseNames[b.ID] = b.Name
	}
	typeNames = make(map[string]string, len(types))
	for _, t := range types {
		typeNames[t.ID] = t.Name
	}
	return baseNames, typeNames, nil
}

const referencePageSize = 1000

// listAll drains a paged List into one slice.
func listAll[T any](list func(limit, offset int) ([]T, error)) ([]T, error) {
	var all []T
	for offset := 0; ; offset += referencePageSize {
		batch, err := list(referencePageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < referencePageSize {
			return all, nil
		}
	}
}
