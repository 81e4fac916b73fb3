// Package assetops contains the assignment/expenditure lifecycle tracker:
// handing assets to personnel, taking them back, and recording consumed
// stock against the ledger.
package assetops

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seshu362/kristalball-backend/internal/application/auth"
	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/application/ports"
	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// AssignmentUseCase creates and closes asset assignments.
// An asset can hold at most one active assignment; the check and the insert
// run under a row lock on the asset so concurrent assigns serialize.
type AssignmentUseCase struct {
	txRunner ports.TxRunner
	policy   auth.Policy
	baseRepo repository.BaseRepository
	userRepo repository.UserRepository
	listRepo repository.AssignmentRepository
}

// NewAssignmentUseCase builds the use case.
func NewAssignmentUseCase(
	txRunner ports.TxRunner,
	policy auth.Policy,
	baseRepo repository.BaseRepository,
	userRepo repository.UserRepository,
	listRepo repository.AssignmentRepository,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		txRunner: txRunner,
		policy:   policy,
		baseRepo: baseRepo,
		userRepo: userRepo,
		listRepo: listRepo,
	}
}

// Assign creates an active assignment for an asset. Fails with
// AssetAlreadyAssigned when an active assignment already exists.
func (uc *AssignmentUseCase) Assign(ctx context.Context, actorRole, actorID string, in dto.CreateAssignmentRequest) (*entity.Assignment, error) {
	if !uc.policy.Allow(actorRole, auth.ActionCreateAssignment) {
		return nil, domain.ErrPermissionDenied
	}
	assignmentDate, err := time.Parse(dateLayout, in.AssignmentDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var expectedReturn *time.Time
	if in.ExpectedReturnDate != "" {
		t, err := time.Parse(dateLayout, in.ExpectedReturnDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		expectedReturn = &t
	}

	ok, err := uc.baseRepo.Exists(in.BaseOfAssignmentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnknownReference
	}
	assignee, err := uc.userRepo.GetByID(in.AssignedToUserID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	assignment := &entity.Assignment{
		ID:                 uuid.New().String(),
		AssetID:            in.AssetID,
		AssignedToUserID:   in.AssignedToUserID,
		AssignmentDate:     assignmentDate,
		BaseOfAssignmentID: in.BaseOfAssignmentID,
		Purpose:            in.Purpose,
		ExpectedReturnDate: expectedReturn,
		IsActive:           true,
		RecordedBy:         actorID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = uc.txRunner.Run(ctx, func(tx ports.TxRepos) error {
		// Lock the asset row so two concurrent assigns on the same asset
		// cannot both pass the active-assignment check.
		asset, err := tx.Assets.GetForUpdate(in.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrNotFound
		}
		if asset.Status == entity.AssetStatusExpended {
			return domain.ErrInvalidInput
		}
		active, err := tx.Assignments.GetActiveByAsset(in.AssetID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrAssetAlreadyAssigned
		}
		return tx.Assignments.Create(assignment)
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// Return closes an active assignment. Fails with NotActive when the
// assignment has already been returned.
func (uc *AssignmentUseCase) Return(ctx context.Context, actorRole, assignmentID string, in dto.ReturnAssignmentRequest) (*entity.Assignment, error) {
	if !uc.policy.Allow(actorRole, auth.ActionReturnAssignment) {
		return nil, domain.ErrPermissionDenied
	}
	returnDate := time.Now()
	if in.ReturnDate != "" {
		t, err := time.Parse(dateLayout, in.ReturnDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		returnDate = t
	}

	var returned *entity.Assignment
	err := uc.txRunner.Run(ctx, func(tx ports.TxRepos) error {
		assignment, err := tx.Assignments.GetForUpdate(assignmentID)
		if err != nil {
			return err
		}
		if assignment == nil {
			return domain.ErrNotFound
		}
		if !assignment.IsActive {
			return domain.ErrNotActive
		}
		if err := tx.Assignments.SetReturned(assignmentID, returnDate); err != nil {
			return err
		}
		assignment.IsActive = false
		assignment.ReturnedDate = &returnDate
		returned = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return returned, nil
}

// List returns assignment rows for display.
func (uc *AssignmentUseCase) List(baseID string, activeOnly bool, limit, offset int) ([]dto.AssignmentListItem, error) {
	rows, err := uc.listRepo.List(baseID, activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssignmentListItem, 0, len(rows))
	for _, r := range rows {
		item := dto.AssignmentListItem{
			AssignmentID:   r.AssignmentID,
			AssignmentDate: r.AssignmentDate.Format(dateLayout),
			AssignedTo:     r.AssignedTo,
			BaseName:       r.BaseName,
			ModelName:      r.ModelName,
			SerialNumber:   r.SerialNumber,
			Purpose:        r.Purpose,
			IsActive:       r.IsActive,
			RecordedBy:     r.RecordedBy,
		}
		if r.ExpectedReturnDate != nil {
			item.ExpectedReturnDate = r.ExpectedReturnDate.Format(dateLayout)
		}
		items = append(items, item)
	}
	return items, nil
}
