package assetops_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seshu362/kristalball-backend/internal/application/assetops"
	"github.com/seshu362/kristalball-backend/internal/application/auth"
	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/application/memstore"
	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
)

func newAssignmentFixture() (*memstore.Store, *assetops.AssignmentUseCase) {
	store := memstore.New()
	store.AddBase("base-a", "Fort North")
	store.AddUser("soldier-1", "Pat Miller", entity.RoleBaseCommander)
	store.AddAsset("asset-1", "rifle", "base-a", entity.AssetStatusActive)
	store.AddAsset("asset-burned", "rifle", "base-a", entity.AssetStatusExpended)

	uc := assetops.NewAssignmentUseCase(
		&memstore.TxRunner{Store: store},
		auth.NewRolePolicy(),
		store.BaseRepository(),
		store.UserRepository(),
		store.Repos().Assignments,
	)
	return store, uc
}

func assignmentRequest() dto.CreateAssignmentRequest {
	return dto.CreateAssignmentRequest{
		AssetID:            "asset-1",
		AssignedToUserID:   "soldier-1",
		AssignmentDate:     "2025-03-01",
		BaseOfAssignmentID: "base-a",
		Purpose:            "patrol",
	}
}

func TestAssign_CreatesActiveAssignment(t *testing.T) {
	store, uc := newAssignmentFixture()

	a, err := uc.Assign(context.Background(), entity.RoleBaseCommander, "user-1", assignmentRequest())
	require.NoError(t, err)

	assert.True(t, a.IsActive)
	assert.Nil(t, a.ReturnedDate)
	assert.Equal(t, "user-1", a.RecordedBy)
	require.Len(t, store.Assignments, 1)
}

func TestAssign_SecondActiveAssignmentRejected(t *testing.T) {
	store, uc := newAssignmentFixture()

	_, err := uc.Assign(context.Background(), entity.RoleBaseCommander, "user-1", assignmentRequest())
	require.NoError(t, err)

	_, err = uc.Assign(context.Background(), entity.RoleBaseCommander, "user-1", assignmentRequest())
	assert.ErrorIs(t, err, domain.ErrAssetAlreadyAssigned)
	assert.Len(t, store.Assignments, 1, "second record never created")
}

// Returning closes the record; re-assigning afterwards creates a fresh one
// rather than reviving the old record.
func TestAssign_ReassignAfterReturn(t *testing.T) {
	store, uc := newAssignmentFixture()

	first, err := uc.Assign(context.Background(), entity.RoleBaseCommander, "user-1", assignmentRequest())
	require.NoError(t, err)

	returned, err := uc.Return(context.Background(), entity.RoleBaseCommander, first.ID, dto.ReturnAssignmentRequest{ReturnDate: "2025-03-05"})
	require.NoError(t, err)
	assert.False(t, returned.IsActive)
	require.NotNil(t, returned.ReturnedDate)
	assert.Equal(t, "2025-03-05", returned.ReturnedDate.Format("2006-01-02"))

	second, err := uc.Assign(context.Background(), entity.RoleBaseCommander, "user-1", assignmentRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, store.Assignments, 2)
}

func TestReturn_AlreadyReturned(t *testing.T) {
	_, uc := newAssignmentFixture()

	a, err := uc.Assign(context.Background(), entity.RoleBaseCommander, "user-1", assignmentRequest())
	require.NoError(t, err)

	_, err = uc.Return(context.Background(), entity.RoleBaseCommander, a.ID, dto.ReturnAssignmentRequest{})
	require.NoError(t, err)

	_, err = uc.Return(context.Background(), entity.RoleBaseCommander, a.ID, dto.ReturnAssignmentRequest{})
	assert.ErrorIs(t, err, domain.ErrNotActive, "the return transition is terminal")
}

func TestReturn_UnknownAssignment(t *testing.T) {
	_, uc := newAssignmentFixture()

	_, err := uc.Return(context.Background(), entity.RoleBaseCommander, "missing", dto.ReturnAssignmentRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssign_ExpendedAssetRejected(t *testing.T) {
	_, uc := newAssignmentFixture()

	in := assignmentRequest()
	in.AssetID = "asset-burned"
	_, err := uc.Assign(context.Background(), entity.RoleBaseCommander, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssign_UnknownAsset(t *testing.T) {
	_, uc := newAssignmentFixture()

	in := assignmentRequest()
	in.AssetID = "missing"
	_, err := uc.Assign(context.Background(), entity.RoleBaseCommander, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssign_UnknownAssignee(t *testing.T) {
	_, uc := newAssignmentFixture()

	in := assignmentRequest()
	in.AssignedToUserID = "missing"
	_, err := uc.Assign(context.Background(), entity.RoleBaseCommander, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssign_RoleDenied(t *testing.T) {
	_, uc := newAssignmentFixture()

	_, err := uc.Assign(context.Background(), entity.RoleLogisticsOfficer, "user-1", assignmentRequest())
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}
