// Package memstore is an in-memory implementation of the repository ports
// and the transaction runner. It backs the use case tests: the TxRunner
// snapshots the store before running the callback and restores it on error,
// mirroring the rollback guarantee of the PostgreSQL runner.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/seshu362/kristalball-backend/internal/application/ports"
	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

// Store holds every record in memory. Zero value is not usable; call New.
type Store struct {
	mu sync.Mutex

	Bases          map[string]*entity.Base
	EquipmentTypes map[string]*entity.EquipmentType
	Users          map[string]*entity.User
	Assets         map[string]*entity.Asset
	Purchases      []*entity.Purchase
	Transfers      []*entity.Transfer
	Expenditures   []*entity.Expenditure
	Assignments    []*entity.Assignment
	Stock          map[string]*entity.StockLevel // key: baseID + "|" + equipmentTypeID
}

// New builds an empty store.
func New() *Store {
	return &Store{
		Bases:          make(map[string]*entity.Base),
		EquipmentTypes: make(map[string]*entity.EquipmentType),
		Users:          make(map[string]*entity.User),
		Assets:         make(map[string]*entity.Asset),
		Stock:          make(map[string]*entity.StockLevel),
	}
}

// AddBase seeds a base.
func (s *Store) AddBase(id, name string) {
	s.Bases[id] = &entity.Base{ID: id, Name: name}
}

// AddEquipmentType seeds an equipment type.
func (s *Store) AddEquipmentType(id, name string) {
	s.EquipmentTypes[id] = &entity.EquipmentType{ID: id, Name: name}
}

// AddUser seeds a user.
func (s *Store) AddUser(id, fullName, role string) {
	s.Users[id] = &entity.User{ID: id, Username: id, FullName: fullName, Role: role, Status: "active"}
}

// AddAsset seeds an asset.
func (s *Store) AddAsset(id, equipmentTypeID, baseID, status string) {
	s.Assets[id] = &entity.Asset{ID: id, EquipmentTypeID: equipmentTypeID, BaseID: baseID, Status: status}
}

// StockQuantity returns the materialized quantity for a pair (0 when the
// pair has no row).
func (s *Store) StockQuantity(baseID, equipmentTypeID string) int64 {
	if level, ok := s.Stock[baseID+"|"+equipmentTypeID]; ok {
		return level.Quantity
	}
	return 0
}

func (s *Store) snapshot() *Store {
	cp := New()
	for k, v := range s.Bases {
		b := *v
		cp.Bases[k] = &b
	}
	for k, v := range s.EquipmentTypes {
		e := *v
		cp.EquipmentTypes[k] = &e
	}
	for k, v := range s.Users {
		u := *v
		cp.Users[k] = &u
	}
	for k, v := range s.Assets {
		a := *v
		cp.Assets[k] = &a
	}
	for k, v := range s.Stock {
		l := *v
		cp.Stock[k] = &l
	}
	for _, p := range s.Purchases {
		c := *p
		cp.Purchases = append(cp.Purchases, &c)
	}
	for _, t := range s.Transfers {
		c := *t
		cp.Transfers = append(cp.Transfers, &c)
	}
	for _, e := range s.Expenditures {
		c := *e
		cp.Expenditures = append(cp.Expenditures, &c)
	}
	for _, a := range s.Assignments {
		c := *a
		cp.Assignments = append(cp.Assignments, &c)
	}
	return cp
}

func (s *Store) restore(from *Store) {
	s.Bases = from.Bases
	s.EquipmentTypes = from.EquipmentTypes
	s.Users = from.Users
	s.Assets = from.Assets
	s.Stock = from.Stock
	s.Purchases = from.Purchases
	s.Transfers = from.Transfers
	s.Expenditures = from.Expenditures
	s.Assignments = from.Assignments
}

// BaseRepository returns the base catalog repository bound to the store.
func (s *Store) BaseRepository() repository.BaseRepository { return &BaseRepo{s} }

// EquipmentTypeRepository returns the equipment catalog repository.
func (s *Store) EquipmentTypeRepository() repository.EquipmentTypeRepository {
	return &EquipmentTypeRepo{s}
}

// UserRepository returns the user repository bound to the store.
func (s *Store) UserRepository() repository.UserRepository { return &UserRepo{s} }

// Repos returns the repository implementations bound to the store.
func (s *Store) Repos() ports.TxRepos {
	return ports.TxRepos{
		Stock:        &StockRepo{s},
		Purchases:    &PurchaseRepo{s},
		Transfers:    &TransferRepo{s},
		Assignments:  &AssignmentRepo{s},
		Expenditures: &ExpenditureRepo{s},
		Assets:       &AssetRepo{s},
	}
}

// TxRunner implements ports.TxRunner over the store with snapshot rollback.
type TxRunner struct {
	Store *Store
}

var _ ports.TxRunner = (*TxRunner)(nil)

// Run executes fn; on error every store mutation made by fn is undone.
func (r *TxRunner) Run(_ context.Context, fn func(tx ports.TxRepos) error) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()

	before := r.Store.snapshot()
	if err := fn(r.Store.Repos()); err != nil {
		r.Store.restore(before)
		return err
	}
	return nil
}

func matches(filter, value string) bool {
	return filter == "" || filter == value
}

// page applies limit/offset the way the SQL repositories do.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ── Bases / equipment types / users ──

// BaseRepo implements repository.BaseRepository.
type BaseRepo struct{ s *Store }

var _ repository.BaseRepository = (*BaseRepo)(nil)

func (r *BaseRepo) Create(b *entity.Base) error {
	if _, ok := r.s.Bases[b.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.Bases[b.ID] = b
	return nil
}

func (r *BaseRepo) GetByID(id string) (*entity.Base, error) { return r.s.Bases[id], nil }

func (r *BaseRepo) List(limit, offset int) ([]*entity.Base, error) {
	out := make([]*entity.Base, 0, len(r.s.Bases))
	for _, b := range r.s.Bases {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *BaseRepo) Exists(id string) (bool, error) {
	_, ok := r.s.Bases[id]
	return ok, nil
}

// EquipmentTypeRepo implements repository.EquipmentTypeRepository.
type EquipmentTypeRepo struct{ s *Store }

var _ repository.EquipmentTypeRepository = (*EquipmentTypeRepo)(nil)

func (r *EquipmentTypeRepo) Create(et *entity.EquipmentType) error {
	if _, ok := r.s.EquipmentTypes[et.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.EquipmentTypes[et.ID] = et
	return nil
}

func (r *EquipmentTypeRepo) GetByID(id string) (*entity.EquipmentType, error) {
	return r.s.EquipmentTypes[id], nil
}

func (r *EquipmentTypeRepo) List(limit, offset int) ([]*entity.EquipmentType, error) {
	out := make([]*entity.EquipmentType, 0, len(r.s.EquipmentTypes))
	for _, et := range r.s.EquipmentTypes {
		out = append(out, et)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *EquipmentTypeRepo) Exists(id string) (bool, error) {
	_, ok := r.s.EquipmentTypes[id]
	return ok, nil
}

// UserRepo implements repository.UserRepository.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(u *entity.User) error {
	if _, ok := r.s.Users[u.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.Users[u.ID] = u
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) { return r.s.Users[id], nil }

func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.s.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.s.Users))
	for _, u := range r.s.Users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return page(out, limit, offset), nil
}

// ── Assets ──

// AssetRepo implements repository.AssetRepository.
type AssetRepo struct{ s *Store }

var _ repository.AssetRepository = (*AssetRepo)(nil)

func (r *AssetRepo) Create(a *entity.Asset) error {
	if _, ok := r.s.Assets[a.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.Assets[a.ID] = a
	return nil
}

func (r *AssetRepo) GetByID(id string) (*entity.Asset, error)      { return r.s.Assets[id], nil }
func (r *AssetRepo) GetForUpdate(id string) (*entity.Asset, error) { return r.s.Assets[id], nil }

func (r *AssetRepo) List(baseID, equipmentTypeID string, limit, offset int) ([]*entity.Asset, error) {
	return r.ListForLedger(baseID, equipmentTypeID)
}

func (r *AssetRepo) ListForLedger(baseID, equipmentTypeID string) ([]*entity.Asset, error) {
	var out []*entity.Asset
	for _, a := range r.s.Assets {
		if matches(baseID, a.BaseID) && matches(equipmentTypeID, a.EquipmentTypeID) {
			out = append(out, a)
		}
	}
	return out, nil
}

// ── Event repositories ──

// PurchaseRepo implements repository.PurchaseRepository.
type PurchaseRepo struct{ s *Store }

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	r.s.Purchases = append(r.s.Purchases, p)
	return nil
}

func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	for _, p := range r.s.Purchases {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *PurchaseRepo) ListForLedger(baseID, equipmentTypeID string) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.s.Purchases {
		if matches(baseID, p.ReceivingBaseID) && matches(equipmentTypeID, p.EquipmentTypeID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PurchaseRepo) List(baseID, equipmentTypeID string, limit, offset int) ([]repository.PurchaseRow, error) {
	events, _ := r.ListForLedger(baseID, equipmentTypeID)
	out := make([]repository.PurchaseRow, 0, len(events))
	for _, p := range events {
		out = append(out, repository.PurchaseRow{
			PurchaseID:   p.ID,
			PurchaseDate: p.PurchaseDate,
			Quantity:     p.Quantity,
			UnitCost:     p.UnitCost,
			TotalCost:    p.TotalCost,
			RecordedBy:   p.RecordedBy,
		})
	}
	return out, nil
}

// TransferRepo implements repository.TransferRepository.
type TransferRepo struct{ s *Store }

var _ repository.TransferRepository = (*TransferRepo)(nil)

func (r *TransferRepo) Create(t *entity.Transfer) error {
	r.s.Transfers = append(r.s.Transfers, t)
	return nil
}

func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	for _, t := range r.s.Transfers {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) { return r.GetByID(id) }

func (r *TransferRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	t, _ := r.GetByID(id)
	if t == nil {
		return domain.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = updatedAt
	return nil
}

func (r *TransferRepo) ListForLedger(baseID, equipmentTypeID string) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, t := range r.s.Transfers {
		touchesBase := baseID == "" || t.SourceBaseID == baseID || t.DestinationBaseID == baseID
		if touchesBase && matches(equipmentTypeID, t.EquipmentTypeID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TransferRepo) List(baseID, equipmentTypeID string, limit, offset int) ([]repository.TransferRow, error) {
	events, _ := r.ListForLedger(baseID, equipmentTypeID)
	out := make([]repository.TransferRow, 0, len(events))
	for _, t := range events {
		out = append(out, repository.TransferRow{
			TransferID:   t.ID,
			TransferDate: t.TransferDate,
			Quantity:     t.Quantity,
			Status:       t.Status,
			InitiatedBy:  t.InitiatedBy,
		})
	}
	return out, nil
}

// AssignmentRepo implements repository.AssignmentRepository.
type AssignmentRepo struct{ s *Store }

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

func (r *AssignmentRepo) Create(a *entity.Assignment) error {
	r.s.Assignments = append(r.s.Assignments, a)
	return nil
}

func (r *AssignmentRepo) GetByID(id string) (*entity.Assignment, error) {
	for _, a := range r.s.Assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *AssignmentRepo) GetForUpdate(id string) (*entity.Assignment, error) { return r.GetByID(id) }

func (r *AssignmentRepo) GetActiveByAsset(assetID string) (*entity.Assignment, error) {
	for _, a := range r.s.Assignments {
		if a.AssetID == assetID && a.IsActive {
			return a, nil
		}
	}
	return nil, nil
}

func (r *AssignmentRepo) SetReturned(id string, returnedDate time.Time) error {
	a, _ := r.GetByID(id)
	if a == nil {
		return domain.ErrNotFound
	}
	a.IsActive = false
	a.ReturnedDate = &returnedDate
	return nil
}

func (r *AssignmentRepo) ListForLedger(baseID, equipmentTypeID string) ([]*entity.Assignment, error) {
	var out []*entity.Assignment
	for _, a := range r.s.Assignments {
		if !matches(baseID, a.BaseOfAssignmentID) {
			continue
		}
		if equipmentTypeID != "" {
			asset, ok := r.s.Assets[a.AssetID]
			if !ok || asset.EquipmentTypeID != equipmentTypeID {
				continue
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *AssignmentRepo) List(baseID string, activeOnly bool, limit, offset int) ([]repository.AssignmentRow, error) {
	var out []repository.AssignmentRow
	for _, a := range r.s.Assignments {
		if !matches(baseID, a.BaseOfAssignmentID) || (activeOnly && !a.IsActive) {
			continue
		}
		out = append(out, repository.AssignmentRow{
			AssignmentID:   a.ID,
			AssignmentDate: a.AssignmentDate,
			IsActive:       a.IsActive,
			RecordedBy:     a.RecordedBy,
		})
	}
	return out, nil
}

// ExpenditureRepo implements repository.ExpenditureRepository.
type ExpenditureRepo struct{ s *Store }

var _ repository.ExpenditureRepository = (*ExpenditureRepo)(nil)

func (r *ExpenditureRepo) Create(e *entity.Expenditure) error {
	r.s.Expenditures = append(r.s.Expenditures, e)
	return nil
}

func (r *ExpenditureRepo) ListForLedger(baseID, equipmentTypeID string) ([]*entity.Expenditure, error) {
	var out []*entity.Expenditure
	for _, e := range r.s.Expenditures {
		if matches(baseID, e.BaseID) && matches(equipmentTypeID, e.EquipmentTypeID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *ExpenditureRepo) List(baseID, equipmentTypeID string, limit, offset int) ([]repository.ExpenditureRow, error) {
	events, _ := r.ListForLedger(baseID, equipmentTypeID)
	out := make([]repository.ExpenditureRow, 0, len(events))
	for _, e := range events {
		out = append(out, repository.ExpenditureRow{
			ExpenditureID:    e.ID,
			ExpenditureDate:  e.ExpenditureDate,
			QuantityExpended: e.QuantityExpended,
			Reason:           e.Reason,
			ReportedBy:       e.ReportedBy,
		})
	}
	return out, nil
}

// ── Stock ──

// StockRepo implements repository.StockLevelRepository.
type StockRepo struct{ s *Store }

var _ repository.StockLevelRepository = (*StockRepo)(nil)

func (r *StockRepo) Get(baseID, equipmentTypeID string) (*entity.StockLevel, error) {
	return r.s.Stock[baseID+"|"+equipmentTypeID], nil
}

func (r *StockRepo) GetForUpdate(baseID, equipmentTypeID string) (*entity.StockLevel, error) {
	key := baseID + "|" + equipmentTypeID
	if level, ok := r.s.Stock[key]; ok {
		return level, nil
	}
	level := &entity.StockLevel{BaseID: baseID, EquipmentTypeID: equipmentTypeID}
	r.s.Stock[key] = level
	return level, nil
}

func (r *StockRepo) Upsert(level *entity.StockLevel) error {
	r.s.Stock[level.BaseID+"|"+level.EquipmentTypeID] = level
	return nil
}
