package service

import (
    "context"
    "errors"
    "strings"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
    "github.com/christianq-alva/laboratorios-sub000/internal/repository"
)

// InitialStockInput seeds one lab's opening balance when a supply item
// is created.
type InitialStockInput struct {
    LabID    uint64
    Quantity int64
}

// SupplyItemInput carries the fields of a new catalog entry plus any
// opening balances to seed.
type SupplyItemInput struct {
    Name         string
    Description  string
    Unit         string
    InitialStock []InitialStockInput
}

// SupplyService owns the ledger operations that run outside a
// reservation: catalog creation with seeded opening balances, and
// manual restocks.
type SupplyService struct {
    uow repository.UnitOfWork
}

// NewSupplyService builds the supply-side service.
func NewSupplyService(uow repository.UnitOfWork) *SupplyService {
    if uow == nil {
        panic("nil unit of work passed to NewSupplyService")
    }
    return &SupplyService{uow: uow}
}

// CreateItem inserts a supply item and credits each seeded balance as
// an "initial stock" ledger entry, all in one transaction.  Seeding
// into a lab outside the caller's scope is rejected.
func (s *SupplyService) CreateItem(ctx context.Context, caller Caller, in SupplyItemInput) (*model.SupplyItem, error) {
    name := strings.TrimSpace(in.Name)
    if name == "" {
        return nil, validationErrorf("name is required")
    }
    unit := strings.TrimSpace(in.Unit)
    if unit == "" {
        unit = "unit"
    }
    for _, seed := range in.InitialStock {
        if seed.LabID == 0 || seed.Quantity <= 0 {
            return nil, validationErrorf("initial stock entries need a lab_id and a positive quantity")
        }
        if !caller.Scope.Allows(seed.LabID) {
            return nil, forbiddenErrorf("lab %d is outside your assigned labs", seed.LabID)
        }
    }
    item := &model.SupplyItem{Name: name, Description: in.Description, Unit: unit}
    err := s.uow.Do(ctx, func(st repository.Store) error {
        if err := st.InsertSupplyItem(ctx, item); err != nil {
            return err
        }
        for _, seed := range in.InitialStock {
            if _, err := st.LabByID(ctx, seed.LabID); err != nil {
                return refError(err)
            }
            if err := credit(ctx, st, item.ID, seed.LabID, seed.Quantity, caller.UserID, nil, NoteInitialStock); err != nil {
                return err
            }
        }
        return nil
    })
    if err != nil {
        return nil, err
    }
    return item, nil
}

// AddStock credits a quantity of an item into a lab as a manual entry.
func (s *SupplyService) AddStock(ctx context.Context, caller Caller, labID, itemID uint64, qty int64, note string) error {
    if qty <= 0 {
        return validationErrorf("quantity must be positive")
    }
    if !caller.Scope.Allows(labID) {
        return forbiddenErrorf("lab %d is outside your assigned labs", labID)
    }
    if strings.TrimSpace(note) == "" {
        note = NoteManualEntry
    }
    return s.uow.Do(ctx, func(st repository.Store) error {
        if _, err := st.LabByID(ctx, labID); err != nil {
            if errors.Is(err, repository.ErrLabNotFound) {
                return notFoundErrorf("lab %d not found", labID)
            }
            return err
        }
        if _, err := st.SupplyItemByID(ctx, itemID); err != nil {
            if errors.Is(err, repository.ErrSupplyItemNotFound) {
                return notFoundErrorf("supply item %d not found", itemID)
            }
            return err
        }
        return credit(ctx, st, itemID, labID, qty, caller.UserID, nil, note)
    })
}
