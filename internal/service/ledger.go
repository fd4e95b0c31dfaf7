package service

import (
    "context"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
    "github.com/christianq-alva/laboratorios-sub000/internal/repository"
)

// Ledger movement notes.  Written verbatim into stock_movements.note so
// the audit trail explains every balance change.
const (
    NoteConsumption  = "consumption by reservation"
    NoteEditReturn   = "returned due to edit"
    NoteDeleteReturn = "returned due to deletion"
    NoteInitialStock = "initial stock"
    NoteManualEntry  = "manual stock entry"
)

// checkAvailable reports whether the lab holds at least qty of the
// item.  A missing balance row counts as zero.  This is the only guard
// against overdraw: debit itself never refuses, so callers must always
// check first.
func checkAvailable(ctx context.Context, st repository.Store, itemID, labID uint64, qty int64) (bool, int64, error) {
    balance, err := st.Balance(ctx, itemID, labID)
    if err != nil {
        return false, 0, err
    }
    return balance >= qty, balance, nil
}

// debit decreases the (item, lab) balance by qty and appends a
// CONSUMPTION movement linked to the reservation.  Runs in the caller's
// ambient transaction; it is never committed on its own.
func debit(ctx context.Context, st repository.Store, itemID, labID uint64, qty int64, userID, reservationID uint64, note string) error {
    if err := st.AddToBalance(ctx, itemID, labID, -qty); err != nil {
        return err
    }
    resID := reservationID
    return st.InsertMovement(ctx, &model.StockMovement{
        SupplyItemID:  itemID,
        LabID:         labID,
        UserID:        userID,
        Direction:     model.MovementConsumption,
        Quantity:      qty,
        ReservationID: &resID,
        Note:          note,
    })
}

// credit increases the (item, lab) balance by qty, creating the balance
// row when absent, and appends an ENTRY movement.  reservationID is nil
// for restocks and initial stock.
func credit(ctx context.Context, st repository.Store, itemID, labID uint64, qty int64, userID uint64, reservationID *uint64, note string) error {
    if err := st.AddToBalance(ctx, itemID, labID, qty); err != nil {
        return err
    }
    return st.InsertMovement(ctx, &model.StockMovement{
        SupplyItemID:  itemID,
        LabID:         labID,
        UserID:        userID,
        Direction:     model.MovementEntry,
        Quantity:      qty,
        ReservationID: reservationID,
        Note:          note,
    })
}
