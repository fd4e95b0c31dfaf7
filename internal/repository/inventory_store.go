package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
)

// SupplyLines returns all supply lines attached to a reservation,
// ordered by supply item for deterministic output.
func (s *sqlStore) SupplyLines(ctx context.Context, reservationID uint64) ([]model.ReservationSupply, error) {
    const q = `SELECT id, reservation_id, supply_item_id, quantity
               FROM reservation_supplies
               WHERE reservation_id = ?
               ORDER BY supply_item_id`
    rows, err := s.q.QueryContext(ctx, q, reservationID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var lines []model.ReservationSupply
    for rows.Next() {
        var line model.ReservationSupply
        if err := rows.Scan(&line.ID, &line.ReservationID, &line.SupplyItemID, &line.Quantity); err != nil {
            return nil, err
        }
        lines = append(lines, line)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return lines, nil
}

// InsertSupplyLine attaches one supply line to a reservation and
// populates the generated id.
func (s *sqlStore) InsertSupplyLine(ctx context.Context, line *model.ReservationSupply) error {
    const q = `INSERT INTO reservation_supplies (reservation_id, supply_item_id, quantity) VALUES (?, ?, ?)`
    res, err := s.q.ExecContext(ctx, q, line.ReservationID, line.SupplyItemID, line.Quantity)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    line.ID = uint64(id)
    return nil
}

// DeleteSupplyLines removes all supply lines of a reservation and
// reports how many rows were deleted.
func (s *sqlStore) DeleteSupplyLines(ctx context.Context, reservationID uint64) (int64, error) {
    res, err := s.q.ExecContext(ctx, `DELETE FROM reservation_supplies WHERE reservation_id = ?`, reservationID)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// InsertSupplyItem creates a catalog row and populates the generated id.
func (s *sqlStore) InsertSupplyItem(ctx context.Context, item *model.SupplyItem) error {
    const q = `INSERT INTO supply_items (name, description, unit) VALUES (?, ?, ?)`
    res, err := s.q.ExecContext(ctx, q, item.Name, item.Description, item.Unit)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    item.ID = uint64(id)
    return nil
}

// Balance reports the current quantity of an item in a lab.  A missing
// balance row reads as zero.  Inside a transaction the row is locked so
// a concurrent debit of the same (item, lab) pair waits its turn.
func (s *sqlStore) Balance(ctx context.Context, itemID, labID uint64) (int64, error) {
    const q = `SELECT quantity FROM inventory_balances
               WHERE supply_item_id = ? AND lab_id = ? FOR UPDATE`
    var qty int64
    err := s.q.QueryRowContext(ctx, q, itemID, labID).Scan(&qty)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, nil
        }
        return 0, err
    }
    return qty, nil
}

// AddToBalance applies a signed delta to a balance, creating the row
// when absent.  Callers are the ledger's debit/credit operations only.
func (s *sqlStore) AddToBalance(ctx context.Context, itemID, labID uint64, delta int64) error {
    const q = `INSERT INTO inventory_balances (supply_item_id, lab_id, quantity)
               VALUES (?, ?, ?)
               ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`
    _, err := s.q.ExecContext(ctx, q, itemID, labID, delta)
    return err
}

// InsertMovement appends one immutable stock movement row.
func (s *sqlStore) InsertMovement(ctx context.Context, m *model.StockMovement) error {
    const q = `INSERT INTO stock_movements
               (supply_item_id, lab_id, user_id, direction, quantity, reservation_id, note)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    var resID sql.NullInt64
    if m.ReservationID != nil {
        resID = sql.NullInt64{Int64: int64(*m.ReservationID), Valid: true}
    }
    res, err := s.q.ExecContext(ctx, q, m.SupplyItemID, m.LabID, m.UserID, m.Direction, m.Quantity, resID, m.Note)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    return nil
}
