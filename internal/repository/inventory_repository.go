package repository

import (
    "context"
    "database/sql"
    "time"
)

// InventoryRepo provides read-only browse queries over balances and
// stock movements.  All ledger writes go through the transactional
// Store; this repo only renders what the ledger recorded.
type InventoryRepo struct {
    db *sql.DB
}

// NewInventoryRepo returns an InventoryRepo bound to the given database.
func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// BalanceDetail is one stock line of a lab, joined with the supply item
// catalog for display.
type BalanceDetail struct {
    SupplyItemID uint64 `json:"supply_item_id"`
    ItemName     string `json:"item_name"`
    Unit         string `json:"unit"`
    Quantity     int64  `json:"quantity"`
}

// MovementDetail is one audit row of a lab's stock movement history.
type MovementDetail struct {
    ID            uint64  `json:"id"`
    SupplyItemID  uint64  `json:"supply_item_id"`
    ItemName      string  `json:"item_name"`
    Direction     string  `json:"direction"`
    Quantity      int64   `json:"quantity"`
    ReservationID *uint64 `json:"reservation_id,omitempty"`
    UserID        uint64  `json:"user_id"`
    Note          string  `json:"note"`
    CreatedAt     string  `json:"created_at"`
}

// BalancesByLab lists the current stock of every supply item present in
// a lab, ordered by item name.
func (r *InventoryRepo) BalancesByLab(ctx context.Context, labID uint64) ([]BalanceDetail, error) {
    const q = `SELECT b.supply_item_id, si.name, si.unit, b.quantity
               FROM inventory_balances b
               JOIN supply_items si ON si.id = b.supply_item_id
               WHERE b.lab_id = ?
               ORDER BY si.name`
    rows, err := r.db.QueryContext(ctx, q, labID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]BalanceDetail, 0)
    for rows.Next() {
        var d BalanceDetail
        if err := rows.Scan(&d.SupplyItemID, &d.ItemName, &d.Unit, &d.Quantity); err != nil {
            return nil, err
        }
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}

// MovementsByLab lists a lab's stock movements newest first, capped at
// limit rows (a zero or negative limit defaults to 100).
func (r *InventoryRepo) MovementsByLab(ctx context.Context, labID uint64, limit int) ([]MovementDetail, error) {
    if limit <= 0 {
        limit = 100
    }
    const q = `SELECT m.id, m.supply_item_id, si.name, m.direction, m.quantity,
                      m.reservation_id, m.user_id, m.note, m.created_at
               FROM stock_movements m
               JOIN supply_items si ON si.id = m.supply_item_id
               WHERE m.lab_id = ?
               ORDER BY m.id DESC
               LIMIT ?`
    rows, err := r.db.QueryContext(ctx, q, labID, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]MovementDetail, 0)
    for rows.Next() {
        var (
            d         MovementDetail
            resID     sql.NullInt64
            createdAt time.Time
        )
        if err := rows.Scan(&d.ID, &d.SupplyItemID, &d.ItemName, &d.Direction, &d.Quantity,
            &resID, &d.UserID, &d.Note, &createdAt); err != nil {
            return nil, err
        }
        if resID.Valid {
            id := uint64(resID.Int64)
            d.ReservationID = &id
        }
        d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}
