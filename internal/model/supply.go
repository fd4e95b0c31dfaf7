package model

import "time"

// Movement directions recorded in stock_movements.direction.  ENTRY
// increases a balance (restock, initial stock, reversal of a
// consumption); CONSUMPTION decreases it (supplies committed to a
// reservation).
const (
    MovementEntry       = "ENTRY"
    MovementConsumption = "CONSUMPTION"
)

// SupplyItem is a catalog entry for a consumable kept in labs (beakers,
// reagents, gloves...).  The catalog itself is managed outside this
// engine except that creating an item may seed initial per-lab balances
// through the inventory ledger.
type SupplyItem struct {
    ID          uint64    // supply_items.id
    Name        string    // supply_items.name
    Description string    // supply_items.description
    Unit        string    // supply_items.unit (e.g. "unit", "ml", "box")
    CreatedAt   time.Time // supply_items.created_at
}

// InventoryBalance is the current quantity of one supply item available
// in one lab.  Keyed by (supply item, lab).  Balances are only ever
// mutated through ledger debit/credit operations so that every change
// has a matching StockMovement.
type InventoryBalance struct {
    SupplyItemID uint64 // inventory_balances.supply_item_id
    LabID        uint64 // inventory_balances.lab_id
    Quantity     int64  // inventory_balances.quantity
}

// StockMovement is an immutable audit record of one balance change.
// Rows are appended by the ledger and never updated or deleted.
//
// ReservationID links the movement to the reservation whose lifecycle
// caused it; it is nil for manual entries and initial stock.
type StockMovement struct {
    ID            uint64    // stock_movements.id
    SupplyItemID  uint64    // stock_movements.supply_item_id
    LabID         uint64    // stock_movements.lab_id
    UserID        uint64    // stock_movements.user_id (acting user)
    Direction     string    // stock_movements.direction (ENTRY|CONSUMPTION)
    Quantity      int64     // stock_movements.quantity (always positive)
    ReservationID *uint64   // stock_movements.reservation_id (nullable)
    Note          string    // stock_movements.note
    CreatedAt     time.Time // stock_movements.created_at
}
