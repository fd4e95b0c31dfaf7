// Package service implements the reservation engine: conflict
// detection over time intervals and the coupled reservation/inventory
// transaction.  Handlers translate the typed errors declared here into
// HTTP responses; every error carries a stable kind tag plus enough
// structured detail to render a precise message without a follow-up
// query.
package service

import "fmt"

// Error kinds.  Terminal for the current request; nothing is retried
// internally.
const (
    KindValidation        = "validation_error"
    KindConflict          = "conflict"
    KindForbidden         = "forbidden"
    KindNotFound          = "not_found"
    KindInsufficientStock = "insufficient_stock"
)

// Error is the engine's failure type.  Kind is one of the Kind*
// constants; Conflict and Stock are populated only for their
// respective kinds.
type Error struct {
    Kind     string
    Message  string
    Conflict *ConflictDetail
    Stock    *StockDetail
}

func (e *Error) Error() string { return e.Message }

// ConflictDetail describes the existing booking that blocks a
// candidate interval.  Resource is "room" when the overlap was found
// on the lab and "instructor" when found on the instructor's own
// calendar; Counterpart names the other contended party (the
// instructor booked in the room, or the room the instructor is in).
type ConflictDetail struct {
    Resource      string `json:"kind"`
    ReservationID uint64 `json:"reservation_id"`
    StartsAt      string `json:"starts_at"`
    EndsAt        string `json:"ends_at"`
    Counterpart   string `json:"counterpart"`
}

// StockDetail names the supply item and lab whose balance could not
// cover a requested quantity.
type StockDetail struct {
    SupplyItemID uint64 `json:"supply_item_id"`
    ItemName     string `json:"item_name"`
    LabID        uint64 `json:"lab_id"`
    LabName      string `json:"lab_name"`
    Requested    int64  `json:"requested"`
    Available    int64  `json:"available"`
}

func validationErrorf(format string, args ...any) *Error {
    return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func forbiddenErrorf(format string, args ...any) *Error {
    return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func notFoundErrorf(format string, args ...any) *Error {
    return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflictError(d *ConflictDetail) *Error {
    noun := "lab"
    if d.Resource == ResourceInstructor {
        noun = "instructor"
    }
    return &Error{
        Kind:     KindConflict,
        Message:  fmt.Sprintf("%s already booked from %s to %s (%s)", noun, d.StartsAt, d.EndsAt, d.Counterpart),
        Conflict: d,
    }
}

func insufficientStockError(d *StockDetail) *Error {
    return &Error{
        Kind: KindInsufficientStock,
        Message: fmt.Sprintf("insufficient stock of %q in lab %q: requested %d, available %d",
            d.ItemName, d.LabName, d.Requested, d.Available),
        Stock: d,
    }
}
