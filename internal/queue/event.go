// Package queue defines message payloads exchanged over the message broker.
package queue

// Kinds of reservation events published after a successful transaction.
const (
    EventReservationCreated = "reservation.created"
    EventReservationUpdated = "reservation.updated"
    EventReservationDeleted = "reservation.deleted"
)

// SupplySummary summarises one supply line of a reservation for
// downstream consumers.
type SupplySummary struct {
    SupplyItemID uint64 `json:"supply_item_id"`
    Quantity     int64  `json:"quantity"`
}

// ReservationEvent is published after a reservation is created, updated
// or deleted. It contains enough information for downstream consumers
// to log, notify, or trigger analytics without querying the primary
// database.
type ReservationEvent struct {
    Kind           string          `json:"kind"`
    ReservationID  uint64          `json:"reservation_id"`
    UserID         uint64          `json:"user_id"`
    LabID          uint64          `json:"lab_id"`
    LabName        string          `json:"lab_name"`
    GroupID        uint64          `json:"group_id"`
    GroupName      string          `json:"group_name"`
    InstructorID   uint64          `json:"instructor_id"`
    InstructorName string          `json:"instructor_name"`
    StartsAt       string          `json:"starts_at"`
    EndsAt         string          `json:"ends_at"`
    Supplies       []SupplySummary `json:"supplies,omitempty"`
    OccurredAt     string          `json:"occurred_at"`
}
