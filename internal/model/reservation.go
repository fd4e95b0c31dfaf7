package model

import "time"

// Reservation records the booked use of one lab by one instructor for
// one study group over a contiguous time interval.  Intervals are
// half-open: [StartsAt, EndsAt).  For a fixed lab, committed
// reservations never overlap; likewise for a fixed instructor.
//
// Fields:
//  ID           – primary key identifier.
//  LabID        – lab being used.
//  InstructorID – instructor running the session.
//  GroupID      – study group attending.
//  Description  – free-text purpose of the session.
//  StartsAt     – interval start (inclusive), UTC.
//  EndsAt       – interval end (exclusive), UTC; must be after StartsAt.
//  Headcount    – expected number of attendees.
//  CreatedBy    – user who created the reservation.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Reservation struct {
    ID           uint64    // reservations.id
    LabID        uint64    // reservations.lab_id
    InstructorID uint64    // reservations.instructor_id
    GroupID      uint64    // reservations.group_id
    Description  string    // reservations.description
    StartsAt     time.Time // reservations.starts_at
    EndsAt       time.Time // reservations.ends_at
    Headcount    uint32    // reservations.headcount
    CreatedBy    uint64    // reservations.created_by
    CreatedAt    time.Time // reservations.created_at
    UpdatedAt    time.Time // reservations.updated_at
}

// ReservationOverlap describes an existing reservation whose interval
// intersects a candidate interval.  Counterpart carries the name of the
// other contended resource: when the overlap was found on a lab it is
// the instructor's name, when found on an instructor it is the lab's
// name.  Enough detail for the caller to render a precise message
// without a follow-up query.
type ReservationOverlap struct {
    ReservationID uint64    // conflicting reservations.id
    StartsAt      time.Time // conflicting interval start
    EndsAt        time.Time // conflicting interval end
    Counterpart   string    // instructor name (lab scan) or lab name (instructor scan)
}

// ReservationSupply links a reservation to one supply item and the
// quantity committed to it.  The set of rows for a reservation is owned
// by the reservation: it is replaced wholesale on update and removed on
// delete, after the ledger has credited the quantities back.
type ReservationSupply struct {
    ID            uint64 // reservation_supplies.id
    ReservationID uint64 // reservation_supplies.reservation_id
    SupplyItemID  uint64 // reservation_supplies.supply_item_id
    Quantity      int64  // reservation_supplies.quantity
}
