package service

import (
    "context"
    "time"

    "github.com/christianq-alva/laboratorios-sub000/internal/repository"
)

// Conflict resource tags exposed to callers.
const (
    ResourceRoom       = "room"
    ResourceInstructor = "instructor"
)

// findConflict scans existing reservations for the lab first and, only
// when the lab is free, for the instructor.  It returns the first
// conflicting booking or nil when the slot is free on both resources.
// The room check runs first and short-circuits, so when both resources
// are double-booked the caller hears about the room.
//
// Read-only: safe to run on a plain Store for the advisory availability
// path as well as inside a write transaction.
func findConflict(ctx context.Context, st repository.Store, labID, instructorID uint64, start, end time.Time, excludeID uint64) (*ConflictDetail, error) {
    ov, err := st.FirstLabOverlap(ctx, labID, start, end, excludeID)
    if err != nil {
        return nil, err
    }
    if ov != nil {
        return overlapDetail(ResourceRoom, ov.ReservationID, ov.StartsAt, ov.EndsAt, ov.Counterpart), nil
    }
    ov, err = st.FirstInstructorOverlap(ctx, instructorID, start, end, excludeID)
    if err != nil {
        return nil, err
    }
    if ov != nil {
        return overlapDetail(ResourceInstructor, ov.ReservationID, ov.StartsAt, ov.EndsAt, ov.Counterpart), nil
    }
    return nil, nil
}

func overlapDetail(resource string, id uint64, start, end time.Time, counterpart string) *ConflictDetail {
    return &ConflictDetail{
        Resource:      resource,
        ReservationID: id,
        StartsAt:      start.UTC().Format(time.RFC3339),
        EndsAt:        end.UTC().Format(time.RFC3339),
        Counterpart:   counterpart,
    }
}
