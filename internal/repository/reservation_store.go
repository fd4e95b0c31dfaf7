package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
)

// ReservationByID loads a single reservation.  Returns
// ErrReservationNotFound when the id is unknown.
func (s *sqlStore) ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    const q = `SELECT id, lab_id, instructor_id, group_id, description, starts_at, ends_at,
                      headcount, created_by, created_at, updated_at
               FROM reservations WHERE id = ?`
    var r model.Reservation
    err := s.q.QueryRowContext(ctx, q, id).Scan(
        &r.ID, &r.LabID, &r.InstructorID, &r.GroupID, &r.Description,
        &r.StartsAt, &r.EndsAt, &r.Headcount, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrReservationNotFound
        }
        return nil, err
    }
    return &r, nil
}

// InsertReservation inserts a new reservation row and populates the
// generated id on the passed struct.
func (s *sqlStore) InsertReservation(ctx context.Context, r *model.Reservation) error {
    const q = `INSERT INTO reservations
               (lab_id, instructor_id, group_id, description, starts_at, ends_at, headcount, created_by)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := s.q.ExecContext(ctx, q,
        r.LabID, r.InstructorID, r.GroupID, r.Description,
        r.StartsAt.UTC(), r.EndsAt.UTC(), r.Headcount, r.CreatedBy,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    r.ID = uint64(id)
    return nil
}

// UpdateReservation replaces all mutable fields of a reservation in
// place.  Returns ErrReservationNotFound when the row no longer exists.
func (s *sqlStore) UpdateReservation(ctx context.Context, r *model.Reservation) error {
    const q = `UPDATE reservations
               SET lab_id = ?, instructor_id = ?, group_id = ?, description = ?,
                   starts_at = ?, ends_at = ?, headcount = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := s.q.ExecContext(ctx, q,
        r.LabID, r.InstructorID, r.GroupID, r.Description,
        r.StartsAt.UTC(), r.EndsAt.UTC(), r.Headcount, r.ID,
    )
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    // RowsAffected is zero both when the row is missing and when the
    // update changed nothing; only the former is an error here.
    if n == 0 {
        var id uint64
        if scanErr := s.q.QueryRowContext(ctx, `SELECT id FROM reservations WHERE id = ?`, r.ID).Scan(&id); scanErr != nil {
            if errors.Is(scanErr, sql.ErrNoRows) {
                return ErrReservationNotFound
            }
            return scanErr
        }
    }
    return nil
}

// DeleteReservation removes a reservation row.  Supply lines must be
// deleted first; the schema has no ON DELETE CASCADE so the reversal
// credits cannot be skipped by accident.
func (s *sqlStore) DeleteReservation(ctx context.Context, id uint64) error {
    res, err := s.q.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrReservationNotFound
    }
    return nil
}

// FirstLabOverlap returns the earliest-starting reservation in the lab
// whose [starts_at, ends_at) interval intersects [start, end), joined
// with the instructor name booked on it.  Intervals are half-open, so a
// reservation ending exactly at start does not count.  excludeID skips
// the reservation being edited (zero matches no row).
func (s *sqlStore) FirstLabOverlap(ctx context.Context, labID uint64, start, end time.Time, excludeID uint64) (*model.ReservationOverlap, error) {
    const q = `SELECT r.id, r.starts_at, r.ends_at, i.full_name
               FROM reservations r
               JOIN instructors i ON i.id = r.instructor_id
               WHERE r.lab_id = ? AND r.id <> ? AND r.starts_at < ? AND ? < r.ends_at
               ORDER BY r.starts_at
               LIMIT 1`
    return s.scanOverlap(ctx, q, labID, excludeID, end.UTC(), start.UTC())
}

// FirstInstructorOverlap mirrors FirstLabOverlap for the instructor's
// own calendar, carrying the lab name of the conflicting booking.
func (s *sqlStore) FirstInstructorOverlap(ctx context.Context, instructorID uint64, start, end time.Time, excludeID uint64) (*model.ReservationOverlap, error) {
    const q = `SELECT r.id, r.starts_at, r.ends_at, l.name
               FROM reservations r
               JOIN labs l ON l.id = r.lab_id
               WHERE r.instructor_id = ? AND r.id <> ? AND r.starts_at < ? AND ? < r.ends_at
               ORDER BY r.starts_at
               LIMIT 1`
    return s.scanOverlap(ctx, q, instructorID, excludeID, end.UTC(), start.UTC())
}

func (s *sqlStore) scanOverlap(ctx context.Context, q string, args ...any) (*model.ReservationOverlap, error) {
    var ov model.ReservationOverlap
    err := s.q.QueryRowContext(ctx, q, args...).Scan(&ov.ReservationID, &ov.StartsAt, &ov.EndsAt, &ov.Counterpart)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, nil
        }
        return nil, err
    }
    return &ov, nil
}
