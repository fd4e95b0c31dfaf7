package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"
)

// ReservationRepo provides read-only browse queries over reservations
// for the GET endpoints.  All reservation writes run through the
// transactional Store.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ReservationDetail is a reservation joined with the names of its lab,
// instructor, group, school and cycle, plus its supply lines.  Returned
// by GetDetail and List for display to callers.
type ReservationDetail struct {
    ID             uint64             `json:"id"`
    LabID          uint64             `json:"lab_id"`
    LabName        string             `json:"lab_name"`
    InstructorID   uint64             `json:"instructor_id"`
    InstructorName string             `json:"instructor_name"`
    GroupID        uint64             `json:"group_id"`
    GroupName      string             `json:"group_name"`
    SchoolName     string             `json:"school_name"`
    CycleName      string             `json:"cycle_name"`
    Description    string             `json:"description"`
    StartsAt       string             `json:"starts_at"`
    EndsAt         string             `json:"ends_at"`
    Headcount      uint32             `json:"headcount"`
    Supplies       []SupplyLineDetail `json:"supplies"`
}

// SupplyLineDetail is one supply line of a reservation joined with the
// item catalog.
type SupplyLineDetail struct {
    SupplyItemID uint64 `json:"supply_item_id"`
    ItemName     string `json:"item_name"`
    Unit         string `json:"unit"`
    Quantity     int64  `json:"quantity"`
}

const detailColumns = `r.id, r.lab_id, l.name, r.instructor_id, i.full_name,
                       r.group_id, g.name, sc.name, cy.name,
                       r.description, r.starts_at, r.ends_at, r.headcount`

const detailJoins = `FROM reservations r
                     JOIN labs l ON l.id = r.lab_id
                     JOIN instructors i ON i.id = r.instructor_id
                     JOIN study_groups g ON g.id = r.group_id
                     JOIN schools sc ON sc.id = g.school_id
                     JOIN cycles cy ON cy.id = g.cycle_id`

// GetDetail loads one reservation with all display names and its supply
// lines.  Returns ErrReservationNotFound when the id is unknown.
func (r *ReservationRepo) GetDetail(ctx context.Context, id uint64) (*ReservationDetail, error) {
    q := `SELECT ` + detailColumns + ` ` + detailJoins + ` WHERE r.id = ?`
    row := r.db.QueryRowContext(ctx, q, id)
    det, err := scanDetail(row)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrReservationNotFound
        }
        return nil, err
    }
    if err := r.attachSupplies(ctx, []*ReservationDetail{det}); err != nil {
        return nil, err
    }
    return det, nil
}

// List returns reservations filtered by an optional lab and an optional
// [from, to) window, restricted to the given lab scope (nil scope means
// unrestricted).  Ordered by start time ascending.
func (r *ReservationRepo) List(ctx context.Context, labID uint64, from, to time.Time, scope []uint64) ([]*ReservationDetail, error) {
    var (
        where []string
        args  []any
    )
    if labID != 0 {
        where = append(where, "r.lab_id = ?")
        args = append(args, labID)
    }
    if !from.IsZero() {
        where = append(where, "r.ends_at > ?")
        args = append(args, from.UTC())
    }
    if !to.IsZero() {
        where = append(where, "r.starts_at < ?")
        args = append(args, to.UTC())
    }
    if scope != nil {
        if len(scope) == 0 {
            return []*ReservationDetail{}, nil
        }
        placeholders := strings.TrimSuffix(strings.Repeat("?,", len(scope)), ",")
        where = append(where, "r.lab_id IN ("+placeholders+")")
        for _, id := range scope {
            args = append(args, id)
        }
    }
    q := `SELECT ` + detailColumns + ` ` + detailJoins
    if len(where) > 0 {
        q += " WHERE " + strings.Join(where, " AND ")
    }
    q += " ORDER BY r.starts_at"
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]*ReservationDetail, 0)
    for rows.Next() {
        det, err := scanDetail(rows)
        if err != nil {
            return nil, err
        }
        details = append(details, det)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if err := r.attachSupplies(ctx, details); err != nil {
        return nil, err
    }
    return details, nil
}

type rowScanner interface {
    Scan(dest ...any) error
}

func scanDetail(row rowScanner) (*ReservationDetail, error) {
    var (
        det        ReservationDetail
        starts     time.Time
        ends       time.Time
    )
    if err := row.Scan(
        &det.ID, &det.LabID, &det.LabName, &det.InstructorID, &det.InstructorName,
        &det.GroupID, &det.GroupName, &det.SchoolName, &det.CycleName,
        &det.Description, &starts, &ends, &det.Headcount,
    ); err != nil {
        return nil, err
    }
    det.StartsAt = starts.UTC().Format(time.RFC3339)
    det.EndsAt = ends.UTC().Format(time.RFC3339)
    det.Supplies = []SupplyLineDetail{}
    return &det, nil
}

// attachSupplies populates the supply lines for every detail in one
// query, keyed by reservation id.
func (r *ReservationRepo) attachSupplies(ctx context.Context, details []*ReservationDetail) error {
    if len(details) == 0 {
        return nil
    }
    index := make(map[uint64]*ReservationDetail, len(details))
    args := make([]any, 0, len(details))
    placeholders := make([]string, 0, len(details))
    for _, d := range details {
        index[d.ID] = d
        args = append(args, d.ID)
        placeholders = append(placeholders, "?")
    }
    q := `SELECT rs.reservation_id, rs.supply_item_id, si.name, si.unit, rs.quantity
          FROM reservation_supplies rs
          JOIN supply_items si ON si.id = rs.supply_item_id
          WHERE rs.reservation_id IN (` + strings.Join(placeholders, ",") + `)
          ORDER BY rs.reservation_id, si.name`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return err
    }
    defer rows.Close()
    for rows.Next() {
        var (
            resID uint64
            line  SupplyLineDetail
        )
        if err := rows.Scan(&resID, &line.SupplyItemID, &line.ItemName, &line.Unit, &line.Quantity); err != nil {
            return err
        }
        if det, ok := index[resID]; ok {
            det.Supplies = append(det.Supplies, line)
        }
    }
    return rows.Err()
}
