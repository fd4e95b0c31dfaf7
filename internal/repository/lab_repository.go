package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
)

// LabRepo provides plain reads over labs and the lab_assignments table
// backing the caller's room scope.
type LabRepo struct {
    db *sql.DB
}

// NewLabRepo returns a LabRepo bound to the given database.
func NewLabRepo(db *sql.DB) *LabRepo { return &LabRepo{db: db} }

// GetByID loads a single lab.  Returns ErrLabNotFound for unknown ids.
func (r *LabRepo) GetByID(ctx context.Context, id uint64) (*model.Lab, error) {
    const q = `SELECT id, name, capacity, created_at FROM labs WHERE id = ?`
    var lab model.Lab
    err := r.db.QueryRowContext(ctx, q, id).Scan(&lab.ID, &lab.Name, &lab.Capacity, &lab.CreatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrLabNotFound
        }
        return nil, err
    }
    return &lab, nil
}

// PermittedLabIDs returns the labs assigned to a scoped user.  An empty
// slice means the user may touch no lab at all; unrestricted roles never
// call this.
func (r *LabRepo) PermittedLabIDs(ctx context.Context, userID uint64) ([]uint64, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT lab_id FROM lab_assignments WHERE user_id = ? ORDER BY lab_id`, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    ids := make([]uint64, 0)
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return ids, nil
}
