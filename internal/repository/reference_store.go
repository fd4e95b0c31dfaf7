package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
)

// GroupInfo loads a study group together with its school and cycle
// names.  Returns ErrGroupNotFound when the id is unknown.
func (s *sqlStore) GroupInfo(ctx context.Context, groupID uint64) (*model.GroupInfo, error) {
    const q = `SELECT g.id, g.name, g.school_id, sc.name, g.cycle_id, cy.name
               FROM study_groups g
               JOIN schools sc ON sc.id = g.school_id
               JOIN cycles cy ON cy.id = g.cycle_id
               WHERE g.id = ?`
    var info model.GroupInfo
    err := s.q.QueryRowContext(ctx, q, groupID).Scan(
        &info.ID, &info.Name, &info.SchoolID, &info.SchoolName, &info.CycleID, &info.CycleName,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrGroupNotFound
        }
        return nil, err
    }
    return &info, nil
}

// InstructorInfo loads an instructor together with their school name.
// Returns ErrInstructorNotFound when the id is unknown.
func (s *sqlStore) InstructorInfo(ctx context.Context, instructorID uint64) (*model.InstructorInfo, error) {
    const q = `SELECT i.id, i.full_name, i.school_id, sc.name
               FROM instructors i
               JOIN schools sc ON sc.id = i.school_id
               WHERE i.id = ?`
    var info model.InstructorInfo
    err := s.q.QueryRowContext(ctx, q, instructorID).Scan(
        &info.ID, &info.FullName, &info.SchoolID, &info.SchoolName,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrInstructorNotFound
        }
        return nil, err
    }
    return &info, nil
}

// LabByID loads a lab.  Returns ErrLabNotFound when the id is unknown.
func (s *sqlStore) LabByID(ctx context.Context, labID uint64) (*model.Lab, error) {
    const q = `SELECT id, name, capacity, created_at FROM labs WHERE id = ?`
    var lab model.Lab
    err := s.q.QueryRowContext(ctx, q, labID).Scan(&lab.ID, &lab.Name, &lab.Capacity, &lab.CreatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrLabNotFound
        }
        return nil, err
    }
    return &lab, nil
}

// SupplyItemByID loads a supply item.  Returns ErrSupplyItemNotFound
// when the id is unknown.
func (s *sqlStore) SupplyItemByID(ctx context.Context, itemID uint64) (*model.SupplyItem, error) {
    const q = `SELECT id, name, description, unit, created_at FROM supply_items WHERE id = ?`
    var item model.SupplyItem
    err := s.q.QueryRowContext(ctx, q, itemID).Scan(
        &item.ID, &item.Name, &item.Description, &item.Unit, &item.CreatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrSupplyItemNotFound
        }
        return nil, err
    }
    return &item, nil
}

// LockLab takes a row lock on the lab so that concurrent reservation
// writers targeting the same lab serialize before their conflict scan.
// Outside a transaction the lock releases immediately.
func (s *sqlStore) LockLab(ctx context.Context, labID uint64) error {
    var id uint64
    err := s.q.QueryRowContext(ctx, `SELECT id FROM labs WHERE id = ? FOR UPDATE`, labID).Scan(&id)
    if errors.Is(err, sql.ErrNoRows) {
        return ErrLabNotFound
    }
    return err
}

// LockInstructor takes a row lock on the instructor, mirroring LockLab.
func (s *sqlStore) LockInstructor(ctx context.Context, instructorID uint64) error {
    var id uint64
    err := s.q.QueryRowContext(ctx, `SELECT id FROM instructors WHERE id = ? FOR UPDATE`, instructorID).Scan(&id)
    if errors.Is(err, sql.ErrNoRows) {
        return ErrInstructorNotFound
    }
    return err
}
