package service

import (
    "context"
    "errors"
    "time"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
    "github.com/christianq-alva/laboratorios-sub000/internal/repository"
)

// LabScope is the set of labs a caller may read or write.  A nil scope
// means unrestricted (ADMIN); a non-nil empty scope allows nothing.
// Computed by the authorization layer and passed in explicitly so the
// engine stays free of authentication concerns.
type LabScope []uint64

// Allows reports whether the scope permits operating on the given lab.
func (s LabScope) Allows(labID uint64) bool {
    if s == nil {
        return true
    }
    for _, id := range s {
        if id == labID {
            return true
        }
    }
    return false
}

// Caller identifies the authenticated user on whose behalf an engine
// operation runs, together with their lab scope.
type Caller struct {
    UserID uint64
    Scope  LabScope
}

// SupplyLineInput is one requested (supply item, quantity) pair.
type SupplyLineInput struct {
    SupplyItemID uint64
    Quantity     int64
}

// ReservationInput carries all caller-submitted fields of a create or
// update request.  SchoolID and CycleID are the caller's claim about
// the group's affiliation; the engine verifies the claim against the
// group itself.
type ReservationInput struct {
    LabID        uint64
    InstructorID uint64
    GroupID      uint64
    SchoolID     uint64
    CycleID      uint64
    Description  string
    StartsAt     time.Time
    EndsAt       time.Time
    Headcount    uint32
    Supplies     []SupplyLineInput
}

// ReservationEcho returns the validated entity names so the caller can
// confirm what was booked without re-querying.
type ReservationEcho struct {
    Lab        string `json:"lab"`
    Instructor string `json:"instructor"`
    Group      string `json:"group"`
    School     string `json:"school"`
    Cycle      string `json:"cycle"`
}

// CreateResult is returned by Create.
type CreateResult struct {
    ID   uint64          `json:"id"`
    Echo ReservationEcho `json:"echo"`
}

// DeleteSummary reports what a delete removed and how many supply
// lines were credited back to stock.
type DeleteSummary struct {
    ReservationID    uint64 `json:"reservation_id"`
    SuppliesReversed int    `json:"supplies_reversed"`
}

// Availability is the advisory verdict for a candidate slot.
type Availability struct {
    Available bool            `json:"available"`
    Conflict  *ConflictDetail `json:"conflict,omitempty"`
}

// ReservationService orchestrates reservation writes.  Every write
// path runs as one unit of work: validation, conflict detection,
// authorization, stock checks and all row changes commit together or
// not at all.
type ReservationService struct {
    uow    repository.UnitOfWork
    reader repository.Store
}

// NewReservationService builds the orchestrator.  reader is a plain
// (non-transactional) Store used by the advisory availability path.
func NewReservationService(uow repository.UnitOfWork, reader repository.Store) *ReservationService {
    if uow == nil || reader == nil {
        panic("nil dependency passed to NewReservationService")
    }
    return &ReservationService{uow: uow, reader: reader}
}

// CheckAvailability answers "is this slot free?" without opening a
// write transaction.  excludeID skips the reservation being edited;
// zero excludes nothing.  The verdict reflects committed state only —
// it is advisory, and the write paths re-check under lock.
func (s *ReservationService) CheckAvailability(ctx context.Context, labID, instructorID uint64, start, end time.Time, excludeID uint64) (*Availability, error) {
    if !start.Before(end) {
        return nil, validationErrorf("starts_at must be before ends_at")
    }
    detail, err := findConflict(ctx, s.reader, labID, instructorID, start, end, excludeID)
    if err != nil {
        return nil, err
    }
    if detail != nil {
        return &Availability{Available: false, Conflict: detail}, nil
    }
    return &Availability{Available: true}, nil
}

// Create books a new reservation and debits its supply lines, all
// inside one transaction.  Any validation, conflict, authorization or
// stock failure rolls everything back.
func (s *ReservationService) Create(ctx context.Context, caller Caller, in ReservationInput) (*CreateResult, error) {
    if err := validateInput(in); err != nil {
        return nil, err
    }
    var result *CreateResult
    err := s.uow.Do(ctx, func(st repository.Store) error {
        echo, verr := s.validateReferences(ctx, st, in)
        if verr != nil {
            return verr
        }
        // Serialize with concurrent writers on the same lab or
        // instructor before scanning for conflicts.
        if err := st.LockLab(ctx, in.LabID); err != nil {
            return refError(err)
        }
        if err := st.LockInstructor(ctx, in.InstructorID); err != nil {
            return refError(err)
        }
        detail, err := findConflict(ctx, st, in.LabID, in.InstructorID, in.StartsAt, in.EndsAt, 0)
        if err != nil {
            return err
        }
        if detail != nil {
            return conflictError(detail)
        }
        if !caller.Scope.Allows(in.LabID) {
            return forbiddenErrorf("lab %q is outside your assigned labs", echo.Lab)
        }
        if err := s.checkSupplies(ctx, st, in, echo.Lab); err != nil {
            return err
        }
        r := &model.Reservation{
            LabID:        in.LabID,
            InstructorID: in.InstructorID,
            GroupID:      in.GroupID,
            Description:  in.Description,
            StartsAt:     in.StartsAt,
            EndsAt:       in.EndsAt,
            Headcount:    in.Headcount,
            CreatedBy:    caller.UserID,
        }
        if err := st.InsertReservation(ctx, r); err != nil {
            return err
        }
        if err := s.commitSupplies(ctx, st, in, caller.UserID, r.ID); err != nil {
            return err
        }
        result = &CreateResult{ID: r.ID, Echo: *echo}
        return nil
    })
    if err != nil {
        return nil, err
    }
    return result, nil
}

// Update replaces a reservation in place.  The old supply lines are
// credited back before the new ones are checked and debited, so an
// update with identical lines nets to a zero balance change.
// Authorization is checked against the reservation's current lab, not
// the one the update targets.
func (s *ReservationService) Update(ctx context.Context, caller Caller, id uint64, in ReservationInput) (*ReservationEcho, error) {
    if err := validateInput(in); err != nil {
        return nil, err
    }
    var echo *ReservationEcho
    err := s.uow.Do(ctx, func(st repository.Store) error {
        current, err := st.ReservationByID(ctx, id)
        if err != nil {
            if errors.Is(err, repository.ErrReservationNotFound) {
                return notFoundErrorf("reservation %d not found", id)
            }
            return err
        }
        if !caller.Scope.Allows(current.LabID) {
            return forbiddenErrorf("reservation %d is outside your assigned labs", id)
        }
        e, verr := s.validateReferences(ctx, st, in)
        if verr != nil {
            return verr
        }
        if err := st.LockLab(ctx, in.LabID); err != nil {
            return refError(err)
        }
        if err := st.LockInstructor(ctx, in.InstructorID); err != nil {
            return refError(err)
        }
        detail, err := findConflict(ctx, st, in.LabID, in.InstructorID, in.StartsAt, in.EndsAt, id)
        if err != nil {
            return err
        }
        if detail != nil {
            return conflictError(detail)
        }
        // Reverse the supplies committed so far, against the lab they
        // were originally debited from.
        oldLines, err := st.SupplyLines(ctx, id)
        if err != nil {
            return err
        }
        for _, line := range oldLines {
            resID := id
            if err := credit(ctx, st, line.SupplyItemID, current.LabID, line.Quantity, caller.UserID, &resID, NoteEditReturn); err != nil {
                return err
            }
        }
        if _, err := st.DeleteSupplyLines(ctx, id); err != nil {
            return err
        }
        if err := s.checkSupplies(ctx, st, in, e.Lab); err != nil {
            return err
        }
        updated := &model.Reservation{
            ID:           id,
            LabID:        in.LabID,
            InstructorID: in.InstructorID,
            GroupID:      in.GroupID,
            Description:  in.Description,
            StartsAt:     in.StartsAt,
            EndsAt:       in.EndsAt,
            Headcount:    in.Headcount,
        }
        if err := st.UpdateReservation(ctx, updated); err != nil {
            return err
        }
        if err := s.commitSupplies(ctx, st, in, caller.UserID, id); err != nil {
            return err
        }
        echo = e
        return nil
    })
    if err != nil {
        return nil, err
    }
    return echo, nil
}

// Delete removes a reservation, crediting every committed supply line
// back to the lab the reservation was booked in.
func (s *ReservationService) Delete(ctx context.Context, caller Caller, id uint64) (*DeleteSummary, error) {
    var summary *DeleteSummary
    err := s.uow.Do(ctx, func(st repository.Store) error {
        r, err := st.ReservationByID(ctx, id)
        if err != nil {
            if errors.Is(err, repository.ErrReservationNotFound) {
                return notFoundErrorf("reservation %d not found", id)
            }
            return err
        }
        if !caller.Scope.Allows(r.LabID) {
            return forbiddenErrorf("reservation %d is outside your assigned labs", id)
        }
        lines, err := st.SupplyLines(ctx, id)
        if err != nil {
            return err
        }
        for _, line := range lines {
            resID := id
            if err := credit(ctx, st, line.SupplyItemID, r.LabID, line.Quantity, caller.UserID, &resID, NoteDeleteReturn); err != nil {
                return err
            }
        }
        if _, err := st.DeleteSupplyLines(ctx, id); err != nil {
            return err
        }
        if err := st.DeleteReservation(ctx, id); err != nil {
            return err
        }
        summary = &DeleteSummary{ReservationID: id, SuppliesReversed: len(lines)}
        return nil
    })
    if err != nil {
        return nil, err
    }
    return summary, nil
}

// validateInput rejects malformed requests before any I/O happens.
func validateInput(in ReservationInput) error {
    if in.LabID == 0 || in.InstructorID == 0 || in.GroupID == 0 || in.SchoolID == 0 || in.CycleID == 0 {
        return validationErrorf("lab_id, instructor_id, group_id, school_id and cycle_id are required")
    }
    if !in.StartsAt.Before(in.EndsAt) {
        return validationErrorf("starts_at must be before ends_at")
    }
    for _, line := range in.Supplies {
        if line.SupplyItemID == 0 || line.Quantity <= 0 {
            return validationErrorf("supply lines need a supply_item_id and a positive quantity")
        }
    }
    return nil
}

// validateReferences checks the relational consistency of the request:
// the group must belong to the claimed school and cycle and the
// instructor must belong to the group's school.  On success it returns
// the echo of validated names.
func (s *ReservationService) validateReferences(ctx context.Context, st repository.Store, in ReservationInput) (*ReservationEcho, error) {
    group, err := st.GroupInfo(ctx, in.GroupID)
    if err != nil {
        return nil, refError(err)
    }
    if group.SchoolID != in.SchoolID || group.CycleID != in.CycleID {
        return nil, validationErrorf("group %q belongs to school %q, cycle %q, not to the submitted school/cycle",
            group.Name, group.SchoolName, group.CycleName)
    }
    instructor, err := st.InstructorInfo(ctx, in.InstructorID)
    if err != nil {
        return nil, refError(err)
    }
    if instructor.SchoolID != group.SchoolID {
        return nil, validationErrorf("instructor %q belongs to school %q but group %q belongs to school %q",
            instructor.FullName, instructor.SchoolName, group.Name, group.SchoolName)
    }
    lab, err := st.LabByID(ctx, in.LabID)
    if err != nil {
        return nil, refError(err)
    }
    return &ReservationEcho{
        Lab:        lab.Name,
        Instructor: instructor.FullName,
        Group:      group.Name,
        School:     group.SchoolName,
        Cycle:      group.CycleName,
    }, nil
}

// checkSupplies verifies every requested line against the lab's
// current balance.  The first shortfall aborts the transaction.
func (s *ReservationService) checkSupplies(ctx context.Context, st repository.Store, in ReservationInput, labName string) error {
    for _, line := range in.Supplies {
        item, err := st.SupplyItemByID(ctx, line.SupplyItemID)
        if err != nil {
            return refError(err)
        }
        ok, balance, err := checkAvailable(ctx, st, line.SupplyItemID, in.LabID, line.Quantity)
        if err != nil {
            return err
        }
        if !ok {
            return insufficientStockError(&StockDetail{
                SupplyItemID: line.SupplyItemID,
                ItemName:     item.Name,
                LabID:        in.LabID,
                LabName:      labName,
                Requested:    line.Quantity,
                Available:    balance,
            })
        }
    }
    return nil
}

// commitSupplies inserts the supply lines of a reservation and debits
// each quantity from the lab's stock.
func (s *ReservationService) commitSupplies(ctx context.Context, st repository.Store, in ReservationInput, userID, reservationID uint64) error {
    for _, line := range in.Supplies {
        if err := st.InsertSupplyLine(ctx, &model.ReservationSupply{
            ReservationID: reservationID,
            SupplyItemID:  line.SupplyItemID,
            Quantity:      line.Quantity,
        }); err != nil {
            return err
        }
        if err := debit(ctx, st, line.SupplyItemID, in.LabID, line.Quantity, userID, reservationID, NoteConsumption); err != nil {
            return err
        }
    }
    return nil
}

// refError maps unknown-reference sentinels to validation errors (the
// caller submitted an id that does not exist) and passes everything
// else through untouched.
func refError(err error) error {
    switch {
    case errors.Is(err, repository.ErrGroupNotFound),
        errors.Is(err, repository.ErrInstructorNotFound),
        errors.Is(err, repository.ErrLabNotFound),
        errors.Is(err, repository.ErrSupplyItemNotFound):
        return validationErrorf("%s", err.Error())
    default:
        return err
    }
}
