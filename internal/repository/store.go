package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Store implementations run the same queries on a pooled connection
// (advisory reads) or inside a transaction (reservation writes).
type DBTX interface {
    ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
    QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
    QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the data access surface the reservation engine runs against.
// A Store obtained from NewStore reads committed state; a Store handed
// to a UnitOfWork callback is bound to that transaction, so every
// mutation made through it commits or rolls back as one unit.
type Store interface {
    // Reference data (read-only to this engine).
    GroupInfo(ctx context.Context, groupID uint64) (*model.GroupInfo, error)
    InstructorInfo(ctx context.Context, instructorID uint64) (*model.InstructorInfo, error)
    LabByID(ctx context.Context, labID uint64) (*model.Lab, error)
    SupplyItemByID(ctx context.Context, itemID uint64) (*model.SupplyItem, error)

    // Row locks serializing concurrent writers on the same lab or
    // instructor.  No-ops outside a transaction.
    LockLab(ctx context.Context, labID uint64) error
    LockInstructor(ctx context.Context, instructorID uint64) error

    // Reservations.
    ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error)
    InsertReservation(ctx context.Context, r *model.Reservation) error
    UpdateReservation(ctx context.Context, r *model.Reservation) error
    DeleteReservation(ctx context.Context, id uint64) error

    // Conflict scans.  excludeID skips the reservation being edited;
    // pass zero to exclude nothing.  Both return nil when the candidate
    // interval [start, end) overlaps no existing reservation.
    FirstLabOverlap(ctx context.Context, labID uint64, start, end time.Time, excludeID uint64) (*model.ReservationOverlap, error)
    FirstInstructorOverlap(ctx context.Context, instructorID uint64, start, end time.Time, excludeID uint64) (*model.ReservationOverlap, error)

    // Supply lines owned by a reservation.
    SupplyLines(ctx context.Context, reservationID uint64) ([]model.ReservationSupply, error)
    InsertSupplyLine(ctx context.Context, line *model.ReservationSupply) error
    DeleteSupplyLines(ctx context.Context, reservationID uint64) (int64, error)

    // Supply catalog (creation only; the rest of the catalog lifecycle
    // lives outside this service).
    InsertSupplyItem(ctx context.Context, item *model.SupplyItem) error

    // Inventory ledger primitives.  Balance reports zero for a missing
    // row; AddToBalance upserts.
    Balance(ctx context.Context, itemID, labID uint64) (int64, error)
    AddToBalance(ctx context.Context, itemID, labID uint64, delta int64) error
    InsertMovement(ctx context.Context, m *model.StockMovement) error
}

// UnitOfWork runs a function against a transaction-bound Store.  When
// fn returns nil the transaction commits; any error (or panic) rolls
// everything back, so a failed reservation write leaves no partial
// reservation, supply line, balance or movement behind.
type UnitOfWork interface {
    Do(ctx context.Context, fn func(Store) error) error
}

// NewStore returns a Store running directly on the connection pool.
// Used for the advisory availability path and other plain reads.
func NewStore(db *sql.DB) Store { return &sqlStore{q: db} }

// NewUnitOfWork returns a UnitOfWork backed by the given database.
func NewUnitOfWork(db *sql.DB) UnitOfWork { return &unitOfWork{db: db} }

type unitOfWork struct {
    db *sql.DB
}

// Do begins a transaction, runs fn with a Store bound to it and
// commits on success.  The deferred rollback also covers panics inside
// fn; rolling back after a successful commit is a harmless no-op.
func (u *unitOfWork) Do(ctx context.Context, fn func(Store) error) error {
    tx, err := u.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := fn(&sqlStore{q: tx}); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// sqlStore implements Store over any DBTX.  All methods are defined in
// the per-concern files of this package.
type sqlStore struct {
    q DBTX
}
