package service

import (
    "context"
    "sort"
    "time"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
    "github.com/christianq-alva/laboratorios-sub000/internal/repository"
)

// balanceKey identifies one (supply item, lab) balance.
type balanceKey struct {
    itemID uint64
    labID  uint64
}

// memStore is an in-memory repository.Store used by the service tests.
// memUnitOfWork snapshots it before each Do and restores the snapshot
// when the callback fails, mirroring transaction rollback.
type memStore struct {
    groups      map[uint64]model.GroupInfo
    instructors map[uint64]model.InstructorInfo
    labs        map[uint64]model.Lab
    items       map[uint64]model.SupplyItem

    reservations map[uint64]model.Reservation
    supplyLines  []model.ReservationSupply
    balances     map[balanceKey]int64
    movements    []model.StockMovement

    nextID uint64
}

func newMemStore() *memStore {
    return &memStore{
        groups:       map[uint64]model.GroupInfo{},
        instructors:  map[uint64]model.InstructorInfo{},
        labs:         map[uint64]model.Lab{},
        items:        map[uint64]model.SupplyItem{},
        reservations: map[uint64]model.Reservation{},
        balances:     map[balanceKey]int64{},
        nextID:       1,
    }
}

func (m *memStore) clone() *memStore {
    c := newMemStore()
    for k, v := range m.groups {
        c.groups[k] = v
    }
    for k, v := range m.instructors {
        c.instructors[k] = v
    }
    for k, v := range m.labs {
        c.labs[k] = v
    }
    for k, v := range m.items {
        c.items[k] = v
    }
    for k, v := range m.reservations {
        c.reservations[k] = v
    }
    c.supplyLines = append([]model.ReservationSupply(nil), m.supplyLines...)
    for k, v := range m.balances {
        c.balances[k] = v
    }
    c.movements = append([]model.StockMovement(nil), m.movements...)
    c.nextID = m.nextID
    return c
}

func (m *memStore) restore(snap *memStore) {
    *m = *snap
}

// ----- reference data -----

func (m *memStore) GroupInfo(_ context.Context, id uint64) (*model.GroupInfo, error) {
    g, ok := m.groups[id]
    if !ok {
        return nil, repository.ErrGroupNotFound
    }
    return &g, nil
}

func (m *memStore) InstructorInfo(_ context.Context, id uint64) (*model.InstructorInfo, error) {
    i, ok := m.instructors[id]
    if !ok {
        return nil, repository.ErrInstructorNotFound
    }
    return &i, nil
}

func (m *memStore) LabByID(_ context.Context, id uint64) (*model.Lab, error) {
    l, ok := m.labs[id]
    if !ok {
        return nil, repository.ErrLabNotFound
    }
    return &l, nil
}

func (m *memStore) SupplyItemByID(_ context.Context, id uint64) (*model.SupplyItem, error) {
    it, ok := m.items[id]
    if !ok {
        return nil, repository.ErrSupplyItemNotFound
    }
    return &it, nil
}

func (m *memStore) LockLab(_ context.Context, id uint64) error {
    if _, ok := m.labs[id]; !ok {
        return repository.ErrLabNotFound
    }
    return nil
}

func (m *memStore) LockInstructor(_ context.Context, id uint64) error {
    if _, ok := m.instructors[id]; !ok {
        return repository.ErrInstructorNotFound
    }
    return nil
}

// ----- reservations -----

func (m *memStore) ReservationByID(_ context.Context, id uint64) (*model.Reservation, error) {
    r, ok := m.reservations[id]
    if !ok {
        return nil, repository.ErrReservationNotFound
    }
    return &r, nil
}

func (m *memStore) InsertReservation(_ context.Context, r *model.Reservation) error {
    r.ID = m.nextID
    m.nextID++
    m.reservations[r.ID] = *r
    return nil
}

func (m *memStore) UpdateReservation(_ context.Context, r *model.Reservation) error {
    if _, ok := m.reservations[r.ID]; !ok {
        return repository.ErrReservationNotFound
    }
    m.reservations[r.ID] = *r
    return nil
}

func (m *memStore) DeleteReservation(_ context.Context, id uint64) error {
    if _, ok := m.reservations[id]; !ok {
        return repository.ErrReservationNotFound
    }
    delete(m.reservations, id)
    return nil
}

func (m *memStore) FirstLabOverlap(_ context.Context, labID uint64, start, end time.Time, excludeID uint64) (*model.ReservationOverlap, error) {
    return m.firstOverlap(start, end, excludeID, func(r model.Reservation) (bool, string) {
        return r.LabID == labID, m.instructors[r.InstructorID].FullName
    })
}

func (m *memStore) FirstInstructorOverlap(_ context.Context, instructorID uint64, start, end time.Time, excludeID uint64) (*model.ReservationOverlap, error) {
    return m.firstOverlap(start, end, excludeID, func(r model.Reservation) (bool, string) {
        return r.InstructorID == instructorID, m.labs[r.LabID].Name
    })
}

func (m *memStore) firstOverlap(start, end time.Time, excludeID uint64, match func(model.Reservation) (bool, string)) (*model.ReservationOverlap, error) {
    ids := make([]uint64, 0, len(m.reservations))
    for id := range m.reservations {
        ids = append(ids, id)
    }
    sort.Slice(ids, func(i, j int) bool {
        return m.reservations[ids[i]].StartsAt.Before(m.reservations[ids[j]].StartsAt)
    })
    for _, id := range ids {
        r := m.reservations[id]
        if r.ID == excludeID {
            continue
        }
        ok, counterpart := match(r)
        if !ok {
            continue
        }
        if r.StartsAt.Before(end) && start.Before(r.EndsAt) {
            return &model.ReservationOverlap{
                ReservationID: r.ID,
                StartsAt:      r.StartsAt,
                EndsAt:        r.EndsAt,
                Counterpart:   counterpart,
            }, nil
        }
    }
    return nil, nil
}

// ----- supply lines -----

func (m *memStore) SupplyLines(_ context.Context, reservationID uint64) ([]model.ReservationSupply, error) {
    var lines []model.ReservationSupply
    for _, l := range m.supplyLines {
        if l.ReservationID == reservationID {
            lines = append(lines, l)
        }
    }
    return lines, nil
}

func (m *memStore) InsertSupplyLine(_ context.Context, line *model.ReservationSupply) error {
    line.ID = m.nextID
    m.nextID++
    m.supplyLines = append(m.supplyLines, *line)
    return nil
}

func (m *memStore) DeleteSupplyLines(_ context.Context, reservationID uint64) (int64, error) {
    kept := m.supplyLines[:0]
    var removed int64
    for _, l := range m.supplyLines {
        if l.ReservationID == reservationID {
            removed++
            continue
        }
        kept = append(kept, l)
    }
    m.supplyLines = kept
    return removed, nil
}

// ----- catalog and ledger -----

func (m *memStore) InsertSupplyItem(_ context.Context, item *model.SupplyItem) error {
    item.ID = m.nextID
    m.nextID++
    m.items[item.ID] = *item
    return nil
}

func (m *memStore) Balance(_ context.Context, itemID, labID uint64) (int64, error) {
    return m.balances[balanceKey{itemID, labID}], nil
}

func (m *memStore) AddToBalance(_ context.Context, itemID, labID uint64, delta int64) error {
    m.balances[balanceKey{itemID, labID}] += delta
    return nil
}

func (m *memStore) InsertMovement(_ context.Context, mv *model.StockMovement) error {
    mv.ID = m.nextID
    m.nextID++
    m.movements = append(m.movements, *mv)
    return nil
}

// memUnitOfWork runs callbacks against the shared memStore, restoring a
// pre-call snapshot when the callback errors so failed operations leave
// no partial state behind.
type memUnitOfWork struct {
    store *memStore
}

func (u *memUnitOfWork) Do(_ context.Context, fn func(repository.Store) error) error {
    snap := u.store.clone()
    if err := fn(u.store); err != nil {
        u.store.restore(snap)
        return err
    }
    return nil
}

// movementsFor filters the ledger by note, oldest first.
func (m *memStore) movementsFor(note string) []model.StockMovement {
    var out []model.StockMovement
    for _, mv := range m.movements {
        if mv.Note == note {
            out = append(out, mv)
        }
    }
    return out
}
