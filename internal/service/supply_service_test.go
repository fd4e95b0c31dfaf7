package service

import (
    "context"
    "testing"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
)

func TestCreateItemSeedsInitialStock(t *testing.T) {
    m := newMemStore()
    seedReferenceData(m)
    svc := NewSupplyService(&memUnitOfWork{store: m})

    item, err := svc.CreateItem(context.Background(), admin(), SupplyItemInput{
        Name: "Petri dishes",
        Unit: "box",
        InitialStock: []InitialStockInput{
            {LabID: 1, Quantity: 20},
            {LabID: 2, Quantity: 5},
        },
    })
    if err != nil {
        t.Fatal(err)
    }
    if item.ID == 0 {
        t.Fatal("expected an assigned item id")
    }
    if got := m.balances[balanceKey{item.ID, 1}]; got != 20 {
        t.Fatalf("lab 1 balance = %d, want 20", got)
    }
    if got := m.balances[balanceKey{item.ID, 2}]; got != 5 {
        t.Fatalf("lab 2 balance = %d, want 5", got)
    }
    mvs := m.movementsFor(NoteInitialStock)
    if len(mvs) != 2 {
        t.Fatalf("initial-stock movements = %d, want 2", len(mvs))
    }
    for _, mv := range mvs {
        if mv.Direction != model.MovementEntry {
            t.Fatalf("direction = %q, want ENTRY", mv.Direction)
        }
        if mv.ReservationID != nil {
            t.Fatal("initial stock must not link a reservation")
        }
    }
}

func TestCreateItemDefaultsUnit(t *testing.T) {
    m := newMemStore()
    svc := NewSupplyService(&memUnitOfWork{store: m})

    item, err := svc.CreateItem(context.Background(), admin(), SupplyItemInput{Name: "Funnel"})
    if err != nil {
        t.Fatal(err)
    }
    if item.Unit != "unit" {
        t.Fatalf("unit = %q, want default", item.Unit)
    }
}

func TestCreateItemRequiresName(t *testing.T) {
    m := newMemStore()
    svc := NewSupplyService(&memUnitOfWork{store: m})

    _, err := svc.CreateItem(context.Background(), admin(), SupplyItemInput{Name: "  "})
    if kindOf(t, err) != KindValidation {
        t.Fatalf("kind = %s, want validation_error", kindOf(t, err))
    }
}

func TestCreateItemSeedOutsideScope(t *testing.T) {
    m := newMemStore()
    seedReferenceData(m)
    svc := NewSupplyService(&memUnitOfWork{store: m})

    tech := Caller{UserID: 8, Scope: LabScope{1}}
    _, err := svc.CreateItem(context.Background(), tech, SupplyItemInput{
        Name:         "Ethanol",
        Unit:         "ml",
        InitialStock: []InitialStockInput{{LabID: 2, Quantity: 500}},
    })
    if kindOf(t, err) != KindForbidden {
        t.Fatalf("kind = %s, want forbidden", kindOf(t, err))
    }
    if len(m.items) != 1 { // only the seed item from seedReferenceData
        t.Fatal("rejected item must not be persisted")
    }
}

func TestCreateItemUnknownLabRollsBack(t *testing.T) {
    m := newMemStore()
    seedReferenceData(m)
    svc := NewSupplyService(&memUnitOfWork{store: m})

    _, err := svc.CreateItem(context.Background(), admin(), SupplyItemInput{
        Name:         "Beaker 250ml",
        InitialStock: []InitialStockInput{{LabID: 999, Quantity: 3}},
    })
    if kindOf(t, err) != KindValidation {
        t.Fatalf("kind = %s, want validation_error", kindOf(t, err))
    }
    if len(m.items) != 1 {
        t.Fatal("catalog row must roll back with the failed seed")
    }
}

func TestAddStock(t *testing.T) {
    m := newMemStore()
    seedReferenceData(m)
    svc := NewSupplyService(&memUnitOfWork{store: m})
    ctx := context.Background()

    if err := svc.AddStock(ctx, admin(), 1, 30, 15, ""); err != nil {
        t.Fatal(err)
    }
    if got := m.balances[balanceKey{30, 1}]; got != 15 {
        t.Fatalf("balance = %d, want 15", got)
    }
    mvs := m.movementsFor(NoteManualEntry)
    if len(mvs) != 1 {
        t.Fatalf("manual-entry movements = %d, want 1", len(mvs))
    }

    if err := svc.AddStock(ctx, admin(), 1, 30, 0, ""); kindOf(t, err) != KindValidation {
        t.Fatal("zero quantity must be rejected")
    }
    if err := svc.AddStock(ctx, admin(), 999, 30, 1, ""); kindOf(t, err) != KindNotFound {
        t.Fatal("unknown lab must be not_found")
    }
    if err := svc.AddStock(ctx, admin(), 1, 999, 1, ""); kindOf(t, err) != KindNotFound {
        t.Fatal("unknown item must be not_found")
    }
    tech := Caller{UserID: 8, Scope: LabScope{2}}
    if err := svc.AddStock(ctx, tech, 1, 30, 1, ""); kindOf(t, err) != KindForbidden {
        t.Fatal("out-of-scope lab must be forbidden")
    }
}
