package service

import (
    "context"
    "testing"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
)

func TestCheckAvailableMissingRowIsZero(t *testing.T) {
    m := newMemStore()
    ok, balance, err := checkAvailable(context.Background(), m, 30, 1, 1)
    if err != nil {
        t.Fatal(err)
    }
    if ok {
        t.Fatal("no balance row should mean unavailable")
    }
    if balance != 0 {
        t.Fatalf("balance = %d, want 0", balance)
    }
}

func TestDebitWritesConsumptionMovement(t *testing.T) {
    m := newMemStore()
    m.balances[balanceKey{30, 1}] = 10

    if err := debit(context.Background(), m, 30, 1, 4, 7, 99, NoteConsumption); err != nil {
        t.Fatal(err)
    }
    if got := m.balances[balanceKey{30, 1}]; got != 6 {
        t.Fatalf("balance = %d, want 6", got)
    }
    if len(m.movements) != 1 {
        t.Fatalf("movements = %d, want 1", len(m.movements))
    }
    mv := m.movements[0]
    if mv.Direction != model.MovementConsumption {
        t.Fatalf("direction = %q, want CONSUMPTION", mv.Direction)
    }
    if mv.Quantity != 4 {
        t.Fatalf("quantity = %d, want 4 (always positive)", mv.Quantity)
    }
    if mv.ReservationID == nil || *mv.ReservationID != 99 {
        t.Fatalf("reservation link = %v, want 99", mv.ReservationID)
    }
    if mv.UserID != 7 {
        t.Fatalf("user = %d, want 7", mv.UserID)
    }
}

func TestCreditCreatesBalanceRow(t *testing.T) {
    m := newMemStore()

    if err := credit(context.Background(), m, 30, 1, 12, 7, nil, NoteManualEntry); err != nil {
        t.Fatal(err)
    }
    if got := m.balances[balanceKey{30, 1}]; got != 12 {
        t.Fatalf("balance = %d, want 12", got)
    }
    mv := m.movements[0]
    if mv.Direction != model.MovementEntry {
        t.Fatalf("direction = %q, want ENTRY", mv.Direction)
    }
    if mv.ReservationID != nil {
        t.Fatalf("manual entry must not link a reservation, got %v", *mv.ReservationID)
    }
    if mv.Note != NoteManualEntry {
        t.Fatalf("note = %q", mv.Note)
    }
}

// A debit followed by a credit of the same quantity restores the
// balance and leaves both ledger rows behind.
func TestLedgerRoundTrip(t *testing.T) {
    m := newMemStore()
    m.balances[balanceKey{30, 1}] = 5

    ctx := context.Background()
    if err := debit(ctx, m, 30, 1, 5, 7, 99, NoteConsumption); err != nil {
        t.Fatal(err)
    }
    resID := uint64(99)
    if err := credit(ctx, m, 30, 1, 5, 7, &resID, NoteDeleteReturn); err != nil {
        t.Fatal(err)
    }
    if got := m.balances[balanceKey{30, 1}]; got != 5 {
        t.Fatalf("balance = %d, want 5", got)
    }
    if len(m.movements) != 2 {
        t.Fatalf("movements = %d, want both sides of the round trip", len(m.movements))
    }
}
