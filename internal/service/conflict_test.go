package service

import (
    "context"
    "testing"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
)

// seedReferenceData loads two labs, two instructors (same school), one
// school/cycle/group and one supply item into the store.
func seedReferenceData(m *memStore) {
    m.labs[1] = model.Lab{ID: 1, Name: "Chemistry Lab A", Capacity: 30}
    m.labs[2] = model.Lab{ID: 2, Name: "Chemistry Lab B", Capacity: 24}
    m.instructors[10] = model.InstructorInfo{ID: 10, FullName: "R. Vega", SchoolID: 100, SchoolName: "Chemistry"}
    m.instructors[11] = model.InstructorInfo{ID: 11, FullName: "M. Soto", SchoolID: 100, SchoolName: "Chemistry"}
    m.groups[20] = model.GroupInfo{ID: 20, Name: "CHEM-301", SchoolID: 100, SchoolName: "Chemistry", CycleID: 200, CycleName: "2026-I"}
    m.items[30] = model.SupplyItem{ID: 30, Name: "Nitrile gloves", Unit: "box"}
}

func TestFindConflictRoomBeforeInstructor(t *testing.T) {
    m := newMemStore()
    seedReferenceData(m)
    // Instructor 10 already holds lab 1 from 09:00 to 11:00.
    m.reservations[50] = model.Reservation{
        ID: 50, LabID: 1, InstructorID: 10, GroupID: 20,
        StartsAt: at(9, 0), EndsAt: at(11, 0),
    }

    // Same lab and same instructor both collide; the room wins.
    detail, err := findConflict(context.Background(), m, 1, 10, at(10, 0), at(12, 0), 0)
    if err != nil {
        t.Fatal(err)
    }
    if detail == nil {
        t.Fatal("expected a conflict")
    }
    if detail.Resource != ResourceRoom {
        t.Fatalf("Resource = %q, want %q", detail.Resource, ResourceRoom)
    }
    if detail.ReservationID != 50 {
        t.Fatalf("ReservationID = %d, want 50", detail.ReservationID)
    }
    if detail.Counterpart != "R. Vega" {
        t.Fatalf("Counterpart = %q, want the booked instructor", detail.Counterpart)
    }
}

func TestFindConflictInstructorOnly(t *testing.T) {
    m := newMemStore()
    seedReferenceData(m)
    m.reservations[50] = model.Reservation{
        ID: 50, LabID: 1, InstructorID: 10, GroupID: 20,
        StartsAt: at(9, 0), EndsAt: at(11, 0),
    }

    // Different lab, same instructor.
    detail, err := findConflict(context.Background(), m, 2, 10, at(10, 0), at(12, 0), 0)
    if err != nil {
        t.Fatal(err)
    }
    if detail == nil {
        t.Fatal("expected a conflict")
    }
    if detail.Resource != ResourceInstructor {
        t.Fatalf("Resource = %q, want %q", detail.Resource, ResourceInstructor)
    }
    if detail.Counterpart != "Chemistry Lab A" {
        t.Fatalf("Counterpart = %q, want the lab the instructor is booked in", detail.Counterpart)
    }
}

func TestFindConflictExcludesOwnReservation(t *testing.T) {
    m := newMemStore()
    seedReferenceData(m)
    m.reservations[50] = model.Reservation{
        ID: 50, LabID: 1, InstructorID: 10, GroupID: 20,
        StartsAt: at(9, 0), EndsAt: at(11, 0),
    }

    // Editing reservation 50 onto its own slot must not self-conflict.
    detail, err := findConflict(context.Background(), m, 1, 10, at(9, 30), at(10, 30), 50)
    if err != nil {
        t.Fatal(err)
    }
    if detail != nil {
        t.Fatalf("unexpected conflict with itself: %+v", detail)
    }
}

func TestFindConflictAdjacentSlotsAreFree(t *testing.T) {
    m := newMemStore()
    seedReferenceData(m)
    m.reservations[50] = model.Reservation{
        ID: 50, LabID: 1, InstructorID: 10, GroupID: 20,
        StartsAt: at(9, 0), EndsAt: at(11, 0),
    }

    // [11:00, 13:00) starts exactly where the existing booking ends.
    detail, err := findConflict(context.Background(), m, 1, 10, at(11, 0), at(13, 0), 0)
    if err != nil {
        t.Fatal(err)
    }
    if detail != nil {
        t.Fatalf("adjacent interval reported as conflict: %+v", detail)
    }
}
