package model

import "time"

// Lab represents a physical laboratory room that can be reserved for
// teaching sessions.  Labs are reference data: this service reads them
// to validate reservations and to resolve names for conflict messages,
// but their lifecycle is managed elsewhere.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – human-readable lab name (e.g. "Chemistry Lab B").
//  Capacity  – maximum headcount the room supports.
//  CreatedAt – creation timestamp.
type Lab struct {
    ID        uint64    // labs.id
    Name      string    // labs.name
    Capacity  uint32    // labs.capacity
    CreatedAt time.Time // labs.created_at
}
