package model

import "time"

// Instructor is a member of the teaching staff who can be assigned to a
// reservation.  Each instructor belongs to exactly one school; the
// reservation engine enforces that an instructor only teaches groups of
// their own school.
type Instructor struct {
    ID        uint64    // instructors.id
    FullName  string    // instructors.full_name
    SchoolID  uint64    // instructors.school_id
    CreatedAt time.Time // instructors.created_at
}

// InstructorInfo is an instructor joined with the name of their school,
// loaded once per reservation request so that school-mismatch errors
// can name both schools involved.
type InstructorInfo struct {
    ID         uint64 // instructors.id
    FullName   string // instructors.full_name
    SchoolID   uint64 // instructors.school_id
    SchoolName string // schools.name
}
