package model

// School is an academic unit (faculty/department) that owns study
// groups and instructors.  Read-only reference data for this service.
type School struct {
    ID   uint64 // schools.id
    Name string // schools.name
}

// Cycle is an academic term (e.g. "2025-I").  Groups are opened per
// cycle; a reservation submits the (school, cycle) pair it believes the
// group belongs to and the engine verifies the claim.
type Cycle struct {
    ID   uint64 // cycles.id
    Name string // cycles.name
}

// StudyGroup is a cohort of students attending a session together.  A
// group belongs to one school and one cycle.
type StudyGroup struct {
    ID       uint64 // study_groups.id
    Name     string // study_groups.name
    SchoolID uint64 // study_groups.school_id
    CycleID  uint64 // study_groups.cycle_id
}

// GroupInfo is a study group joined with the names of its school and
// cycle.  The engine loads it once per request: the ids drive the
// consistency checks and the names are echoed back to the caller.
type GroupInfo struct {
    ID         uint64 // study_groups.id
    Name       string // study_groups.name
    SchoolID   uint64 // study_groups.school_id
    SchoolName string // schools.name
    CycleID    uint64 // study_groups.cycle_id
    CycleName  string // cycles.name
}
