package service

import (
    "testing"
    "time"
)

func at(hour, min int) time.Time {
    return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
    cases := []struct {
        name           string
        s1, e1, s2, e2 time.Time
        want           bool
    }{
        {"identical intervals", at(9, 0), at(11, 0), at(9, 0), at(11, 0), true},
        {"partial overlap at start", at(9, 0), at(11, 0), at(10, 0), at(12, 0), true},
        {"partial overlap at end", at(10, 0), at(12, 0), at(9, 0), at(11, 0), true},
        {"first contains second", at(9, 0), at(13, 0), at(10, 0), at(11, 0), true},
        {"second contains first", at(10, 0), at(11, 0), at(9, 0), at(13, 0), true},
        {"one minute shared", at(9, 0), at(10, 1), at(10, 0), at(11, 0), true},
        {"back to back, first then second", at(9, 0), at(11, 0), at(11, 0), at(13, 0), false},
        {"back to back, second then first", at(11, 0), at(13, 0), at(9, 0), at(11, 0), false},
        {"disjoint with gap", at(9, 0), at(10, 0), at(12, 0), at(13, 0), false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
                t.Fatalf("Overlaps(%v, %v, %v, %v) = %v, want %v", tc.s1, tc.e1, tc.s2, tc.e2, got, tc.want)
            }
            // Overlap is symmetric.
            if got := Overlaps(tc.s2, tc.e2, tc.s1, tc.e1); got != tc.want {
                t.Fatalf("Overlaps is not symmetric for %s", tc.name)
            }
        })
    }
}
