package service

import "time"

// Overlaps reports whether the half-open intervals [s1, e1) and
// [s2, e2) intersect.  Both intervals must be well formed (start before
// end).  Two intervals that merely touch — one ending exactly when the
// other starts — do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
    return s1.Before(e2) && s2.Before(e1)
}
