// Package repository implements data access against MySQL.  Sentinel
// errors declared here let higher layers distinguish failure scenarios
// without inspecting driver errors: handlers translate them into HTTP
// statuses and the service layer wraps them into its own taxonomy.
package repository

import "errors"

// ErrLabNotFound is returned when a referenced lab does not exist.
var ErrLabNotFound = errors.New("lab not found")

// ErrInstructorNotFound is returned when a referenced instructor does
// not exist.
var ErrInstructorNotFound = errors.New("instructor not found")

// ErrGroupNotFound is returned when a referenced study group does not
// exist.
var ErrGroupNotFound = errors.New("study group not found")

// ErrSupplyItemNotFound is returned when a referenced supply item does
// not exist.
var ErrSupplyItemNotFound = errors.New("supply item not found")

// ErrReservationNotFound is returned when a reservation id is unknown.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrUserNotFound is returned when no user matches the given key.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned on registration when the email is already
// in use.
var ErrEmailTaken = errors.New("email already registered")

// ErrTokenNotFound is returned when a refresh token hash does not match
// any active session.
var ErrTokenNotFound = errors.New("refresh token not found")
