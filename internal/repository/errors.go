// Package repository implements the data access layer over database/sql.
// This file defines sentinel error values shared across repositories so
// handlers can map failures to HTTP status codes without inspecting driver
// error strings themselves.
package repository

import "errors"

// ErrEmailExists is returned by UserRepo.Create when the email uniqueness
// constraint rejects the insert. Handlers translate this into HTTP 409.
// Uniqueness is enforced by the database index, not by a read-then-write
// check, so two concurrent registrations race safely: one wins, one gets
// this error.
var ErrEmailExists = errors.New("email already exists")

// ErrItemNotFound is returned when a clothing item does not exist or is
// owned by a different user. The two cases are deliberately merged: an
// item id must not reveal whether it exists in someone else's wardrobe.
// Handlers translate this into HTTP 404.
var ErrItemNotFound = errors.New("item not found")
