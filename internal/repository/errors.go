// Package repository holds the MySQL and Redis adapters used by the
// service: reservation storage, user accounts, refresh tokens, usage
// counters, distributed locks and the announcement board.
package repository

import "errors"

// ErrUsernameExists is returned by UserRepo.Create for a duplicate login.
var ErrUsernameExists = errors.New("username already exists")

// ErrNotFound is returned when an updated or deleted row does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
