package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import (
	"context"
	"time"

	"filedrop/internal/model"
)

// MarkResult discriminates the outcome of the conditional used-flag update.
type MarkResult int

const (
	// MarkSuccess means this call flipped used from false to true.
	MarkSuccess MarkResult = iota
	// MarkAlreadyUsed means the record exists but was consumed earlier.
	MarkAlreadyUsed
	// MarkNotFound means no record carries the given id.
	MarkNotFound
)

// FileRepository defines data access for token records using SQL queries only.
// No business logic here — strictly persistence operations.
type FileRepository interface {
	// Insert stores a new token record. The caller provides all fields
	// including the generated ID.
	Insert(ctx context.Context, f *model.File) error

	// FindByID returns a record by its token id, or sql.ErrNoRows wrapped
	// by the driver when absent.
	FindByID(ctx context.Context, id string) (*model.File, error)

	// MarkUsed atomically sets used=true for the record iff it is still
	// unused. The implementation MUST do this as a single conditional
	// update; a read followed by a write reintroduces the redemption race.
	MarkUsed(ctx context.Context, id string) (MarkResult, error)

	// FindExpired returns ids of records whose expiry lies before the given
	// instant, at most limit of them, oldest first.
	FindExpired(ctx context.Context, before time.Time, limit int) ([]string, error)

	// Delete removes a record by id. It returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error
}
