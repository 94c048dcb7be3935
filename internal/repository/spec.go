// Package repository contains data access layer abstractions.
// Implementations live in subpackages (sqlstore, cached).
package repository

import (
	"context"

	"specshare/internal/model"
)

// SpecRepository is the persistence gateway for the specs table.
// Each method is a single parameterized statement: no retries, no transactions.
// A missing row is reported as sql.ErrNoRows; any other error is a storage failure.
type SpecRepository interface {
	// Create inserts a new row. CreatedAt is assigned by the store and
	// returned on the stored record; an id collision fails the insert.
	Create(ctx context.Context, spec *model.Spec) (*model.Spec, error)

	// FindContent returns only the raw content of the spec with the given id.
	FindContent(ctx context.Context, id string) (string, error)

	// FindByID returns the full row for the given id.
	FindByID(ctx context.Context, id string) (*model.Spec, error)
}
