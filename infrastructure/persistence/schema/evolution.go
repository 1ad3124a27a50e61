package schema

import (
	"context"
	"encoding/json"
	"fmt"
)

// Document is a decoded bundle payload in its generic JSON form. Migrations
// rewrite it in place.
type Document map[string]interface{}

// Migration moves a Document one schema version forward (Up) or back (Down)
type Migration struct {
	FromVersion int           `json:"from_version"`
	ToVersion   int           `json:"to_version"`
	Description string        `json:"description"`
	Up          MigrationFunc `json:"-"`
	Down        MigrationFunc `json:"-"`
}

// MigrationFunc is a function that performs a migration
type MigrationFunc func(ctx context.Context, doc Document) error

// Step records one applied migration
type Step struct {
	FromVersion int    `json:"from_version"`
	ToVersion   int    `json:"to_version"`
	Description string `json:"description"`
}

// Evolution holds the registered migrations between bundle schema versions.
// It is read-only after registration and safe for concurrent Migrate calls.
type Evolution struct {
	migrations []Migration
}

// NewEvolution creates an empty evolution
func NewEvolution() *Evolution {
	return &Evolution{
		migrations: []Migration{},
	}
}

// RegisterMigration registers a new migration
func (e *Evolution) RegisterMigration(migration Migration) error {
	if migration.ToVersion != migration.FromVersion+1 {
		return fmt.Errorf("invalid migration: %d->%d must advance exactly one version",
			migration.FromVersion, migration.ToVersion)
	}
	if migration.Up == nil {
		return fmt.Errorf("invalid migration: %d->%d has no up function",
			migration.FromVersion, migration.ToVersion)
	}

	for _, existing := range e.migrations {
		if existing.FromVersion == migration.FromVersion &&
			existing.ToVersion == migration.ToVersion {
			return fmt.Errorf("migration from %d to %d already exists",
				migration.FromVersion, migration.ToVersion)
		}
	}

	e.migrations = append(e.migrations, migration)
	return nil
}

// Migrate rewrites doc from version from to version to and returns the steps
// applied in order
func (e *Evolution) Migrate(ctx context.Context, doc Document, from, to int) ([]Step, error) {
	if from == to {
		return nil, nil
	}
	if from > to {
		return e.rollback(ctx, doc, from, to)
	}
	return e.upgrade(ctx, doc, from, to)
}

// upgrade performs forward migrations
func (e *Evolution) upgrade(ctx context.Context, doc Document, from, to int) ([]Step, error) {
	var steps []Step
	for current := from; current < to; current++ {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		migration := e.findMigration(current, current+1)
		if migration == nil {
			return steps, fmt.Errorf("no migration found from version %d to %d",
				current, current+1)
		}

		if err := migration.Up(ctx, doc); err != nil {
			return steps, fmt.Errorf("migration %d->%d failed: %w",
				migration.FromVersion, migration.ToVersion, err)
		}
		steps = append(steps, Step{
			FromVersion: migration.FromVersion,
			ToVersion:   migration.ToVersion,
			Description: migration.Description,
		})
	}
	return steps, nil
}

// rollback performs backward migrations
func (e *Evolution) rollback(ctx context.Context, doc Document, from, to int) ([]Step, error) {
	var steps []Step
	for current := from; current > to; current-- {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		migration := e.findMigration(current-1, current)
		if migration == nil {
			return steps, fmt.Errorf("no rollback found from version %d to %d",
				current, current-1)
		}
		if migration.Down == nil {
			return steps, fmt.Errorf("migration %d->%d does not support rollback",
				migration.FromVersion, migration.ToVersion)
		}

		if err := migration.Down(ctx, doc); err != nil {
			return steps, fmt.Errorf("rollback %d->%d failed: %w",
				migration.ToVersion, migration.FromVersion, err)
		}
		steps = append(steps, Step{
			FromVersion: migration.ToVersion,
			ToVersion:   migration.FromVersion,
			Description: migration.Description,
		})
	}
	return steps, nil
}

// findMigration finds a migration between two versions
func (e *Evolution) findMigration(from, to int) *Migration {
	for i := range e.migrations {
		if e.migrations[i].FromVersion == from && e.migrations[i].ToVersion == to {
			return &e.migrations[i]
		}
	}
	return nil
}

// Latest returns the highest version reachable by registered migrations,
// or 1 when none are registered
func (e *Evolution) Latest() int {
	latest := 1
	for _, m := range e.migrations {
		if m.ToVersion > latest {
			latest = m.ToVersion
		}
	}
	return latest
}

// Decode unmarshals raw JSON into a Document
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("payload is not a JSON object")
	}
	return doc, nil
}

// Convert re-encodes doc into the typed value v
func Convert(doc Document, v interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
