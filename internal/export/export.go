// Package export writes a one-shot SQLite snapshot of the two saturated-
// ABox tables. The reasoner's own tables are in-memory and immutable once
// built (§5); this package never reads them back, it only dumps them for
// external tools to query with plain SQL.
package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nodeadmin/elreasoner/abox"
	"github.com/nodeadmin/elreasoner/ontology"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS class_assertion (
	individual TEXT NOT NULL,
	class_name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS object_property_assertion (
	object_property  TEXT NOT NULL,
	left_individual  TEXT NOT NULL,
	right_individual TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_class_assertion_individual ON class_assertion(individual);
CREATE INDEX IF NOT EXISTS idx_opa_left ON object_property_assertion(left_individual);
`

// ToFile opens (creating if needed) a SQLite database at path, (re)creates
// its two tables, and bulk-inserts every row of sat inside a single
// transaction. Entities are exported as their IRI strings — the tables
// are meant for ad hoc SQL querying outside the Go process, which has no
// notion of an Entity handle.
func ToFile(ctx context.Context, path string, sat *abox.Saturation, arena *ontology.Arena) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("export: open %s: %w", path, err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("export: connect: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("export: create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("export: begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM class_assertion"); err != nil {
		return fmt.Errorf("export: clear class_assertion: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM object_property_assertion"); err != nil {
		return fmt.Errorf("export: clear object_property_assertion: %w", err)
	}

	caStmt, err := tx.PrepareContext(ctx, "INSERT INTO class_assertion (individual, class_name) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("export: prepare class_assertion insert: %w", err)
	}
	defer caStmt.Close()
	for _, row := range sat.ClassAssertions {
		if _, err := caStmt.ExecContext(ctx, arena.IRI(row.Individual), arena.IRI(row.Class)); err != nil {
			return fmt.Errorf("export: insert class_assertion row: %w", err)
		}
	}

	paStmt, err := tx.PrepareContext(ctx, "INSERT INTO object_property_assertion (object_property, left_individual, right_individual) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("export: prepare object_property_assertion insert: %w", err)
	}
	defer paStmt.Close()
	for _, row := range sat.PropertyAssertions {
		if _, err := paStmt.ExecContext(ctx, arena.IRI(row.Property), arena.IRI(row.Left), arena.IRI(row.Right)); err != nil {
			return fmt.Errorf("export: insert object_property_assertion row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export: commit: %w", err)
	}
	return nil
}
