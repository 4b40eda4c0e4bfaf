// ABOUTME: SQLite snapshot export for external reporting
// ABOUTME: Dumps the entity aggregate into a standalone database file
package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"crmdeck/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	company TEXT,
	position TEXT,
	tags TEXT,
	notes TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS leads (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	company TEXT,
	value INTEGER,
	status TEXT NOT NULL,
	assigned_to TEXT,
	source TEXT,
	notes TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);

CREATE TABLE IF NOT EXISTS deals (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	value INTEGER,
	stage TEXT NOT NULL,
	contact_id TEXT,
	assigned_to TEXT,
	close_date DATETIME,
	probability INTEGER,
	notes TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deals_stage ON deals(stage);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	due_date DATETIME,
	priority TEXT NOT NULL,
	status TEXT NOT NULL,
	assigned_to TEXT,
	related_type TEXT,
	related_id TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
`

// ToSQLite writes the snapshot into a sqlite database at path. An existing
// file is replaced, so the export always reflects exactly one snapshot.
func ToSQLite(snap store.Snapshot, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace existing export: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	for _, c := range snap.Contacts {
		_, err := tx.Exec(`
			INSERT INTO contacts (id, name, email, phone, company, position, tags, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID.String(), c.Name, c.Email, c.Phone, c.Company, c.Position, strings.Join(c.Tags, ","), c.Notes, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to export contact %s: %w", c.ID, err)
		}
	}

	for _, l := range snap.Leads {
		_, err := tx.Exec(`
			INSERT INTO leads (id, name, email, phone, company, value, status, assigned_to, source, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, l.ID.String(), l.Name, l.Email, l.Phone, l.Company, l.Value, l.Status, l.AssignedTo, l.Source, l.Notes, l.CreatedAt, l.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to export lead %s: %w", l.ID, err)
		}
	}

	for _, d := range snap.Deals {
		var contactID *string
		if d.ContactID != nil {
			s := d.ContactID.String()
			contactID = &s
		}
		_, err := tx.Exec(`
			INSERT INTO deals (id, title, value, stage, contact_id, assigned_to, close_date, probability, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, d.ID.String(), d.Title, d.Value, d.Stage, contactID, d.AssignedTo, d.CloseDate, d.Probability, d.Notes, d.CreatedAt, d.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to export deal %s: %w", d.ID, err)
		}
	}

	for _, t := range snap.Tasks {
		var relatedType, relatedID *string
		if t.RelatedTo != nil {
			rt := t.RelatedTo.Type
			ri := t.RelatedTo.ID.String()
			relatedType, relatedID = &rt, &ri
		}
		_, err := tx.Exec(`
			INSERT INTO tasks (id, title, description, due_date, priority, status, assigned_to, related_type, related_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.ID.String(), t.Title, t.Description, t.DueDate, t.Priority, t.Status, t.AssignedTo, relatedType, relatedID, t.CreatedAt, t.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to export task %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}
