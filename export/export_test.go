// ABOUTME: Tests for sqlite export
// ABOUTME: Exports a snapshot and reads it back through database/sql
package export

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdeck/models"
	"crmdeck/store"
)

func TestToSQLiteRoundTrip(t *testing.T) {
	contactID := uuid.New()
	due := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	snap := store.Snapshot{
		Contacts: []models.Contact{{
			ID: uuid.New(), Name: "Ada Lovelace", Email: "ada@example.com",
			Tags: []string{"vip", "engineering"}, CreatedAt: now, UpdatedAt: now,
		}},
		Leads: []models.Lead{{
			ID: uuid.New(), Name: "Hot Lead", Value: 100000,
			Status: models.LeadStatusQualified, Source: "web", CreatedAt: now, UpdatedAt: now,
		}},
		Deals: []models.Deal{{
			ID: uuid.New(), Title: "Enterprise plan", Value: 250000,
			Stage: models.StageProposal, ContactID: &contactID, Probability: 60,
			CreatedAt: now, UpdatedAt: now,
		}},
		Tasks: []models.Task{{
			ID: uuid.New(), Title: "Send proposal", DueDate: &due,
			Priority: models.PriorityHigh, Status: models.TaskStatusPending,
			RelatedTo: &models.Relation{Type: models.RelationDeal, ID: uuid.New()},
			CreatedAt: now, UpdatedAt: now,
		}},
	}

	path := filepath.Join(t.TempDir(), "export.db")
	require.NoError(t, ToSQLite(snap, path))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"contacts", "leads", "deals", "tasks"} {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
		assert.Equal(t, 1, n, "table %s", table)
	}

	var stage string
	var value int64
	var exportedContact string
	require.NoError(t, db.QueryRow("SELECT stage, value, contact_id FROM deals").Scan(&stage, &value, &exportedContact))
	assert.Equal(t, models.StageProposal, stage)
	assert.Equal(t, int64(250000), value)
	assert.Equal(t, contactID.String(), exportedContact)

	var tags string
	require.NoError(t, db.QueryRow("SELECT tags FROM contacts").Scan(&tags))
	assert.Equal(t, "vip,engineering", tags)
}

func TestToSQLiteReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	now := time.Now().UTC()

	first := store.Snapshot{Leads: []models.Lead{
		{ID: uuid.New(), Name: "One", Status: models.LeadStatusNew, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), Name: "Two", Status: models.LeadStatusNew, CreatedAt: now, UpdatedAt: now},
	}}
	require.NoError(t, ToSQLite(first, path))

	second := store.Snapshot{Leads: []models.Lead{
		{ID: uuid.New(), Name: "Only", Status: models.LeadStatusNew, CreatedAt: now, UpdatedAt: now},
	}}
	require.NoError(t, ToSQLite(second, path))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM leads").Scan(&n))
	assert.Equal(t, 1, n, "export should reflect only the latest snapshot")
}
