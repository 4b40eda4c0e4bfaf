// ABOUTME: Tests for the entity store
// ABOUTME: Covers id/timestamp stamping, partial updates, no-op semantics, and reload
package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"crmdeck/models"
)

func setupTestKV(t *testing.T) *KV {
	t.Helper()

	kv, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		_ = kv.Close()
	})
	return kv
}

func setupEntityStore(t *testing.T) (*KV, *EntityStore) {
	t.Helper()

	kv := setupTestKV(t)
	s, err := NewEntityStore(kv)
	if err != nil {
		t.Fatalf("NewEntityStore failed: %v", err)
	}
	return kv, s
}

func TestAddContactStampsIDAndTimestamps(t *testing.T) {
	_, s := setupEntityStore(t)

	c, err := s.AddContact(models.Contact{Name: "Ada Lovelace", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	if c.ID == uuid.Nil {
		t.Error("contact ID was not set")
	}
	if !c.CreatedAt.Equal(c.UpdatedAt) {
		t.Error("CreatedAt and UpdatedAt should match at creation")
	}

	// Caller-supplied id and timestamps must be ignored.
	forged := models.Contact{Name: "Imposter"}
	forged.ID = c.ID
	forged.CreatedAt = time.Unix(0, 0)
	c2, err := s.AddContact(forged)
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}
	if c2.ID == c.ID {
		t.Error("store reused a caller-supplied id")
	}
	if c2.CreatedAt.Unix() == 0 {
		t.Error("store kept a caller-supplied CreatedAt")
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	_, s := setupEntityStore(t)

	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 20; i++ {
		l, err := s.AddLead(models.Lead{Name: "Lead"})
		if err != nil {
			t.Fatalf("AddLead failed: %v", err)
		}
		if seen[l.ID] {
			t.Fatalf("duplicate id %s", l.ID)
		}
		seen[l.ID] = true
	}
}

func TestUpdateLeadPartialFields(t *testing.T) {
	_, s := setupEntityStore(t)

	l, err := s.AddLead(models.Lead{
		Name:   "Grace Hopper",
		Email:  "grace@example.com",
		Value:  100000,
		Source: "referral",
	})
	if err != nil {
		t.Fatalf("AddLead failed: %v", err)
	}
	if l.Status != models.LeadStatusNew {
		t.Errorf("expected default status new, got %s", l.Status)
	}

	time.Sleep(2 * time.Millisecond)

	status := models.LeadStatusConverted
	if err := s.UpdateLead(l.ID, LeadPatch{Status: &status}); err != nil {
		t.Fatalf("UpdateLead failed: %v", err)
	}

	got := s.GetLead(l.ID)
	if got == nil {
		t.Fatal("lead disappeared after update")
	}
	if got.Status != models.LeadStatusConverted {
		t.Errorf("expected status converted, got %s", got.Status)
	}
	if got.Name != "Grace Hopper" || got.Email != "grace@example.com" || got.Value != 100000 {
		t.Error("fields absent from the patch were changed")
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Error("UpdatedAt should strictly increase on update")
	}
	if !got.CreatedAt.Equal(l.CreatedAt) {
		t.Error("CreatedAt changed on update")
	}
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	_, s := setupEntityStore(t)

	if _, err := s.AddDeal(models.Deal{Title: "Big Deal", Value: 50000}); err != nil {
		t.Fatalf("AddDeal failed: %v", err)
	}

	title := "Renamed"
	if err := s.UpdateDeal(uuid.New(), DealPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateDeal on missing id should not error: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Deals) != 1 || snap.Deals[0].Title != "Big Deal" {
		t.Error("update of missing id modified the collection")
	}
}

func TestDeleteMissingIDIsNoOp(t *testing.T) {
	_, s := setupEntityStore(t)

	task, err := s.AddTask(models.Task{Title: "Send proposal"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	if err := s.DeleteTask(uuid.New()); err != nil {
		t.Fatalf("DeleteTask on missing id should not error: %v", err)
	}
	if len(s.Snapshot().Tasks) != 1 {
		t.Error("delete of missing id modified the collection")
	}

	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if len(s.Snapshot().Tasks) != 0 {
		t.Error("task was not removed")
	}
}

func TestDeleteContactDoesNotCascade(t *testing.T) {
	_, s := setupEntityStore(t)

	c, err := s.AddContact(models.Contact{Name: "Linked Contact"})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	d, err := s.AddDeal(models.Deal{Title: "Linked Deal", ContactID: &c.ID})
	if err != nil {
		t.Fatalf("AddDeal failed: %v", err)
	}

	if err := s.DeleteContact(c.ID); err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}

	got := s.GetDeal(d.ID)
	if got == nil {
		t.Fatal("deal was cascaded away")
	}
	if got.ContactID == nil || *got.ContactID != c.ID {
		t.Error("deal's contact reference was modified; it should dangle")
	}
	if !got.UpdatedAt.Equal(d.UpdatedAt) {
		t.Error("deal was touched by the contact delete")
	}
}

func TestSnapshotRoundTripRestoresTimestamps(t *testing.T) {
	kv, s := setupEntityStore(t)

	due := time.Now().AddDate(0, 0, -3)
	if _, err := s.AddTask(models.Task{Title: "Overdue", DueDate: &due, Priority: models.PriorityHigh}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	lead, err := s.AddLead(models.Lead{Name: "Round Trip", Value: 1234})
	if err != nil {
		t.Fatalf("AddLead failed: %v", err)
	}

	// A second store over the same KV sees exactly what was persisted.
	reloaded, err := NewEntityStore(kv)
	if err != nil {
		t.Fatalf("NewEntityStore reload failed: %v", err)
	}

	snap := reloaded.Snapshot()
	if len(snap.Tasks) != 1 || len(snap.Leads) != 1 {
		t.Fatalf("expected 1 task and 1 lead after reload, got %d/%d", len(snap.Tasks), len(snap.Leads))
	}

	gotTask := snap.Tasks[0]
	if gotTask.DueDate == nil {
		t.Fatal("due date lost in round trip")
	}
	if !gotTask.DueDate.Equal(due) {
		t.Errorf("due date changed in round trip: want %v, got %v", due, *gotTask.DueDate)
	}
	// Restored values must behave as timestamps, not text.
	if !gotTask.DueDate.Before(time.Now()) {
		t.Error("restored due date does not compare as a time value")
	}

	gotLead := snap.Leads[0]
	if !gotLead.CreatedAt.Equal(lead.CreatedAt) {
		t.Errorf("CreatedAt changed in round trip: want %v, got %v", lead.CreatedAt, gotLead.CreatedAt)
	}
}

func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	kv := setupTestKV(t)

	if err := kv.Set(dataKey, []byte("{not json")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	s, err := NewEntityStore(kv)
	if err != nil {
		t.Fatalf("NewEntityStore should tolerate a corrupt snapshot: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Contacts)+len(snap.Leads)+len(snap.Deals)+len(snap.Tasks) != 0 {
		t.Error("corrupt snapshot should rehydrate as empty collections")
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	kv, s := setupEntityStore(t)

	names := []string{"first", "second", "third"}
	for _, n := range names {
		if _, err := s.AddContact(models.Contact{Name: n}); err != nil {
			t.Fatalf("AddContact failed: %v", err)
		}
	}

	reloaded, err := NewEntityStore(kv)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	snap := reloaded.Snapshot()
	for i, n := range names {
		if snap.Contacts[i].Name != n {
			t.Errorf("position %d: want %s, got %s", i, n, snap.Contacts[i].Name)
		}
	}
}

func TestUpdateDealSetsAndClearsNullableFields(t *testing.T) {
	_, s := setupEntityStore(t)

	deal, err := s.AddDeal(models.Deal{Title: "Enterprise plan"})
	if err != nil {
		t.Fatalf("AddDeal failed: %v", err)
	}
	if deal.ContactID != nil || deal.CloseDate != nil {
		t.Fatal("new deal should start without contact or close date")
	}

	contactID := uuid.New()
	closeDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	contactRef := &contactID
	closeRef := &closeDate
	if err := s.UpdateDeal(deal.ID, DealPatch{ContactID: &contactRef, CloseDate: &closeRef}); err != nil {
		t.Fatalf("UpdateDeal failed: %v", err)
	}

	got := s.GetDeal(deal.ID)
	if got.ContactID == nil || *got.ContactID != contactID {
		t.Errorf("contact reference not set: %v", got.ContactID)
	}
	if got.CloseDate == nil || !got.CloseDate.Equal(closeDate) {
		t.Errorf("close date not set: %v", got.CloseDate)
	}

	// A patch that omits both fields must leave them untouched.
	title := "Enterprise plan v2"
	if err := s.UpdateDeal(deal.ID, DealPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateDeal failed: %v", err)
	}
	got = s.GetDeal(deal.ID)
	if got.ContactID == nil || got.CloseDate == nil {
		t.Error("unrelated patch cleared nullable fields")
	}

	// An explicit nil clears.
	var noContact *uuid.UUID
	var noClose *time.Time
	if err := s.UpdateDeal(deal.ID, DealPatch{ContactID: &noContact, CloseDate: &noClose}); err != nil {
		t.Fatalf("UpdateDeal failed: %v", err)
	}
	got = s.GetDeal(deal.ID)
	if got.ContactID != nil {
		t.Errorf("contact reference not cleared: %v", got.ContactID)
	}
	if got.CloseDate != nil {
		t.Errorf("close date not cleared: %v", got.CloseDate)
	}
}

func TestUpdateTaskSetsAndClearsNullableFields(t *testing.T) {
	_, s := setupEntityStore(t)

	task, err := s.AddTask(models.Task{Title: "Send proposal"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	due := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
	dueRef := &due
	relation := &models.Relation{Type: models.RelationDeal, ID: uuid.New()}
	if err := s.UpdateTask(task.ID, TaskPatch{DueDate: &dueRef, RelatedTo: &relation}); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	got := s.GetTask(task.ID)
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date not set: %v", got.DueDate)
	}
	if got.RelatedTo == nil || got.RelatedTo.ID != relation.ID {
		t.Errorf("relation not set: %v", got.RelatedTo)
	}

	var noDue *time.Time
	var noRelation *models.Relation
	if err := s.UpdateTask(task.ID, TaskPatch{DueDate: &noDue, RelatedTo: &noRelation}); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	got = s.GetTask(task.ID)
	if got.DueDate != nil {
		t.Errorf("due date not cleared: %v", got.DueDate)
	}
	if got.RelatedTo != nil {
		t.Errorf("relation not cleared: %v", got.RelatedTo)
	}
}
