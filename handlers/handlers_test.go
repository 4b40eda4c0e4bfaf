// ABOUTME: Tests for MCP tool handlers
// ABOUTME: Exercises tool inputs/outputs against a temporary store
package handlers

import (
	"context"
	"testing"
	"time"

	"crmdeck/models"
	"crmdeck/store"
)

func setupTestStore(t *testing.T) *store.EntityStore {
	t.Helper()

	kv, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		_ = kv.Close()
	})

	s, err := store.NewEntityStore(kv)
	if err != nil {
		t.Fatalf("NewEntityStore failed: %v", err)
	}
	return s
}

func TestAddAndFindContacts(t *testing.T) {
	s := setupTestStore(t)
	h := NewContactHandlers(s)
	ctx := context.Background()

	_, created, err := h.AddContact(ctx, nil, AddContactInput{
		Name:    "Ada Lovelace",
		Email:   "ada@analytical.engine",
		Company: "Babbage & Co",
	})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}
	if created.ID == "" {
		t.Error("contact id not set")
	}
	if created.CreatedAt != created.UpdatedAt {
		t.Error("created_at and updated_at should match at creation")
	}

	_, found, err := h.FindContacts(ctx, nil, FindContactsInput{Query: "lovelace"})
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if found.Count != 1 || found.Contacts[0].Name != "Ada Lovelace" {
		t.Errorf("expected to find Ada Lovelace, got %+v", found)
	}

	_, none, err := h.FindContacts(ctx, nil, FindContactsInput{Query: "lovelace", Company: "Wrong Co"})
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if none.Count != 0 {
		t.Error("AND-combined filters should exclude mismatched company")
	}
}

func TestAddContactRequiresName(t *testing.T) {
	h := NewContactHandlers(setupTestStore(t))

	if _, _, err := h.AddContact(context.Background(), nil, AddContactInput{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestMoveDealStageTool(t *testing.T) {
	s := setupTestStore(t)
	h := NewDealHandlers(s)
	ctx := context.Background()

	_, deal, err := h.CreateDeal(ctx, nil, CreateDealInput{Title: "Enterprise plan", Value: 250000})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	if deal.Stage != models.StageProspecting {
		t.Errorf("expected default stage prospecting, got %s", deal.Stage)
	}

	_, moved, err := h.MoveDealStage(ctx, nil, MoveDealStageInput{ID: deal.ID, Stage: models.StageClosedWon})
	if err != nil {
		t.Fatalf("MoveDealStage failed: %v", err)
	}
	if !moved.Moved || moved.Stage != models.StageClosedWon {
		t.Errorf("expected move to closed-won, got %+v", moved)
	}

	// Same stage again: tool succeeds, nothing moves.
	_, again, err := h.MoveDealStage(ctx, nil, MoveDealStageInput{ID: deal.ID, Stage: models.StageClosedWon})
	if err != nil {
		t.Fatalf("MoveDealStage failed: %v", err)
	}
	if again.Moved {
		t.Error("re-dropping onto the same stage should not issue an update")
	}

	_, report, err := h.PipelineReport(ctx, nil, PipelineReportInput{})
	if err != nil {
		t.Fatalf("PipelineReport failed: %v", err)
	}
	if report.WonValue != 250000 {
		t.Errorf("won value: want 250000, got %d", report.WonValue)
	}
}

func TestCreateDealRejectsBadStage(t *testing.T) {
	h := NewDealHandlers(setupTestStore(t))

	_, _, err := h.CreateDeal(context.Background(), nil, CreateDealInput{Title: "X", Stage: "closed_won"})
	if err == nil {
		t.Error("underscore stage variant should be rejected")
	}
}

func TestTaskTools(t *testing.T) {
	s := setupTestStore(t)
	h := NewTaskHandlers(s)
	ctx := context.Background()

	due := time.Now().AddDate(0, 0, -1).Format(time.RFC3339)
	_, task, err := h.CreateTask(ctx, nil, CreateTaskInput{Title: "Chase invoice", DueDate: due, Priority: models.PriorityHigh})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if !task.Overdue {
		t.Error("pending task with past due date should report overdue")
	}

	_, overdue, err := h.OverdueTasks(ctx, nil, OverdueTasksInput{})
	if err != nil {
		t.Fatalf("OverdueTasks failed: %v", err)
	}
	if overdue.Count != 1 {
		t.Errorf("expected 1 overdue task, got %d", overdue.Count)
	}

	done := models.TaskStatusCompleted
	if _, _, err := h.UpdateTask(ctx, nil, UpdateTaskInput{ID: task.ID, Status: &done}); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	_, overdue, err = h.OverdueTasks(ctx, nil, OverdueTasksInput{})
	if err != nil {
		t.Fatalf("OverdueTasks failed: %v", err)
	}
	if overdue.Count != 0 {
		t.Error("completed task should leave the overdue set")
	}
}

func TestLeadReport(t *testing.T) {
	s := setupTestStore(t)
	h := NewLeadHandlers(s)
	ctx := context.Background()

	_, lead, err := h.AddLead(ctx, nil, AddLeadInput{Name: "Hot Lead", Value: 100000, Source: "web"})
	if err != nil {
		t.Fatalf("AddLead failed: %v", err)
	}

	converted := models.LeadStatusConverted
	if _, _, err := h.UpdateLead(ctx, nil, UpdateLeadInput{ID: lead.ID, Status: &converted}); err != nil {
		t.Fatalf("UpdateLead failed: %v", err)
	}

	_, report, err := h.LeadReport(ctx, nil, LeadReportInput{})
	if err != nil {
		t.Fatalf("LeadReport failed: %v", err)
	}
	if report.ConversionRate != 100 {
		t.Errorf("conversion rate over 1 converted lead: want 100, got %f", report.ConversionRate)
	}
	if report.BySource["web"] != 1 {
		t.Errorf("source count: want 1, got %d", report.BySource["web"])
	}
}

func TestUpdateDealNullableFieldsViaTool(t *testing.T) {
	s := setupTestStore(t)
	h := NewDealHandlers(s)
	ctx := context.Background()

	_, created, err := h.CreateDeal(ctx, nil, CreateDealInput{Title: "Renewal"})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	contact, err := s.AddContact(models.Contact{Name: "Grace Hopper"})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	contactID := contact.ID.String()
	closeDate := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	_, updated, err := h.UpdateDeal(ctx, nil, UpdateDealInput{
		ID:        created.ID,
		ContactID: &contactID,
		CloseDate: &closeDate,
	})
	if err != nil {
		t.Fatalf("UpdateDeal failed: %v", err)
	}
	if updated.ContactID == nil || *updated.ContactID != contactID {
		t.Errorf("contact reference not set: %v", updated.ContactID)
	}
	if updated.CloseDate == nil || *updated.CloseDate != closeDate {
		t.Errorf("close date not set: %v", updated.CloseDate)
	}

	// Empty strings clear both fields.
	empty := ""
	_, cleared, err := h.UpdateDeal(ctx, nil, UpdateDealInput{
		ID:        created.ID,
		ContactID: &empty,
		CloseDate: &empty,
	})
	if err != nil {
		t.Fatalf("UpdateDeal failed: %v", err)
	}
	if cleared.ContactID != nil {
		t.Errorf("contact reference not cleared: %v", cleared.ContactID)
	}
	if cleared.CloseDate != nil {
		t.Errorf("close date not cleared: %v", cleared.CloseDate)
	}

	bad := "not-a-uuid"
	if _, _, err := h.UpdateDeal(ctx, nil, UpdateDealInput{ID: created.ID, ContactID: &bad}); err == nil {
		t.Error("expected error for malformed contact id")
	}
}

func TestUpdateTaskNullableFieldsViaTool(t *testing.T) {
	s := setupTestStore(t)
	h := NewTaskHandlers(s)
	ctx := context.Background()

	_, created, err := h.CreateTask(ctx, nil, CreateTaskInput{Title: "Follow up"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	deal, err := s.AddDeal(models.Deal{Title: "Pilot"})
	if err != nil {
		t.Fatalf("AddDeal failed: %v", err)
	}

	due := time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC).Format(time.RFC3339)
	relType := models.RelationDeal
	relID := deal.ID.String()
	_, updated, err := h.UpdateTask(ctx, nil, UpdateTaskInput{
		ID:          created.ID,
		DueDate:     &due,
		RelatedType: &relType,
		RelatedID:   &relID,
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if updated.DueDate == nil || *updated.DueDate != due {
		t.Errorf("due date not set: %v", updated.DueDate)
	}
	if updated.RelatedType != models.RelationDeal || updated.RelatedID != relID {
		t.Errorf("relation not set: %s %s", updated.RelatedType, updated.RelatedID)
	}

	empty := ""
	_, cleared, err := h.UpdateTask(ctx, nil, UpdateTaskInput{
		ID:        created.ID,
		DueDate:   &empty,
		RelatedID: &empty,
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if cleared.DueDate != nil {
		t.Errorf("due date not cleared: %v", cleared.DueDate)
	}
	if cleared.RelatedID != "" || cleared.RelatedType != "" {
		t.Errorf("relation not cleared: %s %s", cleared.RelatedType, cleared.RelatedID)
	}
}
