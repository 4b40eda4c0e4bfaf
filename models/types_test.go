// ABOUTME: Tests for CRM data models
// ABOUTME: Validates overdue classification, deal helpers, and enum checks
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTaskIsOverdue(t *testing.T) {
	now := time.Now()
	past := now.AddDate(0, 0, -2)
	future := now.AddDate(0, 0, 2)

	task := &Task{
		ID:       uuid.New(),
		Title:    "Call back prospect",
		Status:   TaskStatusPending,
		Priority: PriorityHigh,
		DueDate:  &past,
	}

	if !task.IsOverdue(now) {
		t.Error("pending task with past due date should be overdue")
	}

	task.Status = TaskStatusCompleted
	if task.IsOverdue(now) {
		t.Error("completed task should never be overdue")
	}

	task.Status = TaskStatusInProgress
	task.DueDate = &future
	if task.IsOverdue(now) {
		t.Error("task due in the future should not be overdue")
	}

	task.DueDate = nil
	if task.IsOverdue(now) {
		t.Error("task without a due date should not be overdue")
	}
}

func TestTaskIsDueSoon(t *testing.T) {
	now := time.Now()
	tomorrow := now.Add(24 * time.Hour)

	task := &Task{
		Status:  TaskStatusPending,
		DueDate: &tomorrow,
	}

	if !task.IsDueSoon(now, 3) {
		t.Error("task due tomorrow should be due soon within 3 days")
	}
	if task.IsDueSoon(now, 0) {
		t.Error("zero-day window should match nothing")
	}

	task.Status = TaskStatusCompleted
	if task.IsDueSoon(now, 3) {
		t.Error("completed task should not be due soon")
	}
}

func TestDealIsClosed(t *testing.T) {
	deal := &Deal{Stage: StageProspecting}
	if deal.IsClosed() {
		t.Error("prospecting deal should not be closed")
	}

	deal.Stage = StageClosedWon
	if !deal.IsClosed() {
		t.Error("closed-won deal should be closed")
	}

	deal.Stage = StageClosedLost
	if !deal.IsClosed() {
		t.Error("closed-lost deal should be closed")
	}
}

func TestDealWeightedValue(t *testing.T) {
	deal := &Deal{Value: 100000, Probability: 50}
	if got := deal.WeightedValue(); got != 50000 {
		t.Errorf("expected weighted value 50000, got %d", got)
	}

	deal.Probability = 0
	if got := deal.WeightedValue(); got != 0 {
		t.Errorf("expected 0 for zero probability, got %d", got)
	}

	// Out-of-range probabilities are stored as-is but clamped here.
	deal.Probability = 150
	if got := deal.WeightedValue(); got != 100000 {
		t.Errorf("expected clamp at full value, got %d", got)
	}
}

func TestValidStage(t *testing.T) {
	for _, stage := range Stages {
		if !ValidStage(stage) {
			t.Errorf("stage %q should be valid", stage)
		}
	}
	if ValidStage("closed_won") {
		t.Error("underscore variant should not be a valid stage")
	}
	if ValidStage("") {
		t.Error("empty stage should not be valid")
	}
}

func TestValidEnums(t *testing.T) {
	if !ValidLeadStatus(LeadStatusConverted) {
		t.Error("converted should be a valid lead status")
	}
	if ValidLeadStatus("archived") {
		t.Error("archived should not be a valid lead status")
	}
	if !ValidTaskStatus(TaskStatusInProgress) {
		t.Error("in-progress should be a valid task status")
	}
	if !ValidPriority(PriorityMedium) {
		t.Error("medium should be a valid priority")
	}
	if ValidPriority("urgent") {
		t.Error("urgent should not be a valid priority")
	}
}
