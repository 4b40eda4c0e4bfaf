// ABOUTME: Data models for CRM entities
// ABOUTME: Defines Contact, Lead, Deal, Task, and User structs
package models

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Position  string    `json:"position,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Lead struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company,omitempty"`
	Value      int64     `json:"value,omitempty"` // in cents
	Status     string    `json:"status"`
	AssignedTo string    `json:"assigned_to,omitempty"`
	Source     string    `json:"source,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Deal struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Value       int64      `json:"value,omitempty"` // in cents
	Stage       string     `json:"stage"`
	ContactID   *uuid.UUID `json:"contact_id,omitempty"` // soft reference, never validated
	AssignedTo  string     `json:"assigned_to,omitempty"`
	CloseDate   *time.Time `json:"close_date,omitempty"`
	Probability int        `json:"probability,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	RelatedTo   *Relation  `json:"related_to,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Relation is a soft reference from a task to another record. The target is
// not guaranteed to exist.
type Relation struct {
	Type string    `json:"type"`
	ID   uuid.UUID `json:"id"`
}

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Deal stage constants.
const (
	StageProspecting   = "prospecting"
	StageQualification = "qualification"
	StageProposal      = "proposal"
	StageNegotiation   = "negotiation"
	StageClosedWon     = "closed-won"
	StageClosedLost    = "closed-lost"
)

// Stages lists the pipeline stages in board order.
var Stages = []string{
	StageProspecting,
	StageQualification,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// Lead status constants.
const (
	LeadStatusNew       = "new"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// Task status constants.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// Task priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// User role constants.
const (
	RoleAdmin       = "admin"
	RoleManager     = "manager"
	RoleSalesperson = "salesperson"
)

// Relation type constants for Task.RelatedTo.
const (
	RelationContact = "contact"
	RelationLead    = "lead"
	RelationDeal    = "deal"
)

// ValidStage reports whether s is one of the known pipeline stages.
func ValidStage(s string) bool {
	for _, stage := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// ValidLeadStatus reports whether s is a known lead status.
func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether s is a known task priority.
func ValidPriority(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// IsOverdue returns true if the task is past its due date and not completed.
// Completed tasks are never overdue, regardless of due date.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Status == TaskStatusCompleted {
		return false
	}
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}

// IsDueSoon returns true if the task is due within the given number of days
// and is not already overdue or completed.
func (t *Task) IsDueSoon(now time.Time, days int) bool {
	if t.Status == TaskStatusCompleted {
		return false
	}
	if t.DueDate == nil {
		return false
	}
	threshold := now.Add(time.Duration(days) * 24 * time.Hour)
	return t.DueDate.After(now) && t.DueDate.Before(threshold)
}

// IsClosed reports whether the deal sits in a terminal stage.
func (d *Deal) IsClosed() bool {
	return d.Stage == StageClosedWon || d.Stage == StageClosedLost
}

// WeightedValue returns the deal value scaled by its probability.
func (d *Deal) WeightedValue() int64 {
	if d.Probability <= 0 {
		return 0
	}
	p := d.Probability
	if p > 100 {
		p = 100
	}
	return d.Value * int64(p) / 100
}
