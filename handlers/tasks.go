// ABOUTME: Task MCP tool handlers
// ABOUTME: Implements create_task, update_task, find_tasks, overdue_tasks
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"crmdeck/models"
	"crmdeck/store"
	"crmdeck/views"
)

type TaskHandlers struct {
	store *store.EntityStore
}

func NewTaskHandlers(s *store.EntityStore) *TaskHandlers {
	return &TaskHandlers{store: s}
}

type CreateTaskInput struct {
	Title       string `json:"title" jsonschema:"Task title (required)"`
	Description string `json:"description,omitempty" jsonschema:"Task description"`
	DueDate     string `json:"due_date,omitempty" jsonschema:"Due date in ISO 8601 format"`
	Priority    string `json:"priority,omitempty" jsonschema:"Priority: low, medium, high (default medium)"`
	Status      string `json:"status,omitempty" jsonschema:"Status: pending, in-progress, completed (default pending)"`
	AssignedTo  string `json:"assigned_to,omitempty" jsonschema:"Assignee"`
	RelatedType string `json:"related_type,omitempty" jsonschema:"Related record type: contact, lead, deal"`
	RelatedID   string `json:"related_id,omitempty" jsonschema:"Related record id (soft reference, not validated)"`
}

type TaskOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	AssignedTo  string  `json:"assigned_to,omitempty"`
	RelatedType string  `json:"related_type,omitempty"`
	RelatedID   string  `json:"related_id,omitempty"`
	Overdue     bool    `json:"overdue"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func taskOutput(t models.Task, now time.Time) TaskOutput {
	out := TaskOutput{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		AssignedTo:  t.AssignedTo,
		Overdue:     t.IsOverdue(now),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		s := t.DueDate.Format(time.RFC3339)
		out.DueDate = &s
	}
	if t.RelatedTo != nil {
		out.RelatedType = t.RelatedTo.Type
		out.RelatedID = t.RelatedTo.ID.String()
	}
	return out
}

func (h *TaskHandlers) CreateTask(_ context.Context, _ *mcp.CallToolRequest, input CreateTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.Title == "" {
		return nil, TaskOutput{}, fmt.Errorf("title is required")
	}
	if input.Priority != "" && !models.ValidPriority(input.Priority) {
		return nil, TaskOutput{}, fmt.Errorf("invalid priority: %s", input.Priority)
	}
	if input.Status != "" && !models.ValidTaskStatus(input.Status) {
		return nil, TaskOutput{}, fmt.Errorf("invalid status: %s", input.Status)
	}

	task := models.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		AssignedTo:  input.AssignedTo,
	}

	if input.DueDate != "" {
		ts, err := time.Parse(time.RFC3339, input.DueDate)
		if err != nil {
			return nil, TaskOutput{}, fmt.Errorf("invalid due date: %w", err)
		}
		task.DueDate = &ts
	}
	if input.RelatedID != "" {
		id, err := uuid.Parse(input.RelatedID)
		if err != nil {
			return nil, TaskOutput{}, fmt.Errorf("invalid related id: %w", err)
		}
		task.RelatedTo = &models.Relation{Type: input.RelatedType, ID: id}
	}

	created, err := h.store.AddTask(task)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to create task: %w", err)
	}
	return nil, taskOutput(created, time.Now()), nil
}

type UpdateTaskInput struct {
	ID          string  `json:"id" jsonschema:"Task id (required)"`
	Title       *string `json:"title,omitempty" jsonschema:"New title"`
	Description *string `json:"description,omitempty" jsonschema:"New description"`
	DueDate     *string `json:"due_date,omitempty" jsonschema:"New due date in ISO 8601 format; an empty string clears it"`
	Priority    *string `json:"priority,omitempty" jsonschema:"New priority"`
	Status      *string `json:"status,omitempty" jsonschema:"New status"`
	AssignedTo  *string `json:"assigned_to,omitempty" jsonschema:"New assignee"`
	RelatedType *string `json:"related_type,omitempty" jsonschema:"New related record type: contact, lead, deal (used with related_id)"`
	RelatedID   *string `json:"related_id,omitempty" jsonschema:"New related record id; an empty string clears the relation"`
}

func (h *TaskHandlers) UpdateTask(_ context.Context, _ *mcp.CallToolRequest, input UpdateTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("invalid task id: %w", err)
	}
	if input.Priority != nil && !models.ValidPriority(*input.Priority) {
		return nil, TaskOutput{}, fmt.Errorf("invalid priority: %s", *input.Priority)
	}
	if input.Status != nil && !models.ValidTaskStatus(*input.Status) {
		return nil, TaskOutput{}, fmt.Errorf("invalid status: %s", *input.Status)
	}

	patch := store.TaskPatch{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		AssignedTo:  input.AssignedTo,
	}
	if input.DueDate != nil {
		var ref *time.Time
		if *input.DueDate != "" {
			ts, err := time.Parse(time.RFC3339, *input.DueDate)
			if err != nil {
				return nil, TaskOutput{}, fmt.Errorf("invalid due date: %w", err)
			}
			ref = &ts
		}
		patch.DueDate = &ref
	}
	if input.RelatedID != nil {
		var ref *models.Relation
		if *input.RelatedID != "" {
			rid, err := uuid.Parse(*input.RelatedID)
			if err != nil {
				return nil, TaskOutput{}, fmt.Errorf("invalid related id: %w", err)
			}
			relType := ""
			if input.RelatedType != nil {
				relType = *input.RelatedType
			}
			ref = &models.Relation{Type: relType, ID: rid}
		}
		patch.RelatedTo = &ref
	}

	err = h.store.UpdateTask(id, patch)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to update task: %w", err)
	}

	task := h.store.GetTask(id)
	if task == nil {
		return nil, TaskOutput{}, fmt.Errorf("task not found: %s", input.ID)
	}
	return nil, taskOutput(*task, time.Now()), nil
}

type FindTasksInput struct {
	Query      string `json:"query,omitempty" jsonschema:"Search term matched against title and description"`
	Status     string `json:"status,omitempty" jsonschema:"Exact status filter"`
	Priority   string `json:"priority,omitempty" jsonschema:"Exact priority filter"`
	AssignedTo string `json:"assigned_to,omitempty" jsonschema:"Exact assignee filter"`
}

type FindTasksOutput struct {
	Tasks []TaskOutput `json:"tasks"`
	Count int          `json:"count"`
}

func (h *TaskHandlers) FindTasks(_ context.Context, _ *mcp.CallToolRequest, input FindTasksInput) (*mcp.CallToolResult, FindTasksOutput, error) {
	matched := views.FilterTasks(h.store.Snapshot().Tasks, views.TaskFilter{
		Term:       input.Query,
		Status:     input.Status,
		Priority:   input.Priority,
		AssignedTo: input.AssignedTo,
	})

	now := time.Now()
	out := FindTasksOutput{Count: len(matched)}
	for _, t := range matched {
		out.Tasks = append(out.Tasks, taskOutput(t, now))
	}
	return nil, out, nil
}

type OverdueTasksInput struct{}

func (h *TaskHandlers) OverdueTasks(_ context.Context, _ *mcp.CallToolRequest, _ OverdueTasksInput) (*mcp.CallToolResult, FindTasksOutput, error) {
	now := time.Now()
	overdue := views.OverdueTasks(h.store.Snapshot().Tasks, now)

	out := FindTasksOutput{Count: len(overdue)}
	for _, t := range overdue {
		out.Tasks = append(out.Tasks, taskOutput(t, now))
	}
	return nil, out, nil
}
