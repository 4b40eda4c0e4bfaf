// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements create_deal, update_deal, move_deal_stage, find_deals, pipeline_report
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

type DealHandlers struct {
	store *store.EntityStore
}

func NewDealHandlers(s *store.EntityStore) *DealHandlers {
	return &DealHandlers{store: s}
}

type CreateDealInput struct {
	Title       string `json:"title" jsonschema:"Deal title (required)"`
	Value       int64  `json:"value,omitempty" jsonschema:"Deal value in cents"`
	Stage       string `json:"stage,omitempty" jsonschema:"Stage: prospecting, qualification, proposal, negotiation, closed-won, closed-lost (default prospecting)"`
	ContactID   string `json:"contact_id,omitempty" jsonschema:"Related contact id (soft reference, not validated against the contact collection)"`
	AssignedTo  string `json:"assigned_to,omitempty" jsonschema:"Assignee"`
	CloseDate   string `json:"close_date,omitempty" jsonschema:"Expected close date in ISO 8601 format"`
	Probability int    `json:"probability,omitempty" jsonschema:"Win probability 0-100"`
	Notes       string `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

type DealOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Value       int64   `json:"value,omitempty"`
	Stage       string  `json:"stage"`
	ContactID   *string `json:"contact_id,omitempty"`
	AssignedTo  string  `json:"assigned_to,omitempty"`
	CloseDate   *string `json:"close_date,omitempty"`
	Probability int     `json:"probability,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func dealOutput(d models.Deal) DealOutput {
	out := DealOutput{
		ID:          d.ID.String(),
		Title:       d.Title,
		Value:       d.Value,
		Stage:       d.Stage,
		AssignedTo:  d.AssignedTo,
		Probability: d.Probability,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   d.UpdatedAt.Format(time.RFC3339),
	}
	if d.ContactID != nil {
		s := d.ContactID.String()
		out.ContactID = &s
	}
	if d.CloseDate != nil {
		s := d.CloseDate.Format(time.RFC3339)
		out.CloseDate = &s
	}
	return out
}

func (h *DealHandlers) CreateDeal(_ context.Context, _ *mcp.CallToolRequest, input CreateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.Title == "" {
		return nil, DealOutput{}, fmt.Errorf("title is required")
	}
	if input.Stage != "" && !models.ValidStage(input.Stage) {
		return nil, DealOutput{}, fmt.Errorf("invalid stage: %s", input.Stage)
	}

	deal := models.Deal{
		Title:       input.Title,
		Value:       input.Value,
		Stage:       input.Stage,
		AssignedTo:  input.AssignedTo,
		Probability: input.Probability,
		Notes:       input.Notes,
	}

	if input.ContactID != "" {
		id, err := uuid.Parse(input.ContactID)
		if err != nil {
			return nil, DealOutput{}, fmt.Errorf("invalid contact id: %w", err)
		}
		deal.ContactID = &id
	}
	if input.CloseDate != "" {
		ts, err := time.Parse(time.RFC3339, input.CloseDate)
		if err != nil {
			return nil, DealOutput{}, fmt.Errorf("invalid close date: %w", err)
		}
		deal.CloseDate = &ts
	}

	created, err := h.store.AddDeal(deal)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to create deal: %w", err)
	}
	return nil, dealOutput(created), nil
}

type UpdateDealInput struct {
	ID          string  `json:"id" jsonschema:"Deal id (required)"`
	Title       *string `json:"title,omitempty" jsonschema:"New title"`
	Value       *int64  `json:"value,omitempty" jsonschema:"New value in cents"`
	Stage       *string `json:"stage,omitempty" jsonschema:"New stage"`
	ContactID   *string `json:"contact_id,omitempty" jsonschema:"New related contact id; an empty string clears the reference"`
	AssignedTo  *string `json:"assigned_to,omitempty" jsonschema:"New assignee"`
	CloseDate   *string `json:"close_date,omitempty" jsonschema:"New expected close date in ISO 8601 format; an empty string clears it"`
	Probability *int    `json:"probability,omitempty" jsonschema:"New win probability"`
	Notes       *string `json:"notes,omitempty" jsonschema:"New notes"`
}

func (h *DealHandlers) UpdateDeal(_ context.Context, _ *mcp.CallToolRequest, input UpdateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid deal id: %w", err)
	}
	if input.Stage != nil && !models.ValidStage(*input.Stage) {
		return nil, DealOutput{}, fmt.Errorf("invalid stage: %s", *input.Stage)
	}

	patch := store.DealPatch{
		Title:       input.Title,
		Value:       input.Value,
		Stage:       input.Stage,
		AssignedTo:  input.AssignedTo,
		Probability: input.Probability,
		Notes:       input.Notes,
	}
	if input.ContactID != nil {
		var ref *uuid.UUID
		if *input.ContactID != "" {
			cid, err := uuid.Parse(*input.ContactID)
			if err != nil {
				return nil, DealOutput{}, fmt.Errorf("invalid contact id: %w", err)
			}
			ref = &cid
		}
		patch.ContactID = &ref
	}
	if input.CloseDate != nil {
		var ref *time.Time
		if *input.CloseDate != "" {
			ts, err := time.Parse(time.RFC3339, *input.CloseDate)
			if err != nil {
				return nil, DealOutput{}, fmt.Errorf("invalid close date: %w", err)
			}
			ref = &ts
		}
		patch.CloseDate = &ref
	}

	err = h.store.UpdateDeal(id, patch)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to update deal: %w", err)
	}

	deal := h.store.GetDeal(id)
	if deal == nil {
		return nil, DealOutput{}, fmt.Errorf("deal not found: %s", input.ID)
	}
	return nil, dealOutput(*deal), nil
}

type MoveDealStageInput struct {
	ID           string `json:"id" jsonschema:"Deal id (required)"`
	Stage        string `json:"stage,omitempty" jsonschema:"Target stage (wins over target_deal_id)"`
	TargetDealID string `json:"target_deal_id,omitempty" jsonschema:"Deal whose current stage the move inherits"`
}

type MoveDealStageOutput struct {
	Moved bool   `json:"moved"`
	Stage string `json:"stage,omitempty"`
}

// MoveDealStage is the drag-and-drop analog: the target is either a stage or
// another deal, and the update is skipped when the resolved stage matches.
func (h *DealHandlers) MoveDealStage(_ context.Context, _ *mcp.CallToolRequest, input MoveDealStageInput) (*mcp.CallToolResult, MoveDealStageOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, MoveDealStageOutput{}, fmt.Errorf("invalid deal id: %w", err)
	}
	if input.Stage != "" && !models.ValidStage(input.Stage) {
		return nil, MoveDealStageOutput{}, fmt.Errorf("invalid stage: %s", input.Stage)
	}

	target := views.DropTarget{Stage: input.Stage}
	if input.TargetDealID != "" {
		tid, err := uuid.Parse(input.TargetDealID)
		if err != nil {
			return nil, MoveDealStageOutput{}, fmt.Errorf("invalid target deal id: %w", err)
		}
		target.DealID = &tid
	}

	moved, err := views.MoveDealStage(h.store, id, target)
	if err != nil {
		return nil, MoveDealStageOutput{}, fmt.Errorf("failed to move deal: %w", err)
	}

	out := MoveDealStageOutput{Moved: moved}
	if deal := h.store.GetDeal(id); deal != nil {
		out.Stage = deal.Stage
	}
	return nil, out, nil
}

type FindDealsInput struct {
	Query      string `json:"query,omitempty" jsonschema:"Search term matched against title and notes"`
	Stage      string `json:"stage,omitempty" jsonschema:"Exact stage filter"`
	AssignedTo string `json:"assigned_to,omitempty" jsonschema:"Exact assignee filter"`
}

type FindDealsOutput struct {
	Deals []DealOutput `json:"deals"`
	Count int          `json:"count"`
}

func (h *DealHandlers) FindDeals(_ context.Context, _ *mcp.CallToolRequest, input FindDealsInput) (*mcp.CallToolResult, FindDealsOutput, error) {
	matched := views.FilterDeals(h.store.Snapshot().Deals, views.DealFilter{
		Term:       input.Query,
		Stage:      input.Stage,
		AssignedTo: input.AssignedTo,
	})

	out := FindDealsOutput{Count: len(matched)}
	for _, d := range matched {
		out.Deals = append(out.Deals, dealOutput(d))
	}
	return nil, out, nil
}

type PipelineReportInput struct{}

type PipelineStageReport struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
	Value int64  `json:"value"`
}

type PipelineReportOutput struct {
	Stages        []PipelineStageReport `json:"stages"`
	WonValue      int64                 `json:"won_value"`
	WeightedValue int64                 `json:"weighted_value"`
	AverageValue  float64               `json:"average_value"`
}

func (h *DealHandlers) PipelineReport(_ context.Context, _ *mcp.CallToolRequest, _ PipelineReportInput) (*mcp.CallToolResult, PipelineReportOutput, error) {
	deals := h.store.Snapshot().Deals

	out := PipelineReportOutput{
		WonValue:      views.WonValue(deals),
		WeightedValue: views.WeightedPipelineValue(deals),
		AverageValue:  views.AverageDealValue(deals),
	}
	for _, col := range views.PipelineColumns(deals) {
		out.Stages = append(out.Stages, PipelineStageReport{
			Stage: col.Stage,
			Count: len(col.Deals),
			Value: col.Value,
		})
	}
	return nil, out, nil
}
