// ABOUTME: Lead MCP tool handlers
// ABOUTME: Implements add_lead, find_leads, update_lead, lead_report
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

type LeadHandlers struct {
	store *store.EntityStore
}

func NewLeadHandlers(s *store.EntityStore) *LeadHandlers {
	return &LeadHandlers{store: s}
}

type AddLeadInput struct {
	Name       string `json:"name" jsonschema:"Lead name (required)"`
	Email      string `json:"email,omitempty" jsonschema:"Email address"`
	Phone      string `json:"phone,omitempty" jsonschema:"Phone number"`
	Company    string `json:"company,omitempty" jsonschema:"Company name"`
	Value      int64  `json:"value,omitempty" jsonschema:"Potential value in cents"`
	Status     string `json:"status,omitempty" jsonschema:"Status: new, qualified, converted, lost (default new)"`
	AssignedTo string `json:"assigned_to,omitempty" jsonschema:"Assignee"`
	Source     string `json:"source,omitempty" jsonschema:"Lead source"`
	Notes      string `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

type LeadOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Company    string `json:"company,omitempty"`
	Value      int64  `json:"value,omitempty"`
	Status     string `json:"status"`
	AssignedTo string `json:"assigned_to,omitempty"`
	Source     string `json:"source,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func leadOutput(l models.Lead) LeadOutput {
	return LeadOutput{
		ID:         l.ID.String(),
		Name:       l.Name,
		Email:      l.Email,
		Phone:      l.Phone,
		Company:    l.Company,
		Value:      l.Value,
		Status:     l.Status,
		AssignedTo: l.AssignedTo,
		Source:     l.Source,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  l.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *LeadHandlers) AddLead(_ context.Context, _ *mcp.CallToolRequest, input AddLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	if input.Name == "" {
		return nil, LeadOutput{}, fmt.Errorf("name is required")
	}
	if input.Status != "" && !models.ValidLeadStatus(input.Status) {
		return nil, LeadOutput{}, fmt.Errorf("invalid lead status: %s", input.Status)
	}

	lead, err := h.store.AddLead(models.Lead{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Company:    input.Company,
		Value:      input.Value,
		Status:     input.Status,
		AssignedTo: input.AssignedTo,
		Source:     input.Source,
		Notes:      input.Notes,
	})
	if err != nil {
		return nil, LeadOutput{}, fmt.Errorf("failed to add lead: %w", err)
	}

	return nil, leadOutput(lead), nil
}

type FindLeadsInput struct {
	Query      string `json:"query,omitempty" jsonschema:"Search term matched against name, email, phone, company"`
	Status     string `json:"status,omitempty" jsonschema:"Exact status filter"`
	Source     string `json:"source,omitempty" jsonschema:"Exact source filter"`
	AssignedTo string `json:"assigned_to,omitempty" jsonschema:"Exact assignee filter"`
}

type FindLeadsOutput struct {
	Leads []LeadOutput `json:"leads"`
	Count int          `json:"count"`
}

func (h *LeadHandlers) FindLeads(_ context.Context, _ *mcp.CallToolRequest, input FindLeadsInput) (*mcp.CallToolResult, FindLeadsOutput, error) {
	matched := views.FilterLeads(h.store.Snapshot().Leads, views.LeadFilter{
		Term:       input.Query,
		Status:     input.Status,
		Source:     input.Source,
		AssignedTo: input.AssignedTo,
	})

	out := FindLeadsOutput{Count: len(matched)}
	for _, l := range matched {
		out.Leads = append(out.Leads, leadOutput(l))
	}
	return nil, out, nil
}

type UpdateLeadInput struct {
	ID         string  `json:"id" jsonschema:"Lead id (required)"`
	Name       *string `json:"name,omitempty" jsonschema:"New name"`
	Email      *string `json:"email,omitempty" jsonschema:"New email"`
	Value      *int64  `json:"value,omitempty" jsonschema:"New value in cents"`
	Status     *string `json:"status,omitempty" jsonschema:"New status: new, qualified, converted, lost"`
	AssignedTo *string `json:"assigned_to,omitempty" jsonschema:"New assignee"`
	Notes      *string `json:"notes,omitempty" jsonschema:"New notes"`
}

func (h *LeadHandlers) UpdateLead(_ context.Context, _ *mcp.CallToolRequest, input UpdateLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, LeadOutput{}, fmt.Errorf("invalid lead id: %w", err)
	}
	if input.Status != nil && !models.ValidLeadStatus(*input.Status) {
		return nil, LeadOutput{}, fmt.Errorf("invalid lead status: %s", *input.Status)
	}

	err = h.store.UpdateLead(id, store.LeadPatch{
		Name:       input.Name,
		Email:      input.Email,
		Value:      input.Value,
		Status:     input.Status,
		AssignedTo: input.AssignedTo,
		Notes:      input.Notes,
	})
	if err != nil {
		return nil, LeadOutput{}, fmt.Errorf("failed to update lead: %w", err)
	}

	lead := h.store.GetLead(id)
	if lead == nil {
		return nil, LeadOutput{}, fmt.Errorf("lead not found: %s", input.ID)
	}
	return nil, leadOutput(*lead), nil
}

type LeadReportInput struct{}

type LeadReportOutput struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	BySource       map[string]int `json:"by_source"`
	ConversionRate float64        `json:"conversion_rate"`
}

func (h *LeadHandlers) LeadReport(_ context.Context, _ *mcp.CallToolRequest, _ LeadReportInput) (*mcp.CallToolResult, LeadReportOutput, error) {
	leads := h.store.Snapshot().Leads

	return nil, LeadReportOutput{
		Total:          len(leads),
		ByStatus:       views.CountLeadsByStatus(leads),
		BySource:       views.CountLeadsBySource(leads),
		ConversionRate: views.ConversionRate(leads),
	}, nil
}
