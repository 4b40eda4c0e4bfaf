// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, find_contacts, update_contact, delete_contact
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

type ContactHandlers struct {
	store *store.EntityStore
}

func NewContactHandlers(s *store.EntityStore) *ContactHandlers {
	return &ContactHandlers{store: s}
}

type AddContactInput struct {
	Name     string   `json:"name" jsonschema:"Contact name (required)"`
	Email    string   `json:"email,omitempty" jsonschema:"Email address"`
	Phone    string   `json:"phone,omitempty" jsonschema:"Phone number"`
	Company  string   `json:"company,omitempty" jsonschema:"Company name"`
	Position string   `json:"position,omitempty" jsonschema:"Job title"`
	Tags     []string `json:"tags,omitempty" jsonschema:"Tags"`
	Notes    string   `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

type ContactOutput struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Company   string   `json:"company,omitempty"`
	Position  string   `json:"position,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func contactOutput(c models.Contact) ContactOutput {
	return ContactOutput{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Position:  c.Position,
		Tags:      c.Tags,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *ContactHandlers) AddContact(_ context.Context, _ *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.Name == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}

	contact, err := h.store.AddContact(models.Contact{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Company:  input.Company,
		Position: input.Position,
		Tags:     input.Tags,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to add contact: %w", err)
	}

	return nil, contactOutput(contact), nil
}

type FindContactsInput struct {
	Query   string `json:"query,omitempty" jsonschema:"Search term matched against name, email, phone, company, position"`
	Company string `json:"company,omitempty" jsonschema:"Exact company filter"`
	Tag     string `json:"tag,omitempty" jsonschema:"Exact tag filter"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Count    int             `json:"count"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, _ *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	matched := views.FilterContacts(h.store.Snapshot().Contacts, views.ContactFilter{
		Term:    input.Query,
		Company: input.Company,
		Tag:     input.Tag,
	})

	out := FindContactsOutput{Count: len(matched)}
	for _, c := range matched {
		out.Contacts = append(out.Contacts, contactOutput(c))
	}
	return nil, out, nil
}

type UpdateContactInput struct {
	ID       string  `json:"id" jsonschema:"Contact id (required)"`
	Name     *string `json:"name,omitempty" jsonschema:"New name"`
	Email    *string `json:"email,omitempty" jsonschema:"New email"`
	Phone    *string `json:"phone,omitempty" jsonschema:"New phone"`
	Company  *string `json:"company,omitempty" jsonschema:"New company"`
	Position *string `json:"position,omitempty" jsonschema:"New position"`
	Notes    *string `json:"notes,omitempty" jsonschema:"New notes"`
}

func (h *ContactHandlers) UpdateContact(_ context.Context, _ *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("invalid contact id: %w", err)
	}

	err = h.store.UpdateContact(id, store.ContactPatch{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Company:  input.Company,
		Position: input.Position,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to update contact: %w", err)
	}

	contact := h.store.GetContact(id)
	if contact == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact not found: %s", input.ID)
	}
	return nil, contactOutput(*contact), nil
}

type DeleteContactInput struct {
	ID string `json:"id" jsonschema:"Contact id (required)"`
}

type DeleteOutput struct {
	Deleted bool `json:"deleted"`
}

// DeleteContact removes the contact. Deals and tasks referencing it are left
// untouched; their references dangle.
func (h *ContactHandlers) DeleteContact(_ context.Context, _ *mcp.CallToolRequest, input DeleteContactInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("invalid contact id: %w", err)
	}

	existed := h.store.GetContact(id) != nil
	if err := h.store.DeleteContact(id); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil, DeleteOutput{Deleted: existed}, nil
}
