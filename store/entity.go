// ABOUTME: Entity store holding the four CRM record collections
// ABOUTME: Implements add/update/delete with snapshot persistence per mutation
package store

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"crmdeck/models"
)

// Snapshot is the persisted aggregate of all four collections. Date fields
// round-trip through JSON as RFC 3339 text and come back as time.Time values,
// so comparisons and bucketing behave the same before and after a reload.
type Snapshot struct {
	Contacts []models.Contact `json:"contacts"`
	Leads    []models.Lead    `json:"leads"`
	Deals    []models.Deal    `json:"deals"`
	Tasks    []models.Task    `json:"tasks"`
}

// EntityStore owns the contact, lead, deal, and task collections. Every
// mutation stamps timestamps, assigns ids, and rewrites the full aggregate
// under the data key before returning.
type EntityStore struct {
	mu   sync.Mutex
	kv   *KV
	data Snapshot
}

// NewEntityStore rehydrates the aggregate from the KV snapshot, or starts
// with four empty collections when no (or an unreadable) snapshot exists.
func NewEntityStore(kv *KV) (*EntityStore, error) {
	s := &EntityStore{kv: kv}

	raw, err := kv.Get(dataKey)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		// A snapshot that fails to parse is treated as absent; the store
		// starts empty rather than refusing to open.
		_ = json.Unmarshal(raw, &s.data)
	}

	return s, nil
}

// Snapshot returns a copy of the current aggregate for derived views.
func (s *EntityStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Contacts: append([]models.Contact(nil), s.data.Contacts...),
		Leads:    append([]models.Lead(nil), s.data.Leads...),
		Deals:    append([]models.Deal(nil), s.data.Deals...),
		Tasks:    append([]models.Task(nil), s.data.Tasks...),
	}
}

func (s *EntityStore) persist() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	return s.kv.Set(dataKey, raw)
}

// --- Contacts ---

// AddContact appends a contact, assigning id and timestamps. Caller-supplied
// id and timestamps are ignored.
func (s *EntityStore) AddContact(c models.Contact) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.New()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	s.data.Contacts = append(s.data.Contacts, c)
	return c, s.persist()
}

// ContactPatch carries the fields of a partial contact update. Nil fields are
// left unchanged.
type ContactPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Company  *string
	Position *string
	Tags     *[]string
	Notes    *string
}

// UpdateContact merges the patch over the matching record. Unknown ids are a
// silent no-op.
func (s *EntityStore) UpdateContact(id uuid.UUID, patch ContactPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Contacts {
		c := &s.data.Contacts[i]
		if c.ID != id {
			continue
		}
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Email != nil {
			c.Email = *patch.Email
		}
		if patch.Phone != nil {
			c.Phone = *patch.Phone
		}
		if patch.Company != nil {
			c.Company = *patch.Company
		}
		if patch.Position != nil {
			c.Position = *patch.Position
		}
		if patch.Tags != nil {
			c.Tags = *patch.Tags
		}
		if patch.Notes != nil {
			c.Notes = *patch.Notes
		}
		c.UpdatedAt = time.Now()
		return s.persist()
	}
	return nil
}

// DeleteContact removes the matching contact. No cascade: deals and tasks
// referencing it keep their now-dangling ids.
func (s *EntityStore) DeleteContact(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Contacts {
		if s.data.Contacts[i].ID == id {
			s.data.Contacts = append(s.data.Contacts[:i], s.data.Contacts[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// GetContact returns the contact with the given id, or nil when absent.
func (s *EntityStore) GetContact(id uuid.UUID) *models.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Contacts {
		if s.data.Contacts[i].ID == id {
			c := s.data.Contacts[i]
			return &c
		}
	}
	return nil
}

// --- Leads ---

func (s *EntityStore) AddLead(l models.Lead) (models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = uuid.New()
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.Status == "" {
		l.Status = models.LeadStatusNew
	}

	s.data.Leads = append(s.data.Leads, l)
	return l, s.persist()
}

type LeadPatch struct {
	Name       *string
	Email      *string
	Phone      *string
	Company    *string
	Value      *int64
	Status     *string
	AssignedTo *string
	Source     *string
	Notes      *string
}

func (s *EntityStore) UpdateLead(id uuid.UUID, patch LeadPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Leads {
		l := &s.data.Leads[i]
		if l.ID != id {
			continue
		}
		if patch.Name != nil {
			l.Name = *patch.Name
		}
		if patch.Email != nil {
			l.Email = *patch.Email
		}
		if patch.Phone != nil {
			l.Phone = *patch.Phone
		}
		if patch.Company != nil {
			l.Company = *patch.Company
		}
		if patch.Value != nil {
			l.Value = *patch.Value
		}
		if patch.Status != nil {
			l.Status = *patch.Status
		}
		if patch.AssignedTo != nil {
			l.AssignedTo = *patch.AssignedTo
		}
		if patch.Source != nil {
			l.Source = *patch.Source
		}
		if patch.Notes != nil {
			l.Notes = *patch.Notes
		}
		l.UpdatedAt = time.Now()
		return s.persist()
	}
	return nil
}

func (s *EntityStore) DeleteLead(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Leads {
		if s.data.Leads[i].ID == id {
			s.data.Leads = append(s.data.Leads[:i], s.data.Leads[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

func (s *EntityStore) GetLead(id uuid.UUID) *models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Leads {
		if s.data.Leads[i].ID == id {
			l := s.data.Leads[i]
			return &l
		}
	}
	return nil
}

// --- Deals ---

func (s *EntityStore) AddDeal(d models.Deal) (models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = uuid.New()
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.Stage == "" {
		d.Stage = models.StageProspecting
	}

	s.data.Deals = append(s.data.Deals, d)
	return d, s.persist()
}

type DealPatch struct {
	Title       *string
	Value       *int64
	Stage       *string
	ContactID   **uuid.UUID
	AssignedTo  *string
	CloseDate   **time.Time
	Probability *int
	Notes       *string
}

func (s *EntityStore) UpdateDeal(id uuid.UUID, patch DealPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Deals {
		d := &s.data.Deals[i]
		if d.ID != id {
			continue
		}
		if patch.Title != nil {
			d.Title = *patch.Title
		}
		if patch.Value != nil {
			d.Value = *patch.Value
		}
		if patch.Stage != nil {
			d.Stage = *patch.Stage
		}
		if patch.ContactID != nil {
			d.ContactID = *patch.ContactID
		}
		if patch.AssignedTo != nil {
			d.AssignedTo = *patch.AssignedTo
		}
		if patch.CloseDate != nil {
			d.CloseDate = *patch.CloseDate
		}
		if patch.Probability != nil {
			d.Probability = *patch.Probability
		}
		if patch.Notes != nil {
			d.Notes = *patch.Notes
		}
		d.UpdatedAt = time.Now()
		return s.persist()
	}
	return nil
}

func (s *EntityStore) DeleteDeal(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Deals {
		if s.data.Deals[i].ID == id {
			s.data.Deals = append(s.data.Deals[:i], s.data.Deals[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

func (s *EntityStore) GetDeal(id uuid.UUID) *models.Deal {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Deals {
		if s.data.Deals[i].ID == id {
			d := s.data.Deals[i]
			return &d
		}
	}
	return nil
}

// --- Tasks ---

func (s *EntityStore) AddTask(t models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.New()
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = models.TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}

	s.data.Tasks = append(s.data.Tasks, t)
	return t, s.persist()
}

type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     **time.Time
	Priority    *string
	Status      *string
	AssignedTo  *string
	RelatedTo   **models.Relation
}

func (s *EntityStore) UpdateTask(id uuid.UUID, patch TaskPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Tasks {
		t := &s.data.Tasks[i]
		if t.ID != id {
			continue
		}
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.DueDate != nil {
			t.DueDate = *patch.DueDate
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.AssignedTo != nil {
			t.AssignedTo = *patch.AssignedTo
		}
		if patch.RelatedTo != nil {
			t.RelatedTo = *patch.RelatedTo
		}
		t.UpdatedAt = time.Now()
		return s.persist()
	}
	return nil
}

func (s *EntityStore) DeleteTask(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Tasks {
		if s.data.Tasks[i].ID == id {
			s.data.Tasks = append(s.data.Tasks[:i], s.data.Tasks[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

func (s *EntityStore) GetTask(id uuid.UUID) *models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Tasks {
		if s.data.Tasks[i].ID == id {
			t := s.data.Tasks[i]
			return &t
		}
	}
	return nil
}
