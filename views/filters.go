// ABOUTME: Filtering helpers over entity store snapshots
// ABOUTME: Substring search plus exact-match filters, AND-combined
package views

import (
	"strings"

	"crmdeck/models"
)

// matchTerm does a case-insensitive substring match of term against the
// given fields. An empty term matches everything.
func matchTerm(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// ContactFilter narrows a contact collection. A record passes only when it
// satisfies every active filter.
type ContactFilter struct {
	Term    string
	Company string
	Tag     string
}

func FilterContacts(contacts []models.Contact, f ContactFilter) []models.Contact {
	out := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if !matchTerm(f.Term, c.Name, c.Email, c.Phone, c.Company, c.Position) {
			continue
		}
		if f.Company != "" && c.Company != f.Company {
			continue
		}
		if f.Tag != "" && !hasTag(c.Tags, f.Tag) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// LeadFilter narrows a lead collection.
type LeadFilter struct {
	Term       string
	Status     string
	Source     string
	AssignedTo string
}

func FilterLeads(leads []models.Lead, f LeadFilter) []models.Lead {
	out := make([]models.Lead, 0, len(leads))
	for _, l := range leads {
		if !matchTerm(f.Term, l.Name, l.Email, l.Phone, l.Company) {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.Source != "" && l.Source != f.Source {
			continue
		}
		if f.AssignedTo != "" && l.AssignedTo != f.AssignedTo {
			continue
		}
		out = append(out, l)
	}
	return out
}

// DealFilter narrows a deal collection.
type DealFilter struct {
	Term       string
	Stage      string
	AssignedTo string
}

func FilterDeals(deals []models.Deal, f DealFilter) []models.Deal {
	out := make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		if !matchTerm(f.Term, d.Title, d.Notes) {
			continue
		}
		if f.Stage != "" && d.Stage != f.Stage {
			continue
		}
		if f.AssignedTo != "" && d.AssignedTo != f.AssignedTo {
			continue
		}
		out = append(out, d)
	}
	return out
}

// TaskFilter narrows a task collection.
type TaskFilter struct {
	Term       string
	Status     string
	Priority   string
	AssignedTo string
}

func FilterTasks(tasks []models.Task, f TaskFilter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchTerm(f.Term, t.Title, t.Description) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
			continue
		}
		out = append(out, t)
	}
	return out
}
