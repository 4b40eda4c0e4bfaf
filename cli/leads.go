// ABOUTME: Lead CLI commands
// ABOUTME: Human-friendly commands for managing leads
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"crmdeck/models"
	"crmdeck/store"
	"crmdeck/views"
)

// AddLeadCommand adds a new lead.
func AddLeadCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("add-lead", flag.ExitOnError)
	name := fs.String("name", "", "Lead name (required)")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	company := fs.String("company", "", "Company name")
	value := fs.Int64("value", 0, "Potential value in cents")
	status := fs.String("status", models.LeadStatusNew, "Status (new, qualified, converted, lost)")
	assignedTo := fs.String("assigned-to", "", "Assignee")
	source := fs.String("source", "", "Lead source")
	notes := fs.String("notes", "", "Free-form notes")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	if !models.ValidLeadStatus(*status) {
		return fmt.Errorf("invalid status: %s", *status)
	}

	lead, err := s.AddLead(models.Lead{
		Name:       *name,
		Email:      *email,
		Phone:      *phone,
		Company:    *company,
		Value:      *value,
		Status:     *status,
		AssignedTo: *assignedTo,
		Source:     *source,
		Notes:      *notes,
	})
	if err != nil {
		return fmt.Errorf("failed to add lead: %w", err)
	}

	fmt.Printf("✓ Lead created: %s (ID: %s)\n", lead.Name, lead.ID)
	fmt.Printf("  Value: $%.2f\n", float64(lead.Value)/100.0)
	fmt.Printf("  Status: %s\n", lead.Status)
	return nil
}

// ListLeadsCommand lists leads, optionally filtered.
func ListLeadsCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("list-leads", flag.ExitOnError)
	query := fs.String("query", "", "Search term")
	status := fs.String("status", "", "Exact status filter")
	source := fs.String("source", "", "Exact source filter")
	assignedTo := fs.String("assigned-to", "", "Exact assignee filter")
	_ = fs.Parse(args)

	leads := views.FilterLeads(s.Snapshot().Leads, views.LeadFilter{
		Term:       *query,
		Status:     *status,
		Source:     *source,
		AssignedTo: *assignedTo,
	})

	if len(leads) == 0 {
		fmt.Println("No leads found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCOMPANY\tVALUE\tSTATUS\tSOURCE\tID")
	_, _ = fmt.Fprintln(w, "----\t-------\t-----\t------\t------\t--")
	for _, l := range leads {
		_, _ = fmt.Fprintf(w, "%s\t%s\t$%.2f\t%s\t%s\t%s\n",
			l.Name, l.Company, float64(l.Value)/100.0, l.Status, l.Source, l.ID)
	}
	return w.Flush()
}

// UpdateLeadCommand applies a partial update to a lead.
func UpdateLeadCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("update-lead", flag.ExitOnError)
	id := fs.String("id", "", "Lead id (required)")
	name := fs.String("name", "", "New name")
	email := fs.String("email", "", "New email")
	value := fs.Int64("value", 0, "New value in cents")
	status := fs.String("status", "", "New status")
	assignedTo := fs.String("assigned-to", "", "New assignee")
	notes := fs.String("notes", "", "New notes")
	_ = fs.Parse(args)

	leadID, err := parseID(*id)
	if err != nil {
		return err
	}
	if *status != "" && !models.ValidLeadStatus(*status) {
		return fmt.Errorf("invalid status: %s", *status)
	}

	patch := store.LeadPatch{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "email":
			patch.Email = email
		case "value":
			patch.Value = value
		case "status":
			patch.Status = status
		case "assigned-to":
			patch.AssignedTo = assignedTo
		case "notes":
			patch.Notes = notes
		}
	})

	if err := s.UpdateLead(leadID, patch); err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}

	if lead := s.GetLead(leadID); lead != nil {
		fmt.Printf("✓ Lead updated: %s (status: %s)\n", lead.Name, lead.Status)
	} else {
		fmt.Println("No lead with that id; nothing updated")
	}
	return nil
}

// DeleteLeadCommand removes a lead.
func DeleteLeadCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("delete-lead", flag.ExitOnError)
	id := fs.String("id", "", "Lead id (required)")
	_ = fs.Parse(args)

	leadID, err := parseID(*id)
	if err != nil {
		return err
	}

	if err := s.DeleteLead(leadID); err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	fmt.Println("✓ Lead deleted")
	return nil
}

// LeadReportCommand prints lead counts and the conversion rate.
func LeadReportCommand(s *store.EntityStore, _ []string) error {
	leads := s.Snapshot().Leads

	fmt.Printf("Leads: %d\n", len(leads))
	fmt.Printf("Conversion rate: %.1f%%\n", views.ConversionRate(leads))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STATUS\tCOUNT")
	byStatus := views.CountLeadsByStatus(leads)
	for _, status := range []string{models.LeadStatusNew, models.LeadStatusQualified, models.LeadStatusConverted, models.LeadStatusLost} {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", status, byStatus[status])
	}
	return w.Flush()
}
