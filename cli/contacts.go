// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for managing contacts
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"crmdeck/models"
	"crmdeck/store"
	"crmdeck/views"
)

// AddContactCommand adds a new contact.
func AddContactCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	name := fs.String("name", "", "Contact name (required)")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	company := fs.String("company", "", "Company name")
	position := fs.String("position", "", "Job title")
	tags := fs.String("tags", "", "Comma-separated tags")
	notes := fs.String("notes", "", "Free-form notes")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	contact := models.Contact{
		Name:     *name,
		Email:    *email,
		Phone:    *phone,
		Company:  *company,
		Position: *position,
		Notes:    *notes,
	}
	if *tags != "" {
		contact.Tags = splitTags(*tags)
	}

	created, err := s.AddContact(contact)
	if err != nil {
		return fmt.Errorf("failed to add contact: %w", err)
	}

	fmt.Printf("✓ Contact created: %s (ID: %s)\n", created.Name, created.ID)
	if created.Company != "" {
		fmt.Printf("  Company: %s\n", created.Company)
	}
	return nil
}

// ListContactsCommand lists contacts, optionally filtered.
func ListContactsCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	query := fs.String("query", "", "Search term")
	company := fs.String("company", "", "Exact company filter")
	tag := fs.String("tag", "", "Exact tag filter")
	_ = fs.Parse(args)

	contacts := views.FilterContacts(s.Snapshot().Contacts, views.ContactFilter{
		Term:    *query,
		Company: *company,
		Tag:     *tag,
	})

	if len(contacts) == 0 {
		fmt.Println("No contacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tCOMPANY\tTAGS\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t-------\t----\t--")
	for _, c := range contacts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.Name, c.Email, c.Company, strings.Join(c.Tags, ","), c.ID)
	}
	return w.Flush()
}

// UpdateContactCommand applies a partial update to a contact.
func UpdateContactCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("update-contact", flag.ExitOnError)
	id := fs.String("id", "", "Contact id (required)")
	name := fs.String("name", "", "New name")
	email := fs.String("email", "", "New email")
	phone := fs.String("phone", "", "New phone")
	company := fs.String("company", "", "New company")
	position := fs.String("position", "", "New position")
	notes := fs.String("notes", "", "New notes")
	_ = fs.Parse(args)

	contactID, err := parseID(*id)
	if err != nil {
		return err
	}

	patch := store.ContactPatch{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "email":
			patch.Email = email
		case "phone":
			patch.Phone = phone
		case "company":
			patch.Company = company
		case "position":
			patch.Position = position
		case "notes":
			patch.Notes = notes
		}
	})

	if err := s.UpdateContact(contactID, patch); err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	if contact := s.GetContact(contactID); contact != nil {
		fmt.Printf("✓ Contact updated: %s\n", contact.Name)
	} else {
		fmt.Println("No contact with that id; nothing updated")
	}
	return nil
}

// DeleteContactCommand removes a contact. Deals referencing it keep their
// dangling contact id.
func DeleteContactCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("delete-contact", flag.ExitOnError)
	id := fs.String("id", "", "Contact id (required)")
	_ = fs.Parse(args)

	contactID, err := parseID(*id)
	if err != nil {
		return err
	}

	if err := s.DeleteContact(contactID); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	fmt.Println("✓ Contact deleted")
	return nil
}

func parseID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, fmt.Errorf("--id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return id, nil
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
