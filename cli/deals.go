// ABOUTME: Deal CLI commands
// ABOUTME: Human-friendly commands for managing deals and the pipeline
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"crmdeck/models"
	"crmdeck/store"
	"crmdeck/views"
)

// AddDealCommand adds a new deal.
func AddDealCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("add-deal", flag.ExitOnError)
	title := fs.String("title", "", "Deal title (required)")
	value := fs.Int64("value", 0, "Deal value in cents")
	stage := fs.String("stage", models.StageProspecting, "Stage (prospecting, qualification, proposal, negotiation, closed-won, closed-lost)")
	contactID := fs.String("contact", "", "Related contact id")
	assignedTo := fs.String("assigned-to", "", "Assignee")
	closeDate := fs.String("close-date", "", "Expected close date (YYYY-MM-DD)")
	probability := fs.Int("probability", 0, "Win probability 0-100")
	notes := fs.String("notes", "", "Free-form notes")
	_ = fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}
	if !models.ValidStage(*stage) {
		return fmt.Errorf("invalid stage: %s", *stage)
	}

	deal := models.Deal{
		Title:       *title,
		Value:       *value,
		Stage:       *stage,
		AssignedTo:  *assignedTo,
		Probability: *probability,
		Notes:       *notes,
	}

	if *contactID != "" {
		id, err := parseID(*contactID)
		if err != nil {
			return err
		}
		deal.ContactID = &id
	}
	if *closeDate != "" {
		ts, err := time.Parse("2006-01-02", *closeDate)
		if err != nil {
			return fmt.Errorf("invalid close date %q: %w", *closeDate, err)
		}
		deal.CloseDate = &ts
	}

	created, err := s.AddDeal(deal)
	if err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}

	fmt.Printf("✓ Deal created: %s (ID: %s)\n", created.Title, created.ID)
	fmt.Printf("  Value: $%.2f\n", float64(created.Value)/100.0)
	fmt.Printf("  Stage: %s\n", created.Stage)
	return nil
}

// ListDealsCommand lists deals, optionally filtered.
func ListDealsCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("list-deals", flag.ExitOnError)
	query := fs.String("query", "", "Search term")
	stage := fs.String("stage", "", "Exact stage filter")
	assignedTo := fs.String("assigned-to", "", "Exact assignee filter")
	_ = fs.Parse(args)

	deals := views.FilterDeals(s.Snapshot().Deals, views.DealFilter{
		Term:       *query,
		Stage:      *stage,
		AssignedTo: *assignedTo,
	})

	if len(deals) == 0 {
		fmt.Println("No deals found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TITLE\tVALUE\tSTAGE\tPROB\tID")
	_, _ = fmt.Fprintln(w, "-----\t-----\t-----\t----\t--")
	for _, d := range deals {
		_, _ = fmt.Fprintf(w, "%s\t$%.2f\t%s\t%d%%\t%s\n",
			d.Title, float64(d.Value)/100.0, d.Stage, d.Probability, d.ID)
	}
	return w.Flush()
}

// MoveDealCommand reassigns a deal's pipeline stage. The target is either a
// stage name or another deal whose stage is inherited.
func MoveDealCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("move-deal", flag.ExitOnError)
	id := fs.String("id", "", "Deal id (required)")
	stage := fs.String("stage", "", "Target stage")
	onto := fs.String("onto", "", "Deal id whose stage the move inherits")
	_ = fs.Parse(args)

	dealID, err := parseID(*id)
	if err != nil {
		return err
	}
	if *stage == "" && *onto == "" {
		return fmt.Errorf("either --stage or --onto is required")
	}
	if *stage != "" && !models.ValidStage(*stage) {
		return fmt.Errorf("invalid stage: %s", *stage)
	}

	target := views.DropTarget{Stage: *stage}
	if *onto != "" {
		ontoID, err := parseID(*onto)
		if err != nil {
			return err
		}
		target.DealID = &ontoID
	}

	moved, err := views.MoveDealStage(s, dealID, target)
	if err != nil {
		return fmt.Errorf("failed to move deal: %w", err)
	}

	if deal := s.GetDeal(dealID); deal != nil {
		if moved {
			fmt.Printf("✓ Deal moved to %s\n", deal.Stage)
		} else {
			fmt.Printf("Deal already in %s; nothing moved\n", deal.Stage)
		}
	} else {
		fmt.Println("No deal with that id; nothing moved")
	}
	return nil
}

// UpdateDealCommand applies a partial update to a deal.
func UpdateDealCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("update-deal", flag.ExitOnError)
	id := fs.String("id", "", "Deal id (required)")
	title := fs.String("title", "", "New title")
	value := fs.Int64("value", 0, "New value in cents")
	stage := fs.String("stage", "", "New stage")
	contact := fs.String("contact", "", "New related contact id (empty clears)")
	assignedTo := fs.String("assigned-to", "", "New assignee")
	closeDate := fs.String("close-date", "", "New expected close date YYYY-MM-DD (empty clears)")
	probability := fs.Int("probability", 0, "New win probability")
	notes := fs.String("notes", "", "New notes")
	_ = fs.Parse(args)

	dealID, err := parseID(*id)
	if err != nil {
		return err
	}
	if *stage != "" && !models.ValidStage(*stage) {
		return fmt.Errorf("invalid stage: %s", *stage)
	}

	// Nullable fields: passing the flag with an empty value clears the field.
	var contactRef *uuid.UUID
	if *contact != "" {
		cid, err := parseID(*contact)
		if err != nil {
			return err
		}
		contactRef = &cid
	}
	var closeRef *time.Time
	if *closeDate != "" {
		ts, err := time.Parse("2006-01-02", *closeDate)
		if err != nil {
			return fmt.Errorf("invalid close date %q: %w", *closeDate, err)
		}
		closeRef = &ts
	}

	patch := store.DealPatch{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "value":
			patch.Value = value
		case "stage":
			patch.Stage = stage
		case "contact":
			patch.ContactID = &contactRef
		case "assigned-to":
			patch.AssignedTo = assignedTo
		case "close-date":
			patch.CloseDate = &closeRef
		case "probability":
			patch.Probability = probability
		case "notes":
			patch.Notes = notes
		}
	})

	if err := s.UpdateDeal(dealID, patch); err != nil {
		return fmt.Errorf("failed to update deal: %w", err)
	}

	if deal := s.GetDeal(dealID); deal != nil {
		fmt.Printf("✓ Deal updated: %s (stage: %s)\n", deal.Title, deal.Stage)
	} else {
		fmt.Println("No deal with that id; nothing updated")
	}
	return nil
}

// DeleteDealCommand removes a deal.
func DeleteDealCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("delete-deal", flag.ExitOnError)
	id := fs.String("id", "", "Deal id (required)")
	_ = fs.Parse(args)

	dealID, err := parseID(*id)
	if err != nil {
		return err
	}

	if err := s.DeleteDeal(dealID); err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	fmt.Println("✓ Deal deleted")
	return nil
}

// PipelineCommand prints the pipeline board totals.
func PipelineCommand(s *store.EntityStore, _ []string) error {
	deals := s.Snapshot().Deals

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STAGE\tCOUNT\tVALUE")
	for _, col := range views.PipelineColumns(deals) {
		_, _ = fmt.Fprintf(w, "%s\t%d\t$%.2f\n", col.Stage, len(col.Deals), float64(col.Value)/100.0)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nWon: $%.2f  Weighted open pipeline: $%.2f  Avg deal: $%.2f\n",
		float64(views.WonValue(deals))/100.0,
		float64(views.WeightedPipelineValue(deals))/100.0,
		views.AverageDealValue(deals)/100.0)
	return nil
}
