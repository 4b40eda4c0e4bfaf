// ABOUTME: Dashboard, theme, and export CLI commands
// ABOUTME: Read-only views over the stores plus the sqlite dump
package cli

import (
	"flag"
	"fmt"
	"time"

	"crmdeck/export"
	"crmdeck/store"
	"crmdeck/viz"
)

// DashboardCommand prints the ASCII dashboard.
func DashboardCommand(s *store.EntityStore, _ []string) error {
	stats := viz.GenerateDashboardStats(s.Snapshot(), time.Now())
	fmt.Print(viz.RenderDashboard(stats))
	return nil
}

// ThemeCommand toggles or shows the dark/light flag.
func ThemeCommand(s *store.ThemeStore, args []string) error {
	fs := flag.NewFlagSet("theme", flag.ExitOnError)
	toggle := fs.Bool("toggle", false, "Flip between dark and light")
	_ = fs.Parse(args)

	if *toggle {
		if err := s.Toggle(); err != nil {
			return fmt.Errorf("failed to toggle theme: %w", err)
		}
	}

	if s.IsDark() {
		fmt.Println("Theme: dark")
	} else {
		fmt.Println("Theme: light")
	}
	return nil
}

// ExportCommand dumps the current snapshot into a sqlite file.
func ExportCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "crmdeck-export.db", "Output sqlite file")
	_ = fs.Parse(args)

	snap := s.Snapshot()
	if err := export.ToSQLite(snap, *out); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("✓ Exported %d contacts, %d leads, %d deals, %d tasks to %s\n",
		len(snap.Contacts), len(snap.Leads), len(snap.Deals), len(snap.Tasks), *out)
	return nil
}
