// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides ASCII dashboard for CRM overview
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"crmdeck/models"
	"crmdeck/store"
	"crmdeck/views"
)

type DashboardStats struct {
	// Pipeline overview
	Pipeline []views.StageColumn

	// Overall stats
	TotalContacts int
	TotalLeads    int
	TotalDeals    int
	TotalTasks    int

	// Money
	WonValue      int64
	WeightedValue int64
	AverageValue  float64

	// Leads
	ConversionRate float64
	LeadsByStatus  map[string]int

	// Closed-won value per calendar month
	MonthlyWon map[string]int64

	// Needs attention
	Overdue []models.Task
	DueSoon []models.Task
}

// GenerateDashboardStats derives the dashboard from a store snapshot.
func GenerateDashboardStats(snap store.Snapshot, now time.Time) *DashboardStats {
	stats := &DashboardStats{
		Pipeline:       views.PipelineColumns(snap.Deals),
		TotalContacts:  len(snap.Contacts),
		TotalLeads:     len(snap.Leads),
		TotalDeals:     len(snap.Deals),
		TotalTasks:     len(snap.Tasks),
		WonValue:       views.WonValue(snap.Deals),
		WeightedValue:  views.WeightedPipelineValue(snap.Deals),
		AverageValue:   views.AverageDealValue(snap.Deals),
		ConversionRate: views.ConversionRate(snap.Leads),
		LeadsByStatus:  views.CountLeadsByStatus(snap.Leads),
		Overdue:        views.OverdueTasks(snap.Tasks, now),
	}

	won := views.FilterDeals(snap.Deals, views.DealFilter{Stage: models.StageClosedWon})
	stats.MonthlyWon = views.DealValueBuckets(won, views.MonthBucket)

	for _, t := range snap.Tasks {
		if t.IsDueSoon(now, 7) {
			stats.DueSoon = append(stats.DueSoon, t)
		}
	}

	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  CRMDECK DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	// Pipeline overview
	out.WriteString("PIPELINE OVERVIEW\n")
	renderPipeline(&out, stats.Pipeline)
	out.WriteString("\n")

	// Stats
	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  📇 %d contacts  🎯 %d leads  💼 %d deals  ☑️ %d tasks\n",
		stats.TotalContacts, stats.TotalLeads, stats.TotalDeals, stats.TotalTasks))
	out.WriteString(fmt.Sprintf("  Won $%.2f  Weighted pipeline $%.2f  Avg deal $%.2f\n",
		cents(stats.WonValue), cents(stats.WeightedValue), stats.AverageValue/100.0))
	out.WriteString(fmt.Sprintf("  Lead conversion %.1f%%\n\n", stats.ConversionRate))

	// Monthly closed-won chart
	if len(stats.MonthlyWon) > 0 {
		out.WriteString("CLOSED-WON BY MONTH\n")
		renderMonthly(&out, stats.MonthlyWon)
		out.WriteString("\n")
	}

	// Needs attention
	if len(stats.Overdue) > 0 || len(stats.DueSoon) > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		if len(stats.Overdue) > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d tasks overdue\n", len(stats.Overdue)))
		}
		if len(stats.DueSoon) > 0 {
			out.WriteString(fmt.Sprintf("  ⏰ %d tasks due within 7 days\n", len(stats.DueSoon)))
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, columns []views.StageColumn) {
	// Find max count for scaling
	maxCount := 0
	for _, col := range columns {
		if len(col.Deals) > maxCount {
			maxCount = len(col.Deals)
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, col := range columns {
		// Calculate bar length (0-10 blocks)
		barLength := (len(col.Deals) * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-13s %s  %2d ($%dK)\n",
			col.Stage, bar, len(col.Deals), col.Value/100000))
	}
}

func renderMonthly(out *strings.Builder, buckets map[string]int64) {
	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	var maxValue int64 = 1
	for _, m := range months {
		if buckets[m] > maxValue {
			maxValue = buckets[m]
		}
	}

	for _, m := range months {
		barLength := int(buckets[m] * 10 / maxValue)
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %s %s  $%.2f\n", m, bar, cents(buckets[m])))
	}
}

func cents(v int64) float64 {
	return float64(v) / 100.0
}
