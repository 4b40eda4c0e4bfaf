// ABOUTME: Aggregation helpers over entity store snapshots
// ABOUTME: Sums, grouped counts, rates with zero-guards, and time buckets
package views

import (
	"time"

	"crmdeck/models"
)

// Time bucket layouts for chart aggregation.
const (
	DayBucket   = "2006-01-02"
	MonthBucket = "2006-01"
)

// SumDealValues sums deal values over records matching the predicate. A nil
// predicate matches everything.
func SumDealValues(deals []models.Deal, pred func(models.Deal) bool) int64 {
	var total int64
	for _, d := range deals {
		if pred == nil || pred(d) {
			total += d.Value
		}
	}
	return total
}

// WonValue sums the value of closed-won deals.
func WonValue(deals []models.Deal) int64 {
	return SumDealValues(deals, func(d models.Deal) bool {
		return d.Stage == models.StageClosedWon
	})
}

// WeightedPipelineValue sums probability-weighted values of open deals.
func WeightedPipelineValue(deals []models.Deal) int64 {
	var total int64
	for _, d := range deals {
		if d.IsClosed() {
			continue
		}
		total += d.WeightedValue()
	}
	return total
}

// CountDealsByStage groups deal counts by stage.
func CountDealsByStage(deals []models.Deal) map[string]int {
	counts := make(map[string]int)
	for _, d := range deals {
		counts[d.Stage]++
	}
	return counts
}

// CountLeadsByStatus groups lead counts by status.
func CountLeadsByStatus(leads []models.Lead) map[string]int {
	counts := make(map[string]int)
	for _, l := range leads {
		counts[l.Status]++
	}
	return counts
}

// CountLeadsBySource groups lead counts by source.
func CountLeadsBySource(leads []models.Lead) map[string]int {
	counts := make(map[string]int)
	for _, l := range leads {
		counts[l.Source]++
	}
	return counts
}

// CountTasksByStatus groups task counts by status.
func CountTasksByStatus(tasks []models.Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

// ConversionRate reports converted leads as a percentage of all leads.
// Returns 0 for an empty collection, never NaN.
func ConversionRate(leads []models.Lead) float64 {
	if len(leads) == 0 {
		return 0
	}
	converted := 0
	for _, l := range leads {
		if l.Status == models.LeadStatusConverted {
			converted++
		}
	}
	return float64(converted) / float64(len(leads)) * 100
}

// AverageDealValue reports the mean deal value, 0 for an empty collection.
func AverageDealValue(deals []models.Deal) float64 {
	if len(deals) == 0 {
		return 0
	}
	return float64(SumDealValues(deals, nil)) / float64(len(deals))
}

// DealValueBuckets accumulates deal values keyed by the bucket layout applied
// to each deal's close date (falling back to CreatedAt when no close date is
// set). Layout should be DayBucket or MonthBucket.
func DealValueBuckets(deals []models.Deal, layout string) map[string]int64 {
	buckets := make(map[string]int64)
	for _, d := range deals {
		ts := d.CreatedAt
		if d.CloseDate != nil {
			ts = *d.CloseDate
		}
		buckets[ts.Format(layout)] += d.Value
	}
	return buckets
}

// LeadCountBuckets accumulates lead counts keyed by the bucket layout applied
// to CreatedAt.
func LeadCountBuckets(leads []models.Lead, layout string) map[string]int {
	buckets := make(map[string]int)
	for _, l := range leads {
		buckets[l.CreatedAt.Format(layout)]++
	}
	return buckets
}

// OverdueTasks returns tasks past their due date that are not completed.
func OverdueTasks(tasks []models.Task, now time.Time) []models.Task {
	out := make([]models.Task, 0)
	for _, t := range tasks {
		if t.IsOverdue(now) {
			out = append(out, t)
		}
	}
	return out
}
