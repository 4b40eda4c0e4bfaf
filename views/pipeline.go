// ABOUTME: Pipeline board grouping and stage reassignment
// ABOUTME: Resolves drop targets and issues stage updates through the store
package views

import (
	"github.com/google/uuid"

	"crmdeck/models"
	"crmdeck/store"
)

// StageColumn is one column of the pipeline board.
type StageColumn struct {
	Stage string
	Deals []models.Deal
	Value int64
}

// PipelineColumns groups deals into board columns in stage order. Every stage
// gets a column even when empty.
func PipelineColumns(deals []models.Deal) []StageColumn {
	byStage := make(map[string][]models.Deal)
	for _, d := range deals {
		byStage[d.Stage] = append(byStage[d.Stage], d)
	}

	columns := make([]StageColumn, 0, len(models.Stages))
	for _, stage := range models.Stages {
		col := StageColumn{Stage: stage, Deals: byStage[stage]}
		for _, d := range col.Deals {
			col.Value += d.Value
		}
		columns = append(columns, col)
	}
	return columns
}

// DropTarget describes where a dragged deal landed: either directly on a
// stage column, or on another deal, whose stage the drop inherits.
type DropTarget struct {
	Stage  string
	DealID *uuid.UUID
}

// ResolveDropStage turns a drop target into a concrete stage. Returns "" when
// the target names neither a stage nor a known deal.
func ResolveDropStage(deals []models.Deal, target DropTarget) string {
	if target.Stage != "" {
		return target.Stage
	}
	if target.DealID != nil {
		for _, d := range deals {
			if d.ID == *target.DealID {
				return d.Stage
			}
		}
	}
	return ""
}

// MoveDealStage reassigns a deal to the stage resolved from the drop target.
// Issues an update only when the resolved stage differs from the deal's
// current stage; any stage is reachable from any stage. Returns true when an
// update was issued.
func MoveDealStage(s *store.EntityStore, dealID uuid.UUID, target DropTarget) (bool, error) {
	deal := s.GetDeal(dealID)
	if deal == nil {
		return false, nil
	}

	stage := ResolveDropStage(s.Snapshot().Deals, target)
	if stage == "" || stage == deal.Stage {
		return false, nil
	}

	err := s.UpdateDeal(dealID, store.DealPatch{Stage: &stage})
	return err == nil, err
}
