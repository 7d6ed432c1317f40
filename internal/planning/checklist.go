package planning

import (
	"time"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
)

// autoCompleteReason is the stamp recorded on items completed by the
// planning data rather than by hand.
const autoCompleteReason = "Completed during planning"

// autoCompleteMappings links checklist item IDs to the planning-engine
// field that represents the same decision. Only planning/decision items
// belong here; physical actions, time-dependent steps, and surgical
// execution must never be auto-completed.
var autoCompleteMappings = map[string]string{
	// Planning decisions
	"implant_system_selected":   "planningData.boneAvailability",
	"esthetic_risk_assessed":    "planningData.estheticZone",
	"occlusal_scheme_decided":   "planningData.occlusion",
	"restorative_plan_defined":  "planningData.restorativeContext",
	"smoking_status_documented": "planningData.smokingStatus",
	"medical_history_reviewed":  "planningData.diabetesStatus",
	"bone_assessment_complete":  "planningData.boneAvailability",
	"soft_tissue_evaluation":    "planningData.softTissueBiotype",
	"medications_reviewed":      "planningData.medications",

	// Risk assessment decisions
	"timing_protocol_decided":   "riskAssessment.implantTiming",
	"case_complexity_assessed":  "riskAssessment.caseComplexity",
	"risk_modifiers_identified": "riskAssessment.riskModifiers",
}

// FilterChecklist walks the master template and keeps only the items whose
// conditions match the case's derived condition map. Sections that end up
// empty are dropped, as are phases with no surviving sections. Template
// order is preserved throughout; it mirrors the clinician's workflow.
//
// The template itself is never modified — surviving items are copied with
// their condition metadata stripped and completion state reset.
func FilterChecklist(template *entities.MasterChecklist, caseConditions map[string]any) entities.FilteredChecklist {
	if template == nil {
		return entities.FilteredChecklist{}
	}

	filtered := entities.FilteredChecklist{}

	for _, phase := range template.Phases {
		var sections []*entities.ChecklistSectionState

		for _, section := range phase.Sections {
			var items []*entities.ChecklistItemState

			for _, item := range section.Items {
				if !MatchesConditions(item.Conditions, caseConditions) {
					continue
				}
				importance := item.Importance
				if importance == "" {
					importance = "advanced"
				}
				items = append(items, &entities.ChecklistItemState{
					ID:         item.ID,
					Text:       item.Text,
					Importance: importance,
				})
			}

			if len(items) > 0 {
				sections = append(sections, &entities.ChecklistSectionState{
					ID:           section.ID,
					Name:         section.Name,
					Title:        section.Name,
					IsLabSection: section.IsLabSection,
					Items:        items,
				})
			}
		}

		if len(sections) > 0 {
			filtered[phase.ID] = &entities.ChecklistPhaseState{
				ID:          phase.ID,
				Name:        phase.Name,
				Title:       phase.Name,
				Description: phase.Description,
				Order:       phase.Order,
				Sections:    sections,
			}
		}
	}

	return filtered
}

// MergeCompletionStates copies completion state from a previously stored
// checklist onto a freshly filtered one so manual completions survive
// re-filtering. Items are matched by ID within the corresponding section
// position; items with no stored counterpart stay untouched. This must run
// before auto-completion so "never touched" can be detected correctly.
func MergeCompletionStates(fresh, stored entities.FilteredChecklist) entities.FilteredChecklist {
	for phaseKey, phase := range fresh {
		storedPhase, ok := stored[phaseKey]
		if !ok || storedPhase == nil {
			continue
		}

		for sectionIdx, section := range phase.Sections {
			if sectionIdx >= len(storedPhase.Sections) {
				break
			}
			storedSection := storedPhase.Sections[sectionIdx]
			if storedSection == nil {
				continue
			}

			for _, item := range section.Items {
				match := findStoredItem(storedSection.Items, item.ID)
				if match == nil {
					continue
				}
				item.Completed = match.Completed
				item.CompletedAt = match.CompletedAt
				// Carried over so repeated renders are identical.
				item.AutoCompleted = match.AutoCompleted
				item.AutoCompleteReason = match.AutoCompleteReason
			}
		}
	}
	return fresh
}

// ApplyAutoCompletion pre-marks whitelisted planning-decision items as
// complete when the mapped planning field holds a value. It only fires for
// items with no record of prior user interaction: a stored completed value
// of either true or false — including an explicit false — always wins.
func ApplyAutoCompletion(fresh entities.FilteredChecklist, c *entities.Case, stored entities.FilteredChecklist, now time.Time) entities.FilteredChecklist {
	completedAt := now.UTC().Format(time.RFC3339Nano)

	for phaseKey, phase := range fresh {
		var storedPhase *entities.ChecklistPhaseState
		if stored != nil {
			storedPhase = stored[phaseKey]
		}

		for sectionIdx, section := range phase.Sections {
			var storedSection *entities.ChecklistSectionState
			if storedPhase != nil && sectionIdx < len(storedPhase.Sections) {
				storedSection = storedPhase.Sections[sectionIdx]
			}

			for _, item := range section.Items {
				var match *entities.ChecklistItemState
				if storedSection != nil {
					match = findStoredItem(storedSection.Items, item.ID)
				}
				if match != nil && match.Completed != nil {
					continue // user interaction on record, hands off
				}
				if !shouldAutoComplete(item.ID, c) {
					continue
				}
				item.Completed = boolPtr(true)
				item.CompletedAt = &completedAt
				item.AutoCompleted = true
				item.AutoCompleteReason = autoCompleteReason
			}
		}
	}

	return fresh
}

func findStoredItem(items []*entities.ChecklistItemState, id string) *entities.ChecklistItemState {
	for _, item := range items {
		if item != nil && item.ID == id {
			return item
		}
	}
	return nil
}

// shouldAutoComplete reports whether the item is whitelisted and its mapped
// planning field resolves to a populated value.
func shouldAutoComplete(itemID string, c *entities.Case) bool {
	path, ok := autoCompleteMappings[itemID]
	if !ok {
		return false
	}
	return populated(resolveCaseField(c, path))
}

// resolveCaseField resolves a dot-addressed field path against the case
// document. Unknown paths resolve to nil rather than failing.
func resolveCaseField(c *entities.Case, path string) any {
	if c == nil {
		return nil
	}
	switch path {
	case "planningData.boneAvailability":
		return string(c.PlanningData.BoneAvailability)
	case "planningData.estheticZone":
		return string(c.PlanningData.EstheticZone)
	case "planningData.softTissueBiotype":
		return string(c.PlanningData.SoftTissueBiotype)
	case "planningData.occlusion":
		return c.PlanningData.Occlusion
	case "planningData.restorativeContext":
		return c.PlanningData.RestorativeContext
	case "planningData.smokingStatus":
		return c.PlanningData.SmokingStatus
	case "planningData.diabetesStatus":
		return c.PlanningData.DiabetesStatus
	case "planningData.medications":
		return c.PlanningData.Medications
	}

	if c.RiskAssessment == nil {
		return nil
	}
	switch path {
	case "riskAssessment.implantTiming":
		return c.RiskAssessment.ImplantTiming
	case "riskAssessment.caseComplexity":
		return c.RiskAssessment.CaseComplexity
	case "riskAssessment.riskModifiers":
		return c.RiskAssessment.RiskModifiers
	}
	return nil
}

// populated reports whether a resolved value is non-null and non-empty.
func populated(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []string:
		return len(v) > 0
	default:
		return true
	}
}
