package entities

// ---- Master checklist template (read-only, loaded once at startup) ----

// MasterChecklist is the externally authored, versioned checklist template.
// It is never mutated after load; the planning package filters copies of it
// per case.
type MasterChecklist struct {
	Version string        `json:"version"`
	Phases  []MasterPhase `json:"phases"`
}

// MasterPhase is an ordered phase of the master template.
type MasterPhase struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Order       int             `json:"order"`
	Sections    []MasterSection `json:"sections"`
}

// MasterSection groups related items inside a phase.
type MasterSection struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	IsLabSection bool         `json:"isLabSection,omitempty"`
	Items        []MasterItem `json:"items"`
}

// MasterItem is a single checklist entry. Conditions gate its inclusion in
// the per-case rendered checklist; an item without conditions always shows.
// Condition values are bool, string, or []string depending on the key.
type MasterItem struct {
	ID         string         `json:"id"`
	Text       string         `json:"text"`
	Importance string         `json:"importance,omitempty"`
	Conditions map[string]any `json:"conditions,omitempty"`
}

// ---- Filtered, per-case checklist (the only mutable checklist artifact) ----

// FilteredChecklist is the per-case rendered checklist, keyed by phase ID.
type FilteredChecklist map[string]*ChecklistPhaseState

// ChecklistPhaseState is a rendered phase with completion tracking.
type ChecklistPhaseState struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Title       string                  `json:"title"` // alias of Name kept for client compatibility
	Description string                  `json:"description,omitempty"`
	Order       int                     `json:"order"`
	Sections    []*ChecklistSectionState `json:"sections"`
}

// ChecklistSectionState is a rendered section with its surviving items.
type ChecklistSectionState struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Title        string                `json:"title"` // alias of Name kept for client compatibility
	IsLabSection bool                  `json:"isLabSection"`
	Items        []*ChecklistItemState `json:"items"`
}

// ChecklistItemState is a rendered item annotated with completion state.
// Completed is tri-state: nil means the item has never been touched, which
// is what allows auto-completion to run; an explicit true or false records
// a user decision that auto-completion must never override.
type ChecklistItemState struct {
	ID                 string  `json:"id"`
	Text               string  `json:"text"`
	Importance         string  `json:"importance"`
	Completed          *bool   `json:"completed"`
	CompletedAt        *string `json:"completedAt"`
	AutoCompleted      bool    `json:"autoCompleted,omitempty"`
	AutoCompleteReason string  `json:"autoCompleteReason,omitempty"`
}

// ---- Legacy flat checklists (pre/treatment/post phases) ----

// ChecklistPhase identifies one of the legacy flat checklists on a case.
type ChecklistPhase string

const (
	PhasePreTreatment  ChecklistPhase = "pre_treatment"
	PhaseTreatment     ChecklistPhase = "treatment"
	PhasePostTreatment ChecklistPhase = "post_treatment"
)

// Valid reports whether the phase names a known legacy checklist.
func (p ChecklistPhase) Valid() bool {
	switch p {
	case PhasePreTreatment, PhaseTreatment, PhasePostTreatment:
		return true
	}
	return false
}

// ChecklistItem is an entry in one of the legacy flat checklists.
type ChecklistItem struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	Completed   bool    `json:"completed"`
	Notes       string  `json:"notes,omitempty"`
	CompletedAt *string `json:"completedAt"`
	IsCustom    bool    `json:"isCustom"`
}
