package entities

import (
	"time"

	"github.com/google/uuid"
)

// CaseStatus tracks where a case sits in its treatment lifecycle.
type CaseStatus string

const (
	StatusPlanning   CaseStatus = "planning"
	StatusInProgress CaseStatus = "in_progress"
	StatusCompleted  CaseStatus = "completed"
)

// Valid reports whether the status is a known lifecycle state.
func (s CaseStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// TimelineEntry is an audit record of a case mutation.
type TimelineEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details,omitempty"`
	Phase     string `json:"phase,omitempty"`
}

// Attachments holds external references to case imagery and scan files.
// The backend stores links only; the files live elsewhere.
type Attachments struct {
	Images    []string `json:"images"`
	CBCTLinks []string `json:"cbctLinks"`
	STLLinks  []string `json:"stlLinks"`
}

// Attachment type keys accepted by the attachment endpoints.
const (
	AttachmentImages    = "images"
	AttachmentCBCTLinks = "cbctLinks"
	AttachmentSTLLinks  = "stlLinks"
)

// Feedback is the clinician's post-case reflection used by the learning
// loop. Custom checklist suggestions feed future cases' checklists.
type Feedback struct {
	WhatWasUnexpected          string   `json:"whatWasUnexpected,omitempty"`
	WhatToDoubleCheckNextTime  string   `json:"whatToDoubleCheckNextTime,omitempty"`
	CustomChecklistSuggestions []string `json:"customChecklistSuggestions"`
	ReflectionCompletedAt      string   `json:"reflectionCompletedAt,omitempty"`
}

// Case is a single patient/tooth implant-planning record. It is persisted
// as one JSON document keyed by ID; every nested structure travels with it.
type Case struct {
	ID          string     `json:"id"`
	CaseName    string     `json:"caseName"`
	ToothNumber string     `json:"toothNumber"`
	OptionalAge *int       `json:"optionalAge,omitempty"`
	OptionalSex string     `json:"optionalSex,omitempty"`
	Status      CaseStatus `json:"status"`

	PlanningData PlanningData `json:"planningData"`

	PreTreatmentChecklist  []ChecklistItem `json:"preTreatmentChecklist"`
	TreatmentChecklist     []ChecklistItem `json:"treatmentChecklist"`
	PostTreatmentChecklist []ChecklistItem `json:"postTreatmentChecklist"`

	ProstheticChecklist FilteredChecklist `json:"prostheticChecklist,omitempty"`

	Feedback    Feedback        `json:"feedback"`
	Attachments Attachments     `json:"attachments"`
	Timeline    []TimelineEntry `json:"timeline"`

	RiskAssessment *RiskAssessment `json:"riskAssessment,omitempty"`

	ConsentAcknowledged bool   `json:"consentAcknowledged"`
	CreatedAt           string `json:"createdAt"`
	UpdatedAt           string `json:"updatedAt"`
}

// NewCase creates a case in the planning state with empty collections.
func NewCase(caseName, toothNumber string, now time.Time) *Case {
	ts := now.UTC().Format(time.RFC3339Nano)
	return &Case{
		ID:          uuid.NewString(),
		CaseName:    caseName,
		ToothNumber: toothNumber,
		Status:      StatusPlanning,
		Attachments: Attachments{
			Images:    []string{},
			CBCTLinks: []string{},
			STLLinks:  []string{},
		},
		Timeline:  []TimelineEntry{},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// AddTimelineEntry appends an audit record and returns it.
func (c *Case) AddTimelineEntry(now time.Time, action, details, phase string) TimelineEntry {
	entry := TimelineEntry{
		ID:        uuid.NewString(),
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Action:    action,
		Details:   details,
		Phase:     phase,
	}
	c.Timeline = append(c.Timeline, entry)
	return entry
}

// Touch stamps the last-modified time.
func (c *Case) Touch(now time.Time) {
	c.UpdatedAt = now.UTC().Format(time.RFC3339Nano)
}
