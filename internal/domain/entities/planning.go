package entities

// BoneAvailability classifies bone volume at the planned implant site.
type BoneAvailability string

const (
	BoneAdequate     BoneAvailability = "adequate"
	BoneModerate     BoneAvailability = "moderate"
	BoneLimited      BoneAvailability = "limited"
	BoneInsufficient BoneAvailability = "insufficient"
)

// EstheticZone classifies the esthetic demand of the site.
type EstheticZone string

const (
	EstheticHigh     EstheticZone = "high"
	EstheticModerate EstheticZone = "moderate"
	EstheticLow      EstheticZone = "low"
)

// SoftTissueBiotype classifies gingival tissue thickness.
type SoftTissueBiotype string

const (
	BiotypeThick    SoftTissueBiotype = "thick"
	BiotypeModerate SoftTissueBiotype = "moderate"
	BiotypeThin     SoftTissueBiotype = "thin"
)

// Restorative context values stored in PlanningData.RestorativeContext.
// These arrive normalized from the planning wizard but stay plain strings
// because the field also accepts free text.
const (
	RestorativeSingleCrown     = "single_crown"
	RestorativeBridgeAbutment  = "bridge_abutment"
	RestorativeOverdenture     = "overdenture"
	RestorativeFixedProsthesis = "fixed_prosthesis"
)

// PlanningData holds the structured clinical inputs gathered during case
// planning. Every field is optional; the engines treat absent values as
// "no effect" rather than errors.
type PlanningData struct {
	BoneAvailability   BoneAvailability  `json:"boneAvailability,omitempty"`
	BoneHeight         string            `json:"boneHeight,omitempty"`
	BoneWidth          string            `json:"boneWidth,omitempty"`
	EstheticZone       EstheticZone      `json:"estheticZone,omitempty"`
	SoftTissueBiotype  SoftTissueBiotype `json:"softTissueBiotype,omitempty"`
	SystemicModifiers  []string          `json:"systemicModifiers,omitempty"`
	RestorativeContext string            `json:"restorativeContext,omitempty"`
	AdjacentTeeth      string            `json:"adjacentTeeth,omitempty"`
	Occlusion          string            `json:"occlusion,omitempty"`
	SmokingStatus      string            `json:"smokingStatus,omitempty"`
	DiabetesStatus     string            `json:"diabetesStatus,omitempty"`
	Medications        []string          `json:"medications,omitempty"`
	AdditionalNotes    string            `json:"additionalNotes,omitempty"`
}

// PlanningDataPatch is a partial update to PlanningData. Nil fields are
// left untouched so the planning wizard can save one step at a time.
type PlanningDataPatch struct {
	BoneAvailability   *BoneAvailability  `json:"boneAvailability,omitempty"`
	BoneHeight         *string            `json:"boneHeight,omitempty"`
	BoneWidth          *string            `json:"boneWidth,omitempty"`
	EstheticZone       *EstheticZone      `json:"estheticZone,omitempty"`
	SoftTissueBiotype  *SoftTissueBiotype `json:"softTissueBiotype,omitempty"`
	SystemicModifiers  []string           `json:"systemicModifiers,omitempty"`
	RestorativeContext *string            `json:"restorativeContext,omitempty"`
	AdjacentTeeth      *string            `json:"adjacentTeeth,omitempty"`
	Occlusion          *string            `json:"occlusion,omitempty"`
	SmokingStatus      *string            `json:"smokingStatus,omitempty"`
	DiabetesStatus     *string            `json:"diabetesStatus,omitempty"`
	Medications        []string           `json:"medications,omitempty"`
	AdditionalNotes    *string            `json:"additionalNotes,omitempty"`
}

// Apply merges the patch into the planning data, field by field.
func (p *PlanningDataPatch) Apply(data *PlanningData) {
	if p == nil || data == nil {
		return
	}
	if p.BoneAvailability != nil {
		data.BoneAvailability = *p.BoneAvailability
	}
	if p.BoneHeight != nil {
		data.BoneHeight = *p.BoneHeight
	}
	if p.BoneWidth != nil {
		data.BoneWidth = *p.BoneWidth
	}
	if p.EstheticZone != nil {
		data.EstheticZone = *p.EstheticZone
	}
	if p.SoftTissueBiotype != nil {
		data.SoftTissueBiotype = *p.SoftTissueBiotype
	}
	if p.SystemicModifiers != nil {
		data.SystemicModifiers = p.SystemicModifiers
	}
	if p.RestorativeContext != nil {
		data.RestorativeContext = *p.RestorativeContext
	}
	if p.AdjacentTeeth != nil {
		data.AdjacentTeeth = *p.AdjacentTeeth
	}
	if p.Occlusion != nil {
		data.Occlusion = *p.Occlusion
	}
	if p.SmokingStatus != nil {
		data.SmokingStatus = *p.SmokingStatus
	}
	if p.DiabetesStatus != nil {
		data.DiabetesStatus = *p.DiabetesStatus
	}
	if p.Medications != nil {
		data.Medications = p.Medications
	}
	if p.AdditionalNotes != nil {
		data.AdditionalNotes = *p.AdditionalNotes
	}
}
