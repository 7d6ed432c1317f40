package entities

// RiskLevel is the overall risk classification of a case.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// Case complexity tiers derived from the numeric complexity score.
const (
	ComplexitySimple   = "Simple"
	ComplexityModerate = "Moderate"
	ComplexityComplex  = "Complex"
)

// RiskAssessment is the derived plain-language output of the planning
// engine. It carries both the standard (brief) and detailed mode fields so
// the client can toggle reasoning depth without re-analyzing.
//
// ImmediatePlacementEligible is tri-state: nil means "case dependent",
// neither eligible nor contraindicated.
type RiskAssessment struct {
	OverallRisk          RiskLevel `json:"overallRisk"`
	Factors              []string  `json:"factors"`
	Considerations       []string  `json:"considerations"`
	PlainLanguageSummary string    `json:"plainLanguageSummary"`

	// Standard mode
	PrimaryIssue   string `json:"primaryIssue"`
	CaseComplexity string `json:"caseComplexity"`
	ImplantTiming  string `json:"implantTiming"`
	BriefRationale string `json:"briefRationale"`

	// Detailed mode
	PrimaryIssueExpanded       string   `json:"primaryIssueExpanded"`
	ComplexityDrivers          []string `json:"complexityDrivers"`
	ImmediatePlacementEligible *bool    `json:"immediatePlacementEligible"`
	ImmediatePlacementReasons  []string `json:"immediatePlacementReasons"`
	RiskModifiers              []string `json:"riskModifiers"`
	ClinicalRationale          []string `json:"clinicalRationale"`
	BackupAwareness            string   `json:"backupAwareness,omitempty"`
}
