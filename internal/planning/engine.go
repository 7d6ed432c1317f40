package planning

import (
	"fmt"
	"strings"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
)

// Tooth-number sets use Universal notation and are deliberately hardcoded.
// They must not be derived from a numbering-system model or generalized to
// FDI without product sign-off.
var estheticTeeth = map[string]struct{}{
	"6": {}, "7": {}, "8": {}, "9": {}, "10": {}, "11": {},
	"22": {}, "23": {}, "24": {}, "25": {}, "26": {}, "27": {},
}

var posteriorTeeth = map[string]struct{}{
	"1": {}, "2": {}, "3": {}, "14": {}, "15": {}, "16": {},
	"17": {}, "18": {}, "19": {}, "30": {}, "31": {}, "32": {},
}

// Medication keyword sets matched case-insensitively against each entry of
// the medications list.
var antiresorptiveMeds = map[string]struct{}{
	"bisphosphonates": {}, "denosumab": {}, "antiresorptive": {},
}

var anticoagulantMeds = map[string]struct{}{
	"warfarin": {}, "anticoagulant": {}, "blood thinner": {},
}

func riskRank(level entities.RiskLevel) int {
	switch level {
	case entities.RiskHigh:
		return 2
	case entities.RiskModerate:
		return 1
	default:
		return 0
	}
}

// ruleInput is the read-only view each rule block evaluates against.
type ruleInput struct {
	planning       entities.PlanningData
	toothNumber    string
	isEstheticZone bool
	isPosterior    bool
}

// ruleState is the accumulator threaded through the rule pipeline. Rules
// receive it by value and return an updated copy; nothing mutates in place.
type ruleState struct {
	factors           []string
	considerations    []string
	riskModifiers     []string
	complexityDrivers []string
	clinicalRationale []string
	risk              entities.RiskLevel
	score             int
}

// escalate raises the risk watermark, never lowers it.
func (s ruleState) escalate(to entities.RiskLevel) ruleState {
	if riskRank(to) > riskRank(s.risk) {
		s.risk = to
	}
	return s
}

// force sets the risk level unconditionally. Used by the hard overrides
// (uncontrolled diabetes, antiresorptive therapy).
func (s ruleState) force(to entities.RiskLevel) ruleState {
	s.risk = to
	return s
}

type rule func(ruleState, ruleInput) ruleState

// riskRules run in this exact order. The order fixes the ordering of the
// emitted factor/consideration lists, which clinicians read top to bottom.
var riskRules = []rule{
	boneRule,
	estheticZoneRule,
	biotypeRule,
	smokingRule,
	diabetesRule,
	medicationRule,
	occlusionRule,
	restorativeRule,
}

func boneRule(s ruleState, in ruleInput) ruleState {
	switch in.planning.BoneAvailability {
	case entities.BoneInsufficient:
		s.factors = append(s.factors, "Limited bone availability")
		s.considerations = append(s.considerations, "Consider bone augmentation procedures before or during implant placement")
		s.complexityDrivers = append(s.complexityDrivers, "Insufficient bone volume requiring augmentation consideration")
		s.riskModifiers = append(s.riskModifiers, "Bone deficiency detected")
		s.clinicalRationale = append(s.clinicalRationale, "Limited bone availability typically requires staged approach or simultaneous grafting")
		s = s.escalate(entities.RiskHigh)
		s.score += 3
	case entities.BoneLimited:
		s.factors = append(s.factors, "Moderate bone limitation")
		s.considerations = append(s.considerations, "Be mindful of potential need for guided bone regeneration")
		s.complexityDrivers = append(s.complexityDrivers, "Borderline bone dimensions")
		s = s.escalate(entities.RiskModerate)
		s.score += 2
	case entities.BoneModerate:
		s.score++
	}
	return s
}

func estheticZoneRule(s ruleState, in ruleInput) ruleState {
	if !in.isEstheticZone {
		return s
	}
	s.factors = append(s.factors, "High esthetic zone")
	s.considerations = append(s.considerations, "Cases like this often require careful attention to soft tissue management")
	s.considerations = append(s.considerations, "Consider provisionalization timeline for optimal esthetic outcomes")
	s.complexityDrivers = append(s.complexityDrivers, "Esthetic zone demands precise positioning and soft tissue outcomes")
	s.clinicalRationale = append(s.clinicalRationale, "Anterior placement requires meticulous attention to emergence profile and papilla preservation")
	s = s.escalate(entities.RiskModerate)
	s.score += 2
	return s
}

func biotypeRule(s ruleState, in ruleInput) ruleState {
	if in.planning.SoftTissueBiotype != entities.BiotypeThin {
		return s
	}
	s.factors = append(s.factors, "Thin soft tissue biotype")
	s.considerations = append(s.considerations, "Be mindful of potential gingival recession risk")
	s.considerations = append(s.considerations, "Consider soft tissue grafting if indicated")
	s.riskModifiers = append(s.riskModifiers, "Thin biotype increases esthetic risk")
	if in.isEstheticZone {
		// Compounding with the esthetic zone, not an independent flag.
		s.riskModifiers = append(s.riskModifiers, "Thin biotype in esthetic zone warrants careful planning")
		s.clinicalRationale = append(s.clinicalRationale, "Thin biotype in visible areas may benefit from connective tissue grafting")
	}
	s = s.escalate(entities.RiskModerate)
	s.score++
	return s
}

func smokingRule(s ruleState, in ruleInput) ruleState {
	switch in.planning.SmokingStatus {
	case "current":
		s.factors = append(s.factors, "Active smoker")
		s.considerations = append(s.considerations, "Smoking cessation counseling may improve outcomes")
		s.considerations = append(s.considerations, "Consider extended healing time before loading")
		s.riskModifiers = append(s.riskModifiers, "Active smoking impacts healing and osseointegration")
		s.clinicalRationale = append(s.clinicalRationale, "Smoking is associated with higher implant failure rates; extended healing recommended")
		s = s.escalate(entities.RiskModerate)
		s.score += 2
	case "former":
		// Monitor only, no score or risk effect.
		s.riskModifiers = append(s.riskModifiers, "Former smoker - monitor healing")
	}
	return s
}

func diabetesRule(s ruleState, in ruleInput) ruleState {
	switch in.planning.DiabetesStatus {
	case "uncontrolled":
		s.factors = append(s.factors, "Uncontrolled diabetes")
		s.considerations = append(s.considerations, "Optimize glycemic control before surgery if possible")
		s.considerations = append(s.considerations, "Be aware of potential healing complications")
		s.riskModifiers = append(s.riskModifiers, "Uncontrolled diabetes significantly affects healing")
		s.complexityDrivers = append(s.complexityDrivers, "Systemic condition requiring medical optimization")
		s.clinicalRationale = append(s.clinicalRationale, "HbA1c optimization prior to surgery improves predictability")
		s = s.force(entities.RiskHigh)
		s.score += 3
	case "controlled":
		s.factors = append(s.factors, "Controlled diabetes")
		s.considerations = append(s.considerations, "Monitor healing progress carefully")
		s.riskModifiers = append(s.riskModifiers, "Well-controlled diabetes - standard precautions apply")
		s.score++
	}
	return s
}

func medicationRule(s ruleState, in ruleInput) ruleState {
	if hasMedication(in.planning.Medications, antiresorptiveMeds) {
		s.factors = append(s.factors, "Antiresorptive medication history")
		s.considerations = append(s.considerations, "Consider MRONJ risk assessment")
		s.considerations = append(s.considerations, "May require medical consultation before proceeding")
		s.riskModifiers = append(s.riskModifiers, "Antiresorptive therapy requires MRONJ risk evaluation")
		s.complexityDrivers = append(s.complexityDrivers, "Medication history requires interdisciplinary coordination")
		s.clinicalRationale = append(s.clinicalRationale, "Drug holiday consideration and specialist consultation may be warranted")
		s = s.force(entities.RiskHigh)
		s.score += 3
	}
	if hasMedication(in.planning.Medications, anticoagulantMeds) {
		s.factors = append(s.factors, "Anticoagulant therapy")
		s.considerations = append(s.considerations, "Coordinate with physician regarding anticoagulation management")
		s.riskModifiers = append(s.riskModifiers, "Anticoagulation requires perioperative management plan")
		s.score++
	}
	return s
}

func occlusionRule(s ruleState, in ruleInput) ruleState {
	if in.planning.Occlusion != "" && strings.Contains(strings.ToLower(in.planning.Occlusion), "brux") {
		s.riskModifiers = append(s.riskModifiers, "Bruxism may affect long-term implant success")
		s.clinicalRationale = append(s.clinicalRationale, "Consider occlusal splint therapy post-restoration")
		s.score++
	}
	return s
}

func restorativeRule(s ruleState, in ruleInput) ruleState {
	switch in.planning.RestorativeContext {
	case entities.RestorativeBridgeAbutment:
		s.complexityDrivers = append(s.complexityDrivers, "Bridge abutment requires precise positioning for path of insertion")
		s.score++
	case entities.RestorativeFixedProsthesis:
		s.complexityDrivers = append(s.complexityDrivers, "Full arch rehabilitation increases planning complexity")
		s.score += 2
	}
	return s
}

func hasMedication(medications []string, keywords map[string]struct{}) bool {
	for _, med := range medications {
		if _, ok := keywords[strings.ToLower(med)]; ok {
			return true
		}
	}
	return false
}

// CalculateRiskAssessment maps structured planning inputs and a tooth
// identifier to a risk/complexity assessment. It is pure and total:
// unrecognized values fall through without effect, and identical inputs
// produce identical output.
func CalculateRiskAssessment(planning entities.PlanningData, toothNumber string) entities.RiskAssessment {
	_, inEstheticSet := estheticTeeth[toothNumber]
	_, inPosteriorSet := posteriorTeeth[toothNumber]

	in := ruleInput{
		planning:       planning,
		toothNumber:    toothNumber,
		isEstheticZone: inEstheticSet || planning.EstheticZone == entities.EstheticHigh,
		isPosterior:    inPosteriorSet,
	}

	state := ruleState{risk: entities.RiskLow}
	for _, r := range riskRules {
		state = r(state, in)
	}

	caseComplexity := complexityTier(state.score)
	primaryIssue := determinePrimaryIssue(planning, in.isEstheticZone, in.isPosterior)
	primaryIssueExpanded := expandPrimaryIssue(planning, toothNumber, in.isEstheticZone)
	implantTiming, immediateEligible, immediateReasons := determineImplantTiming(planning, state.risk, state.score, in.isEstheticZone)

	factors := state.factors
	considerations := state.considerations
	if len(factors) == 0 {
		factors = []string{"No significant risk factors identified"}
		considerations = append(considerations, "Standard implant protocols may be appropriate")
	}

	complexityDrivers := capList(state.complexityDrivers, 3, "Standard case parameters")
	clinicalRationale := capList(state.clinicalRationale, 3, "Standard protocols are appropriate for this case profile")

	riskModifiers := state.riskModifiers
	if len(riskModifiers) == 0 {
		riskModifiers = []string{"No significant risk modifiers identified"}
	}

	backupAwareness := ""
	if caseComplexity == entities.ComplexityComplex {
		backupAwareness = "If intraoperative findings differ from planning, consider staging the procedure. This is a reasonable approach that prioritizes long-term success."
	}

	return entities.RiskAssessment{
		OverallRisk:          state.risk,
		Factors:              factors,
		Considerations:       considerations,
		PlainLanguageSummary: plainLanguageSummary(state.risk),

		PrimaryIssue:   primaryIssue,
		CaseComplexity: caseComplexity,
		ImplantTiming:  implantTiming,
		BriefRationale: briefRationale(caseComplexity, primaryIssue, implantTiming),

		PrimaryIssueExpanded:       primaryIssueExpanded,
		ComplexityDrivers:          complexityDrivers,
		ImmediatePlacementEligible: immediateEligible,
		ImmediatePlacementReasons:  immediateReasons,
		RiskModifiers:              riskModifiers,
		ClinicalRationale:          clinicalRationale,
		BackupAwareness:            backupAwareness,
	}
}

// complexityTier maps the accumulated score to its tier. Thresholds are a
// fixed, testable contract: <=2 Simple, 3-5 Moderate, >5 Complex.
func complexityTier(score int) string {
	switch {
	case score <= 2:
		return entities.ComplexitySimple
	case score <= 5:
		return entities.ComplexityModerate
	default:
		return entities.ComplexityComplex
	}
}

// determinePrimaryIssue picks a single concise label via first-match
// priority.
func determinePrimaryIssue(planning entities.PlanningData, isEsthetic, isPosterior bool) string {
	switch {
	case planning.BoneAvailability == entities.BoneInsufficient:
		return "Bone Deficiency"
	case isEsthetic && planning.SoftTissueBiotype == entities.BiotypeThin:
		return "Esthetic Zone + Thin Biotype"
	case isEsthetic:
		return "Esthetic Zone Placement"
	case isPosterior && (planning.BoneAvailability == entities.BoneLimited || planning.BoneAvailability == entities.BoneModerate):
		return "Posterior Site"
	case planning.RestorativeContext == entities.RestorativeFixedProsthesis:
		return "Full Arch Rehabilitation"
	case planning.SmokingStatus == "current":
		return "Smoker - Modified Protocol"
	case planning.DiabetesStatus == "uncontrolled":
		return "Systemic Optimization Needed"
	default:
		return "Standard Implant Placement"
	}
}

var restorativeProse = map[string]string{
	entities.RestorativeSingleCrown:     "Final restoration will be a single crown.",
	entities.RestorativeBridgeAbutment:  "Implant will serve as a bridge abutment.",
	entities.RestorativeOverdenture:     "Implant will support an overdenture.",
	entities.RestorativeFixedProsthesis: "Part of a fixed full-arch prosthesis.",
}

// expandPrimaryIssue builds the detailed-mode prose description.
func expandPrimaryIssue(planning entities.PlanningData, toothNumber string, isEsthetic bool) string {
	var parts []string

	if isEsthetic {
		parts = append(parts, fmt.Sprintf("Implant planned for tooth #%s in the esthetic zone", toothNumber))
	} else {
		parts = append(parts, fmt.Sprintf("Implant planned for tooth #%s", toothNumber))
	}

	switch planning.BoneAvailability {
	case entities.BoneInsufficient:
		parts = append(parts, "with insufficient bone volume that may require augmentation")
	case entities.BoneLimited:
		parts = append(parts, "with limited bone that warrants careful dimension planning")
	case entities.BoneAdequate:
		parts = append(parts, "with adequate bone support")
	}

	if planning.SoftTissueBiotype == entities.BiotypeThin && isEsthetic {
		parts = append(parts, "Thin gingival biotype in this visible area requires attention to soft tissue outcomes.")
	}

	if prose, ok := restorativeProse[planning.RestorativeContext]; ok {
		parts = append(parts, prose)
	}

	return strings.Join(parts, " ")
}

// determineImplantTiming collects contraindications and derives the timing
// recommendation plus tri-state immediate-placement eligibility.
func determineImplantTiming(planning entities.PlanningData, risk entities.RiskLevel, score int, isEsthetic bool) (string, *bool, []string) {
	var contraindications []string

	if planning.BoneAvailability == entities.BoneInsufficient {
		contraindications = append(contraindications, "Insufficient bone requires augmentation first")
	}
	if planning.DiabetesStatus == "uncontrolled" {
		contraindications = append(contraindications, "Systemic condition should be optimized before surgery")
	}
	if hasMedication(planning.Medications, antiresorptiveMeds) {
		contraindications = append(contraindications, "Antiresorptive medication history requires careful timing consideration")
	}
	if planning.SmokingStatus == "current" && isEsthetic {
		contraindications = append(contraindications, "Active smoking in esthetic zone increases immediate placement risk")
	}

	switch {
	case risk == entities.RiskHigh || score > 5:
		reasons := contraindications
		if len(reasons) == 0 {
			// Reachable on score alone without any named contraindication.
			reasons = []string{"Complex case factors favor staged approach"}
		}
		return "Delayed placement recommended", boolPtr(false), reasons
	case len(contraindications) > 0:
		return "Conventional or delayed placement", boolPtr(false), contraindications
	case planning.BoneAvailability == entities.BoneAdequate && risk == entities.RiskLow:
		return "Immediate or early placement may be considered", boolPtr(true),
			[]string{"Favorable bone and risk profile support immediate consideration"}
	default:
		// Case dependent, neither eligible nor contraindicated.
		return "Conventional placement protocol", nil, []string{}
	}
}

func briefRationale(complexity, primaryIssue, timing string) string {
	switch complexity {
	case entities.ComplexitySimple:
		return fmt.Sprintf("%s with favorable conditions supports %s.", primaryIssue, strings.ToLower(timing))
	case entities.ComplexityModerate:
		return fmt.Sprintf("%s requires attention to specific factors; %s is appropriate.", primaryIssue, strings.ToLower(timing))
	default:
		return fmt.Sprintf("%s with multiple considerations; careful planning essential.", primaryIssue)
	}
}

func plainLanguageSummary(risk entities.RiskLevel) string {
	switch risk {
	case entities.RiskLow:
		return "This case appears straightforward. Standard protocols should be appropriate, though individual patient factors should always be considered."
	case entities.RiskModerate:
		return "This case has some factors that warrant additional attention. Consider reviewing the specific considerations below and plan accordingly."
	default:
		return "This case has several factors that may increase complexity. Careful planning and possibly specialist consultation may be beneficial."
	}
}

func capList(list []string, max int, fallback string) []string {
	if len(list) == 0 {
		return []string{fallback}
	}
	if len(list) > max {
		return list[:max]
	}
	return list
}

func boolPtr(v bool) *bool {
	return &v
}
