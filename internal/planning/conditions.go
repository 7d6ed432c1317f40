package planning

import (
	"strings"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
)

// Condition keys shared by the derivation and matching steps.
const (
	condRequiresImaging             = "requiresImaging"
	condEstheticZone                = "estheticZone"
	condGBR                         = "gbr"
	condNeedsGBR                    = "needsGBR"
	condSoftTissueGraft             = "softTissueGraft"
	condGuideRequired               = "guideRequired"
	condImmediateProvisionalization = "immediateProvisionalization"
	condProstheticType              = "prostheticType"
	condSmoker                      = "smoker"
	condDiabetic                    = "diabetic"
	condAnticoagulated              = "anticoagulated"
	condBisphosphonates             = "bisphosphonates"
	condBruxism                     = "bruxism"
)

// DeriveConditions translates planning data (and, when present, the latest
// risk assessment) into the flat condition map consumed by checklist
// filtering and auto-completion.
//
// The map is sparse: a condition is asserted only by presence. False and
// empty values are never stored, and the matcher treats absence as false.
func DeriveConditions(planning entities.PlanningData, risk *entities.RiskAssessment) map[string]any {
	conditions := map[string]any{
		// Every implant case needs imaging.
		condRequiresImaging: true,
	}

	setIf := func(key string, value bool) {
		if value {
			conditions[key] = true
		}
	}

	setIf(condEstheticZone, planning.EstheticZone == entities.EstheticHigh)

	needsGBR := planning.BoneAvailability == entities.BoneInsufficient
	setIf(condGBR, needsGBR)
	setIf(condNeedsGBR, needsGBR)

	// A conjunction: thin biotype alone does not assert the graft condition.
	setIf(condSoftTissueGraft,
		planning.SoftTissueBiotype == entities.BiotypeThin && planning.EstheticZone == entities.EstheticHigh)

	setIf(condGuideRequired, planning.EstheticZone == entities.EstheticHigh)

	if risk != nil {
		setIf(condImmediateProvisionalization,
			strings.Contains(strings.ToLower(risk.ImplantTiming), "immediate"))
		setIf(condBruxism, containsString(risk.RiskModifiers, "bruxism"))
	}

	if planning.RestorativeContext != "" {
		conditions[condProstheticType] = planning.RestorativeContext
	}

	setIf(condSmoker, planning.SmokingStatus == "current" || planning.SmokingStatus == "former")
	setIf(condDiabetic, planning.DiabetesStatus == "controlled" || planning.DiabetesStatus == "uncontrolled")
	setIf(condAnticoagulated, containsString(planning.Medications, "anticoagulants"))
	setIf(condBisphosphonates, containsString(planning.Medications, "bisphosphonates"))

	return conditions
}

func containsString(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}
