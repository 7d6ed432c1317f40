package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
)

func TestCalculateRiskAssessment_EmptyInput(t *testing.T) {
	result := CalculateRiskAssessment(entities.PlanningData{}, "20")

	assert.Equal(t, entities.RiskLow, result.OverallRisk)
	assert.Equal(t, entities.ComplexitySimple, result.CaseComplexity)
	assert.Equal(t, []string{"No significant risk factors identified"}, result.Factors)
	assert.Contains(t, result.Considerations, "Standard implant protocols may be appropriate")
	assert.Equal(t, []string{"No significant risk modifiers identified"}, result.RiskModifiers)
	assert.Equal(t, []string{"Standard case parameters"}, result.ComplexityDrivers)
	assert.Equal(t, "Standard Implant Placement", result.PrimaryIssue)
	assert.Equal(t, "Conventional placement protocol", result.ImplantTiming)
	assert.Nil(t, result.ImmediatePlacementEligible)
	assert.Empty(t, result.BackupAwareness)
}

func TestCalculateRiskAssessment_Deterministic(t *testing.T) {
	planning := entities.PlanningData{
		BoneAvailability:  entities.BoneLimited,
		EstheticZone:      entities.EstheticHigh,
		SoftTissueBiotype: entities.BiotypeThin,
		SmokingStatus:     "former",
		Medications:       []string{"Metformin", "Warfarin"},
	}

	first := CalculateRiskAssessment(planning, "8")
	second := CalculateRiskAssessment(planning, "8")

	assert.Equal(t, first, second)
}

func TestCalculateRiskAssessment_ComplexityTiers(t *testing.T) {
	tests := []struct {
		name     string
		planning entities.PlanningData
		tooth    string
		want     string
	}{
		{
			name:     "score 2 stays simple",
			planning: entities.PlanningData{BoneAvailability: entities.BoneLimited},
			tooth:    "20",
			want:     entities.ComplexitySimple,
		},
		{
			name: "score 3 crosses into moderate",
			planning: entities.PlanningData{
				BoneAvailability: entities.BoneLimited,
				DiabetesStatus:   "controlled",
			},
			tooth: "20",
			want:  entities.ComplexityModerate,
		},
		{
			name: "score 5 stays moderate",
			planning: entities.PlanningData{
				BoneAvailability: entities.BoneLimited,
				EstheticZone:     entities.EstheticHigh,
				DiabetesStatus:   "controlled",
			},
			tooth: "20",
			want:  entities.ComplexityModerate,
		},
		{
			name: "score 6 crosses into complex",
			planning: entities.PlanningData{
				BoneAvailability:  entities.BoneLimited,
				EstheticZone:      entities.EstheticHigh,
				SoftTissueBiotype: entities.BiotypeThin,
				DiabetesStatus:    "controlled",
			},
			tooth: "20",
			want:  entities.ComplexityComplex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateRiskAssessment(tt.planning, tt.tooth)
			assert.Equal(t, tt.want, result.CaseComplexity)
		})
	}
}

func TestCalculateRiskAssessment_UncontrolledDiabetesForcesHigh(t *testing.T) {
	result := CalculateRiskAssessment(entities.PlanningData{DiabetesStatus: "uncontrolled"}, "20")

	// The hard override applies even though the score alone sits in the
	// moderate tier.
	assert.Equal(t, entities.RiskHigh, result.OverallRisk)
	assert.Equal(t, entities.ComplexityModerate, result.CaseComplexity)
	assert.Contains(t, result.Factors, "Uncontrolled diabetes")
}

func TestCalculateRiskAssessment_AntiresorptiveForcesHigh(t *testing.T) {
	result := CalculateRiskAssessment(entities.PlanningData{Medications: []string{"Denosumab"}}, "20")

	assert.Equal(t, entities.RiskHigh, result.OverallRisk)
	assert.Contains(t, result.Factors, "Antiresorptive medication history")

	require.NotNil(t, result.ImmediatePlacementEligible)
	assert.False(t, *result.ImmediatePlacementEligible)
	assert.Equal(t, "Delayed placement recommended", result.ImplantTiming)
}

func TestCalculateRiskAssessment_RiskNeverLowered(t *testing.T) {
	base := entities.PlanningData{
		BoneAvailability: entities.BoneInsufficient,
	}
	withMore := base
	withMore.SmokingStatus = "current"
	withMore.DiabetesStatus = "controlled"

	baseResult := CalculateRiskAssessment(base, "20")
	moreResult := CalculateRiskAssessment(withMore, "20")

	assert.Equal(t, entities.RiskHigh, baseResult.OverallRisk)
	assert.Equal(t, entities.RiskHigh, moreResult.OverallRisk)
	assert.GreaterOrEqual(t,
		riskRank(moreResult.OverallRisk), riskRank(baseResult.OverallRisk))
}

func TestCalculateRiskAssessment_EstheticZoneByToothNumber(t *testing.T) {
	// Tooth 8 is anterior regardless of the declared esthetic zone value.
	result := CalculateRiskAssessment(entities.PlanningData{}, "8")

	assert.Contains(t, result.Factors, "High esthetic zone")
	assert.Equal(t, entities.RiskModerate, result.OverallRisk)
	assert.Equal(t, "Esthetic Zone Placement", result.PrimaryIssue)
	assert.Contains(t, result.PrimaryIssueExpanded, "tooth #8 in the esthetic zone")
}

func TestCalculateRiskAssessment_StraightforwardPosteriorCase(t *testing.T) {
	planning := entities.PlanningData{
		BoneAvailability:   entities.BoneAdequate,
		EstheticZone:       entities.EstheticLow,
		SoftTissueBiotype:  entities.BiotypeThick,
		SmokingStatus:      "never",
		RestorativeContext: entities.RestorativeSingleCrown,
	}

	result := CalculateRiskAssessment(planning, "30")

	assert.Equal(t, entities.RiskLow, result.OverallRisk)
	assert.Equal(t, entities.ComplexitySimple, result.CaseComplexity)
	assert.Equal(t, "Standard Implant Placement", result.PrimaryIssue)
	assert.Equal(t, "Immediate or early placement may be considered", result.ImplantTiming)

	require.NotNil(t, result.ImmediatePlacementEligible)
	assert.True(t, *result.ImmediatePlacementEligible)
	assert.Equal(t,
		[]string{"Favorable bone and risk profile support immediate consideration"},
		result.ImmediatePlacementReasons)
	assert.Empty(t, result.BackupAwareness)
	assert.Contains(t, result.PrimaryIssueExpanded, "single crown")
}

func TestCalculateRiskAssessment_EstheticThinBiotypeCase(t *testing.T) {
	planning := entities.PlanningData{
		BoneAvailability:  entities.BoneModerate,
		EstheticZone:      entities.EstheticHigh,
		SoftTissueBiotype: entities.BiotypeThin,
		SmokingStatus:     "former",
	}

	result := CalculateRiskAssessment(planning, "8")

	assert.Equal(t, entities.RiskModerate, result.OverallRisk)
	assert.Equal(t, entities.ComplexityModerate, result.CaseComplexity)
	assert.Equal(t, "Esthetic Zone + Thin Biotype", result.PrimaryIssue)
	assert.Contains(t, result.RiskModifiers, "Former smoker - monitor healing")
	assert.Contains(t, result.RiskModifiers, "Thin biotype in esthetic zone warrants careful planning")
	assert.Equal(t, "Conventional placement protocol", result.ImplantTiming)
	assert.Nil(t, result.ImmediatePlacementEligible)
}

func TestCalculateRiskAssessment_HighRiskCompoundCase(t *testing.T) {
	planning := entities.PlanningData{
		BoneAvailability:  entities.BoneInsufficient,
		EstheticZone:      entities.EstheticHigh,
		SoftTissueBiotype: entities.BiotypeThin,
		SmokingStatus:     "current",
		DiabetesStatus:    "uncontrolled",
		Medications:       []string{"bisphosphonates"},
	}

	result := CalculateRiskAssessment(planning, "9")

	assert.Equal(t, entities.RiskHigh, result.OverallRisk)
	assert.Equal(t, entities.ComplexityComplex, result.CaseComplexity)
	assert.Equal(t, "Bone Deficiency", result.PrimaryIssue)
	assert.Equal(t, "Delayed placement recommended", result.ImplantTiming)

	require.NotNil(t, result.ImmediatePlacementEligible)
	assert.False(t, *result.ImmediatePlacementEligible)
	assert.Contains(t, result.ImmediatePlacementReasons, "Insufficient bone requires augmentation first")
	assert.Contains(t, result.ImmediatePlacementReasons, "Antiresorptive medication history requires careful timing consideration")
	assert.NotEmpty(t, result.BackupAwareness)

	// Detailed lists are capped so the client stays readable.
	assert.LessOrEqual(t, len(result.ComplexityDrivers), 3)
	assert.LessOrEqual(t, len(result.ClinicalRationale), 3)
}

func TestCalculateRiskAssessment_DelayedWithoutNamedContraindication(t *testing.T) {
	// Score climbs past the complex threshold without tripping any of the
	// named contraindications, so the generic staging reason applies.
	planning := entities.PlanningData{
		BoneAvailability:   entities.BoneLimited,
		EstheticZone:       entities.EstheticHigh,
		SoftTissueBiotype:  entities.BiotypeThin,
		Occlusion:          "bruxism suspected",
		RestorativeContext: entities.RestorativeFixedProsthesis,
	}

	result := CalculateRiskAssessment(planning, "20")

	assert.Equal(t, "Delayed placement recommended", result.ImplantTiming)
	require.NotNil(t, result.ImmediatePlacementEligible)
	assert.False(t, *result.ImmediatePlacementEligible)
	assert.Equal(t, []string{"Complex case factors favor staged approach"}, result.ImmediatePlacementReasons)
}

func TestCalculateRiskAssessment_BruxismDetectedInOcclusionNotes(t *testing.T) {
	result := CalculateRiskAssessment(entities.PlanningData{Occlusion: "Heavy Bruxer, group function"}, "20")

	assert.Contains(t, result.RiskModifiers, "Bruxism may affect long-term implant success")
}

func TestCalculateRiskAssessment_MedicationMatchingIsCaseInsensitive(t *testing.T) {
	result := CalculateRiskAssessment(entities.PlanningData{Medications: []string{"WARFARIN"}}, "20")

	assert.Contains(t, result.Factors, "Anticoagulant therapy")
	assert.Equal(t, entities.RiskLow, result.OverallRisk)
}

func TestCalculateRiskAssessment_BackupAwarenessOnlyWhenComplex(t *testing.T) {
	moderate := CalculateRiskAssessment(entities.PlanningData{
		BoneAvailability: entities.BoneLimited,
		DiabetesStatus:   "controlled",
	}, "20")
	complexCase := CalculateRiskAssessment(entities.PlanningData{
		BoneAvailability: entities.BoneInsufficient,
		EstheticZone:     entities.EstheticHigh,
		SmokingStatus:    "current",
	}, "20")

	assert.Equal(t, entities.ComplexityModerate, moderate.CaseComplexity)
	assert.Empty(t, moderate.BackupAwareness)
	assert.Equal(t, entities.ComplexityComplex, complexCase.CaseComplexity)
	assert.NotEmpty(t, complexCase.BackupAwareness)
}
