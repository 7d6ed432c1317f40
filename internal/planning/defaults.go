package planning

import (
	"github.com/google/uuid"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
)

// DefaultChecklistItems builds the seed items for one of the legacy flat
// checklists. Fresh IDs are minted per case so items can be completed
// independently across cases.
func DefaultChecklistItems(phase entities.ChecklistPhase) []entities.ChecklistItem {
	var texts []string
	switch phase {
	case entities.PhasePreTreatment:
		texts = []string{
			"CBCT scan reviewed",
			"Bone quality and quantity assessed",
			"Adjacent teeth evaluated",
			"Medical history reviewed",
			"Medications checked for contraindications",
			"Esthetic expectations discussed",
			"Treatment plan finalized",
			"Informed consent obtained",
			"Surgical guide prepared (if applicable)",
		}
	case entities.PhaseTreatment:
		texts = []string{
			"Surgical site prepared and anesthetized",
			"Osteotomy performed to planned depth",
			"Implant placed at correct angulation",
			"Primary stability achieved",
			"Insertion torque recorded",
			"Cover screw or healing abutment placed",
			"Intra-operative radiograph taken (if needed)",
			"Soft tissue closure completed",
		}
	case entities.PhasePostTreatment:
		texts = []string{
			"Post-operative instructions provided",
			"Pain management plan reviewed",
			"Antibiotics prescribed (if indicated)",
			"Follow-up appointment scheduled",
			"Healing progress documented at 1 week",
			"Integration verified before loading",
			"Final restoration plan confirmed",
			"Patient satisfaction assessed",
		}
	}

	items := make([]entities.ChecklistItem, 0, len(texts))
	for _, text := range texts {
		items = append(items, entities.ChecklistItem{
			ID:   uuid.NewString(),
			Text: text,
		})
	}
	return items
}

// DefaultProstheticChecklist builds the legacy four-phase prosthetic
// checklist used when the master template is unavailable. It is rendered
// unconditionally: no filtering, no auto-completion.
func DefaultProstheticChecklist() entities.FilteredChecklist {
	phase := func(id, title, description string, order int, sections ...*entities.ChecklistSectionState) *entities.ChecklistPhaseState {
		return &entities.ChecklistPhaseState{
			ID:          id,
			Name:        title,
			Title:       title,
			Description: description,
			Order:       order,
			Sections:    sections,
		}
	}
	section := func(title string, isLab bool, items ...*entities.ChecklistItemState) *entities.ChecklistSectionState {
		return &entities.ChecklistSectionState{
			ID:           uuid.NewString(),
			Name:         title,
			Title:        title,
			IsLabSection: isLab,
			Items:        items,
		}
	}
	essential := func(text string) *entities.ChecklistItemState {
		return &entities.ChecklistItemState{ID: uuid.NewString(), Text: text, Importance: "essential"}
	}
	advanced := func(text string) *entities.ChecklistItemState {
		return &entities.ChecklistItemState{ID: uuid.NewString(), Text: text, Importance: "advanced"}
	}

	return entities.FilteredChecklist{
		"phase1": phase("phase1", "PHASE 1 — PRE-Rx PLANNING", "Comprehensive case assessment & prosthetic strategy", 1,
			section("Clinical Assessment", false,
				advanced("Review medical & surgical history"),
				essential("Verify implant placement dates & implant specifications"),
				essential("Assess esthetics & patient expectations"),
				advanced("Evaluate bone volume & jaw relation"),
				advanced("Document existing dentition status"),
				essential("Confirm implant position & osseointegration"),
				advanced("Radiographic verification (periapical, CBCT if needed)"),
			),
			section("Lab Communication – Case Setup", true,
				advanced("Send pre-case consultation form to lab"),
				advanced("Confirm lab can accommodate abutment selection"),
				essential("Discuss margin location requirements"),
				advanced("Confirm turnaround time & remake policy"),
				essential("Share esthetic photos & concerns"),
				advanced("Establish lab point of contact"),
			),
			section("Prosthetic Strategy & Planning", false,
				essential("Determine abutment approach"),
				advanced("Decide restoration material"),
				advanced("Plan emergence profile"),
				advanced("Define esthetic goals"),
				advanced("Establish occlusal scheme"),
				advanced("Document treatment plan"),
				advanced("Obtain informed consent"),
			),
		),
		"phase2": phase("phase2", "PHASE 2 — Rx EXECUTION", "Clinical preparation & prosthetic data capture", 2,
			section("Pre-Prosthetic Clinical Preparation", false,
				essential("Implant stability assessment"),
				essential("Verify emergence profile"),
				essential("Check soft tissue maturity"),
				advanced("Evaluate peri-implant mucosa"),
				advanced("Soft tissue contouring if needed"),
				advanced("Baseline photography"),
				advanced("Color documentation"),
			),
			section("Impression & Data Capture Protocol", false,
				essential("Select impression technique"),
				essential("Confirm abutment selection"),
				advanced("Tissue retraction"),
				essential("Capture impression"),
				essential("Jaw relation"),
				advanced("Bite registration"),
				advanced("Digital scans if applicable"),
				advanced("Shade documentation"),
			),
			section("Lab Communication – Case Dispatch", true,
				essential("Prepare detailed lab prescription"),
				advanced("Specify abutment & margin details"),
				advanced("Include esthetic parameters"),
				advanced("Define functional specs"),
				advanced("Attach photos"),
				advanced("Note special instructions"),
				advanced("Schedule try-in"),
				advanced("Confirm lab receipt"),
			),
		),
		"phase3": phase("phase3", "PHASE 3 — POST-Rx PLANNING", "Quality assurance & final clinical preparation", 3,
			section("Lab Delivery & Quality Review", false,
				advanced("Receive lab work"),
				essential("Inspect model accuracy"),
				advanced("Assess restoration fit"),
				essential("Check shade under lighting"),
				advanced("Inspect defects"),
				advanced("Assess margins"),
				advanced("Contact lab if discrepancies"),
			),
			section("Clinical Try-In & Adjustment", false,
				advanced("Isolate implant site"),
				essential("Passive fit check"),
				essential("Margin evaluation"),
				essential("Occlusal check"),
				advanced("Esthetic evaluation"),
				advanced("Soft tissue assessment"),
				advanced("Adjustments"),
				advanced("Document remakes"),
			),
			section("Lab Communication – Adjustments & Approval", true,
				advanced("Communicate adjustments"),
				advanced("Request refinements"),
				essential("Approve final design"),
				advanced("Confirm no modifications"),
				advanced("Discuss remakes"),
				advanced("Establish delivery timeline"),
				advanced("Confirm occlusal requirements"),
			),
		),
		"phase4": phase("phase4", "PHASE 4 — PROSTHETIC REHABILITATION", "Permanent restoration delivery & long-term care", 4,
			section("Final Cementation & Seating", false,
				essential("Isolation & field prep"),
				essential("Cement selection"),
				advanced("Abutment cleaning"),
				advanced("Controlled cement application"),
				advanced("Seating & alignment"),
				essential("Cement removal"),
				advanced("Ultrasonic margin cleaning"),
				essential("Radiographic cement check"),
				essential("Final occlusion"),
			),
			section("Immediate Post-Delivery Assessment", false,
				advanced("Patient comfort"),
				advanced("Phonetics"),
				advanced("Mastication"),
				advanced("Dynamic occlusion"),
				advanced("Lateral movements"),
				advanced("Sensitivity check"),
				advanced("Esthetic satisfaction"),
			),
			section("Patient Education & Care Instructions", false,
				essential("Home care instruction"),
				advanced("Interdental cleaning"),
				advanced("Chewing precautions"),
				advanced("Written instructions"),
				advanced("Dietary guidance"),
				advanced("Smoking counseling"),
				advanced("Emergency contact"),
				advanced("Healing timeline"),
			),
			section("Follow-Up & Long-Term Monitoring", false,
				essential("1-week follow-up"),
				advanced("3-month evaluation"),
				advanced("Annual radiographs"),
				advanced("Recall interval"),
				advanced("Baseline probing"),
				advanced("Maintenance protocol"),
				advanced("Crown renewal planning"),
				advanced("Document complications"),
			),
		),
	}
}
