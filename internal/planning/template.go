package planning

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
)

// LoadMasterChecklist reads the authoritative checklist template from disk.
// The template is loaded once at process start and treated as read-only for
// the process lifetime; callers must not mutate the returned value.
//
// A load failure is surfaced to the caller so it can fall back to the
// legacy unconditional checklist; the fallback is a first-class contract,
// not an error path.
func LoadMasterChecklist(path string) (*entities.MasterChecklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read master checklist from %s: %w", path, err)
	}

	var template entities.MasterChecklist
	if err := json.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("failed to parse master checklist from %s: %w", path, err)
	}

	if template.Version == "" {
		template.Version = "1.0"
	}

	return &template, nil
}
