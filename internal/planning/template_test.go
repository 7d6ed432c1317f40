package planning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMasterChecklist_ShippedTemplate(t *testing.T) {
	template, err := LoadMasterChecklist(filepath.Join("..", "..", "config", "implant_master_checklist.v1.json"))
	require.NoError(t, err)

	assert.Equal(t, "1.0", template.Version)
	require.Len(t, template.Phases, 4)

	for i, phase := range template.Phases {
		assert.Equal(t, i+1, phase.Order)
		assert.NotEmpty(t, phase.ID)
		assert.NotEmpty(t, phase.Sections)
	}

	// Every auto-completion mapping must point at a real template item,
	// otherwise the whitelist silently stops doing anything.
	itemIDs := map[string]bool{}
	for _, phase := range template.Phases {
		for _, section := range phase.Sections {
			for _, item := range section.Items {
				assert.False(t, itemIDs[item.ID], "duplicate item id %q", item.ID)
				itemIDs[item.ID] = true
			}
		}
	}
	for mappedID := range autoCompleteMappings {
		assert.True(t, itemIDs[mappedID], "auto-complete mapping %q has no template item", mappedID)
	}
}

func TestLoadMasterChecklist_MissingFile(t *testing.T) {
	template, err := LoadMasterChecklist(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
	assert.Nil(t, template)
}

func TestLoadMasterChecklist_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	template, err := LoadMasterChecklist(path)

	assert.Error(t, err)
	assert.Nil(t, template)
}

func TestLoadMasterChecklist_DefaultsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "versionless.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"phases":[]}`), 0o644))

	template, err := LoadMasterChecklist(path)
	require.NoError(t, err)

	assert.Equal(t, "1.0", template.Version)
}
