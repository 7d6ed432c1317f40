package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesConditions(t *testing.T) {
	tests := []struct {
		name           string
		itemConditions map[string]any
		caseConditions map[string]any
		want           bool
	}{
		{
			name:           "no conditions always matches",
			itemConditions: map[string]any{},
			caseConditions: map[string]any{"smoker": true},
			want:           true,
		},
		{
			name:           "nil conditions always match",
			itemConditions: nil,
			caseConditions: nil,
			want:           true,
		},
		{
			name:           "bool condition satisfied",
			itemConditions: map[string]any{"estheticZone": true},
			caseConditions: map[string]any{"estheticZone": true},
			want:           true,
		},
		{
			name:           "absent bool defaults to false",
			itemConditions: map[string]any{"estheticZone": true},
			caseConditions: map[string]any{},
			want:           false,
		},
		{
			name:           "expected false matches absent value",
			itemConditions: map[string]any{"smoker": false},
			caseConditions: map[string]any{},
			want:           true,
		},
		{
			name:           "expected false rejects present true",
			itemConditions: map[string]any{"smoker": false},
			caseConditions: map[string]any{"smoker": true},
			want:           false,
		},
		{
			name:           "string comparison is case insensitive",
			itemConditions: map[string]any{"prostheticType": "Overdenture"},
			caseConditions: map[string]any{"prostheticType": "overdenture"},
			want:           true,
		},
		{
			name:           "string mismatch fails",
			itemConditions: map[string]any{"prostheticType": "overdenture"},
			caseConditions: map[string]any{"prostheticType": "single_crown"},
			want:           false,
		},
		{
			name:           "string condition fails when value absent",
			itemConditions: map[string]any{"prostheticType": "overdenture"},
			caseConditions: map[string]any{},
			want:           false,
		},
		{
			name:           "list subset matches",
			itemConditions: map[string]any{"modifiers": []any{"a"}},
			caseConditions: map[string]any{"modifiers": []string{"a", "b"}},
			want:           true,
		},
		{
			name:           "list superset fails",
			itemConditions: map[string]any{"modifiers": []any{"a", "c"}},
			caseConditions: map[string]any{"modifiers": []string{"a", "b"}},
			want:           false,
		},
		{
			name:           "list expectation against absent value fails",
			itemConditions: map[string]any{"modifiers": []any{"a"}},
			caseConditions: map[string]any{},
			want:           false,
		},
		{
			name:           "multiple conditions are ANDed",
			itemConditions: map[string]any{"estheticZone": true, "smoker": true},
			caseConditions: map[string]any{"estheticZone": true},
			want:           false,
		},
		{
			name:           "all conditions satisfied",
			itemConditions: map[string]any{"estheticZone": true, "prostheticType": "bridge_abutment"},
			caseConditions: map[string]any{"estheticZone": true, "prostheticType": "bridge_abutment", "smoker": true},
			want:           true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesConditions(tt.itemConditions, tt.caseConditions))
		})
	}
}

func TestMatchesConditions_HandlesJSONDecodedLists(t *testing.T) {
	// Template conditions arrive as []any after JSON decoding.
	item := map[string]any{"modifiers": []any{"bruxism"}}
	caseConditions := map[string]any{"modifiers": []any{"bruxism", "smoker"}}

	assert.True(t, MatchesConditions(item, caseConditions))
}
