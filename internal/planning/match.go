package planning

import "strings"

// MatchesConditions reports whether every condition an item declares is
// satisfied by the case's derived condition map. An item with no declared
// conditions always matches.
//
// Matching is type dependent:
//   - bool: exact equality, with absent case values defaulting to false
//   - string: case-insensitive equality
//   - list: every expected element must appear in the case's list value
//   - anything else: exact equality
//
// All declared conditions are ANDed; the first failed condition decides.
// This is the single matching routine for the whole system. Filtering and
// any future condition types must go through it so the semantics stay in
// one place.
func MatchesConditions(itemConditions, caseConditions map[string]any) bool {
	for key, expected := range itemConditions {
		caseValue, present := caseConditions[key]

		switch exp := expected.(type) {
		case bool:
			// The condition map is sparse; absence means false.
			actual, _ := caseValue.(bool)
			if actual != exp {
				return false
			}
		case string:
			actual, ok := caseValue.(string)
			if !ok || !strings.EqualFold(actual, exp) {
				return false
			}
		case []any:
			if !containsAll(asStringList(caseValue), anyListToStrings(exp)) {
				return false
			}
		case []string:
			if !containsAll(asStringList(caseValue), exp) {
				return false
			}
		default:
			if !present || caseValue != expected {
				return false
			}
		}
	}
	return true
}

// asStringList normalizes a case condition value to a string list, or nil
// if it is not list shaped. Template JSON decodes lists as []any while
// derived conditions may carry []string; both are accepted.
func asStringList(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		return anyListToStrings(v)
	default:
		return nil
	}
}

func anyListToStrings(list []any) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// containsAll reports whether every expected element appears in the case
// list. A nil case list fails any non-empty expectation.
func containsAll(caseList, expected []string) bool {
	if caseList == nil {
		return false
	}
	for _, want := range expected {
		if !containsString(caseList, want) {
			return false
		}
	}
	return true
}
