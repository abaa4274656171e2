package traits

import "strings"

// safeValueChars lists the punctuation allowed in partition values on top
// of letters and digits. Everything else is rejected before a value can
// reach query text.
const safeValueChars = ":#_=?& /.-"

// IsSafeValue reports whether a partition value discovered in remote data
// can be interpolated into a query. Only letters, digits and the characters
// of safeValueChars pass. Values failing the check must be dropped by the
// caller, they never constitute a target failure.
func IsSafeValue(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		if strings.ContainsRune(safeValueChars, r) {
			continue
		}
		return false
	}
	return true
}
