package rust

import "strings"

// toSnakeCase converts a mixed/Pascal-case method name to snake_case.
//
// A separator is inserted only at a transition from a non-uppercase
// character into an uppercase one, so a run of consecutive uppercase letters
// stays glued together: "GetCount" -> "get_count", "ABCdef" -> "abcdef",
// "GetWebView2Settings" -> "get_web_view2_settings". Existing underscores
// pass through and reset the run. Stable on already-converted input.
func toSnakeCase(s string) string {
	var b strings.Builder
	inLowerRun := false

	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			if inLowerRun {
				inLowerRun = false
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		case r == '_':
			inLowerRun = false
			b.WriteRune(r)
		default:
			inLowerRun = true
			b.WriteRune(r)
		}
	}

	return b.String()
}
