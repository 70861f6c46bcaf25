package planner

import "strings"

// LikelyTruncated reports whether a response body looks cut off and is not
// worth handing to the parser. Quoted string contents are masked out first so
// braces inside string values don't skew the balance check. A finish reason
// of "length" is handled separately by the orchestrator as an unconditional
// truncation signal.
func LikelyTruncated(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	last := trimmed[len(trimmed)-1]
	if last != '}' && last != ']' {
		return true
	}
	masked := stringSpanRe.ReplaceAllString(trimmed, "")
	if strings.Count(masked, "{") != strings.Count(masked, "}") {
		return true
	}
	if strings.Count(masked, "[") != strings.Count(masked, "]") {
		return true
	}
	return false
}
