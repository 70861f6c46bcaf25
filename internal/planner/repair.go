package planner

import (
	"encoding/json"
	"regexp"
	"strings"
)

// The model is asked for strict RFC 8259 JSON but routinely returns fenced
// code blocks, smart quotes, Python literals or trailing commas anyway. The
// helpers below normalize such blobs into something encoding/json accepts.

var (
	// A complete double-quoted JSON string, including escapes.
	stringSpanRe = regexp.MustCompile(`"(?:\\.|[^"\\])*"`)

	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	singleKeyRe     = regexp.MustCompile(`([{,]\s*)'([^']+)'\s*:`)
	singleValueRe   = regexp.MustCompile(`:\s*'([^'\\]*)'`)

	pyTrueRe  = regexp.MustCompile(`\bTrue\b`)
	pyFalseRe = regexp.MustCompile(`\bFalse\b`)
	pyNoneRe  = regexp.MustCompile(`\bNone\b`)

	// Largest brace- or bracket-delimited region, for prose-wrapped output.
	jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}|\[.*\]`)
)

var zeroWidthReplacer = strings.NewReplacer("\u200b", "", "\ufeff", "")

var smartQuoteReplacer = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
)

// ExtractJSON normalizes a raw model response into a parseable JSON string.
// It tries, in order: the quote-normalized text, the fully repaired text, and
// the largest brace-delimited substring of each. Returns false once all four
// attempts fail; the caller treats that as an ordinary parse failure.
func ExtractJSON(raw string) (string, bool) {
	cleaned := zeroWidthReplacer.Replace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "", false
	}

	normalized := smartQuoteReplacer.Replace(cleaned)
	repaired := repairModelJSON(normalized)

	for _, candidate := range []string{normalized, repaired} {
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}
	for _, candidate := range []string{repaired, normalized} {
		if block := jsonBlockRe.FindString(candidate); block != "" && json.Valid([]byte(block)) {
			return block, true
		}
	}
	return "", false
}

// repairModelJSON rewrites Python-flavored pseudo-JSON into the real thing:
// trailing commas dropped, single-quoted keys and values requoted, and bare
// True/False/None lowered. Repairs are applied only outside already
// double-quoted string spans so valid string content is never corrupted.
func repairModelJSON(s string) string {
	return mapOutsideStrings(strings.TrimSpace(s), func(seg string) string {
		seg = trailingCommaRe.ReplaceAllString(seg, "$1")
		seg = singleKeyRe.ReplaceAllString(seg, `${1}"${2}":`)
		seg = singleValueRe.ReplaceAllStringFunc(seg, func(m string) string {
			value := singleValueRe.FindStringSubmatch(m)[1]
			return `:"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
		})
		seg = pyTrueRe.ReplaceAllString(seg, "true")
		seg = pyFalseRe.ReplaceAllString(seg, "false")
		seg = pyNoneRe.ReplaceAllString(seg, "null")
		return seg
	})
}

// mapOutsideStrings applies fix to every region of s that is not inside a
// double-quoted string span.
func mapOutsideStrings(s string, fix func(string) string) string {
	spans := stringSpanRe.FindAllStringIndex(s, -1)
	if len(spans) == 0 {
		return fix(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, span := range spans {
		b.WriteString(fix(s[last:span[0]]))
		b.WriteString(s[span[0]:span[1]])
		last = span[1]
	}
	b.WriteString(fix(s[last:]))
	return b.String()
}
