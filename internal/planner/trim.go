package planner

import "strings"

const (
	maxTrimSentences = 3
	maxTrimChars     = 260
	minCutIndex      = 40
)

// Trim bounds generated text to at most three sentences and 260 characters. When the
// text has to be cut, it backs off to the last sentence terminator past index 40 so the
// reply does not end mid-sentence. Trim is total and idempotent.
func Trim(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if collapsed == "" {
		return ""
	}

	sentences := splitSentences(collapsed)
	if len(sentences) > maxTrimSentences {
		sentences = sentences[:maxTrimSentences]
	}
	out := []rune(strings.Join(sentences, " "))

	if len(out) > maxTrimChars {
		out = out[:maxTrimChars]
		if cut := lastTerminator(out); cut > minCutIndex {
			out = out[:cut+1]
		}
	}

	return strings.TrimSpace(string(out))
}

// splitSentences splits after '.', '!' or '?' when followed by a space. Input must
// already have single-space separators.
func splitSentences(s string) []string {
	var (
		parts []string
		start int
		prev  rune
	)
	for i, r := range s {
		if r == ' ' && isTerminator(prev) {
			parts = append(parts, s[start:i])
			start = i + 1
		}
		prev = r
	}
	return append(parts, s[start:])
}

func lastTerminator(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if isTerminator(rs[i]) {
			return i
		}
	}
	return -1
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
