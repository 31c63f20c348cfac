package llm

import (
	"regexp"
	"strings"
)

var (
	wordCountRe = regexp.MustCompile(`\(Word count:.*?\)`)
	wordTagRe   = regexp.MustCompile(`\(\d+\s*words?\)`)
)

// stepEndings that indicate a truncated sentence rather than a complete
// instruction.
var badStepEndings = []string{"with", "using", "to", "for", "and", "or"}

// SanitizeText strips markdown emphasis, quote characters, and word-count
// annotations that models sometimes append despite instructions.
func SanitizeText(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "'", "")
	s = wordCountRe.ReplaceAllString(s, "")
	s = wordTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// SanitizeCareSteps splits a response into lines and keeps only those that
// read as complete, substantial instructions. At most six steps are kept.
func SanitizeCareSteps(raw string) []string {
	var steps []string
	for _, line := range strings.Split(SanitizeText(raw), "\n") {
		step := strings.TrimLeft(strings.TrimSpace(line), "0123456789.- ")
		step = strings.TrimSpace(step)
		if len(step) <= 20 {
			continue
		}
		if hasBadEnding(step) {
			continue
		}
		steps = append(steps, step)
		if len(steps) == 6 {
			break
		}
	}
	return steps
}

func hasBadEnding(step string) bool {
	words := strings.Fields(strings.ToLower(strings.TrimRight(step, ".")))
	if len(words) == 0 {
		return true
	}
	last := words[len(words)-1]
	for _, ending := range badStepEndings {
		if last == ending {
			return true
		}
	}
	return false
}
