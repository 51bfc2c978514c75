package budget

import (
	"regexp"
	"strings"
)

var (
	reDotRuns      = regexp.MustCompile(`\.{3,}`)
	reBangRuns     = regexp.MustCompile(`!{2,}`)
	reQuestionRuns = regexp.MustCompile(`\?{2,}`)
	reHorizontalWS = regexp.MustCompile(`[^\S\n]+`)
	reEdgeSpaceNL  = regexp.MustCompile(` *\n *`)
	reNewlineRuns  = regexp.MustCompile(`\n{2,}`)
)

// CleanText normalizes whitespace and punctuation noise before token
// counting: horizontal whitespace runs collapse to one space, blank lines
// collapse away, ellipsis runs become a single dot, and repeated !/? marks
// become a single mark. The result is trimmed.
//
// CleanText is idempotent: CleanText(CleanText(s)) == CleanText(s).
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = reDotRuns.ReplaceAllString(s, ".")
	s = reBangRuns.ReplaceAllString(s, "!")
	s = reQuestionRuns.ReplaceAllString(s, "?")
	s = reHorizontalWS.ReplaceAllString(s, " ")
	s = reEdgeSpaceNL.ReplaceAllString(s, "\n")
	s = reNewlineRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
