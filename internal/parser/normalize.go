package parser

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reOCRNoise   = regexp.MustCompile(`[|\\]+`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans OCR text before it is split into lines.
// Line breaks are kept; only runs of blank lines are collapsed.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reOCRNoise.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
