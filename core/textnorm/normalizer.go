// Package textnorm implements the text normalization rules shared by
// every text-producing stage of the pipeline: entity decoding,
// whitespace collapsing, and punctuation spacing for both ASCII and
// Japanese clause marks.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)
	asciiPunct    = regexp.MustCompile(`[\s\p{Zs}]+([,.;:!?])`)
	cjkPunct      = regexp.MustCompile(`[\s\p{Zs}]+([。、！？])`)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
)

// Clean decodes HTML entities, collapses any run of whitespace to a
// single ASCII space, trims the result, and removes whitespace that
// precedes a clause or sentence punctuation mark.
func Clean(s string) string {
	s = html.UnescapeString(s)
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	s = asciiPunct.ReplaceAllString(s, "$1")
	s = cjkPunct.ReplaceAllString(s, "$1")
	return s
}

// CollapseBlankLines reduces runs of three or more consecutive
// newlines to a single blank line, trims surrounding whitespace, and
// guarantees exactly one trailing newline. Returns "\n" for blank
// input.
func CollapseBlankLines(s string) string {
	return strings.TrimSpace(blankLineRun.ReplaceAllString(s, "\n\n")) + "\n"
}
