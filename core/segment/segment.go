// Package segment splits a rendered article into reading segments,
// one per heading-delimited section, with Markdown formatting
// stripped from the text. Segments feed the narration stage
// downstream; this package itself only produces text.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/saotomryo/article-to-video-pipeline/core"
)

var (
	headingRegex     = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	frontmatterDelim = regexp.MustCompile(`^---\s*$`)

	codeSpanRegex   = regexp.MustCompile("`([^`]+)`")
	boldRegex       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRegex     = regexp.MustCompile(`\*([^*]+)\*`)
	imageRegex      = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkRegex       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	quotePrefix     = regexp.MustCompile(`(?m)^>\s?`)
	spaceRun        = regexp.MustCompile(`[ \t]+`)
	blankLineRun    = regexp.MustCompile(`\n{3,}`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	slugUnwantedRun = regexp.MustCompile(`[^0-9a-zA-Z_ぁ-んァ-ヶ一-龠ー]+`)
)

// Split divides the Markdown document into reading segments. Body
// text before the first heading becomes an "intro" segment; empty
// sections are skipped. Segment ids are stable: a 1-based ordinal
// plus a slug of the section title.
func Split(markdown string) []core.Segment {
	body := stripFrontmatter(markdown)

	var (
		segments []core.Segment
		buf      []string
		title    = "intro"
	)
	flush := func() {
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = nil
		if text == "" {
			return
		}
		segments = append(segments, core.Segment{
			Title: title,
			Text:  strings.TrimSpace(stripMarkdown(text)),
		})
	}

	for _, line := range strings.Split(body, "\n") {
		if m := headingRegex.FindStringSubmatch(line); m != nil {
			flush()
			title = strings.TrimSpace(m[2])
			continue
		}
		buf = append(buf, line)
	}
	flush()

	out := make([]core.Segment, 0, len(segments))
	for i, seg := range segments {
		slug := slugify(seg.Title)
		if slug == "" {
			slug = "section"
		}
		out = append(out, core.Segment{
			ID:    fmt.Sprintf("%04d_%s", i+1, slug),
			Title: seg.Title,
			Text:  normalizeText(seg.Text),
		})
	}
	return out
}

// stripFrontmatter drops the leading --- delimited block, if any.
func stripFrontmatter(markdown string) string {
	lines := strings.Split(markdown, "\n")
	if len(lines) == 0 || !frontmatterDelim.MatchString(lines[0]) {
		return markdown
	}
	for i := 1; i < len(lines); i++ {
		if frontmatterDelim.MatchString(lines[i]) {
			return strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n")
		}
	}
	return markdown
}

// stripMarkdown removes inline formatting, image/link syntax and
// blockquote prefixes, keeping only readable text.
func stripMarkdown(text string) string {
	text = codeSpanRegex.ReplaceAllString(text, "$1")
	text = boldRegex.ReplaceAllString(text, "$1")
	text = italicRegex.ReplaceAllString(text, "$1")
	text = imageRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	text = quotePrefix.ReplaceAllString(text, "")
	return text
}

func normalizeText(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	s = blankLineRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// slugify reduces a section title to an id-safe fragment, keeping
// kana and kanji, capped at 40 runes.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = slugUnwantedRun.ReplaceAllString(s, "")
	runes := []rune(s)
	if len(runes) > 40 {
		runes = runes[:40]
	}
	return strings.Trim(string(runes), "_")
}
