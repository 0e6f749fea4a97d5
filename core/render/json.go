// JSON output renderer: parses the assembled Markdown back into
// structural metadata (headings, links, sections, counts) without
// inferring any business-specific fields.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/saotomryo/article-to-video-pipeline/core"
)

// JSONRenderer produces structured JSON from the assembled document.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the Markdown document and metadata into JSON.
func (r *JSONRenderer) Render(markdown string, meta core.ArticleMeta) ([]byte, error) {
	body := StripFrontmatter(markdown)

	headings := extractHeadings(body)
	article := core.ArticleJSON{
		Metadata: meta,
		Content: core.ArticleContent{
			Text:     stripMarkdown(body),
			Markdown: markdown,
			Sections: buildSections(body, headings),
		},
		Structure: core.ArticleStructure{
			Headings:   headings,
			Links:      extractLinks(body),
			CodeBlocks: strings.Count(body, "```") / 2,
			Lists:      len(listItemRegex.FindAllString(body, -1)),
		},
	}

	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// StripFrontmatter removes the leading --- delimited metadata block,
// returning the document body. Input without frontmatter is returned
// unchanged.
func StripFrontmatter(markdown string) string {
	lines := strings.Split(markdown, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return markdown
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n")
		}
	}
	return markdown
}

// --- Markdown parsing helpers ---

var (
	headingRegex  = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	linkRegex     = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	listItemRegex = regexp.MustCompile(`(?m)^\s*-\s|^\s*\d+\.\s`)
	emphasisRegex = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
	codeSpanRegex = regexp.MustCompile("`([^`]+)`")
)

func extractHeadings(md string) []core.Heading {
	matches := headingRegex.FindAllStringSubmatch(md, -1)
	headings := make([]core.Heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, core.Heading{
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
		})
	}
	return headings
}

func extractLinks(md string) []core.Link {
	matches := linkRegex.FindAllStringSubmatch(md, -1)
	links := make([]core.Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, core.Link{Text: m[1], Href: m[2]})
	}
	return links
}

// buildSections splits the body into heading-delimited sections.
// Text before the first heading belongs to no section.
func buildSections(md string, headings []core.Heading) []core.Section {
	if len(headings) == 0 {
		return nil
	}

	var (
		sections     []core.Section
		current      *core.Section
		sectionLines []string
		headingIdx   int
	)
	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(strings.Join(sectionLines, "\n"))
			sections = append(sections, *current)
		}
		sectionLines = nil
	}

	for _, line := range strings.Split(md, "\n") {
		if headingRegex.MatchString(line) && headingIdx < len(headings) {
			flush()
			current = &core.Section{
				Heading: headings[headingIdx].Text,
				Level:   headings[headingIdx].Level,
			}
			headingIdx++
			continue
		}
		if current != nil {
			sectionLines = append(sectionLines, line)
		}
	}
	flush()

	return sections
}

// stripMarkdown removes common Markdown formatting to produce plain text.
func stripMarkdown(md string) string {
	text := headingRegex.ReplaceAllString(md, "$2")
	text = emphasisRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "```", "")
	text = codeSpanRegex.ReplaceAllString(text, "$1")
	text = regexp.MustCompile(`\n{3,}`).ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
