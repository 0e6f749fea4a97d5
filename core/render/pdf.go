// PDF output renderer: converts the assembled Markdown document into
// a styled PDF with gofpdf. Handles headings (variable font sizes),
// paragraphs, fenced code blocks, blockquotes, and lists. Images are
// not embedded; the image downloader handles article assets
// separately.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/saotomryo/article-to-video-pipeline/core"
)

// PDFRenderer renders the article document as a PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

var numberedItemRegex = regexp.MustCompile(`^\d+\.\s`)

// Render converts the Markdown document into PDF bytes. The
// frontmatter block is dropped; its fields come in via meta.
func (r *PDFRenderer) Render(markdown string, meta core.ArticleMeta) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, meta.Title, "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, "Source: "+meta.SourceURL, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	body := StripFrontmatter(markdown)
	// The assembler's H1 duplicates the title already printed above.
	if strings.HasPrefix(body, "# ") {
		if i := strings.IndexByte(body, '\n'); i >= 0 {
			body = strings.TrimLeft(body[i+1:], "\n")
		} else {
			body = ""
		}
	}

	inCodeBlock := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}
		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, line, "", "L", true)
			continue
		}

		if trimmed == "" {
			pdf.Ln(3)
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			level := 0
			for _, ch := range trimmed {
				if ch != '#' {
					break
				}
				level++
			}
			writeHeading(pdf, strings.TrimSpace(strings.TrimLeft(trimmed, "# ")), level)
			continue
		}

		if strings.HasPrefix(trimmed, "> ") {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetTextColor(80, 80, 80)
			pdf.MultiCell(0, 5, stripInlineMarkdown(strings.TrimPrefix(trimmed, "> ")), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
			continue
		}

		if strings.HasPrefix(trimmed, "- ") {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, "• "+stripInlineMarkdown(trimmed[2:]), "", "L", false)
			continue
		}
		if numberedItemRegex.MatchString(trimmed) {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, stripInlineMarkdown(trimmed), "", "L", false)
			continue
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, stripInlineMarkdown(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// writeHeading sets the font size from the heading level and writes it.
func writeHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, stripInlineMarkdown(text), "", "L", false)
	pdf.Ln(2)
}

var italicRegex = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)

// stripInlineMarkdown removes inline Markdown formatting for PDF text.
func stripInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = italicRegex.ReplaceAllString(text, " $1 ")
	text = codeSpanRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
