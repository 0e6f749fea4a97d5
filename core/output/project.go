// Project layout: one directory per imported article, holding the
// source snapshot, the rendered Markdown, reading segments, and
// downloaded assets.
package output

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/saotomryo/article-to-video-pipeline/core"
)

// Project is the persisted project.json state.
type Project struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// projectDirs are created for every new project.
var projectDirs = []string{
	"source",
	filepath.Join("script", "segments"),
	filepath.Join("assets", "images"),
}

// InitProject creates the project skeleton for slug under rootDir and
// returns the project directory. Existing projects are left intact;
// project.json is only written when absent.
func InitProject(rootDir, slug string) (string, error) {
	dir := filepath.Join(rootDir, slug)
	for _, sub := range projectDirs {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return "", fmt.Errorf("creating project directory: %w", err)
		}
	}

	jsonPath := filepath.Join(dir, "project.json")
	if _, err := os.Stat(jsonPath); os.IsNotExist(err) {
		if err := writeProject(jsonPath, Project{Slug: slug, Title: slug}); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// UpdateTitle sets the project title when it is still the default
// (empty or equal to the slug). A customized title is never clobbered.
func UpdateTitle(projectDir, title, slug string) error {
	jsonPath := filepath.Join(projectDir, "project.json")
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading project.json: %w", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		// Unreadable state is left alone rather than overwritten.
		return nil
	}
	if p.Title != "" && p.Title != slug {
		return nil
	}

	p.Title = title
	return writeProject(jsonPath, p)
}

func writeProject(path string, p Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling project.json: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing project.json: %w", err)
	}
	return nil
}

// WriteSegments stores one text file per reading segment plus a
// segments.json index under the project's script directory.
func WriteSegments(projectDir string, segments []core.Segment) (string, error) {
	segDir := filepath.Join(projectDir, "script", "segments")
	if err := os.MkdirAll(segDir, 0755); err != nil {
		return "", fmt.Errorf("creating segments directory: %w", err)
	}

	type indexEntry struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		TextPath string `json:"text_path"`
	}
	index := make([]indexEntry, 0, len(segments))

	for _, seg := range segments {
		txtPath := filepath.Join(segDir, seg.ID+".txt")
		if err := os.WriteFile(txtPath, []byte(seg.Text+"\n"), 0644); err != nil {
			return "", fmt.Errorf("writing segment %s: %w", seg.ID, err)
		}
		index = append(index, indexEntry{
			ID:       seg.ID,
			Title:    seg.Title,
			TextPath: "script/segments/" + seg.ID + ".txt",
		})
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling segments.json: %w", err)
	}
	indexPath := filepath.Join(projectDir, "script", "segments.json")
	if err := os.WriteFile(indexPath, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("writing segments.json: %w", err)
	}
	return indexPath, nil
}

// slugUnsafeRun matches characters replaced when deriving a slug;
// kana and kanji are kept.
var slugUnsafeRun = regexp.MustCompile(`[^0-9a-zA-Zぁ-んァ-ヶ一-龠ー_-]+`)

// SuggestSlug derives a project slug from the article URL, falling
// back to the host, then the title, then "article".
func SuggestSlug(rawURL, title string) string {
	base := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		base = pathStem(parsed.Path)
		if base == "" {
			base = parsed.Host
		}
	}
	if base == "" {
		base = title
	}
	if base == "" {
		base = "article"
	}

	base = strings.ToLower(strings.TrimSpace(base))
	base = strings.Trim(slugUnsafeRun.ReplaceAllString(base, "_"), "_")
	if base == "" {
		return "article"
	}
	return base
}

// pathStem returns the last path element without its extension.
func pathStem(p string) string {
	base := path.Base(p)
	if base == "/" || base == "." {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
