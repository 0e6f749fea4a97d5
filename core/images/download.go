// Downloader: fetches the collected image URLs into the project's
// assets directory with collision-safe filenames and writes a
// manifest of what was stored.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/saotomryo/article-to-video-pipeline/core"
)

const (
	downloadTimeout = 30 * time.Second
	// Small delay between requests to stay polite toward image hosts.
	downloadInterval = 100 * time.Millisecond

	downloadUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"
)

// Downloader stores remote images on disk.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a Downloader with a sensible timeout.
func NewDownloader() *Downloader {
	return &Downloader{
		client: &http.Client{Timeout: downloadTimeout},
	}
}

// FetchAll downloads each URL into outDir. Returned paths are
// relative to rootDir (the project directory), both in the manifest
// entries and in the url→path mapping used for Markdown rewriting.
func (d *Downloader) FetchAll(ctx context.Context, urls []string, rootDir, outDir string) ([]core.DownloadedImage, map[string]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating image directory: %w", err)
	}

	var downloaded []core.DownloadedImage
	mapping := make(map[string]string, len(urls))

	for i, u := range urls {
		if i > 0 {
			time.Sleep(downloadInterval)
		}

		data, err := d.fetch(ctx, u)
		if err != nil {
			return downloaded, mapping, fmt.Errorf("downloading %s: %w", u, err)
		}

		local, err := suggestPath(outDir, u)
		if err != nil {
			return downloaded, mapping, err
		}
		if err := os.WriteFile(local, data, 0644); err != nil {
			return downloaded, mapping, fmt.Errorf("writing %s: %w", local, err)
		}

		rel, err := filepath.Rel(rootDir, local)
		if err != nil {
			rel = local
		}
		rel = filepath.ToSlash(rel)

		downloaded = append(downloaded, core.DownloadedImage{URL: u, Path: rel, Bytes: len(data)})
		mapping[u] = rel
	}

	return downloaded, mapping, nil
}

func (d *Downloader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", downloadUserAgent)
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// manifest is the images.json layout.
type manifest struct {
	DownloadedAt string                 `json:"downloaded_at"`
	Items        []core.DownloadedImage `json:"items"`
}

// WriteManifest records the downloaded images as images.json in outDir.
func WriteManifest(outDir string, items []core.DownloadedImage, downloadedAt time.Time) error {
	data, err := json.MarshalIndent(manifest{
		DownloadedAt: downloadedAt.Format(core.TimestampLayout),
		Items:        items,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	manifestPath := filepath.Join(outDir, "images.json")
	if err := os.WriteFile(manifestPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", manifestPath, err)
	}
	return nil
}

// unsafeFilenameRun matches characters replaced in stored filenames;
// kana and kanji survive since article assets frequently carry
// Japanese names.
var unsafeFilenameRun = regexp.MustCompile(`[^0-9A-Za-zぁ-んァ-ヶ一-龠ー_-]+`)

// suggestPath picks a filename for the URL under outDir, numbering
// collisions (name_2.png, name_3.png, ...).
func suggestPath(outDir, rawURL string) (string, error) {
	name := "image"
	suffix := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		if base := path.Base(parsed.Path); base != "/" && base != "." {
			name = base
		}
		suffix = strings.ToLower(path.Ext(name))
		name = strings.TrimSuffix(name, path.Ext(name))
	}
	if suffix == "" {
		suffix = ".img"
	}

	stem := strings.Trim(unsafeFilenameRun.ReplaceAllString(name, "_"), "_")
	if stem == "" {
		stem = "image"
	}

	candidate := filepath.Join(outDir, stem+suffix)
	if !exists(candidate) {
		return candidate, nil
	}
	for i := 2; i < 1000; i++ {
		candidate = filepath.Join(outDir, fmt.Sprintf("%s_%d%s", stem, i, suffix))
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("too many duplicate filenames for %s", rawURL)
}
