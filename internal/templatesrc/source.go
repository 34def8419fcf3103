// Package templatesrc materializes the scaffold template on local disk,
// either from an existing checkout or by downloading and extracting the
// published archive. Callers receive a directory that is ready to copy from
// and a cleanup function that disposes of any temporary state.
package templatesrc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/mcpforge/mcp-scaffold/internal/logger"
)

// Markers that distinguish a scaffold checkout from an arbitrary directory:
// the service manifest and the tools package the installer rewrites.
var templateMarkers = []string{
	"service.yaml",
	filepath.Join("app", "tools"),
}

// Source yields a directory holding the template tree. The returned cleanup
// function is never nil, is safe to call more than once, and removes
// whatever Fetch created on disk.
type Source interface {
	Fetch(ctx context.Context) (dir string, cleanup func(), err error)
}

// Local serves the template straight from an existing checkout. Nothing is
// downloaded and nothing needs cleaning up.
type Local struct {
	Dir string
}

// Fetch validates that Dir exists and actually looks like a scaffold
// checkout before handing it back.
func (l Local) Fetch(ctx context.Context) (string, func(), error) {
	noop := func() {}

	info, err := os.Stat(l.Dir)
	if err != nil {
		return "", noop, fmt.Errorf("template directory %s: %w", l.Dir, err)
	}
	if !info.IsDir() {
		return "", noop, fmt.Errorf("template path %s is not a directory", l.Dir)
	}
	for _, marker := range templateMarkers {
		if _, err := os.Stat(filepath.Join(l.Dir, marker)); err != nil {
			return "", noop, fmt.Errorf("%s does not look like a scaffold checkout: missing %s", l.Dir, marker)
		}
	}

	logger.Debug("[DEBUG] using local template directory %s\n", l.Dir)
	return l.Dir, noop, nil
}

// Remote downloads the template archive into a scoped temporary directory,
// extracts it, and locates the single top-level directory carrying the
// expected name prefix (GitHub expands a branch archive to e.g.
// "mcp-scaffold-main").
type Remote struct {
	URL     string
	Prefix  string
	Timeout time.Duration
}

// Fetch performs the download and extraction. On any failure the temporary
// directory is removed before returning, so a failed fetch leaves nothing
// behind.
func (r Remote) Fetch(ctx context.Context) (string, func(), error) {
	noop := func() {}

	tempDir, err := os.MkdirTemp("", "mcp-scaffold-*")
	if err != nil {
		return "", noop, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(tempDir) }

	// Keep the URL's file name so the extractor can route on its suffix
	// when a non-default archive URL is configured.
	archivePath := filepath.Join(tempDir, path.Base(r.URL))
	logger.Info("[INFO] Downloading template from %s\n", r.URL)
	if err := download(ctx, r.URL, archivePath, r.Timeout); err != nil {
		cleanup()
		return "", noop, err
	}

	logger.Info("[INFO] Extracting template archive...\n")
	if err := ExtractArchive(archivePath, tempDir); err != nil {
		cleanup()
		return "", noop, fmt.Errorf("failed to extract template archive: %w", err)
	}

	root, err := FindRoot(tempDir, r.Prefix)
	if err != nil {
		cleanup()
		return "", noop, err
	}

	logger.Debug("[DEBUG] extracted template root: %s\n", root)
	return root, cleanup, nil
}

// FindRoot scans dir for top-level directories whose name starts with
// prefix. Exactly one must exist: zero means the archive was not a scaffold
// archive, more than one means the extraction directory was reused and the
// choice would be ambiguous.
func FindRoot(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read extraction directory: %w", err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			matches = append(matches, entry.Name())
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("could not find an extracted directory starting with %q", prefix)
	case 1:
		return filepath.Join(dir, matches[0]), nil
	default:
		return "", fmt.Errorf("found multiple extracted directories starting with %q: %s", prefix, strings.Join(matches, ", "))
	}
}

// download fetches url into destPath, failing on any non-200 response. The
// timeout caps the whole transfer, not just the dial.
func download(ctx context.Context, url, destPath string, timeout time.Duration) error {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed for %s: HTTP status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close destination file: %v\n", cerr)
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write response to file: %w", err)
	}

	logger.Debug("[DEBUG] downloaded template archive to %s\n", destPath)
	return nil
}
