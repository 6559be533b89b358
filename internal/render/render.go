// Package render is the PDF collaborator: it turns a document into per-page
// plain text and, on request, a page rendered as a PNG at a given resolution.
// Page numbering is 1-based throughout.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/taanjit/Invoice-extraction-html/constants"
	"github.com/taanjit/Invoice-extraction-html/internal/common"
)

// Config for the renderer binaries.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
}

// Renderer runs the poppler tools behind a Runner so tests can stub them.
// When pdftotext is not installed, text extraction falls back to the pure-Go
// text layer reader (pdftext.go).
type Renderer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRenderer(cfg Config, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	return &Renderer{cfg: cfg, runner: execRunner{log: logger}, logger: logger}
}

// PageTexts returns the plain text of every page, in page order. The result
// is deterministic for a given document. A missing or unreadable file is a
// document-level error (common.ErrDocumentOpen).
func (r *Renderer) PageTexts(ctx context.Context, path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, common.NewAppError("DOCUMENT_ERROR", fmt.Sprintf("cannot open %s", path), common.ErrDocumentOpen)
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := r.runner.Run(ctx, r.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		if isBinaryMissing(err) {
			r.logger.Warn("pdftotext not available, using embedded text layer", "path", path)
			return readTextLayer(path)
		}
		return nil, fmt.Errorf("pdftotext: %w (%s)", err, strings.TrimSpace(string(errb)))
	}

	// A form-feed \f is used as page separator by default.
	pages := strings.Split(string(out), "\f")
	// pdftotext emits a trailing \f after the last page
	if n := len(pages); n > 1 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	return pages, nil
}

// RenderPage rasterizes a single page to PNG bytes at the given DPI.
func (r *Renderer) RenderPage(ctx context.Context, path string, pageNum, dpi int) ([]byte, error) {
	if pageNum < 1 {
		return nil, fmt.Errorf("page number must be 1-based, got %d", pageNum)
	}
	if dpi <= 0 {
		dpi = constants.DefaultDPI
	}

	tmpDir, err := os.MkdirTemp("", "inv-pages-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			r.logger.Warn("failed to remove temp dir", "dir", tmpDir, "error", err)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png -f <n> -l <n> <in.pdf> <tmp/page>
	pn := fmt.Sprintf("%d", pageNum)
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", dpi), "-png", "-f", pn, "-l", pn, path, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, strings.TrimSpace(string(errb)))
	}

	// pdftoppm names output page-<n>.png with zero padding that depends on
	// the page count, so glob rather than guess.
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no image for page %d", pageNum)
	}
	png, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, common.WrapError(err, "read rendered page")
	}
	return png, nil
}

func isBinaryMissing(err error) bool {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return errors.Is(execErr.Err, exec.ErrNotFound)
	}
	return false
}
