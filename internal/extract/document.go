// Package extract drives line-item extraction: the orchestrator decides
// TEXT vs IMAGE mode per page, runs the page extractor sequentially across
// the document, isolates per-page failures, and assembles one DocumentResult.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/taanjit/Invoice-extraction-html/constants"
	"github.com/taanjit/Invoice-extraction-html/internal/llm"
	"github.com/taanjit/Invoice-extraction-html/internal/normalize"
)

// PageFailure records one page that could not be processed.
type PageFailure struct {
	Page   int    `json:"page"`
	Reason string `json:"reason"`
}

// DocumentResult is the aggregate for one PDF. Items holds the concatenation
// of all successful pages' items, in page order then within-page order.
type DocumentResult struct {
	DocumentName string                   `json:"document_name"`
	PageCount    int                      `json:"num_pages"`
	Status       constants.DocumentStatus `json:"status"`
	Items        []normalize.LineItem     `json:"items"`
	FailedPages  []PageFailure            `json:"failed_pages"`
	Error        string                   `json:"error,omitempty"`
}

// Renderer is the rendering/text-extraction collaborator. Page numbering is
// 1-based; results are deterministic for a given document.
type Renderer interface {
	PageTexts(ctx context.Context, path string) ([]string, error)
	RenderPage(ctx context.Context, path string, pageNum, dpi int) ([]byte, error)
}

// Config holds the orchestrator's calibration values.
type Config struct {
	DPI          int // rasterization resolution for IMAGE-mode pages
	MinTextChars int // non-whitespace chars above which a page is TEXT mode
}

type Orchestrator struct {
	renderer Renderer
	pages    *PageExtractor
	cfg      Config
	logger   *slog.Logger
}

func NewOrchestrator(renderer Renderer, pages *PageExtractor, cfg Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DPI <= 0 {
		cfg.DPI = constants.DefaultDPI
	}
	if cfg.MinTextChars <= 0 {
		cfg.MinTextChars = constants.DefaultMinTextChars
	}
	return &Orchestrator{renderer: renderer, pages: pages, cfg: cfg, logger: logger}
}

// ExtractDocument produces exactly one DocumentResult for the given path.
// Document-level failures (file missing, zero pages) short-circuit to
// StatusError with no page attempts; page-level failures are recorded in
// FailedPages and never abort later pages.
func (o *Orchestrator) ExtractDocument(ctx context.Context, path string) DocumentResult {
	start := time.Now()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	res := DocumentResult{
		DocumentName: name,
		Items:        []normalize.LineItem{},
		FailedPages:  []PageFailure{},
	}

	texts, err := o.renderer.PageTexts(ctx, path)
	if err != nil {
		o.logger.Error("extract.document.open_failed", "document", name, "error", err)
		res.Status = constants.StatusError
		res.Error = err.Error()
		return res
	}
	if len(texts) == 0 {
		res.Status = constants.StatusError
		res.Error = "document has no pages"
		return res
	}
	res.PageCount = len(texts)

	for i, text := range texts {
		pageNum := i + 1
		req := llm.ExtractRequest{
			PageNumber:   pageNum,
			DocumentName: name,
		}

		textChars := nonWhitespaceLen(text)
		if textChars > o.cfg.MinTextChars {
			req.Mode = constants.ModeText
			req.Text = text
		} else {
			req.Mode = constants.ModeImage
		}
		o.logger.Info("extract.document.page_mode",
			"document", name, "page", pageNum,
			"mode", string(req.Mode), "text_chars", textChars,
			"min_text_chars", o.cfg.MinTextChars)

		if req.Mode == constants.ModeImage {
			png, err := o.renderer.RenderPage(ctx, path, pageNum, o.cfg.DPI)
			if err != nil {
				o.logger.Warn("extract.document.render_failed",
					"document", name, "page", pageNum, "error", err)
				res.FailedPages = append(res.FailedPages, PageFailure{
					Page:   pageNum,
					Reason: fmt.Sprintf("render: %v", err),
				})
				continue
			}
			req.ImagePNG = png
		}

		outcome := o.pages.Extract(ctx, req)
		if outcome.Error != "" {
			res.FailedPages = append(res.FailedPages, PageFailure{
				Page:   pageNum,
				Reason: outcome.Error,
			})
			continue
		}
		res.Items = append(res.Items, outcome.Items...)
	}

	// SUCCESS iff any items. ERROR is reserved for document-level failures
	// above, so failed pages with zero items still report NO_DATA with the
	// failures listed.
	if len(res.Items) > 0 {
		res.Status = constants.StatusSuccess
	} else {
		res.Status = constants.StatusNoData
	}

	o.logger.Info("extract.document.done",
		"document", name,
		"status", string(res.Status),
		"pages", res.PageCount,
		"items", len(res.Items),
		"failed_pages", len(res.FailedPages),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res
}

func nonWhitespaceLen(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
