package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/taanjit/Invoice-extraction-html/constants"
	"github.com/taanjit/Invoice-extraction-html/internal/llm"
	"github.com/taanjit/Invoice-extraction-html/internal/normalize"
)

// PageOutcome is the result of processing one page. Error is empty on
// success; a set Error always comes with empty Items.
type PageOutcome struct {
	PageNumber int                      `json:"page_number"`
	ModeUsed   constants.ExtractionMode `json:"mode_used"`
	Items      []normalize.LineItem     `json:"items"`
	Error      string                   `json:"error,omitempty"`
}

// PageExtractor submits one page to the inference collaborator and hands the
// reply to the normalizer. Any transport failure or unparseable top-level
// reply becomes a PageOutcome with Error set; nothing escapes to abort the
// document.
type PageExtractor struct {
	Extractor llm.ItemExtractor
	Logger    *slog.Logger
}

func NewPageExtractor(extractor llm.ItemExtractor, logger *slog.Logger) *PageExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageExtractor{Extractor: extractor, Logger: logger}
}

func (p *PageExtractor) Extract(ctx context.Context, req llm.ExtractRequest) PageOutcome {
	start := time.Now()
	out := PageOutcome{
		PageNumber: req.PageNumber,
		ModeUsed:   req.Mode,
		Items:      []normalize.LineItem{},
	}

	raw, err := p.Extractor.ExtractItems(ctx, req)
	if err != nil {
		p.Logger.Warn("extract.page.inference_failed",
			"document", req.DocumentName, "page", req.PageNumber,
			"mode", string(req.Mode), "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		out.Error = err.Error()
		return out
	}

	// Advisory only: a reply that misses the schema still gets normalized,
	// its items just carry low confidence.
	lowConfidence := false
	if err := llm.ValidateJSONAgainstSchema(llm.BuildLineItemsJSONSchema(), raw); err != nil {
		p.Logger.Warn("extract.page.schema_mismatch",
			"document", req.DocumentName, "page", req.PageNumber, "error", err)
		lowConfidence = true
	}

	items, err := normalize.ParseReply(raw, req.DocumentName, req.PageNumber, p.Logger)
	if err != nil {
		p.Logger.Warn("extract.page.reply_unparseable",
			"document", req.DocumentName, "page", req.PageNumber, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		out.Error = err.Error()
		return out
	}
	if lowConfidence {
		for i := range items {
			items[i].Confidence = constants.ConfidenceLow
		}
	}
	out.Items = items

	p.Logger.Info("extract.page.ok",
		"document", req.DocumentName, "page", req.PageNumber,
		"mode", string(req.Mode), "items", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out
}
