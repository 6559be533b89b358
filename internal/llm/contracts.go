package llm

import (
	"context"

	"github.com/taanjit/Invoice-extraction-html/constants"
)

// ExtractRequest describes one page submitted for line-item extraction.
// Exactly one of Text / ImagePNG is meaningful, selected by Mode.
type ExtractRequest struct {
	Mode         constants.ExtractionMode
	Text         string // TEXT mode: the page's plain text
	ImagePNG     []byte // IMAGE mode: the page rendered as PNG
	PageNumber   int    // 1-based; log/correlation only
	DocumentName string
}

// ItemExtractor is the inference collaborator our pipeline depends on. It
// returns the model's raw reply payload, expected but not guaranteed to be
// one JSON object; the normalizer treats it as untrusted.
type ItemExtractor interface {
	ExtractItems(ctx context.Context, req ExtractRequest) ([]byte, error)
}
