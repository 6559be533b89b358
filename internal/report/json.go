// Package report folds document results into the persisted structures: a
// JSON result object per document, plus optional HTML and XLSX renderings
// for human review.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taanjit/Invoice-extraction-html/constants"
	"github.com/taanjit/Invoice-extraction-html/internal/extract"
	"github.com/taanjit/Invoice-extraction-html/internal/normalize"
)

// Envelope is the persisted JSON shape for one document.
type Envelope struct {
	Status       constants.DocumentStatus `json:"status"`
	DocumentName string                   `json:"document_name"`
	Items        []normalize.LineItem     `json:"items"`
	TotalItems   int                      `json:"total_items"`
	NumPages     int                      `json:"num_pages"`
	FailedPages  []extract.PageFailure    `json:"failed_pages"`
	Error        string                   `json:"error,omitempty"`
}

// NewEnvelope builds the persisted shape from a DocumentResult.
func NewEnvelope(res extract.DocumentResult) Envelope {
	items := res.Items
	if items == nil {
		items = []normalize.LineItem{}
	}
	failed := res.FailedPages
	if failed == nil {
		failed = []extract.PageFailure{}
	}
	return Envelope{
		Status:       res.Status,
		DocumentName: res.DocumentName,
		Items:        items,
		TotalItems:   len(items),
		NumPages:     res.PageCount,
		FailedPages:  failed,
		Error:        res.Error,
	}
}

// WriteJSON persists the result under dir as <document>_output.json and
// returns the written path.
func WriteJSON(dir string, res extract.DocumentResult) (string, error) {
	env := NewEnvelope(res)
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	path := filepath.Join(dir, res.DocumentName+"_output.json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}
	return path, nil
}

// ReadJSON parses a previously persisted result file.
func ReadJSON(path string) (Envelope, error) {
	var env Envelope
	b, err := os.ReadFile(path)
	if err != nil {
		return env, fmt.Errorf("read result: %w", err)
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return env, fmt.Errorf("decode result: %w", err)
	}
	return env, nil
}
