// Package normalize converts untrusted, loosely-structured model replies
// into the strict LineItem schema. Only a fully unparseable top-level payload
// is an error; malformed rows and missing fields degrade to defaults.
package normalize

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/taanjit/Invoice-extraction-html/constants"
)

// LineItem is one extracted invoice row. TotalAmount is always the value
// printed on the source page for that row; it is never computed from
// Quantity * UnitPrice.
type LineItem struct {
	Description    string   `json:"description"`
	TotalAmount    float64  `json:"total_amount"`
	Quantity       *float64 `json:"quantity"`
	Unit           string   `json:"unit,omitempty"`
	UnitPrice      *float64 `json:"unit_price"`
	SourcePage     int      `json:"source_page"`
	SourceDocument string   `json:"source_document"`
	Confidence     string   `json:"confidence"`
	Flags          []string `json:"flags"`
}

// containerKeys is the priority list of keys a mapping reply is probed with
// to locate the row list.
var containerKeys = []string{"items", "data", "line_items", "records", "invoice_items", "lines"}

// Key-alias tables, consulted field by field. The canonical lower-case key
// comes first; the rest are spellings observed in real model replies,
// including the legacy Description/Total_Price_Text and amount/Quantity
// variants.
var (
	descriptionKeys = []string{"description", "Description", "item", "name"}
	totalKeys       = []string{"total_amount", "Total_Price_Text", "total_price", "amount", "total", "Total"}
	quantityKeys    = []string{"quantity", "Quantity", "Quantity_Text", "qty"}
	unitKeys        = []string{"unit", "Unit_Text", "uom"}
	unitPriceKeys   = []string{"unit_price", "Unit_price", "Unit_Price_Label", "price"}
)

// ParseReply parses a raw inference reply into an ordered sequence of
// LineItems stamped with the source page and document. Row order is
// preserved from the reply.
func ParseReply(raw []byte, documentName string, pageNumber int, logger *slog.Logger) ([]LineItem, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse reply: %w", err)
	}

	rows := locateRows(parsed)
	items := make([]LineItem, 0, len(rows))
	skipped := 0
	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			skipped++
			continue
		}
		items = append(items, buildItem(row, documentName, pageNumber))
	}
	if skipped > 0 {
		logger.Warn("normalize.rows_skipped",
			"document", documentName, "page", pageNumber, "skipped", skipped)
	}
	return items, nil
}

// locateRows finds the list of row records: a top-level list is used as is;
// a mapping is probed with the container-key priority list. No match means
// zero rows on this page, which is legitimate.
func locateRows(parsed any) []any {
	switch v := parsed.(type) {
	case []any:
		return v
	case map[string]any:
		for _, key := range containerKeys {
			if list, ok := v[key].([]any); ok {
				return list
			}
		}
	}
	return nil
}

func buildItem(row map[string]any, documentName string, pageNumber int) LineItem {
	item := LineItem{
		SourcePage:     pageNumber,
		SourceDocument: documentName,
		Confidence:     constants.ConfidenceHigh,
		Flags:          []string{},
	}

	item.Description = lookupString(row, descriptionKeys)
	if item.Description == "" {
		item.Flags = append(item.Flags, constants.FlagNoDescription)
	}
	item.Unit = lookupString(row, unitKeys)

	if raw, ok := lookup(row, totalKeys); ok && raw != nil {
		item.TotalAmount = ToNumber(raw)
		if _, isString := raw.(string); isString {
			item.Flags = append(item.Flags, constants.FlagCoercedTotal)
		}
	} else {
		item.Flags = append(item.Flags, constants.FlagMissingTotal)
	}

	if raw, ok := lookup(row, quantityKeys); ok {
		item.Quantity = ToOptionalNumber(raw)
	}
	if raw, ok := lookup(row, unitPriceKeys); ok {
		item.UnitPrice = ToOptionalNumber(raw)
	}
	return item
}

func lookup(row map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := row[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func lookupString(row map[string]any, keys []string) string {
	v, ok := lookup(row, keys)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
