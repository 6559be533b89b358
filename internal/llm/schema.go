package llm

// BuildLineItemsJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We show it to the model as the expected reply shape and also
// use it locally as an advisory validation: replies that fail it are still
// normalized, just flagged low-confidence.
func BuildLineItemsJSONSchema() map[string]any {
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"description":  map[string]any{"type": "string"},
			"total_amount": map[string]any{"type": "number"},
			"quantity":     numberOrNull(),
			"unit":         map[string]any{"type": "string"},
			"unit_price":   numberOrNull(),
		},
		"required": []string{"description", "total_amount"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type":  "array",
				"items": item,
			},
		},
		"required": []string{"items"},
	}
}

func numberOrNull() map[string]any {
	return map[string]any{"type": []string{"number", "null"}}
}
