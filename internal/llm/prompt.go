package llm

import (
	"strings"
)

// BuildSystemPrompt composes the system message. The rules are deliberately
// repetitive about totals: the model must transcribe the printed total, never
// derive it from quantity and unit price.
func BuildSystemPrompt() string {
	parts := []string{
		"You are an expert invoice parser. Extract every line item from the invoice accurately.",
		"Always return ONLY one valid JSON object matching the provided JSON Schema, with a key \"items\" containing an array of line-item objects.",
		"Use numeric values for all price and quantity fields, never strings.",
		"'total_amount' MUST be read DIRECTLY from the document as printed.",
		"DO NOT calculate 'total_amount' from quantity times unit price.",
		"If the total price for a line is not visible, use 0.",
		"If 'quantity' or 'unit_price' is not visible, use null for that field.",
		"For 'unit', use the unit of measurement as printed, preferring common abbreviations: KG, BTL, PCS, BOX, PKT, LTR, CTN.",
		"Only extract values explicitly printed in the document; never generate, infer, or make up data.",
		"If no invoice line items are found, return: {\"items\": []}.",
	}
	return strings.Join(parts, " ")
}

// BuildTextPrompt packages the page text for TEXT-mode extraction.
func BuildTextPrompt(pageText string) string {
	var b strings.Builder
	b.WriteString("Extract ALL line items from this invoice text.\n")
	b.WriteString("For EACH line item, extract: description, total_amount, quantity, unit, unit_price.\n")
	b.WriteString("Look for columns like \"Total\", \"Amount\", \"Line Total\", \"Ext. Price\" for total_amount.\n")
	b.WriteString("\nInvoice text:\n---\n")
	b.WriteString(pageText)
	b.WriteString("\n---")
	return b.String()
}

// BuildImagePrompt is the instruction accompanying a rendered page in
// IMAGE mode. The image itself travels as a separate content part.
func BuildImagePrompt() string {
	return "You are looking at one page of an INVOICE document. Extract ALL line items visible on this page.\n" +
		"For EACH line item, extract: description, total_amount, quantity, unit, unit_price.\n" +
		"Look for columns like \"Total\", \"Amount\", \"Line Total\", \"Ext. Price\" for total_amount.\n" +
		"Only extract what you can clearly see in the image. Do not guess or approximate."
}
