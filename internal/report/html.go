package report

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/taanjit/Invoice-extraction-html/internal/extract"
)

const htmlHeader = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Invoice Extraction Results - %s</title>
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: #16213e; padding: 40px 20px; }
        .container { max-width: 1400px; margin: 0 auto; }
        h1 { text-align: center; color: #e94560; margin-bottom: 10px; }
        .subtitle { text-align: center; color: rgba(255, 255, 255, 0.7); margin-bottom: 30px; }
        .table-container { background: rgba(255, 255, 255, 0.95); border-radius: 12px; padding: 30px; overflow-x: auto; }
        table { width: 100%%; border-collapse: collapse; font-size: 0.95rem; }
        th { padding: 14px 15px; text-align: left; color: white; background: #e94560; text-transform: uppercase; }
        tbody tr { border-bottom: 1px solid #e0e0e0; }
        tbody tr:nth-child(even) { background-color: #f8f9fa; }
        td { padding: 12px 15px; color: #333; vertical-align: top; }
        .desc-col { max-width: 400px; line-height: 1.5; }
        .num-col { text-align: right; font-family: 'Courier New', monospace; }
        .unit-col, .page-col { text-align: center; }
        .summary { margin-top: 20px; padding: 15px; background: #f8f9fa; border-radius: 8px; text-align: center; }
        .no-data { text-align: center; padding: 40px; color: #666; font-size: 1.2rem; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Invoice Extraction Results</h1>
        <p class="subtitle">%s</p>
        <div class="table-container">
`

const htmlFooter = `        </div>
    </div>
</body>
</html>
`

// WriteHTML renders the document's items as a static table for human review
// and writes it under dir as <document>_extracted.html.
func WriteHTML(dir string, res extract.DocumentResult) (string, error) {
	var b strings.Builder
	esc := html.EscapeString
	fmt.Fprintf(&b, htmlHeader, esc(res.DocumentName), esc(res.DocumentName))

	if len(res.Items) > 0 {
		b.WriteString("            <table>\n")
		b.WriteString("                <thead><tr><th>Description</th><th>Qty</th><th>Unit</th><th>Unit Price</th><th>Total Price</th><th>Page</th></tr></thead>\n")
		b.WriteString("                <tbody>\n")
		for _, item := range res.Items {
			qty, unitPrice := "", ""
			if item.Quantity != nil {
				qty = trimFloat(*item.Quantity)
			}
			if item.UnitPrice != nil {
				unitPrice = trimFloat(*item.UnitPrice)
			}
			fmt.Fprintf(&b,
				"                    <tr><td class=\"desc-col\">%s</td><td class=\"num-col\">%s</td><td class=\"unit-col\">%s</td><td class=\"num-col\">%s</td><td class=\"num-col\">%s</td><td class=\"page-col\">%d</td></tr>\n",
				esc(item.Description), qty, esc(item.Unit), unitPrice, trimFloat(item.TotalAmount), item.SourcePage)
		}
		b.WriteString("                </tbody>\n            </table>\n")
		fmt.Fprintf(&b, "            <div class=\"summary\">Total Items: %d</div>\n", len(res.Items))
	} else {
		b.WriteString("            <div class=\"no-data\"><p>No structured data could be extracted.</p></div>\n")
	}
	b.WriteString(htmlFooter)

	path := filepath.Join(dir, res.DocumentName+"_extracted.html")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write html: %w", err)
	}
	return path, nil
}

func trimFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
