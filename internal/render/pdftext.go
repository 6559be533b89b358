package render

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/taanjit/Invoice-extraction-html/internal/common"
)

// readTextLayer extracts the embedded text layer page by page without any
// external tooling. Scanned pages simply come back empty, which routes them
// to IMAGE mode upstream.
func readTextLayer(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, common.NewAppError("DOCUMENT_ERROR", fmt.Sprintf("cannot open %s", path), common.ErrDocumentOpen)
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f2 := p.Font(name)
				fonts[name] = &f2
			}
		}
		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			// treat an unreadable text layer like a scanned page
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
