package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/taanjit/Invoice-extraction-html/constants"
	"github.com/taanjit/Invoice-extraction-html/internal/llm"
)

// fakeExtractor is a canned llm.ItemExtractor keyed by page number.
type fakeExtractor struct {
	replies map[int][]byte
	errs    map[int]error
	calls   []llm.ExtractRequest
}

func (f *fakeExtractor) ExtractItems(_ context.Context, req llm.ExtractRequest) ([]byte, error) {
	f.calls = append(f.calls, req)
	if err, ok := f.errs[req.PageNumber]; ok {
		return nil, err
	}
	return f.replies[req.PageNumber], nil
}

func TestPageExtractor_Success(t *testing.T) {
	fe := &fakeExtractor{replies: map[int][]byte{
		1: []byte(`{"items": [{"description": "Cement 50kg", "total_amount": 112.00, "quantity": 8, "unit": "BAG", "unit_price": 14.00}]}`),
	}}
	p := NewPageExtractor(fe, nil)

	out := p.Extract(context.Background(), llm.ExtractRequest{
		Mode: constants.ModeText, Text: "some invoice text", PageNumber: 1, DocumentName: "doc",
	})

	if out.Error != "" {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	if out.ModeUsed != constants.ModeText {
		t.Errorf("ModeUsed = %s, want TEXT", out.ModeUsed)
	}
	if len(out.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(out.Items))
	}
	if out.Items[0].Confidence != constants.ConfidenceHigh {
		t.Errorf("Confidence = %q, want %q", out.Items[0].Confidence, constants.ConfidenceHigh)
	}
}

func TestPageExtractor_InferenceFailureBecomesOutcome(t *testing.T) {
	fe := &fakeExtractor{errs: map[int]error{2: errors.New("openai status 500: boom")}}
	p := NewPageExtractor(fe, nil)

	out := p.Extract(context.Background(), llm.ExtractRequest{
		Mode: constants.ModeImage, ImagePNG: []byte{1, 2, 3}, PageNumber: 2, DocumentName: "doc",
	})

	if out.Error == "" {
		t.Fatal("expected Error to be set")
	}
	if len(out.Items) != 0 {
		t.Errorf("Items should be empty on failure, got %d", len(out.Items))
	}
	if out.PageNumber != 2 {
		t.Errorf("PageNumber = %d, want 2", out.PageNumber)
	}
}

func TestPageExtractor_UnparseableReplyBecomesOutcome(t *testing.T) {
	fe := &fakeExtractor{replies: map[int][]byte{1: []byte("Sure! Here are the items you asked for")}}
	p := NewPageExtractor(fe, nil)

	out := p.Extract(context.Background(), llm.ExtractRequest{
		Mode: constants.ModeText, Text: "t", PageNumber: 1, DocumentName: "doc",
	})

	if out.Error == "" {
		t.Fatal("expected Error for unparseable reply")
	}
	if len(out.Items) != 0 {
		t.Errorf("Items should be empty, got %d", len(out.Items))
	}
}

func TestPageExtractor_SchemaMismatchLowersConfidence(t *testing.T) {
	// Valid JSON, recognizable rows, but not the published schema shape:
	// the reply normalizes fine and the items are marked low confidence.
	fe := &fakeExtractor{replies: map[int][]byte{
		1: []byte(`{"line_items": [{"Description": "Misc", "Total_Price_Text": "7.50"}]}`),
	}}
	p := NewPageExtractor(fe, nil)

	out := p.Extract(context.Background(), llm.ExtractRequest{
		Mode: constants.ModeText, Text: "t", PageNumber: 1, DocumentName: "doc",
	})

	if out.Error != "" {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	if len(out.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(out.Items))
	}
	if out.Items[0].Confidence != constants.ConfidenceLow {
		t.Errorf("Confidence = %q, want %q", out.Items[0].Confidence, constants.ConfidenceLow)
	}
	if out.Items[0].TotalAmount != 7.50 {
		t.Errorf("TotalAmount = %v, want 7.50", out.Items[0].TotalAmount)
	}
}
