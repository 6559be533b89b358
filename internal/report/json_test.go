package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taanjit/Invoice-extraction-html/constants"
	"github.com/taanjit/Invoice-extraction-html/internal/extract"
	"github.com/taanjit/Invoice-extraction-html/internal/normalize"
)

func sampleResult() extract.DocumentResult {
	qty := 2.0
	unitPrice := 6.06
	return extract.DocumentResult{
		DocumentName: "acme-march",
		PageCount:    3,
		Status:       constants.StatusSuccess,
		Items: []normalize.LineItem{
			{
				Description:    "Office chairs",
				TotalAmount:    12.12,
				Quantity:       &qty,
				Unit:           "PCS",
				UnitPrice:      &unitPrice,
				SourcePage:     1,
				SourceDocument: "acme-march",
				Confidence:     constants.ConfidenceHigh,
				Flags:          []string{},
			},
			{
				Description:    "Delivery",
				TotalAmount:    40,
				SourcePage:     3,
				SourceDocument: "acme-march",
				Confidence:     constants.ConfidenceLow,
				Flags:          []string{constants.FlagCoercedTotal},
			},
		},
		FailedPages: []extract.PageFailure{{Page: 2, Reason: "inference timeout"}},
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	res := sampleResult()

	path, err := WriteJSON(dir, res)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "acme-march_output.json"), path)

	env, err := ReadJSON(path)
	require.NoError(t, err)

	assert.Equal(t, constants.StatusSuccess, env.Status)
	assert.Equal(t, "acme-march", env.DocumentName)
	assert.Equal(t, 3, env.NumPages)
	assert.Equal(t, 2, env.TotalItems)
	require.Len(t, env.Items, 2)
	assert.Equal(t, res.Items, env.Items)
	assert.Equal(t, res.FailedPages, env.FailedPages)

	// absent optionals survive the round trip as absent, not zero
	assert.Nil(t, env.Items[1].Quantity)
	assert.Nil(t, env.Items[1].UnitPrice)
}

func TestNewEnvelope_NilSlicesBecomeEmpty(t *testing.T) {
	env := NewEnvelope(extract.DocumentResult{
		DocumentName: "blank",
		Status:       constants.StatusNoData,
	})
	assert.NotNil(t, env.Items)
	assert.NotNil(t, env.FailedPages)
	assert.Zero(t, env.TotalItems)
}
