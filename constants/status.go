package constants

// DocumentStatus is the canonical status for a document-level extraction result.
type DocumentStatus string

// Stable values (these exact strings appear in the serialized output).
const (
	StatusSuccess DocumentStatus = "SUCCESS" // at least one line item extracted
	StatusNoData  DocumentStatus = "NO_DATA" // processed, zero line items
	StatusError   DocumentStatus = "ERROR"   // document-level failure, no pages attempted
)

// ExtractionMode selects how a page is presented to the model.
type ExtractionMode string

const (
	ModeText  ExtractionMode = "TEXT"  // machine-readable page text
	ModeImage ExtractionMode = "IMAGE" // rendered page bitmap via vision
)

// Confidence labels stamped on extracted line items.
const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

// Annotation flags recorded on line items by the normalizer.
const (
	FlagMissingTotal  = "missing_total"
	FlagCoercedTotal  = "coerced_total"
	FlagNoDescription = "no_description"
)
