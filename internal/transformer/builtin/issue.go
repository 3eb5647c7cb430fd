// Package builtin contains the small pure functions that turn raw export
// cells into SQL literals, and the row filters applied before them.
package builtin

// Reason classifies a validation report entry.
type Reason string

const (
	// ReasonMissingIdentity marks a row dropped for lacking ID or Nombre.
	ReasonMissingIdentity Reason = "missing_identity"
	// ReasonInvalidInteger marks an integer cell that defaulted to NULL.
	ReasonInvalidInteger Reason = "invalid_integer"
	// ReasonInvalidDecimal marks a decimal cell that defaulted to NULL. No
	// column of schema.Products is decimal today, so it is not emitted yet.
	ReasonInvalidDecimal Reason = "invalid_decimal"
	// ReasonUnexpandedBarcode marks a scientific-notation barcode emitted raw.
	ReasonUnexpandedBarcode Reason = "unexpanded_barcode"
	// ReasonUnrecognizedBoolean marks a flag cell that was neither TRUE nor FALSE.
	ReasonUnrecognizedBoolean Reason = "unrecognized_boolean"
	// ReasonDuplicateID marks a row whose ID repeats an earlier one; the
	// conflict clause keeps the first.
	ReasonDuplicateID Reason = "duplicate_id"
)

// Issue is one silently-defaulted value or dropped row. Normalizers fill
// Reason and Raw; the row builder adds Line, ID and Column.
type Issue struct {
	Reason Reason
	Line   int
	ID     string
	Column string
	Raw    string
}
