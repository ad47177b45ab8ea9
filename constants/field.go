package constants

// Field identifies one of the extracted receipt fields.
type Field string

// Stable values (these exact strings appear in reports and stored rows).
const (
	FieldVendor   Field = "vendor"
	FieldAmount   Field = "amount"
	FieldDate     Field = "date"
	FieldCategory Field = "category"
)

var allFields = []Field{
	FieldVendor,
	FieldAmount,
	FieldDate,
	FieldCategory,
}

// evaluatedFields are the fields with ground truth in the SROIE records.
// Category is extracted but has no reference value, so it is never scored.
var evaluatedFields = []Field{
	FieldVendor,
	FieldAmount,
	FieldDate,
}

func AllFields() []Field {
	out := make([]Field, len(allFields))
	copy(out, allFields)
	return out
}

func EvaluatedFields() []Field {
	out := make([]Field, len(evaluatedFields))
	copy(out, evaluatedFields)
	return out
}
