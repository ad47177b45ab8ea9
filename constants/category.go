package constants

// Category is a spending category assigned to a receipt.
type Category string

const (
	Food      Category = "Food"
	Shopping  Category = "Shopping"
	Travel    Category = "Travel"
	Utilities Category = "Utilities"
	Other     Category = "Other"
)

var allCategories = []Category{
	Food,
	Shopping,
	Travel,
	Utilities,
	Other,
}

func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}
