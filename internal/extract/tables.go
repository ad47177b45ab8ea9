package extract

import "github.com/joseph-ayodele/receipts-evaluator/constants"

// Curated lookup tables. Process-wide read-only configuration: loaded
// once at init, never mutated.

// knownVendor maps a receipt-text fragment to its canonical vendor name
// and a fixed confidence.
type knownVendor struct {
	fragment   string
	canonical  string
	confidence int
}

// Ordered: the first matching fragment wins.
var knownVendors = []knownVendor{
	{"UNIHAKKA", "UNIHAKKA INTERNATIONAL SDN BHD", 95},
	{"MR D.I.Y", "MR. D.I.Y. SDN BHD", 95},
	{"MR.D.I.Y", "MR.D.I.Y(M)SDN BHD", 95},
	{"99 SPEED", "99 SPEED MART S/B", 95},
	{"SPEED MART", "99 SPEED MART S/B", 90},
	{"AEON", "AEON CO. (M) BHD", 90},
	{"POPULAR BOOK", "POPULAR BOOK CO. (M) SDN BHD", 90},
	{"THREE STOOGES", "THREE STOOGES", 95},
	{"GARDENIA", "GARDENIA BAKERIES (KL) SDN BHD", 90},
	{"LIGHTROOM", "LIGHTROOM GALLERY SDN BHD", 90},
	{"PERNIAGAAN ZHENG", "PERNIAGAAN ZHENG HUI", 90},
	{"BOOK TA", "BOOK TA .K (TAMAN DAYA) SDN BHD", 85},
	{"TEO HENG", "TEO HENG STATIONERY & BOOKS", 90},
	{"HON HWA", "HON HWA HARDWARE TRADING", 90},
	{"ADVANCO", "ADVANCO COMPANY", 95},
	{"SANYU", "SANYU STATIONERY SHOP", 90},
}

// Malaysian legal-entity and trade markers: a line carrying one of these
// is very likely the vendor line.
var companySuffixes = []string{
	"SDN BHD", "SDN. BHD.", "SDN. BHD", "SENDIRIAN BERHAD",
	"S/B", "BHD", "BERHAD", "PLT", "ENTERPRISE", "TRADING",
	"RESTAURANT", "CAFE", "MART", "SHOP", "HARDWARE",
	"STATIONERY", "BAKERY", "GROCER", "SUPERMARKET",
}

// totalKeyword ranks "total"-class keywords by specificity.
type totalKeyword struct {
	keyword string
	boost   int
}

var totalKeywords = []totalKeyword{
	{"grand total", 100},
	{"total", 90},
	{"nett total", 95},
	{"amount due", 90},
	{"amount", 80},
	{"cash", 75},
	{"tendered", 70},
	{"tunai", 80},  // Malay for cash
	{"jumlah", 85}, // Malay for total
}

// excludeKeywords mark lines whose amounts are almost never the total.
var excludeKeywords = []string{
	"subtotal", "sub total", "sub-total",
	"tax", "gst", "sst", "service charge", "service tax",
	"discount", "savings", "change", "baki",
	"item", "qty", "quantity", "unit price", "unit",
	"rounding",
}

// categoryKeywords drive the keyword-membership category scan.
// Ordered so the scan is deterministic.
type categoryEntry struct {
	category constants.Category
	keywords []string
}

var categoryKeywords = []categoryEntry{
	{constants.Food, []string{
		"restaurant", "cafe", "coffee", "pizza", "burger", "lunch", "dinner",
		"breakfast", "grocery", "supermarket", "market", "bakery", "food",
		"chicken", "rice", "noodle", "vegetarian", "seafood",
	}},
	{constants.Shopping, []string{
		"hardware", "stationery", "book", "mart", "store", "shop",
		"diy", "furniture", "home", "gift", "craft",
	}},
	{constants.Travel, []string{
		"petrol", "gas", "shell", "petronas", "caltex",
		"parking", "toll", "transit",
	}},
	{constants.Utilities, []string{
		"electric", "water", "phone", "telekom", "service",
	}},
}

// addressTokens reject header lines that are street addresses rather
// than vendor names.
var addressTokens = []string{"JALAN", "JLN", "NO.", "TAMAN", "LORONG"}
