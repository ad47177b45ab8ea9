package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
)

// FormatSummary renders the human-readable end-of-run summary the CLI
// prints after writing the report files. Error categories within each
// field are ordered by descending count, then by name.
func FormatSummary(r Report) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	b.WriteString("EVALUATION SUMMARY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "\nProcessed: %d/%d documents (%.2f%%)\n",
		r.Summary.ProcessedSuccessfully, r.Summary.TotalDocuments, r.Summary.SuccessRate)

	writePercentages(&b, "EXACT MATCH ACCURACY", r.ExactMatchAccuracy)
	writePercentages(&b, "FUZZY MATCH ACCURACY", r.FuzzyMatchAccuracy)
	writePercentages(&b, "EXTRACTION RATE", r.ExtractionRate)

	b.WriteString("\nERROR ANALYSIS:\n")
	for _, field := range constants.EvaluatedFields() {
		hist := r.ErrorAnalysis[string(field)]
		if len(hist) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s:\n", strings.ToUpper(string(field)))
		for _, cat := range sortByCount(hist) {
			fmt.Fprintf(&b, "    %s: %d (%s)\n",
				cat, hist[cat], constants.ErrorCategory(cat).Describe())
		}
	}

	b.WriteString(rule + "\n")
	return b.String()
}

func writePercentages(b *strings.Builder, title string, values map[string]float64) {
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, field := range constants.EvaluatedFields() {
		fmt.Fprintf(b, "  %-7s %6.2f%%\n", string(field)+":", values[string(field)])
	}
}

func sortByCount(hist map[string]int) []string {
	cats := make([]string, 0, len(hist))
	for cat := range hist {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		if hist[cats[i]] != hist[cats[j]] {
			return hist[cats[i]] > hist[cats[j]]
		}
		return cats[i] < cats[j]
	})
	return cats
}
