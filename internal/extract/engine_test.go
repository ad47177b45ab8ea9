package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
	"github.com/joseph-ayodele/receipts-evaluator/internal/common"
)

const sampleReceipt = `UNIHAKKA INTERNATIONAL SDN BHD
BAR WANG RICE
Date: 18/03/2018
1x CHICKEN RICE 7.50
SUBTOTAL RM7.50
TOTAL RM8.00`

func TestEngineExtract(t *testing.T) {
	res, err := NewEngine(nil).Extract(sampleReceipt)
	require.NoError(t, err)

	vendor, ok := res.Vendor()
	require.True(t, ok)
	assert.Equal(t, "UNIHAKKA INTERNATIONAL SDN BHD", vendor)

	date, ok := res.Date()
	require.True(t, ok)
	assert.Equal(t, "18/03/2018", date)

	amount, ok := res.Amount()
	require.True(t, ok)
	assert.Equal(t, 8.00, amount)

	category, ok := res.Category()
	require.True(t, ok)
	assert.Equal(t, string(constants.Food), category)

	assert.Greater(t, res.OverallConfidence, 0.0)
	assert.Len(t, res.Log, 4)
}

func TestEngineEmptyInputIsNotAnError(t *testing.T) {
	res, err := NewEngine(nil).Extract("")
	require.NoError(t, err)

	for _, field := range []constants.Field{constants.FieldVendor, constants.FieldDate, constants.FieldAmount} {
		fr := res.Fields[field]
		assert.Nil(t, fr.Value, field)
		assert.Zero(t, fr.Confidence, field)
	}
	// Category still falls back to Other, so the mean covers it alone.
	cat, ok := res.Category()
	require.True(t, ok)
	assert.Equal(t, string(constants.Other), cat)
	assert.Equal(t, float64(categoryDefaultScore), res.OverallConfidence)
}

func TestEngineRejectsNonText(t *testing.T) {
	_, err := NewEngine(nil).Extract("abc\xff\xfe")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotText)
}

// The mean excludes zero-confidence fields instead of treating them as
// zero contributions.
func TestOverallConfidenceSkipsZeroFields(t *testing.T) {
	res := &Result{Fields: map[constants.Field]FieldResult{
		constants.FieldDate:     {Value: "18/03/2018", Confidence: 92},
		constants.FieldAmount:   {Value: nil, Confidence: 0},
		constants.FieldVendor:   {Value: "X", Confidence: 58},
		constants.FieldCategory: {Value: "Other", Confidence: 30},
	}}
	assert.InDelta(t, 60.0, overallConfidence(res), 1e-9)
}

// Given the same pooled list twice, the selector returns the same
// winner: max score, first-found tie-break.
func TestSelectBestDeterministic(t *testing.T) {
	cands := []Candidate{
		{Field: constants.FieldAmount, Value: 1.0, Score: 80, Rationale: "first"},
		{Field: constants.FieldAmount, Value: 2.0, Score: 95, Rationale: "winner"},
		{Field: constants.FieldAmount, Value: 3.0, Score: 95, Rationale: "tied but later"},
		{Field: constants.FieldAmount, Value: 4.0, Score: 10, Rationale: "low"},
	}
	for i := 0; i < 3; i++ {
		best, ok := selectBest(cands)
		require.True(t, ok)
		assert.Equal(t, 2.0, best.Value)
		assert.Equal(t, "winner", best.Rationale)
	}
}

func TestSelectBestEmpty(t *testing.T) {
	_, ok := selectBest(nil)
	assert.False(t, ok)
}
