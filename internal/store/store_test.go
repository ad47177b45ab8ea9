package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
	"github.com/joseph-ayodele/receipts-evaluator/internal/common"
	"github.com/joseph-ayodele/receipts-evaluator/internal/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.CreateRun(ctx, "improved")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, s.FinishRun(ctx, id, constants.RunStatusCompleted))
}

func TestFinishRunUnknownID(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	err := s.FinishRun(ctx, "no-such-run", constants.RunStatusFailed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSaveAndListResults(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.CreateRun(ctx, "improved")
	require.NoError(t, err)

	rows := []report.Row{
		{
			Filename:         "X00016469670.txt",
			ExtractedVendor:  "GARDENIA BAKERIES",
			ReferenceVendor:  "GARDENIA BAKERIES (KL) SDN BHD",
			VendorFuzzy:      true,
			VendorSimilarity: 0.72,
			ExtractedAmount:  "85.80",
			ReferenceAmount:  "85.80",
			AmountExact:      true,
			ExtractedDate:    "15/01/2019",
			ReferenceDate:    "15/01/2019",
			DateExact:        true,
			Confidence:       88.0,
		},
		{
			Filename:         "X00016469612.txt",
			ExtractedVendor:  "UNIHAKKA INTERNATIONAL SDN BHD",
			ReferenceVendor:  "UNIHAKKA INTERNATIONAL SDN BHD",
			VendorExact:      true,
			VendorFuzzy:      true,
			VendorSimilarity: 1.0,
			Confidence:       95.0,
		},
	}
	require.NoError(t, s.SaveResults(ctx, id, rows))

	got, err := s.ListResults(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by filename, so the UNIHAKKA row comes first.
	assert.Equal(t, "X00016469612.txt", got[0].Filename)
	assert.True(t, got[0].VendorExact)
	assert.Equal(t, "X00016469670.txt", got[1].Filename)
	assert.False(t, got[1].VendorExact)
	assert.True(t, got[1].VendorFuzzy)
	assert.InDelta(t, 0.72, got[1].VendorSimilarity, 1e-9)
	assert.True(t, got[1].AmountExact)
}

func TestListResultsEmptyRun(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.CreateRun(ctx, "improved")
	require.NoError(t, err)

	got, err := s.ListResults(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got)
}
