package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A known-table hit returns the canonical name at its fixed score,
// regardless of surrounding noise.
func TestVendorKnownTable(t *testing.T) {
	text := "##noise## UNIHAKKA ##more noise##\nsomething else"
	c, ok := vendorCandidate(NewDocument(text))
	require.True(t, ok)
	assert.Equal(t, "UNIHAKKA INTERNATIONAL SDN BHD", c.Value)
	assert.Equal(t, 95, c.Score)
}

func TestVendorCompanySuffix(t *testing.T) {
	text := "GERBANG ALAF RESTAURANTS SDN BHD (65351-M)\nJALAN SULTAN\nTOTAL RM10.00"
	c, ok := vendorCandidate(NewDocument(text))
	require.True(t, ok)
	assert.Equal(t, "GERBANG ALAF RESTAURANTS SDN BHD", c.Value)
	assert.Equal(t, vendorSuffixConfidence, c.Score)
	assert.Contains(t, c.Rationale, "SDN BHD")
}

func TestVendorSuffixOnlyInTopLines(t *testing.T) {
	lines := "x\nx\nx\nx\nx\nx\nx\nx\nx\nx\nLATE VENDOR SDN BHD"
	_, ok := vendorCandidate(NewDocument(lines))
	assert.False(t, ok)
}

func TestVendorHeaderFallback(t *testing.T) {
	text := "KEDAI UBAT SSM\n123456\nsome items"
	c, ok := vendorCandidate(NewDocument(text))
	require.True(t, ok)
	assert.Equal(t, "KEDAI UBAT SSM", c.Value)
	assert.GreaterOrEqual(t, c.Score, 60)
	assert.LessOrEqual(t, c.Score, 90)
}

func TestVendorHeaderSkipsAddressAndDigits(t *testing.T) {
	// First line is an address, second is mostly digits; nothing qualifies.
	text := "NO. 2 JALAN BESAR\n0123456789 01\n+++ &&& ***"
	_, ok := vendorCandidate(NewDocument(text))
	assert.False(t, ok)
}

func TestCleanVendorName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "registration number removed", input: "AEON CO (123456-X) BHD", want: "AEON CO BHD"},
		{name: "dash runs removed", input: "SHOP ---- NAME", want: "SHOP NAME"},
		{name: "symbol noise removed", input: "CAFE @#% LUMIERE", want: "CAFE LUMIERE"},
		{name: "spaces collapsed", input: "  A   B  ", want: "A B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanVendorName(tt.input))
		})
	}
}

func TestTextQuality(t *testing.T) {
	assert.Equal(t, 1.0, textQuality("CLEAN NAME"))
	assert.Less(t, textQuality("@@##$$%%^^"), 0.2)
	assert.Equal(t, 0.0, textQuality(""))
}
