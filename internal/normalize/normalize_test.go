package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lowercase upper-cased", input: "starbucks coffee", want: "STARBUCKS COFFEE"},
		{name: "punctuation stripped", input: "MR. D.I.Y. (M) SDN-BHD", want: "MR DIY M SDNBHD"},
		{name: "whitespace collapsed", input: "  AEON   CO.\t(M)  BHD ", want: "AEON CO M BHD"},
		{name: "tab separates words", input: "AEON\tCO", want: "AEON CO"},
		{name: "newline separates words", input: "UNIHAKKA\nINTERNATIONAL", want: "UNIHAKKA INTERNATIONAL"},
		{name: "only punctuation", input: "***---///", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.input))
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "slash dmy", input: "18/03/2018", want: "2018-03-18", ok: true},
		{name: "dash dmy", input: "18-03-2018", want: "2018-03-18", ok: true},
		{name: "dot dmy", input: "18.03.2018", want: "2018-03-18", ok: true},
		{name: "unpadded dmy", input: "5/3/2018", want: "2018-03-05", ok: true},
		{name: "iso", input: "2018-03-18", want: "2018-03-18", ok: true},
		{name: "iso slashes", input: "2018/03/18", want: "2018-03-18", ok: true},
		{name: "compact", input: "20180318", want: "2018-03-18", ok: true},
		{name: "short year", input: "18/03/18", want: "2018-03-18", ok: true},
		{name: "written month upper", input: "18 MAR 2018", want: "2018-03-18", ok: true},
		{name: "written month full", input: "18 March 2018", want: "2018-03-18", ok: true},
		{name: "garbage", input: "not a date", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "month out of range", input: "18/13/2018", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// Date is idempotent on its own output: the canonical form re-parses via
// the ISO layout to itself.
func TestDateIdempotent(t *testing.T) {
	inputs := []string{"18/03/2018", "2 JAN 2020", "20191231", "01-02-16"}
	for _, in := range inputs {
		first, ok := Date(in)
		require.True(t, ok, in)
		second, ok := Date(first)
		require.True(t, ok, first)
		assert.Equal(t, first, second)
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
		ok    bool
	}{
		{name: "float passthrough", input: 12.5, want: 12.5, ok: true},
		{name: "int passthrough", input: 40, want: 40, ok: true},
		{name: "plain string", input: "12.50", want: 12.5, ok: true},
		{name: "currency prefix", input: "RM12.50", want: 12.5, ok: true},
		{name: "dollar and commas", input: "$1,234.56", want: 1234.56, ok: true},
		{name: "nil", input: nil, ok: false},
		{name: "empty string", input: "", ok: false},
		{name: "letters only", input: "free", ok: false},
		{name: "two decimal points", input: "12.34.56", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Amount(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

// A currency-prefixed string and the plain numeric string round-trip to
// the same value.
func TestAmountRoundTrip(t *testing.T) {
	withPrefix, ok1 := Amount("RM 12.00")
	plain, ok2 := Amount("12.00")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, plain, withPrefix)
}
