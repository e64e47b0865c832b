package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "12", want: "12"},
		{name: "fraction", input: "12.5", want: "12.5"},
		{name: "padded", input: "  0.75 ", want: "0.75"},
		{name: "negative", input: "-3", want: "-3"},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
		{name: "text", input: "abc", wantErr: true},
		{name: "mixed", input: "12abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotNumeric)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "2.35", Round(decimal.RequireFromString("2.345")).StringFixed(2))
	assert.Equal(t, "-2.35", Round(decimal.RequireFromString("-2.345")).StringFixed(2))
	assert.Equal(t, "2.34", Round(decimal.RequireFromString("2.3449")).StringFixed(2))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "20.00", Percent(decimal.NewFromInt(200), decimal.NewFromInt(10)).StringFixed(2))
	assert.Equal(t, "33.00", Percent(decimal.NewFromInt(220), decimal.NewFromInt(15)).StringFixed(2))
	assert.Equal(t, "0.33", Percent(decimal.NewFromInt(1), decimal.RequireFromString("33.333")).StringFixed(2))
}

func TestSum(t *testing.T) {
	got := Sum(decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"))
	assert.True(t, got.Equal(decimal.RequireFromString("0.3")))
	assert.True(t, Sum().IsZero())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "SLE 1,234.50", Format(decimal.RequireFromString("1234.5"), 2))
	assert.Equal(t, "SLE 1,235", Format(decimal.RequireFromString("1234.5"), 0))
	assert.Equal(t, "SLE 0.00", Format(decimal.Zero, 2))
	assert.Equal(t, "1,000,000.00", FormatNumber(decimal.NewFromInt(1000000), 2))
	assert.Equal(t, "253.00", FormatPlain(decimal.NewFromInt(253)))
}

func TestFormatNumberIsExact(t *testing.T) {
	tests := []struct {
		in     string
		digits int
		want   string
	}{
		{"-1234.5", 2, "-1,234.50"},
		{"999.995", 2, "1,000.00"},
		{"9007199254740993.01", 2, "9,007,199,254,740,993.01"},
		{"12345678901234567890.5", 2, "12,345,678,901,234,567,890.50"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(decimal.RequireFromString(tt.in), tt.digits))
		})
	}
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"0", nil},
		{"999999999999.99", nil},
		{"0.000000000001", nil},
		{"0e-5", nil},
		{"1000000000000", ErrTooLarge},
		{"1e20", ErrTooLarge},
		{"1e200000000", ErrTooLarge},
		{"0e200000000", ErrTooLarge},
		{"-1e200000000", ErrTooLarge},
		{"1e-200000000", ErrTooPrecise},
		{"0.0000000000001", ErrTooPrecise},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, CheckRange(d))
		})
	}
}
