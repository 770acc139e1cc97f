package gst_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gstbill/internal/gst"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0.00, "Rupees Zero Only"},
		{"single digit", 5, "Rupees Five Only"},
		{"teens", 17, "Rupees Seventeen Only"},
		{"tens with units", 42, "Rupees Forty Two Only"},
		{"round hundred", 300, "Rupees Three Hundred Only"},
		{"hundreds", 512, "Rupees Five Hundred Twelve Only"},
		{"thousands", 23456, "Rupees Twenty Three Thousand Four Hundred Fifty Six Only"},
		{"round lakh", 100000, "Rupees One Lakh Only"},
		{"lakh with thousands", 118000, "Rupees One Lakh Eighteen Thousand Only"},
		{"crore", 10000000, "Rupees One Crore Only"},
		{"crore mixed", 12345678, "Rupees One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Only"},
		{"with paise", 23456.78, "Rupees Twenty Three Thousand Four Hundred Fifty Six and Paise Seventy Eight Only"},
		{"zero rupees with paise", 0.50, "Rupees Zero and Paise Fifty Only"},
		{"single paisa", 1.01, "Rupees One and Paise One Only"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := gst.AmountInWords(tc.amount)
			assert.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAmountInWords_NoPaiseClauseForWholeAmounts(t *testing.T) {
	got, ok := gst.AmountInWords(118000.00)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(got, "Rupees One Lakh Eighteen Thousand"))
	assert.True(t, strings.HasSuffix(got, "Only"))
	assert.NotContains(t, got, "Paise")
}

// A fractional part that rounds to 100 paise must carry into the rupee part
// instead of rendering "Paise One Hundred".
func TestAmountInWords_PaiseCarryAtBoundary(t *testing.T) {
	got, ok := gst.AmountInWords(12.999)
	assert.True(t, ok)
	assert.Equal(t, "Rupees Thirteen Only", got)
}

func TestAmountInWords_DegradedFallback(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
	}{
		{"negative", -5},
		{"NaN", math.NaN()},
		{"infinite", math.Inf(1)},
		{"beyond integer precision", 1e16},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := gst.AmountInWords(tc.amount)
			assert.False(t, ok)
			assert.True(t, strings.HasPrefix(got, "Rupees "))
			assert.True(t, strings.HasSuffix(got, " Only"))
			assert.NotEmpty(t, got)
		})
	}
}

func TestAmountInWords_Idempotent(t *testing.T) {
	a, okA := gst.AmountInWords(90506.00)
	b, okB := gst.AmountInWords(90506.00)
	assert.Equal(t, okA, okB)
	assert.Equal(t, a, b)
}
