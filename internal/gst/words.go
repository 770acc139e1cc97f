package gst

import (
	"fmt"
	"math"
	"strings"
)

var wordsOnes = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var wordsTens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// numberToWords renders n as English cardinal words using Indian grouping
// (hundred, thousand, lakh, crore). Returns "" for 0.
func numberToWords(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 20:
		return wordsOnes[n]
	case n < 100:
		return strings.TrimSpace(wordsTens[n/10] + " " + wordsOnes[n%10])
	case n < 1000:
		if n%100 == 0 {
			return wordsOnes[n/100] + " Hundred"
		}
		return wordsOnes[n/100] + " Hundred " + numberToWords(n%100)
	case n < 100000:
		if n%1000 == 0 {
			return numberToWords(n/1000) + " Thousand"
		}
		return numberToWords(n/1000) + " Thousand " + numberToWords(n%1000)
	case n < 10000000:
		if n%100000 == 0 {
			return numberToWords(n/100000) + " Lakh"
		}
		return numberToWords(n/100000) + " Lakh " + numberToWords(n%100000)
	default:
		if n%10000000 == 0 {
			return numberToWords(n/10000000) + " Crore"
		}
		return numberToWords(n/10000000) + " Crore " + numberToWords(n%10000000)
	}
}

// maxWordsAmount bounds word conversion to values whose integer part is
// exactly representable in a float64.
const maxWordsAmount = 1e15

// AmountInWords renders a rupee amount as the legal phrase printed on the
// invoice, e.g. "Rupees One Lakh Eighteen Thousand Only" or
// "Rupees Twelve and Paise Fifty Only".
//
// The phrase must never be blank on a legal document, so conversion does not
// fail outward: for amounts the word renderer cannot express (negative,
// non-finite, or beyond float64 integer precision) it degrades to a
// fixed-point numeric string and reports ok=false so callers can log the
// degraded output.
func AmountInWords(amount float64) (words string, ok bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 || amount >= maxWordsAmount {
		return fmt.Sprintf("Rupees %.2f Only", amount), false
	}

	rupees := int64(math.Floor(amount))
	paise := int64(math.Round((amount - float64(rupees)) * 100))
	// Floating rounding at the .995 boundary can push paise to 100.
	if paise >= 100 {
		rupees++
		paise -= 100
	}

	var b strings.Builder
	b.WriteString("Rupees ")
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(numberToWords(rupees))
	}
	if paise > 0 {
		b.WriteString(" and Paise ")
		b.WriteString(numberToWords(paise))
	}
	b.WriteString(" Only")
	return b.String(), true
}
