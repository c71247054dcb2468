package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ones  = [...]string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens = [...]string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens  = [...]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

	crore = decimal.NewFromInt(10_000_000)
)

const (
	lakh     = 100_000
	thousand = 1_000
)

// AmountInWords renders the whole-rupee part of amount using Indian
// grouping, e.g. 641212 -> "Six Lakh Forty One Thousand Two Hundred Twelve Only".
// Paise are not rendered. A zero whole part renders as "Zero" with no suffix.
func AmountInWords(amount decimal.Decimal) string {
	whole := amount.Truncate(0)
	if whole.IsNegative() {
		return "Minus " + AmountInWords(whole.Neg())
	}
	if whole.IsZero() {
		return "Zero"
	}
	return strings.Join(indianWords(whole), " ") + " Only"
}

// indianWords splits n into crore, lakh, thousand and sub-thousand groups.
// Crore counts above 99 are themselves rendered with Indian grouping.
func indianWords(n decimal.Decimal) []string {
	var words []string

	if n.GreaterThanOrEqual(crore) {
		q := n.Div(crore).Truncate(0)
		words = append(words, indianWords(q)...)
		words = append(words, "Crore")
		n = n.Sub(q.Mul(crore))
	}

	rest := n.IntPart()
	if rest >= lakh {
		words = append(words, hundreds(rest/lakh)...)
		words = append(words, "Lakh")
		rest %= lakh
	}
	if rest >= thousand {
		words = append(words, hundreds(rest/thousand)...)
		words = append(words, "Thousand")
		rest %= thousand
	}
	if rest > 0 {
		words = append(words, hundreds(rest)...)
	}
	return words
}

// hundreds renders 1..999.
func hundreds(n int64) []string {
	var words []string
	if n > 99 {
		words = append(words, ones[n/100], "Hundred")
		n %= 100
	}
	switch {
	case n > 19:
		words = append(words, tens[n/10])
		if n%10 > 0 {
			words = append(words, ones[n%10])
		}
	case n >= 10:
		words = append(words, teens[n-10])
	case n > 0:
		words = append(words, ones[n])
	}
	return words
}
