package tabular

import (
	"strconv"
	"strings"
)

// Numbers returns the numbers found in the whitespace separated tokens of s, left to right.
//
// A number starts with a token made of digits with at most one decimal point. When that token
// has no decimal point, the 3-digit tokens that immediately follow are thousands groups and are
// appended to it, the last one possibly carrying the decimal part: "7 067.8" is 7067.8 and
// "1 234 567" is 1234567. Once a number has a decimal point it absorbs nothing more, so
// "6819.9 123" stays two numbers. Other tokens are skipped.
func Numbers(s string) []float64 {
	toks := strings.Fields(s)
	nums := []float64{}
	for i := 0; i < len(toks); {
		t := toks[i]
		i++
		if !isNumeral(t) {
			continue
		}
		var b strings.Builder
		b.WriteString(t)
		for !strings.Contains(b.String(), ".") && i < len(toks) && isGroup(toks[i]) {
			b.WriteString(toks[i])
			i++
		}
		v, err := strconv.ParseFloat(b.String(), 64)
		if err != nil {
			continue
		}
		nums = append(nums, v)
	}
	return nums
}

// isNumeral reports whether t is digits with at most one embedded decimal point.
func isNumeral(t string) bool {
	digits, dots := 0, 0
	for _, c := range t {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// isGroup reports whether t is a thousands group: exactly 3 digits, optionally followed by
// the decimal part of the number ("067.8").
func isGroup(t string) bool {
	head, frac, hasFrac := strings.Cut(t, ".")
	if len(head) != 3 || !isDigits(head) {
		return false
	}
	return !hasFrac || (frac != "" && isDigits(frac))
}

func isDigits(s string) bool {
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
