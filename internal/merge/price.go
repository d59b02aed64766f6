package merge

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPrice renders a USD rate in its canonical form: six decimal places,
// then trailing zeros and a trailing point stripped. "0.052000" -> "0.052",
// "1.000000" -> "1".
func FormatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// FormatPriceString canonicalizes an upstream decimal amount string.
func FormatPriceString(amount string) (string, error) {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return "", fmt.Errorf("parsing price %q: %w", amount, err)
	}
	return FormatPrice(v), nil
}
