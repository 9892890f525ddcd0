package catalogsync

import (
	"strconv"
	"strings"
)

// MinorUnits converts a decimal major-unit amount (e.g. 12.50 USD) to
// integer minor units (1250 cents) with half-up rounding on the third
// decimal digit: 9.995 becomes 1000.
//
// The conversion goes through the shortest decimal representation of the
// float instead of multiplying by 100, so binary float artifacts
// (9.995*100 == 999.4999...) cannot flip the rounding direction.
func MinorUnits(amount float64) int64 {
	neg := false
	if amount < 0 {
		neg = true
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	for len(frac) < 3 {
		frac += "0"
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0
	}
	cents64, _ := strconv.ParseInt(frac[:2], 10, 64)
	cents := whole*100 + cents64
	if frac[2] >= '5' {
		cents++
	}

	if neg {
		return -cents
	}
	return cents
}
