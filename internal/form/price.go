package form

import (
	"errors"
	"fmt"
	"strings"
)

// Coffee prices are stored on the café as display strings ("£2.90").
// Parsing goes through integer pence, never floating point, so a
// price survives the prefill/resubmit round trip unchanged for any
// amount with up to two decimals.

// CurrencySymbol prefixes every stored coffee price.
const CurrencySymbol = "£"

var errBadDecimal = errors.New("not a valid decimal")

// ParsePrice converts a plain decimal string such as "2.9" or "3.50"
// into pence. Inputs with more than two decimals are rounded half up,
// matching how the value would be displayed. The sign is preserved so
// callers can reject negative amounts with a range message rather
// than a parse message.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, errBadDecimal
	}
	if whole == "" {
		whole = "0"
	}

	var units int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0, errBadDecimal
		}
		units = units*10 + int64(r-'0')
	}
	pence := units * 100

	if hasFrac {
		if frac == "" {
			return 0, errBadDecimal
		}
		for _, r := range frac {
			if r < '0' || r > '9' {
				return 0, errBadDecimal
			}
		}
		switch {
		case len(frac) == 1:
			pence += int64(frac[0]-'0') * 10
		default:
			pence += int64(frac[0]-'0')*10 + int64(frac[1]-'0')
			if len(frac) > 2 && frac[2] >= '5' {
				pence++
			}
		}
	}
	if neg {
		pence = -pence
	}
	return pence, nil
}

// FormatPrice renders pence as the stored display string, currency
// symbol plus exactly two decimals.
func FormatPrice(pence int64) string {
	return fmt.Sprintf("%s%d.%02d", CurrencySymbol, pence/100, pence%100)
}

// StripCurrency converts a stored price back into the plain numeric
// text shown in the edit form. Empty (unknown) prices stay empty.
func StripCurrency(stored string) string {
	return strings.TrimPrefix(stored, CurrencySymbol)
}
