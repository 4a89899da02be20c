// pkg/currency/currency.go
package currency

import (
	"fmt"
	"strings"
)

// FormatETB renders an amount in the store currency with two decimals and
// thousands separators, e.g. 1234.5 -> "1,234.50 ETB".
func FormatETB(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteString(frac)
	b.WriteString(" ETB")
	return b.String()
}
