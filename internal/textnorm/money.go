package textnorm

import (
	"golang.org/x/text/message"
)

// Money formats a price in reais: 1199.9 becomes "R$ 1.199,90".
func Money(v float64) string {
	return message.NewPrinter(Language).Sprintf("R$ %.2f", v)
}
