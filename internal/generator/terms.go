package generator

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"apgen/pkg/models"
)

const (
	defaultTermsDays    = 30
	earlyDiscountMarker = "2% 10"
	earlyDiscountDays   = 10
)

var earlyDiscountFactor = decimal.RequireFromString("0.98")

// OrderTerms turns vendor payment terms into purchase order terms. A bare day
// count such as "30" becomes "Net 30"; anything else is kept as is.
func OrderTerms(vendorTerms string) string {
	if isDigits(vendorTerms) {
		return "Net " + vendorTerms
	}
	return vendorTerms
}

// TermsDays returns the payment period of terms: the trailing integer token
// when the terms have at least two tokens, otherwise 30.
func TermsDays(terms string) int {
	fields := strings.Fields(terms)
	if len(fields) >= 2 && isDigits(fields[len(fields)-1]) {
		if days, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
			return days
		}
	}
	return defaultTermsDays
}

// ApplyEarlyPaymentDiscount applies the 2% discount of "2% 10" terms when
// paidOn is within ten days of the invoice date. It reports whether the
// discount applied.
func ApplyEarlyPaymentDiscount(total decimal.Decimal, terms string, invoiceDate, paidOn models.Date) (decimal.Decimal, bool) {
	if !strings.Contains(terms, earlyDiscountMarker) || invoiceDate.DaysUntil(paidOn) > earlyDiscountDays {
		return total, false
	}
	return total.Mul(earlyDiscountFactor).Round(2), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
