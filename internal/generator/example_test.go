package generator_test

import (
	"fmt"

	"github.com/shopspring/decimal"

	"apgen/internal/generator"
	"apgen/pkg/models"
)

func ExampleTermsDays() {
	fmt.Println(generator.TermsDays("Net 45"))
	fmt.Println(generator.TermsDays("2% 10 Net 30"))
	fmt.Println(generator.TermsDays("Due on receipt"))
	// Output:
	// 45
	// 30
	// 30
}

func ExampleOrderTerms() {
	fmt.Println(generator.OrderTerms("30"))
	fmt.Println(generator.OrderTerms("2% 10 Net 30"))
	// Output:
	// Net 30
	// 2% 10 Net 30
}

func ExampleApplyEarlyPaymentDiscount() {
	invoiceDate, _ := models.ParseDate("2024-03-01")
	total := decimal.RequireFromString("1250.00")

	amount, ok := generator.ApplyEarlyPaymentDiscount(total, "2% 10 Net 30", invoiceDate, invoiceDate.AddDays(7))
	fmt.Println(amount.StringFixed(2), ok)

	amount, ok = generator.ApplyEarlyPaymentDiscount(total, "2% 10 Net 30", invoiceDate, invoiceDate.AddDays(12))
	fmt.Println(amount.StringFixed(2), ok)
	// Output:
	// 1225.00 true
	// 1250.00 false
}
