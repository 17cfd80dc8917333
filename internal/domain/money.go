package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// NewMoney converts integer cents into an exact decimal amount in dollars.
func NewMoney(cents int64) Money {
	return Money{
		Amount:   decimal.New(cents, -2),
		Currency: currency.USD,
	}
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders cents as "$1,452.12".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	dollars := pricePrinter.Sprintf("%d", cents/100)

	return fmt.Sprintf("%s$%s.%02d", sign, dollars, cents%100)
}
