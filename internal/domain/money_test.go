package domain_test

import (
	"testing"

	"github.com/nikolayk812/garage-sale/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{name: "zero", cents: 0, want: "$0.00"},
		{name: "one cent", cents: 1, want: "$0.01"},
		{name: "sub-dollar", cents: 12, want: "$0.12"},
		{name: "dollar and cents", cents: 123, want: "$1.23"},
		{name: "round dollar", cents: 100, want: "$1.00"},
		{name: "thousands", cents: 145212, want: "$1,452.12"},
		{name: "just below grouping", cents: 99999, want: "$999.99"},
		{name: "trillion cents", cents: 1_000_000_000_000, want: "$10,000,000,000.00"},
		{name: "max int64", cents: 9_223_372_036_854_775_807, want: "$92,233,720,368,547,758.07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.FormatPrice(tt.cents))
		})
	}
}

func TestNewMoney(t *testing.T) {
	m := domain.NewMoney(145212)

	assert.True(t, decimal.RequireFromString("1452.12").Equal(m.Amount))
	assert.Equal(t, currency.USD.String(), m.Currency.String())
}
