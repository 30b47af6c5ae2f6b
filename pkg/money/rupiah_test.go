package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-umkm/pkg/money"
)

func TestRupiah(t *testing.T) {
	cases := map[string]string{
		"0":       "Rp0",
		"500":     "Rp500",
		"15000":   "Rp15.000",
		"1250000": "Rp1.250.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, money.Rupiah(decimal.RequireFromString(in)), "importe %s", in)
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "10", money.Number(10))
	assert.Equal(t, "12.345", money.Number(12345))
}
