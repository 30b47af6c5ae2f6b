// Package money formatea importes en Rupiah con la convención local (punto de miles).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

// Rupiah devuelve "Rp15.000" para 15000. Los decimales se muestran solo si existen (máximo 2).
func Rupiah(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return "Rp" + printer.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return "Rp" + printer.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}

// Number agrupa miles sin prefijo de moneda (stock, contadores).
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}
