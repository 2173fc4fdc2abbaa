// Package export implementa los exportadores de reportes a CSV y XLSX.
package export

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BRL formatea un valor en reales con separadores pt-BR, ej: "R$ 1.234,50".
func BRL(v decimal.Decimal) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("R$ %.2f", v.Round(2).InexactFloat64())
}

// Number formatea una cantidad con separadores pt-BR (sin decimales si es entera).
func Number(v decimal.Decimal) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	if v.IsInteger() {
		return p.Sprintf("%d", v.IntPart())
	}
	return p.Sprintf("%.2f", v.InexactFloat64())
}

// Headers de las columnas exportadas, en el orden de las filas.
var (
	DeliveryHeaders = []string{
		"Cliente", "Produto", "Quantidade", "Valor", "Data", "Horário",
		"Status", "Motorista", "Veículo", "Endereço", "Observações",
	}
	ExpenseHeaders = []string{"Nome", "Categoria", "Valor", "Data", "Observações"}
	SummaryHeaders = []string{"Chave", "Quantidade de registros", "Quantidade", "Total", "Média"}
)
