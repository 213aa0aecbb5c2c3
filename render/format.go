package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatScore formats v with two decimals and Brazilian separators, e.g. 1.234,56
func FormatScore(v float64) string {
	return ptBR.Sprintf("%.2f", v)
}
