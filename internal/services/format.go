package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Locale holds the fixed presentation rules for dates and money.
type Locale struct {
	Months           [12]string
	DecimalSeparator string
	CurrencySymbol   string
	DateUnknown      string
	ValueUnknown     string
	Location         *time.Location
}

// BrazilianPortuguese is the locale the event pages and messages are written in.
func BrazilianPortuguese(loc *time.Location) Locale {
	if loc == nil {
		loc = time.UTC
	}
	return Locale{
		Months: [12]string{
			"janeiro", "fevereiro", "março", "abril", "maio", "junho",
			"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
		},
		DecimalSeparator: ",",
		CurrencySymbol:   "R$",
		DateUnknown:      "A confirmar",
		ValueUnknown:     "Consultar",
		Location:         loc,
	}
}

// FormatDate renders t as "10 de março de 2025 às 19:00" in the locale's zone.
// A nil date renders as DateUnknown.
func (l Locale) FormatDate(t *time.Time) string {
	if t == nil {
		return l.DateUnknown
	}
	loc := l.Location
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return fmt.Sprintf("%02d de %s de %d às %02d:%02d",
		lt.Day(), l.Months[lt.Month()-1], lt.Year(), lt.Hour(), lt.Minute())
}

// FormatAmount renders v with exactly two decimals and the locale's separator,
// without digit grouping ("1234,50"). ok is false for absent, negative or non-finite values.
func (l Locale) FormatAmount(v *float64) (string, bool) {
	if v == nil || *v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return "", false
	}
	s := strconv.FormatFloat(*v, 'f', 2, 64)
	return strings.Replace(s, ".", l.DecimalSeparator, 1), true
}

// FormatValue renders v as money ("R$ 50,00"), or ValueUnknown when it cannot be shown.
func (l Locale) FormatValue(v *float64) string {
	amount, ok := l.FormatAmount(v)
	if !ok {
		return l.ValueUnknown
	}
	return l.CurrencySymbol + " " + amount
}
