package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders money as "<symbol> <grouped integer><sep><2 digits>".
type Formatter struct {
	Symbol     string
	Tag        language.Tag // drives digit grouping of the integer part
	DecimalSep string
}

// BRL is the formatter used for every price on the screen.
var BRL = Formatter{Symbol: "R$", Tag: language.BrazilianPortuguese, DecimalSep: ","}

func (f Formatter) Format(v decimal.Decimal) string {
	r := v.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	// Grouped from the digit string; amounts may exceed int64.
	fixed := r.StringFixed(2)
	dot := strings.IndexByte(fixed, '.')
	whole, cents := fixed[:dot], fixed[dot+1:]
	return sign + f.Symbol + " " + groupDigits(whole, f.groupSeparator()) + f.DecimalSep + cents
}

// groupSeparator asks the locale how it writes a thousand; "" means no grouping.
func (f Formatter) groupSeparator() string {
	return strings.Trim(message.NewPrinter(f.Tag).Sprintf("%d", 1000), "0123456789")
}

func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatValue formats a price with BRL.
func FormatValue(v decimal.Decimal) string {
	return BRL.Format(v)
}
