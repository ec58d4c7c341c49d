package rendering

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/alokyadav9045/travellr-sub002/pkg/utils"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultCurrencySymbol    = "$"
	DefaultCurrencyThreshold = 1000
)

// Formatter aplica as regras de exibição dos valores do relatório
type Formatter struct {
	CurrencySymbol string
	Threshold      float64
	printer        *message.Printer
}

func NewFormatter(currencySymbol string, threshold float64) *Formatter {
	if currencySymbol == "" {
		currencySymbol = DefaultCurrencySymbol
	}

	return &Formatter{
		CurrencySymbol: currencySymbol,
		Threshold:      threshold,
		printer:        message.NewPrinter(language.English),
	}
}

// FormatSummaryValue exibe como moeda apenas valores que, arredondados, ficam acima do limite
func (f *Formatter) FormatSummaryValue(value float64) string {
	rounded := utils.RoundWithTwoDecimalPlace(value)
	if rounded > f.Threshold {
		return f.CurrencySymbol + f.printer.Sprintf("%.2f", rounded)
	}
	return formatNumber(rounded)
}

// FormatFieldValue converte o valor de um campo de linha para texto
func (f *Formatter) FormatFieldValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case string:
		if v == "" {
			return "-"
		}
		return v
	case float64:
		return formatNumber(v)
	case float32:
		return formatNumber(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case time.Time:
		return v.Format(utils.DateLayout)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(utils.RoundWithTwoDecimalPlace(value), 'f', -1, 64)
}

// Humanize transforma chaves camelCase em rótulos: "totalRevenue" -> "Total Revenue"
func Humanize(key string) string {
	if key == "" {
		return ""
	}

	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
