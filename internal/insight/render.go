package insight

import (
	"fmt"

	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

var (
	defaultCatalog = mustCatalog()
	matcher        = language.NewMatcher(Languages)
)

func mustCatalog() *catalog.Builder {
	b, err := newCatalog()
	if err != nil {
		panic(fmt.Sprintf("building insight catalog: %v", err))
	}
	return b
}

// Printer renders insights in a language with money in a currency.
type Printer struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewPrinter returns a printer. Languages without a translation fall back
// to English.
func NewPrinter(tag language.Tag, unit currency.Unit) *Printer {
	_, index, _ := matcher.Match(tag)

	return &Printer{
		printer: message.NewPrinter(Languages[index], message.Catalog(defaultCatalog)),
		unit:    unit,
	}
}

// Render returns a copy of the insights with title and message set.
func (p *Printer) Render(insights []Insight) []Insight {
	rendered := make([]Insight, len(insights))
	for i, ins := range insights {
		rendered[i] = p.RenderOne(ins)
	}

	return rendered
}

// RenderOne sets title and message of a single insight.
func (p *Printer) RenderOne(ins Insight) Insight {
	t, ok := messages[language.English][ins.Key]
	if !ok {
		return ins
	}

	args := make([]any, 0, len(t.args))
	for _, name := range t.args {
		args = append(args, p.arg(name, ins.Vars[name]))
	}

	ins.Title = p.printer.Sprintf(titleKey(ins.Key))
	ins.Message = p.printer.Sprintf(messageKey(ins.Key), args...)

	return ins
}

// ScopeName returns the display name of a scope.
func (p *Printer) ScopeName(s types.Scope) string {
	return p.printer.Sprintf(scopeKey(s))
}

func (p *Printer) arg(name string, v any) any {
	switch v := v.(type) {
	case types.Scope:
		return p.ScopeName(v)
	case types.Category:
		return p.ScopeName(v.Scope())
	case types.Day:
		return v.String()
	case decimal.Decimal:
		switch name {
		case "burn", "pace":
			return number.Percent(v.InexactFloat64(), number.MaxFractionDigits(0))
		default:
			return currency.Symbol(p.unit.Amount(v.InexactFloat64()))
		}
	}

	return v
}
