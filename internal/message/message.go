// Package message renders payment-request text for allocations.
//
// Templates are plain strings with {placeholder} markers. Supported
// placeholders are {name}, {amount}, {expense}, {date}, {payer}, {items} and
// {dueDate}; group messages also understand {breakdown} and {total}. Any
// placeholder without a value renders as the empty string.
package message

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/mmynk/splitscan/internal/models"
	"github.com/mmynk/splitscan/internal/money"
)

// DateLayout is used for {date} and {dueDate}.
const DateLayout = "Jan 2, 2006"

// Template identifies one of the built-in message styles.
type Template int

const (
	Standard Template = iota
	Friendly
	Formal
	Detailed
)

// Templates lists every built-in template in display order.
var Templates = []Template{Standard, Friendly, Formal, Detailed}

func (t Template) String() string {
	switch t {
	case Friendly:
		return "friendly"
	case Formal:
		return "formal"
	case Detailed:
		return "detailed"
	default:
		return "standard"
	}
}

// ParseTemplate looks up a template by its case-insensitive name.
func ParseTemplate(name string) (Template, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, t := range Templates {
		if t.String() == want {
			return t, nil
		}
	}
	return Standard, fmt.Errorf("unknown template %q", name)
}

type layout struct {
	single string
	group  string
	// listed renders the group breakdown one participant per line.
	listed bool
}

var layouts = map[Template]layout{
	Standard: {
		single: "Hi {name}, you owe {amount} for {expense}. Please pay {payer}.",
		group:  "{expense} on {date}: {breakdown}. Total {total}, paid by {payer}.",
	},
	Friendly: {
		single: "Hey {name}! Your share of {expense} ({date}) comes to {amount}. Send it to {payer} when you can. Thanks!",
		group:  "Splitting {expense}! {breakdown}. That's {total} altogether, all going to {payer}. Thanks everyone!",
	},
	Formal: {
		single: "Dear {name},\n\nThis is a reminder that {amount} is owed to {payer} for {expense} dated {date}. Kindly settle the amount by {dueDate}.\n\nRegards,\n{payer}",
		group:  "Statement for {expense} dated {date}\n\n{breakdown}\n\nTotal: {total}\nPayable to {payer} by {dueDate}.",
		listed: true,
	},
	Detailed: {
		single: "Hi {name},\n\nExpense: {expense}\nDate: {date}\nPaid by: {payer}\nItems: {items}\nYour share: {amount}\nDue: {dueDate}",
		group:  "Expense: {expense}\nDate: {date}\nPaid by: {payer}\nItems: {items}\n\n{breakdown}\n\nTotal: {total}\nDue: {dueDate}",
		listed: true,
	},
}

// Context carries the fields shared by every message for one expense.
// A zero Date or DueDate renders as an empty string.
type Context struct {
	ExpenseName string
	Date        time.Time
	Payer       string
	DueDate     time.Time
	Items       []string
	Currency    string
	Locale      language.Tag
}

// Render produces the message asking one participant for their share.
func Render(t Template, a models.Allocation, ctx Context) string {
	vars := ctx.vars()
	vars["name"] = a.Participant.Name
	vars["amount"] = ctx.format(a.AmountOwed)
	return RenderString(layoutFor(t).single, vars)
}

// RenderGroup produces one message summarizing every allocation.
func RenderGroup(t Template, allocations []models.Allocation, ctx Context) string {
	l := layoutFor(t)
	parts := make([]string, len(allocations))
	total := decimal.Zero
	for i, a := range allocations {
		total = total.Add(a.AmountOwed)
		if l.listed {
			parts[i] = fmt.Sprintf("- %s: %s", a.Participant.Name, ctx.format(a.AmountOwed))
		} else {
			parts[i] = a.Participant.Name + " " + ctx.format(a.AmountOwed)
		}
	}
	sep := ", "
	if l.listed {
		sep = "\n"
	}

	vars := ctx.vars()
	vars["breakdown"] = strings.Join(parts, sep)
	vars["total"] = ctx.format(total)
	return RenderString(l.group, vars)
}

var rePlaceholder = regexp.MustCompile(`\{(\w+)\}`)

// RenderString substitutes {key} markers in text from vars.
// Unknown keys become empty strings.
func RenderString(text string, vars map[string]string) string {
	return rePlaceholder.ReplaceAllStringFunc(text, func(m string) string {
		return vars[m[1:len(m)-1]]
	})
}

func layoutFor(t Template) layout {
	if l, ok := layouts[t]; ok {
		return l
	}
	return layouts[Standard]
}

func (c Context) vars() map[string]string {
	return map[string]string{
		"expense": c.ExpenseName,
		"date":    formatDate(c.Date),
		"payer":   c.Payer,
		"dueDate": formatDate(c.DueDate),
		"items":   strings.Join(c.Items, ", "),
	}
}

func (c Context) format(amount decimal.Decimal) string {
	tag := c.Locale
	if tag == language.Und {
		tag = language.AmericanEnglish
	}
	return money.Format(amount, c.Currency, tag)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
