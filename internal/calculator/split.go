// Package calculator divides an expense total among participants.
package calculator

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitscan/internal/models"
)

// DefaultMinorDigits is the rounding granularity used by Split (cents).
const DefaultMinorDigits = 2

// Strategy selects how a total is divided. It is implemented only by Even,
// ByAmount, ByPercentage and ByItems.
type Strategy interface {
	// Name is a short identifier for logs and metrics.
	Name() string
	isStrategy()
}

// Even splits the total equally among all participants.
type Even struct{}

// ByAmount gives each named participant exactly the listed amount.
// The amounts are not required to add up to the total.
type ByAmount struct {
	Amounts map[string]decimal.Decimal
}

// ByPercentage gives each named participant total × percent / 100.
type ByPercentage struct {
	Percentages map[string]float64
}

// ByItems splits the total in proportion to the items each participant took.
type ByItems struct {
	Items []Item
}

// Item represents a single item on the bill and who shares it.
type Item struct {
	Description string
	Amount      decimal.Decimal // line total
	AssignedTo  []string
}

// NewItem builds an Item from a parsed line item, using its line total.
func NewItem(li models.LineItem, assignedTo ...string) Item {
	return Item{Description: li.Name, Amount: li.LineTotal(), AssignedTo: assignedTo}
}

func (Even) Name() string         { return "even" }
func (ByAmount) Name() string     { return "amount" }
func (ByPercentage) Name() string { return "percentage" }
func (ByItems) Name() string      { return "items" }

func (Even) isStrategy()         {}
func (ByAmount) isStrategy()     {}
func (ByPercentage) isStrategy() {}
func (ByItems) isStrategy()      {}

// Split divides total among participants and rounds every share to cents.
// See SplitMinor.
func Split(total decimal.Decimal, participants []string, strategy Strategy) []models.Allocation {
	return SplitMinor(total, participants, strategy, DefaultMinorDigits)
}

// SplitMinor divides total among participants, rounding shares to the given
// number of minor-unit digits.
//
// Names are trimmed and blank names are dropped; repeated names stay distinct
// participants. A non-positive total or an empty participant list yields an
// empty result. For Even, ByPercentage and ByItems the rounding residual is
// added to the last share so the shares add up exactly. Participants missing
// from a ByAmount or ByPercentage map get no allocation.
func SplitMinor(total decimal.Decimal, participants []string, strategy Strategy, places int32) []models.Allocation {
	names := cleanParticipants(participants)
	if len(names) == 0 || !total.IsPositive() {
		return []models.Allocation{}
	}

	switch s := strategy.(type) {
	case Even:
		return splitEven(total, names, places)
	case ByAmount:
		return splitByAmount(names, s)
	case ByPercentage:
		return splitByPercentage(total, names, s, places)
	case ByItems:
		return splitByItems(total, names, s, places)
	default:
		return []models.Allocation{}
	}
}

// TotalOwed returns the sum of AmountOwed across allocations.
func TotalOwed(allocations []models.Allocation) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range allocations {
		sum = sum.Add(a.AmountOwed)
	}
	return sum
}

func cleanParticipants(participants []string) []string {
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func splitEven(total decimal.Decimal, names []string, places int32) []models.Allocation {
	share := total.Div(decimal.NewFromInt(int64(len(names))))
	allocations := make([]models.Allocation, len(names))
	for i, name := range names {
		allocations[i] = allocation(name, share.Round(places))
	}
	reconcile(allocations, total)
	return allocations
}

func splitByAmount(names []string, s ByAmount) []models.Allocation {
	allocations := make([]models.Allocation, 0, len(names))
	for _, name := range names {
		amount, ok := s.Amounts[name]
		if !ok || amount.IsNegative() {
			continue
		}
		allocations = append(allocations, allocation(name, amount))
	}
	return allocations
}

func splitByPercentage(total decimal.Decimal, names []string, s ByPercentage, places int32) []models.Allocation {
	hundred := decimal.NewFromInt(100)
	allocations := make([]models.Allocation, 0, len(names))
	sumPct := decimal.Zero
	for _, name := range names {
		pct, ok := s.Percentages[name]
		if !ok || pct < 0 {
			continue
		}
		p := decimal.NewFromFloat(pct)
		sumPct = sumPct.Add(p)
		a := allocation(name, total.Mul(p).Div(hundred).Round(places))
		a.Percentage = &pct
		allocations = append(allocations, a)
	}
	reconcile(allocations, total.Mul(sumPct).Div(hundred).Round(places))
	return allocations
}

// splitByItems follows person_total = person_subtotal × (total / assigned_subtotal),
// which spreads tax and tip in proportion to what each person took.
func splitByItems(total decimal.Decimal, names []string, s ByItems, places int32) []models.Allocation {
	subtotals := make([]decimal.Decimal, len(names))
	assigned := decimal.Zero

	for _, item := range s.Items {
		if !item.Amount.IsPositive() {
			continue
		}
		var holders []int
		for i, name := range names {
			if slices.Contains(item.AssignedTo, name) {
				holders = append(holders, i)
			}
		}
		if len(holders) == 0 {
			continue
		}
		perPerson := item.Amount.Div(decimal.NewFromInt(int64(len(holders))))
		for _, i := range holders {
			subtotals[i] = subtotals[i].Add(perPerson)
		}
		assigned = assigned.Add(item.Amount)
	}

	if assigned.IsZero() {
		return splitEven(total, names, places)
	}

	allocations := make([]models.Allocation, len(names))
	for i, name := range names {
		allocations[i] = allocation(name, subtotals[i].Mul(total).Div(assigned).Round(places))
	}
	reconcile(allocations, total)
	return allocations
}

func allocation(name string, amount decimal.Decimal) models.Allocation {
	return models.Allocation{Participant: models.Participant{Name: name}, AmountOwed: amount}
}

// reconcile moves the difference between target and the sum of shares onto
// the trailing shares: a surplus goes to the last positive share, a shortfall
// is taken from the last shares without driving any of them below zero.
func reconcile(allocations []models.Allocation, target decimal.Decimal) {
	residual := target.Sub(TotalOwed(allocations))
	if residual.IsZero() || len(allocations) == 0 {
		return
	}
	if residual.IsPositive() {
		last := len(allocations) - 1
		for i := last; i >= 0; i-- {
			if allocations[i].AmountOwed.IsPositive() {
				last = i
				break
			}
		}
		allocations[last].AmountOwed = allocations[last].AmountOwed.Add(residual)
		return
	}
	for i := len(allocations) - 1; i >= 0 && residual.IsNegative(); i-- {
		take := decimal.Min(allocations[i].AmountOwed, residual.Neg())
		if !take.IsPositive() {
			continue
		}
		allocations[i].AmountOwed = allocations[i].AmountOwed.Sub(take)
		residual = residual.Add(take)
	}
}
