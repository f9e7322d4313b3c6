package calculator

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// Expense is a paid bill: who paid it and how it is shared.
type Expense struct {
	Payer        string
	Total        decimal.Decimal
	Participants []string
	Strategy     Strategy
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	Name       string
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid  decimal.Decimal
	TotalOwed  decimal.Decimal
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// Settlement is a repayment already made from one member to another.
type Settlement struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// CalculateBalances computes balances across expenses and settlements.
//
// For each expense the payer contributed +total and each participant owes
// their split. A settlement credits the sender and debits the receiver.
// Debts are then simplified by greedily matching the largest debtor with the
// largest creditor. Both results are sorted so the output is deterministic.
func CalculateBalances(expenses []Expense, settlements []Settlement) ([]MemberBalance, []DebtEdge) {
	balances := make(map[string]*MemberBalance)
	member := func(name string) *MemberBalance {
		if b, ok := balances[name]; ok {
			return b
		}
		b := &MemberBalance{Name: name}
		balances[name] = b
		return b
	}

	for _, e := range expenses {
		// Skip expenses without payer (can't calculate balances)
		if e.Payer == "" {
			continue
		}
		strategy := e.Strategy
		if strategy == nil {
			strategy = Even{}
		}
		allocations := Split(e.Total, e.Participants, strategy)
		if len(allocations) == 0 {
			continue
		}

		payer := member(e.Payer)
		payer.TotalPaid = payer.TotalPaid.Add(TotalOwed(allocations))
		for _, a := range allocations {
			m := member(a.Participant.Name)
			m.TotalOwed = m.TotalOwed.Add(a.AmountOwed)
		}
	}

	for _, s := range settlements {
		if s.From == "" || s.To == "" || !s.Amount.IsPositive() {
			continue
		}
		from, to := member(s.From), member(s.To)
		from.TotalPaid = from.TotalPaid.Add(s.Amount)
		to.TotalOwed = to.TotalOwed.Add(s.Amount)
	}

	memberBalances := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		b.NetBalance = b.TotalPaid.Sub(b.TotalOwed)
		memberBalances = append(memberBalances, *b)
	}
	slices.SortFunc(memberBalances, func(a, b MemberBalance) int { return cmp.Compare(a.Name, b.Name) })

	return memberBalances, simplifyDebts(memberBalances)
}

type position struct {
	name   string
	amount decimal.Decimal
}

func simplifyDebts(balances []MemberBalance) []DebtEdge {
	var creditors, debtors []position
	for _, b := range balances {
		switch {
		case b.NetBalance.IsPositive():
			creditors = append(creditors, position{b.Name, b.NetBalance})
		case b.NetBalance.IsNegative():
			debtors = append(debtors, position{b.Name, b.NetBalance.Neg()})
		}
	}
	largestFirst := func(a, b position) int {
		if c := b.amount.Cmp(a.amount); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	}
	slices.SortFunc(creditors, largestFirst)
	slices.SortFunc(debtors, largestFirst)

	edges := []DebtEdge{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)
		if amount.IsPositive() {
			edges = append(edges, DebtEdge{From: debtors[i].name, To: creditors[j].name, Amount: amount})
		}
		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)
		if !debtors[i].amount.IsPositive() {
			i++
		}
		if !creditors[j].amount.IsPositive() {
			j++
		}
	}
	return edges
}
