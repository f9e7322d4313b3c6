package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitscan/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// wantShares checks names and amounts in order and that nothing else was allocated.
func wantShares(t *testing.T, allocations []models.Allocation, want ...any) {
	t.Helper()
	if len(allocations)*2 != len(want) {
		t.Fatalf("got %d allocations %v, want %d", len(allocations), allocations, len(want)/2)
	}
	for i, a := range allocations {
		name, amount := want[2*i].(string), d(want[2*i+1].(string))
		if a.Participant.Name != name {
			t.Errorf("allocation %d participant = %q, want %q", i, a.Participant.Name, name)
		}
		if !a.AmountOwed.Equal(amount) {
			t.Errorf("%s owes %v, want %v", name, a.AmountOwed, amount)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		participants []string
		strategy     Strategy
		validateFunc func(t *testing.T, allocations []models.Allocation)
	}{
		{
			name:         "even three-way split",
			total:        "30",
			participants: []string{"Alice", "Bob", "Charlie"},
			strategy:     Even{},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				wantShares(t, a, "Alice", "10", "Bob", "10", "Charlie", "10")
			},
		},
		{
			name:         "blank names are dropped",
			total:        "30",
			participants: []string{"Alice", "", "   ", " Bob "},
			strategy:     Even{},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				wantShares(t, a, "Alice", "15", "Bob", "15")
			},
		},
		{
			name:         "rounding residual goes to the last participant",
			total:        "10",
			participants: []string{"Alice", "Bob", "Charlie"},
			strategy:     Even{},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				wantShares(t, a, "Alice", "3.33", "Bob", "3.33", "Charlie", "3.34")
			},
		},
		{
			name:         "repeated names stay distinct participants",
			total:        "10",
			participants: []string{"Alice", "Alice"},
			strategy:     Even{},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				wantShares(t, a, "Alice", "5", "Alice", "5")
			},
		},
		{
			name:         "zero total yields nothing",
			total:        "0",
			participants: []string{"Alice", "Bob"},
			strategy:     Even{},
		},
		{
			name:         "negative total yields nothing",
			total:        "-5",
			participants: []string{"Alice"},
			strategy:     Even{},
		},
		{
			name:         "no participants yields nothing",
			total:        "10",
			participants: nil,
			strategy:     Even{},
		},
		{
			name:         "only blank participants yields nothing",
			total:        "10",
			participants: []string{"", "  "},
			strategy:     Even{},
		},
		{
			name:         "nil strategy yields nothing",
			total:        "10",
			participants: []string{"Alice"},
			strategy:     nil,
		},
		{
			name:         "percentages",
			total:        "200",
			participants: []string{"Alice", "Bob", "Charlie"},
			strategy:     ByPercentage{Percentages: map[string]float64{"Alice": 50, "Bob": 30, "Charlie": 20}},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				wantShares(t, a, "Alice", "100", "Bob", "60", "Charlie", "40")
				if a[1].Percentage == nil || *a[1].Percentage != 30 {
					t.Errorf("Bob percentage = %v, want 30", a[1].Percentage)
				}
			},
		},
		{
			name:         "percentages reconcile to the total",
			total:        "10",
			participants: []string{"Alice", "Bob", "Charlie"},
			strategy:     ByPercentage{Percentages: map[string]float64{"Alice": 33.33, "Bob": 33.33, "Charlie": 33.34}},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				wantShares(t, a, "Alice", "3.33", "Bob", "3.33", "Charlie", "3.34")
			},
		},
		{
			name:         "participants without a percentage are skipped",
			total:        "40",
			participants: []string{"Alice", "Bob"},
			strategy:     ByPercentage{Percentages: map[string]float64{"Alice": 50}},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				wantShares(t, a, "Alice", "20")
			},
		},
		{
			name:         "explicit amounts",
			total:        "50",
			participants: []string{"Alice", "Bob"},
			strategy:     ByAmount{Amounts: map[string]decimal.Decimal{"Alice": d("20"), "Bob": d("30")}},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				wantShares(t, a, "Alice", "20", "Bob", "30")
			},
		},
		{
			name:         "explicit amounts need not cover the total",
			total:        "50",
			participants: []string{"Alice", "Bob", "Charlie"},
			strategy:     ByAmount{Amounts: map[string]decimal.Decimal{"Alice": d("5.555"), "Charlie": d("-1")}},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				wantShares(t, a, "Alice", "5.555")
			},
		},
		{
			name:         "items with proportional tax",
			total:        "33",
			participants: []string{"Alice", "Bob"},
			strategy: ByItems{Items: []Item{
				{Description: "Pizza", Amount: d("20"), AssignedTo: []string{"Alice", "Bob"}},
				{Description: "Salad", Amount: d("10"), AssignedTo: []string{"Alice"}},
			}},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				// Alice: 20 of 30 subtotal, Bob: 10 of 30
				wantShares(t, a, "Alice", "22", "Bob", "11")
			},
		},
		{
			name:         "items leave unassigned participants at zero",
			total:        "22",
			participants: []string{"Alice", "Bob"},
			strategy: ByItems{Items: []Item{
				NewItem(models.LineItem{Name: "Pizza", UnitPrice: d("10"), Quantity: 2}, "Alice"),
			}},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				wantShares(t, a, "Alice", "22", "Bob", "0")
			},
		},
		{
			name:         "items shared three ways reconcile",
			total:        "10",
			participants: []string{"Alice", "Bob", "Charlie"},
			strategy: ByItems{Items: []Item{
				{Description: "Nachos", Amount: d("10"), AssignedTo: []string{"Alice", "Bob", "Charlie"}},
			}},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				wantShares(t, a, "Alice", "3.33", "Bob", "3.33", "Charlie", "3.34")
			},
		},
		{
			name:         "no assigned items falls back to even",
			total:        "33",
			participants: []string{"Alice", "Bob"},
			strategy: ByItems{Items: []Item{
				{Description: "Mystery", Amount: d("10"), AssignedTo: []string{"Dave"}},
			}},
			validateFunc: func(t *testing.T, a []models.Allocation) {
				wantShares(t, a, "Alice", "16.5", "Bob", "16.5")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocations := Split(d(tt.total), tt.participants, tt.strategy)
			if allocations == nil {
				t.Fatal("Split returned nil, want a non-nil slice")
			}
			if tt.validateFunc == nil {
				if len(allocations) != 0 {
					t.Errorf("got %v, want no allocations", allocations)
				}
				return
			}
			tt.validateFunc(t, allocations)
		})
	}
}

func TestSplitSumsToTotal(t *testing.T) {
	for _, total := range []string{"0.01", "0.05", "1", "7.77", "10", "99.99", "100", "1234.56"} {
		for n := 1; n <= 7; n++ {
			participants := make([]string, n)
			for i := range participants {
				participants[i] = string(rune('A' + i))
			}
			allocations := Split(d(total), participants, Even{})
			if got := TotalOwed(allocations); !got.Equal(d(total)) {
				t.Errorf("Split(%s, %d people) sums to %v", total, n, got)
			}
			for _, a := range allocations {
				if a.AmountOwed.IsNegative() {
					t.Errorf("Split(%s, %d people) has negative share %v", total, n, a.AmountOwed)
				}
			}
		}
	}
}

func TestSplitMinorZeroDigitCurrency(t *testing.T) {
	allocations := SplitMinor(d("1000"), []string{"Aiko", "Ben", "Chen"}, Even{}, 0)
	wantShares(t, allocations, "Aiko", "333", "Ben", "333", "Chen", "334")
}

func TestStrategyName(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     string
	}{
		{Even{}, "even"},
		{ByAmount{}, "amount"},
		{ByPercentage{}, "percentage"},
		{ByItems{}, "items"},
	}
	for _, tt := range tests {
		if got := tt.strategy.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}
