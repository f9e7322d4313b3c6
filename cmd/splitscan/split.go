package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/splitscan/internal/calculator"
	"github.com/mmynk/splitscan/internal/config"
	"github.com/mmynk/splitscan/internal/models"
	"github.com/mmynk/splitscan/internal/money"
)

// splitFlags describes one expense split on the command line.
type splitFlags struct {
	total    string
	people   []string
	strategy string
	shares   []string
	items    []string
}

func (f *splitFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.total, "total", "", "expense total, e.g. 42.50")
	flags.StringSliceVarP(&f.people, "people", "p", nil, "participants, comma separated")
	flags.StringVarP(&f.strategy, "strategy", "s", "even", "split strategy: even, amount, percent or items")
	flags.StringArrayVar(&f.shares, "share", nil, "NAME=VALUE amount or percentage for one participant (repeatable)")
	flags.StringArrayVar(&f.items, "item", nil, "NAME:PRICE:PERSON[,PERSON...] item for the items strategy (repeatable)")
	_ = cmd.MarkFlagRequired("total")
	_ = cmd.MarkFlagRequired("people")
}

var errNegativeAmount = errors.New("amount must not be negative")

// parseAmount parses a non-negative amount given on the command line.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := money.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, errNegativeAmount
	}
	return amount, nil
}

func (f *splitFlags) parseTotal() (decimal.Decimal, error) {
	total, err := parseAmount(f.total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --total %q: %w", f.total, err)
	}
	return total, nil
}

func (f *splitFlags) parseStrategy() (calculator.Strategy, error) {
	switch strings.ToLower(f.strategy) {
	case "even", "":
		return calculator.Even{}, nil
	case "amount":
		amounts := make(map[string]decimal.Decimal, len(f.shares))
		for _, s := range f.shares {
			name, value, err := splitShare(s)
			if err != nil {
				return nil, err
			}
			amount, err := parseAmount(value)
			if err != nil {
				return nil, fmt.Errorf("invalid --share %q: %w", s, err)
			}
			amounts[name] = amount
		}
		return calculator.ByAmount{Amounts: amounts}, nil
	case "percent", "percentage":
		percentages := make(map[string]float64, len(f.shares))
		for _, s := range f.shares {
			name, value, err := splitShare(s)
			if err != nil {
				return nil, err
			}
			pct, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid --share %q: %w", s, err)
			}
			if pct < 0 || math.IsNaN(pct) || math.IsInf(pct, 0) {
				return nil, fmt.Errorf("invalid --share %q: percentage must be a non-negative number", s)
			}
			percentages[name] = pct
		}
		return calculator.ByPercentage{Percentages: percentages}, nil
	case "items":
		items := make([]calculator.Item, 0, len(f.items))
		for _, s := range f.items {
			item, err := parseItem(s)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return calculator.ByItems{Items: items}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want even, amount, percent or items)", f.strategy)
	}
}

// allocations runs the split described by the flags.
func (f *splitFlags) allocations(a *app) ([]models.Allocation, error) {
	total, err := f.parseTotal()
	if err != nil {
		return nil, err
	}
	strategy, err := f.parseStrategy()
	if err != nil {
		return nil, err
	}
	return a.engine.Split(total, f.people, strategy), nil
}

func splitShare(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid --share %q: want NAME=VALUE", s)
	}
	return name, strings.TrimSpace(value), nil
}

func parseItem(s string) (calculator.Item, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return calculator.Item{}, fmt.Errorf("invalid --item %q: want NAME:PRICE:PERSON[,PERSON...]", s)
	}
	amount, err := parseAmount(parts[1])
	if err != nil {
		return calculator.Item{}, fmt.Errorf("invalid --item %q: %w", s, err)
	}
	var assigned []string
	for p := range strings.SplitSeq(parts[2], ",") {
		if p = strings.TrimSpace(p); p != "" {
			assigned = append(assigned, p)
		}
	}
	return calculator.Item{Description: strings.TrimSpace(parts[0]), Amount: amount, AssignedTo: assigned}, nil
}

func newSplitCmd(a *app) *cobra.Command {
	f := &splitFlags{}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a total between participants",
		Example: `  splitscan split --total 30 --people Alice,Bob,Charlie
  splitscan split --total 50 --people Alice,Bob --strategy percent --share Alice=60 --share Bob=40
  splitscan split --total 33 --people Alice,Bob --strategy items --item Pizza:20:Alice,Bob --item Salad:10:Alice`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			allocations, err := f.allocations(a)
			if err != nil {
				return err
			}
			if a.json {
				return a.printJSON(cmd, allocations)
			}

			cfg := a.engine.Config()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, alloc := range allocations {
				fmt.Fprintf(w, "%s\t%s\n", alloc.Participant.Name, formatAmount(cfg, alloc.AmountOwed))
			}
			fmt.Fprintf(w, "Total\t%s\n", formatAmount(cfg, calculator.TotalOwed(allocations)))
			return w.Flush()
		},
	}
	f.register(cmd)
	return cmd
}

func formatAmount(cfg config.Config, amount decimal.Decimal) string {
	return money.Format(amount, cfg.Currency, cfg.Locale)
}
