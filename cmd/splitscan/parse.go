package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitscan/internal/models"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Extract line items from receipt text",
		Long: `Reads OCR or pasted receipt text from a file, or from stdin when the
argument is "-" or omitted, and prints the priced line items, the vendor
and the declared total.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			text, err := readInput(cmd, name)
			if err != nil {
				return err
			}

			record := a.engine.ParseReceipt(text)
			if a.json {
				return a.printJSON(cmd, record)
			}
			return a.printRecord(cmd, record)
		},
	}
}

func readInput(cmd *cobra.Command, name string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return "", fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

func (a *app) printRecord(cmd *cobra.Command, record models.ReceiptRecord) error {
	cfg := a.engine.Config()
	out := cmd.OutOrStdout()

	if record.VendorName != "" {
		fmt.Fprintf(out, "Vendor: %s\n", record.VendorName)
	}
	if record.TransactionID != "" {
		fmt.Fprintf(out, "Transaction: %s (%s)\n", record.TransactionID, record.SourceKind)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, item := range record.Items {
		name := item.Name
		if item.Quantity > 1 {
			name = fmt.Sprintf("%d x %s", item.Quantity, item.Name)
		}
		fmt.Fprintf(w, "%s\t%s\n", name, formatAmount(cfg, item.UnitPrice))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Items total: %s\n", formatAmount(cfg, record.ItemsTotal()))
	if record.DeclaredTotal != nil {
		fmt.Fprintf(out, "Declared total: %s\n", formatAmount(cfg, *record.DeclaredTotal))
	}
	return nil
}
