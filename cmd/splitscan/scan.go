package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNoRecord = errors.New("payload carries no receipt data; enter the receipt manually")

func newScanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <payload>",
		Short: "Decode a scanned QR or barcode payload",
		Long: `Decodes the string read from a QR code or barcode. JSON receipts, bare
transaction ids and loose "key: value" text are recognized in that order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, ok := a.engine.ScanPayload(args[0])
			if !ok {
				return errNoRecord
			}
			if a.json {
				return a.printJSON(cmd, record)
			}
			return a.printRecord(cmd, record)
		},
	}
}
