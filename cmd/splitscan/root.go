package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/mmynk/splitscan/internal/config"
	"github.com/mmynk/splitscan/internal/service"
	"github.com/mmynk/splitscan/pkg/logging"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	currency string
	locale   string
	verbose  bool
	json     bool

	logger   *slog.Logger
	registry *prometheus.Registry
	engine   *service.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "splitscan",
		Short: "Parse receipts and split expenses",
		Long: `splitscan extracts line items from OCR'd receipt text and QR or barcode
payloads, then divides a total between participants evenly, by amount,
by percentage or by the items each person took.

Settings come from SPLITSCAN_CURRENCY, SPLITSCAN_LOCALE, SPLITSCAN_LOG_LEVEL,
SPLITSCAN_DEDUP_THRESHOLD and SPLITSCAN_PRICE_TOLERANCE; flags override them.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.reportMetrics,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.currency, "currency", "", "ISO currency code (default from SPLITSCAN_CURRENCY or USD)")
	flags.StringVar(&a.locale, "locale", "", "BCP 47 locale for amounts (default from SPLITSCAN_LOCALE or en-US)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.json, "json", false, "output results as JSON")

	root.AddCommand(
		newParseCmd(a),
		newScanCmd(a),
		newSplitCmd(a),
		newMessageCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if a.currency != "" {
		cfg.Currency = strings.ToUpper(a.currency)
	}
	if a.locale != "" {
		tag, err := language.Parse(a.locale)
		if err != nil {
			return fmt.Errorf("invalid --locale %q: %w", a.locale, err)
		}
		cfg.Locale = tag
	}
	if a.verbose {
		cfg.LogLevel = slog.LevelDebug
	}

	a.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	a.registry = prometheus.NewRegistry()
	a.engine = service.NewEngine(cfg, a.logger, a.registry)
	return nil
}

// reportMetrics logs the counters collected during the run at debug level.
func (a *app) reportMetrics(_ *cobra.Command, _ []string) {
	if a.registry == nil || !a.verbose {
		return
	}
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Warn("Failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{"metric", mf.GetName()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				attrs = append(attrs, "value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				attrs = append(attrs, "count", m.GetHistogram().GetSampleCount(), "sum", m.GetHistogram().GetSampleSum())
			}
			a.logger.Debug("Metric", attrs...)
		}
	}
}

func (a *app) printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
