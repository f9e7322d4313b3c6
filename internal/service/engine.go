// Package service exposes the receipt pipeline and the splitting engine behind
// a single Engine that logs and records metrics for every operation.
package service

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/mmynk/splitscan/internal/calculator"
	"github.com/mmynk/splitscan/internal/config"
	"github.com/mmynk/splitscan/internal/dedupe"
	"github.com/mmynk/splitscan/internal/message"
	"github.com/mmynk/splitscan/internal/models"
	"github.com/mmynk/splitscan/internal/money"
	"github.com/mmynk/splitscan/internal/parser"
	"github.com/mmynk/splitscan/internal/payload"
)

// Engine runs parsing, splitting and rendering with shared settings.
// It holds no mutable state besides its metric collectors and is safe for
// concurrent use.
type Engine struct {
	cfg        config.Config
	suppressor dedupe.Suppressor
	logger     *slog.Logger
	metrics    *metrics
}

// NewEngine creates an Engine. A nil logger uses slog.Default; metrics are
// registered on reg, so only one Engine may share a registry.
func NewEngine(cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:        cfg,
		suppressor: cfg.Suppressor(),
		logger:     logger,
		metrics:    newMetrics(reg),
	}
}

// Config returns the settings the engine was created with.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// ParseText returns the deduplicated line items found in receipt text.
func (e *Engine) ParseText(text string) []models.LineItem {
	var candidates []models.LineItem
	for line := range parser.Lines(text) {
		item, reason := parser.ParseLine(line)
		switch reason {
		case parser.ReasonItem:
			e.metrics.lines.WithLabelValues(resultItem).Inc()
			e.logger.Debug("Classified line", "line", line, "name", item.Name, "price", item.UnitPrice, "confidence", item.Confidence)
			candidates = append(candidates, item)
		case parser.ReasonUnparsed:
			e.metrics.lines.WithLabelValues(resultUnparsed).Inc()
			e.logger.Debug("Skipped unparsed line", "line", line)
		default:
			e.metrics.lines.WithLabelValues(resultFiltered).Inc()
			e.logger.Debug("Filtered line", "line", line, "reason", reason)
		}
	}

	items, dropped := e.suppressor.Collapse(candidates)
	if dropped > 0 {
		e.metrics.duplicates.Add(float64(dropped))
		e.logger.Debug("Dropped duplicate items", "count", dropped)
	}
	e.metrics.parseItems.Observe(float64(len(items)))
	return items
}

// ParseReceipt runs ParseText and adds the declared total and vendor name.
func (e *Engine) ParseReceipt(text string) models.ReceiptRecord {
	record := models.ReceiptRecord{
		SourceKind:    models.SourceOCR,
		Items:         e.ParseText(text),
		DeclaredTotal: parser.DeclaredTotal(text),
		VendorName:    parser.VendorName(text),
	}
	attrs := []any{"items", len(record.Items), "items_total", record.ItemsTotal()}
	if record.DeclaredTotal != nil {
		attrs = append(attrs, "declared_total", *record.DeclaredTotal)
	}
	if record.VendorName != "" {
		attrs = append(attrs, "vendor", record.VendorName)
	}
	e.logger.Info("Parsed receipt", attrs...)
	return record
}

// ScanPayload decodes a QR or barcode payload. It reports false when the payload
// carries nothing usable and the caller should fall back to manual entry.
func (e *Engine) ScanPayload(raw string) (models.ReceiptRecord, bool) {
	record, kind := payload.DecodeWith(raw, e.suppressor)
	e.metrics.payloads.WithLabelValues(kind.String()).Inc()
	if kind == payload.KindNone {
		e.logger.Info("Payload not recognized", "length", len(raw))
		return record, false
	}
	e.logger.Info("Decoded payload",
		"kind", kind,
		"source", record.SourceKind,
		"transaction_id", record.TransactionID,
		"items", len(record.Items),
	)
	return record, true
}

// Split divides total among participants, rounding to the minor unit of the
// configured currency. A nil strategy splits evenly.
func (e *Engine) Split(total decimal.Decimal, participants []string, strategy calculator.Strategy) []models.Allocation {
	if strategy == nil {
		strategy = calculator.Even{}
	}
	places := money.MinorDigits(e.cfg.Currency)
	allocations := calculator.SplitMinor(total, participants, strategy, places)
	e.metrics.splits.WithLabelValues(strategy.Name()).Inc()

	for _, a := range allocations {
		e.logger.Debug("Allocated share", "participant", a.Participant.Name, "amount", a.AmountOwed)
	}
	e.logger.Info("Split expense",
		"strategy", strategy.Name(),
		"total", total,
		"participants", len(allocations),
		"owed", calculator.TotalOwed(allocations),
	)
	return allocations
}

// Balances aggregates expenses and settlements into member balances and a
// simplified list of debts.
func (e *Engine) Balances(expenses []calculator.Expense, settlements []calculator.Settlement) ([]calculator.MemberBalance, []calculator.DebtEdge) {
	balances, debts := calculator.CalculateBalances(expenses, settlements)
	e.logger.Info("Calculated balances", "members", len(balances), "debts", len(debts))
	return balances, debts
}

// Render produces a payment request for one allocation. Currency and
// locale default to the engine's settings.
func (e *Engine) Render(t message.Template, a models.Allocation, ctx message.Context) string {
	return message.Render(t, a, e.withDefaults(ctx))
}

// RenderGroup produces one message covering every allocation.
func (e *Engine) RenderGroup(t message.Template, allocations []models.Allocation, ctx message.Context) string {
	return message.RenderGroup(t, allocations, e.withDefaults(ctx))
}

func (e *Engine) withDefaults(ctx message.Context) message.Context {
	if ctx.Currency == "" {
		ctx.Currency = e.cfg.Currency
	}
	if ctx.Locale == language.Und {
		ctx.Locale = e.cfg.Locale
	}
	return ctx
}
