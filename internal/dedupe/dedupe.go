package dedupe

import (
	"github.com/mmynk/splitscan/internal/models"
	"github.com/mmynk/splitscan/internal/money"
)

// Defaults used by Collapse.
const (
	DefaultThreshold      = 0.85
	DefaultPriceTolerance = 0.05
)

// Suppressor drops items whose normalized name is at least Threshold similar
// to an item already kept and whose price is within PriceTolerance of it.
type Suppressor struct {
	Threshold      float64
	PriceTolerance float64
}

// Default returns a Suppressor with the default threshold and tolerance.
func Default() Suppressor {
	return Suppressor{Threshold: DefaultThreshold, PriceTolerance: DefaultPriceTolerance}
}

// Collapse applies the default Suppressor to items.
func Collapse(items []models.LineItem) []models.LineItem {
	kept, _ := Default().Collapse(items)
	return kept
}

// Collapse returns items with near-duplicates removed, keeping each first
// occurrence in place, and the number of items dropped. Quantities are never
// summed. Every item is compared with every kept item.
func (s Suppressor) Collapse(items []models.LineItem) ([]models.LineItem, int) {
	kept := make([]models.LineItem, 0, len(items))
	names := make([]string, 0, len(items))
	dropped := 0

	for _, item := range items {
		name := NormalizeName(item.Name)
		if s.isDuplicate(name, item, kept, names) {
			dropped++
			continue
		}
		kept = append(kept, item)
		names = append(names, name)
	}
	return kept, dropped
}

func (s Suppressor) isDuplicate(name string, item models.LineItem, kept []models.LineItem, names []string) bool {
	for i, other := range kept {
		if Similarity(name, names[i]) < s.Threshold {
			continue
		}
		if money.WithinTolerance(item.UnitPrice, other.UnitPrice, s.PriceTolerance) {
			return true
		}
	}
	return false
}
