// internal/services/price_trend.go
package services

import (
	"sort"
	"strings"

	"github.com/pricetrail/pricetrail-backend/internal/models"
)

// PriceTrend summarizes a product's price history: the most recent
// observation plus the absolute and percentage change against the oldest
// known observation.
type PriceTrend struct {
	CurrentPrice   *float64 `json:"current_price"`
	PriceChange    float64  `json:"price_change"`
	PriceChangePct float64  `json:"price_change_pct"`
}

// ComputePriceTrend aggregates an unordered set of price records for one
// product. With no records the current price is nil; with a single record
// both change figures are zero. Records with equal recorded_at are ordered
// by ID descending so the result is deterministic regardless of store order.
func ComputePriceTrend(records []models.PriceRecord) PriceTrend {
	if len(records) == 0 {
		return PriceTrend{}
	}

	sorted := make([]models.PriceRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].RecordedAt.Equal(sorted[j].RecordedAt) {
			return sorted[i].RecordedAt.After(sorted[j].RecordedAt)
		}
		return strings.Compare(sorted[i].ID.String(), sorted[j].ID.String()) > 0
	})

	current := sorted[0].Price
	trend := PriceTrend{CurrentPrice: &current}

	if len(sorted) < 2 {
		return trend
	}

	oldest := sorted[len(sorted)-1].Price
	trend.PriceChange = current - oldest
	// A zero oldest price would divide by zero; report no percentage change.
	if oldest != 0 {
		trend.PriceChangePct = trend.PriceChange / oldest * 100
	}

	return trend
}

// ContributionToTotal is the value a trend adds to a wishlist total. A
// product without any price observation contributes nothing.
func (t PriceTrend) ContributionToTotal() float64 {
	if t.CurrentPrice == nil {
		return 0
	}
	return *t.CurrentPrice
}
