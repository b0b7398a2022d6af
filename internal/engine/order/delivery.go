package order

import (
	"sort"

	"medisearch/internal/common/config"
	"medisearch/internal/models"
)

// DeliveryPricer is the delivery pricing collaborator: 0 for pickup, a
// non-negative tiered amount for delivery as a function of distance.
type DeliveryPricer interface {
	Charge(distanceKm float64, deliveryType models.DeliveryType, store models.Store) float64
}

// TieredPricer prices delivery from a distance tier table. A tier with
// MaxKm == 0 is open-ended and applies beyond the last bounded tier. The
// table is sorted on construction, so config may list tiers in any order.
type TieredPricer struct {
	tiers []config.DeliveryTier
}

func NewTieredPricer(tiers []config.DeliveryTier) *TieredPricer {
	if len(tiers) == 0 {
		tiers = []config.DeliveryTier{
			{MaxKm: 3, Charge: 30},
			{MaxKm: 7, Charge: 50},
			{MaxKm: 10, Charge: 70},
			{MaxKm: 0, Charge: 100},
		}
	}

	sorted := make([]config.DeliveryTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		// Open-ended tiers sort last; bounded tiers ascend by MaxKm.
		if sorted[i].MaxKm == 0 || sorted[j].MaxKm == 0 {
			return sorted[j].MaxKm == 0 && sorted[i].MaxKm != 0
		}
		return sorted[i].MaxKm < sorted[j].MaxKm
	})
	return &TieredPricer{tiers: sorted}
}

func (p *TieredPricer) Charge(distanceKm float64, deliveryType models.DeliveryType, _ models.Store) float64 {
	if deliveryType == models.DeliveryTypePickup {
		return 0
	}

	open := 0.0
	for _, tier := range p.tiers {
		if tier.MaxKm == 0 {
			open = tier.Charge
			continue
		}
		if distanceKm <= tier.MaxKm {
			return tier.Charge
		}
	}
	return open
}
