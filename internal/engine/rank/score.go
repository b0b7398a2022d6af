// Package rank computes the composite desirability score of a store result.
package rank

import "medisearch/internal/models"

const (
	ratingWeight   = 0.40
	distanceWeight = 0.35
	priceWeight    = 0.25

	maxRating         = 5.0
	distanceCeilingKm = 10.0
	priceCeiling      = 500.0

	// availabilityBoostFactor sets the boosted score to base*(1+ratio*2),
	// i.e. a range factor in (1,3].
	availabilityBoostFactor = 2.0
)

// RatingScore maps a 0-5 rating onto 0-100.
func RatingScore(rating float64) float64 {
	return (rating / maxRating) * 100
}

// DistanceScore maps distance onto 100..0, clamping at 0 beyond 10 km.
// Distances past the ceiling do not penalize further.
func DistanceScore(distanceKm float64) float64 {
	s := 100 - (distanceKm/distanceCeilingKm)*100
	if s < 0 {
		return 0
	}
	return s
}

// PriceScore maps the matched total onto 100..0, clamping at 0 beyond 500.
func PriceScore(totalPrice float64) float64 {
	s := 100 - (totalPrice/priceCeiling)*100
	if s < 0 {
		return 0
	}
	return s
}

// BaseScore is the weighted combination of the three component scores.
func BaseScore(rating, distanceKm, totalPrice float64) float64 {
	return ratingWeight*RatingScore(rating) +
		distanceWeight*DistanceScore(distanceKm) +
		priceWeight*PriceScore(totalPrice)
}

// PriorityScore applies the availability boost to the base score. The result
// is a ranking key, not a percentage: it is unbounded above 100 and must not
// be normalized or clamped afterwards.
func PriorityScore(base, availabilityRatio float64) float64 {
	return base * (1 + availabilityRatio*availabilityBoostFactor)
}

// Score fills in the result's priority score and estimated delivery label.
// queryLen is the full term count of the query, duplicates included.
func Score(result *models.StoreResult, queryLen int) {
	base := BaseScore(result.Store.Rating, result.Store.DistanceKm, result.TotalPrice)
	ratio := float64(len(result.AvailableMedicines)) / float64(queryLen)
	result.PriorityScore = PriorityScore(base, ratio)
	result.EstimatedDelivery = DeliveryEstimate(result.Store.DistanceKm)
}

// DeliveryEstimate buckets a distance into a user-facing delivery label.
func DeliveryEstimate(distanceKm float64) string {
	switch {
	case distanceKm <= 2:
		return "30-45 mins"
	case distanceKm <= 5:
		return "1-2 hours"
	case distanceKm <= 10:
		return "2-4 hours"
	default:
		return "4-6 hours"
	}
}
