package stores

import (
	"context"

	"medisearch/internal/models"
)

// SeedProvider serves a fixed in-code store snapshot. It is the default
// provider in development and the fixture backend in tests; distances are
// part of the seed and the location argument is ignored.
type SeedProvider struct {
	stores []models.Store
}

// NewSeedProvider returns a provider over the given snapshot, or over the
// built-in seed set when none is given.
func NewSeedProvider(snapshot ...models.Store) *SeedProvider {
	if len(snapshot) == 0 {
		snapshot = defaultSeed()
	}
	return &SeedProvider{stores: snapshot}
}

func (p *SeedProvider) Name() string { return "seed" }

func (p *SeedProvider) FetchStores(_ context.Context, _ models.Location) ([]models.Store, error) {
	out := make([]models.Store, len(p.stores))
	copy(out, p.stores)
	return out, nil
}

func defaultSeed() []models.Store {
	return []models.Store{
		{
			ID:             "st-apollo-jayanagar",
			Name:           "Apollo Pharmacy Jayanagar",
			Address:        "11th Main Rd, Jayanagar 4th Block",
			Phone:          "+91 80 2663 4412",
			DistanceKm:     2.0,
			Rating:         4.5,
			Open24x7:       false,
			OperatingHours: "8:00 AM - 11:00 PM",
			Medicines: []models.MedicineListing{
				{Name: "Paracetamol 500mg Tablet", Category: "Pain Relief", Price: 85, StockQuantity: 120, Availability: models.AvailabilityInStock},
				{Name: "Cetirizine 10mg Tablet", Category: "Allergy", Price: 82, StockQuantity: 60, Availability: models.AvailabilityInStock},
				{Name: "Ibuprofen 400mg Tablet", Category: "Pain Relief", Price: 95, StockQuantity: 45, Availability: models.AvailabilityInStock},
				{Name: "Vitamin C 500mg Tablet", Category: "Supplements", Price: 150, StockQuantity: 80, Availability: models.AvailabilityInStock},
			},
		},
		{
			ID:             "st-medplus-koramangala",
			Name:           "MedPlus Koramangala",
			Address:        "80 Feet Rd, Koramangala 6th Block",
			Phone:          "+91 80 4112 8890",
			DistanceKm:     5.0,
			Rating:         4.0,
			Open24x7:       true,
			OperatingHours: "Open 24x7",
			Medicines: []models.MedicineListing{
				{Name: "Paracetamol 650mg Tablet", Category: "Pain Relief", Price: 85, StockQuantity: 200, Availability: models.AvailabilityInStock},
				{Name: "Cetirizine Hydrochloride Tablet", Category: "Allergy", Price: 82, StockQuantity: 90, Availability: models.AvailabilityInStock},
				{Name: "Azithromycin 500mg Tablet", Category: "Antibiotics", Price: 100, StockQuantity: 30, Availability: models.AvailabilityInStock},
				{Name: "Omeprazole 20mg Capsule", Category: "Digestive", Price: 110, StockQuantity: 50, Availability: models.AvailabilityInStock},
			},
		},
		{
			ID:             "st-wellness-indiranagar",
			Name:           "Wellness Forever Indiranagar",
			Address:        "100 Feet Rd, Indiranagar",
			Phone:          "+91 80 2521 7734",
			DistanceKm:     1.0,
			Rating:         3.5,
			Open24x7:       false,
			OperatingHours: "9:00 AM - 10:00 PM",
			Medicines: []models.MedicineListing{
				{Name: "Paracetamol 500mg Tablet", Category: "Pain Relief", Price: 85, StockQuantity: 70, Availability: models.AvailabilityInStock},
				{Name: "Dolo 650 Tablet", Category: "Pain Relief", Price: 32, StockQuantity: 150, Availability: models.AvailabilityInStock},
				{Name: "Azithromycin 250mg Tablet", Category: "Antibiotics", Price: 72, StockQuantity: 0, Availability: models.AvailabilityOutOfStock},
			},
		},
		{
			ID:             "st-netmeds-hsr",
			Name:           "Netmeds HSR Layout",
			Address:        "27th Main Rd, HSR Sector 1",
			Phone:          "+91 80 4520 1168",
			DistanceKm:     7.5,
			Rating:         4.2,
			Open24x7:       false,
			OperatingHours: "8:00 AM - 10:30 PM",
			Medicines: []models.MedicineListing{
				{Name: "Metformin 500mg Tablet", Category: "Diabetes", Price: 60, StockQuantity: 110, Availability: models.AvailabilityInStock},
				{Name: "Atorvastatin 10mg Tablet", Category: "Cardiac", Price: 130, StockQuantity: 65, Availability: models.AvailabilityInStock},
				{Name: "Cetirizine 10mg Tablet", Category: "Allergy", Price: 78, StockQuantity: 40, Availability: models.AvailabilityInStock},
				{Name: "Insulin Glargine Injection", Category: "Diabetes", Price: 450, StockQuantity: 20, Availability: models.AvailabilityInStock},
			},
		},
	}
}
