package models

// AvailabilityStatus is the stock state of a listing.
type AvailabilityStatus string

const (
	AvailabilityInStock    AvailabilityStatus = "IN_STOCK"
	AvailabilityOutOfStock AvailabilityStatus = "OUT_OF_STOCK"
	AvailabilityLimited    AvailabilityStatus = "LIMITED"
)

// Location is a user coordinate handed to the store provider.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MedicineListing is one stocked product at a store. The prescription
// requirement is not stored here; it is resolved by name through the
// prescription classifier.
type MedicineListing struct {
	Name          string             `json:"name"`
	Category      string             `json:"category"`
	Price         float64            `json:"price"`
	StockQuantity int                `json:"stockQuantity"`
	Availability  AvailabilityStatus `json:"availability"`
}

// Store is a vendor with its inventory snapshot. Fetched once per search
// session and immutable during a single search.
type Store struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Address        string            `json:"address"`
	Phone          string            `json:"phone"`
	DistanceKm     float64           `json:"distanceKm"`
	Rating         float64           `json:"rating"`
	Open24x7       bool              `json:"open24x7"`
	OperatingHours string            `json:"operatingHours"`
	Medicines      []MedicineListing `json:"medicines"`
}
