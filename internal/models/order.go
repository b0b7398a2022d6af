package models

import "time"

// DeliveryType selects how the order reaches the user.
type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "DELIVERY"
	DeliveryTypePickup   DeliveryType = "PICKUP"
)

// Attachment describes an uploaded prescription file.
type Attachment struct {
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
}

// Order is a priced order built from a chosen store result. Immutable once
// handed to the order sink; the engine never mutates it after creation.
type Order struct {
	Store           StoreResult    `json:"store"`
	Quantities      map[string]int `json:"quantities"`
	DeliveryType    DeliveryType   `json:"deliveryType"`
	DeliveryAddress string         `json:"deliveryAddress,omitempty"`
	PaymentMethod   string         `json:"paymentMethod"`
	Prescription    *Attachment    `json:"prescription,omitempty"`
	ContactEmail    string         `json:"contactEmail,omitempty"`
	ContactPhone    string         `json:"contactPhone,omitempty"`

	Subtotal       float64   `json:"subtotal"`
	PlatformCharge float64   `json:"platformCharge"`
	DeliveryCharge float64   `json:"deliveryCharge"`
	TotalAmount    float64   `json:"totalAmount"`
	CreatedAt      time.Time `json:"createdAt"`
}
