// Package order turns a chosen store result into a priced order, subject to
// the prescription gate.
package order

import (
	"time"

	apperrors "medisearch/internal/common/errors"
	"medisearch/internal/engine/prescription"
	"medisearch/internal/models"
)

// PlatformFeeRate is the platform charge applied to every order subtotal.
const PlatformFeeRate = 0.02

// BuildRequest carries the user's checkout selections for a chosen store.
type BuildRequest struct {
	Result          models.StoreResult
	Quantities      map[string]int // medicine name -> quantity, default 1
	DeliveryType    models.DeliveryType
	DeliveryAddress string
	PaymentMethod   string
	Prescription    *models.Attachment
	ContactEmail    string
	ContactPhone    string
}

// Builder constructs orders against the injected classifier and delivery
// pricer, keeping the computation a pure function of its explicit inputs.
type Builder struct {
	classifier prescription.Classifier
	pricer     DeliveryPricer
}

func NewBuilder(classifier prescription.Classifier, pricer DeliveryPricer) *Builder {
	return &Builder{classifier: classifier, pricer: pricer}
}

// Build validates the attachment, evaluates the prescription gate and
// computes the order pricing:
//
//	subtotal       = sum(unitPrice * quantity) over available items
//	platformCharge = subtotal * 0.02
//	deliveryCharge = pricer(distance, type, store), 0 for pickup
//	totalAmount    = subtotal + platformCharge + deliveryCharge
//
// The gate re-consults the classifier at finalization time rather than
// trusting the flags captured at aggregation time. When a regulated item is
// present without an attachment the build fails with PRESCRIPTION_REQUIRED
// listing exactly the offending names. Without regulated items an
// attachment is accepted but never required.
func (b *Builder) Build(req BuildRequest) (*models.Order, error) {
	if err := ValidateAttachment(req.Prescription); err != nil {
		return nil, err
	}

	var offending []string
	subtotal := 0.0
	quantities := make(map[string]int, len(req.Result.AvailableMedicines))
	for _, item := range req.Result.AvailableMedicines {
		qty := req.Quantities[item.Name]
		if qty < 1 {
			qty = 1
		}
		quantities[item.Name] = qty
		subtotal += item.Price * float64(qty)

		if b.classifier.RequiresPrescription(item.Name) {
			offending = append(offending, item.Name)
		}
	}

	if len(offending) > 0 && req.Prescription == nil {
		return nil, apperrors.NewPrescriptionRequiredError(offending)
	}

	platformCharge := subtotal * PlatformFeeRate
	deliveryCharge := b.pricer.Charge(req.Result.Store.DistanceKm, req.DeliveryType, req.Result.Store)

	return &models.Order{
		Store:           req.Result,
		Quantities:      quantities,
		DeliveryType:    req.DeliveryType,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		Prescription:    req.Prescription,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		Subtotal:        subtotal,
		PlatformCharge:  platformCharge,
		DeliveryCharge:  deliveryCharge,
		TotalAmount:     subtotal + platformCharge + deliveryCharge,
		CreatedAt:       time.Now().UTC(),
	}, nil
}
