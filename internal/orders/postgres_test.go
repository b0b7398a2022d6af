package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "medisearch/internal/common/errors"
	"medisearch/internal/common/logger"
	"medisearch/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *models.Order {
	return &models.Order{
		Store: models.StoreResult{
			Store: models.Store{ID: "st-1", Name: "Test Pharmacy", DistanceKm: 2.0},
			AvailableMedicines: []models.MatchedMedicine{
				{Name: "Paracetamol 500mg Tablet", Category: "Pain Relief", Price: 85},
				{Name: "Cetirizine 10mg Tablet", Category: "Allergy", Price: 82},
			},
		},
		Quantities:      map[string]int{"Paracetamol 500mg Tablet": 2},
		DeliveryType:    models.DeliveryTypeDelivery,
		DeliveryAddress: "12 MG Road",
		PaymentMethod:   "UPI",
		Subtotal:        252,
		PlatformCharge:  5.04,
		DeliveryCharge:  30,
		TotalAmount:     287.04,
		CreatedAt:       time.Now().UTC(),
	}
}

func TestPostgresSinkAddOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	order := testOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			sqlmock.AnyArg(), "st-1", "DELIVERY", "12 MG Road", "UPI",
			252.0, 5.04, 30.0, 287.04,
			sqlmock.AnyArg(), order.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(sqlmock.AnyArg(), "Paracetamol 500mg Tablet", "Pain Relief", 85.0, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(sqlmock.AnyArg(), "Cetirizine 10mg Tablet", "Allergy", 82.0, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sink := NewPostgresSink(db, logger.NewTestLogger(t))
	id, err := sink.AddOrder(context.Background(), order)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSinkPrescriptionFileStored(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	order := testOrder()
	order.Prescription = &models.Attachment{FileName: "rx.pdf", MimeType: "application/pdf", SizeBytes: 1024}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			sqlmock.AnyArg(), "st-1", "DELIVERY", "12 MG Road", "UPI",
			252.0, 5.04, 30.0, 287.04,
			"rx.pdf", order.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sink := NewPostgresSink(db, logger.NewTestLogger(t))
	_, err = sink.AddOrder(context.Background(), order)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSinkInsertFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	sink := NewPostgresSink(db, logger.NewTestLogger(t))
	_, err = sink.AddOrder(context.Background(), testOrder())
	require.Error(t, err)

	se, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeOrderInsertFailed, se.Code)
	assert.True(t, se.Retryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	order := testOrder()

	id, err := sink.AddOrder(context.Background(), order)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, sink.Count())

	got, ok := sink.Get(id)
	require.True(t, ok)
	assert.Equal(t, order, got)

	_, ok = sink.Get("missing")
	assert.False(t, ok)
}
