package orders

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "medisearch/internal/common/errors"
	"medisearch/internal/common/logger"
	"medisearch/internal/models"

	"github.com/google/uuid"
)

// PostgresSink writes orders to PostgreSQL: one row per order plus one row
// per ordered item, in a single transaction.
type PostgresSink struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresSink(db *sql.DB, log logger.Logger) *PostgresSink {
	return &PostgresSink{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "orders"}),
	}
}

const insertOrder = `
INSERT INTO orders (
	id, store_id, delivery_type, delivery_address, payment_method,
	subtotal, platform_charge, delivery_charge, total_amount,
	prescription_file, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const insertOrderItem = `
INSERT INTO order_items (order_id, medicine_name, category, unit_price, quantity)
VALUES ($1, $2, $3, $4, $5)`

func (s *PostgresSink) AddOrder(ctx context.Context, order *models.Order) (string, error) {
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", apperrors.NewOrderInsertFailedError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	var prescriptionFile sql.NullString
	if order.Prescription != nil {
		prescriptionFile = sql.NullString{String: order.Prescription.FileName, Valid: true}
	}

	if _, err := tx.ExecContext(ctx, insertOrder,
		id,
		order.Store.Store.ID,
		string(order.DeliveryType),
		order.DeliveryAddress,
		order.PaymentMethod,
		order.Subtotal,
		order.PlatformCharge,
		order.DeliveryCharge,
		order.TotalAmount,
		prescriptionFile,
		order.CreatedAt,
	); err != nil {
		return "", apperrors.NewOrderInsertFailedError(fmt.Errorf("insert order: %w", err))
	}

	for _, item := range order.Store.AvailableMedicines {
		qty := order.Quantities[item.Name]
		if qty < 1 {
			qty = 1
		}
		if _, err := tx.ExecContext(ctx, insertOrderItem,
			id, item.Name, item.Category, item.Price, qty,
		); err != nil {
			return "", apperrors.NewOrderInsertFailedError(fmt.Errorf("insert item %q: %w", item.Name, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return "", apperrors.NewOrderInsertFailedError(fmt.Errorf("commit: %w", err))
	}

	s.logger.Info("order persisted", map[string]interface{}{
		"orderId": id,
		"storeId": order.Store.Store.ID,
		"total":   order.TotalAmount,
	})

	return id, nil
}
