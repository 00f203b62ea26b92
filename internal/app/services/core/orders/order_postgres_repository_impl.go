package orders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/app/services/core/payments"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/queries"
)

type orderPostgresRepository struct {
	DB *sql.DB
}

func NewOrderPostgresRepository(db *sql.DB) contracts.OrderRepository {
	return &orderPostgresRepository{
		DB: db,
	}
}

func (repo *orderPostgresRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := repo.DB.QueryRowContext(ctx, queries.GetOrderByID, orderID).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&order.Subtotal,
		&order.AdminFee,
		&order.ShippingCost,
		&order.Courier,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &order, nil
}

func (repo *orderPostgresRepository) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]models.Order, int, error) {
	var total int
	if err := repo.DB.QueryRowContext(ctx, queries.CountOrdersByUserID, userID).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetOrdersByUserID, userID, limit, offset)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var model models.Order
		if err := rows.Scan(
			&model.ID,
			&model.OrderNumber,
			&model.UserID,
			&model.Subtotal,
			&model.AdminFee,
			&model.ShippingCost,
			&model.Courier,
			&model.TotalAmount,
			&model.Status,
			&model.CreatedAt,
			&model.UpdatedAt,
		); err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		orders = append(orders, model)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	return orders, total, nil
}

func (repo *orderPostgresRepository) FindItemsByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetOrderItemsByOrderID, orderID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var model models.OrderItem
		if err := rows.Scan(
			&model.ID,
			&model.OrderID,
			&model.ProductID,
			&model.ProductName,
			&model.UnitPrice,
			&model.Quantity,
			&model.Subtotal,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		items = append(items, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	return items, nil
}

// CreateWithItems inserts the order, its items, and its payment row, and
// reserves stock by decrementing product quantities, all in one transaction.
// The decrement carries a quantity guard, so a miss means another buyer got
// there first and the whole order rolls back.
func (repo *orderPostgresRepository) CreateWithItems(ctx context.Context, order *models.Order, payment *models.OrderPayment) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBTransaction(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, queries.InsertOrder,
		order.ID,
		order.OrderNumber,
		order.UserID,
		order.Subtotal,
		order.AdminFee,
		order.ShippingCost,
		order.Courier,
		order.TotalAmount,
		order.Status,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, queries.InsertOrderItem,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.UnitPrice,
			item.Quantity,
			item.Subtotal,
		)
		if err != nil {
			return exceptions.ErrPostgresDBInsertData(err)
		}

		res, err := tx.ExecContext(ctx, queries.DecrementProductStock, item.Quantity, item.ProductID)
		if err != nil {
			return exceptions.ErrPostgresDBUpdateData(err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return exceptions.ErrPostgresDBUpdateData(err)
		}
		if affected == 0 {
			return exceptions.ErrInsufficientStock(fmt.Errorf("product %s has fewer than %d left", item.ProductID, item.Quantity))
		}
	}

	_, err = tx.ExecContext(ctx, queries.InsertOrderPayment,
		payment.ID,
		payment.OrderID,
		payment.GatewayOrderID,
		payment.GrossAmount,
		payment.Status,
		payment.SnapToken,
		payment.RedirectURL,
		payment.ExpiresAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBTransaction(err)
	}
	return nil
}

func scanOrderPayment(row *sql.Row) (*models.OrderPayment, error) {
	var payment models.OrderPayment
	err := row.Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.GatewayOrderID,
		&payment.GrossAmount,
		&payment.Status,
		&payment.SnapToken,
		&payment.RedirectURL,
		&payment.PaymentType,
		&payment.TransactionID,
		&payment.TransactionStatus,
		&payment.TransactionTime,
		&payment.PaidAt,
		&payment.ExpiresAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &payment, nil
}

func (repo *orderPostgresRepository) FindPaymentByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.OrderPayment, error) {
	return scanOrderPayment(repo.DB.QueryRowContext(ctx, queries.GetOrderPaymentByGatewayOrderID, gatewayOrderID))
}

func (repo *orderPostgresRepository) FindPendingPaymentByOrderID(ctx context.Context, orderID string) (*models.OrderPayment, error) {
	return scanOrderPayment(repo.DB.QueryRowContext(ctx, queries.GetPendingOrderPaymentByOrderID, orderID))
}

func (repo *orderPostgresRepository) FindPaymentsByUserID(ctx context.Context, userID string, limit, offset int) ([]models.OrderPayment, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetOrderPaymentsByUserID, userID, limit, offset)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var payments []models.OrderPayment
	for rows.Next() {
		var payment models.OrderPayment
		if err := rows.Scan(
			&payment.ID,
			&payment.OrderID,
			&payment.GatewayOrderID,
			&payment.GrossAmount,
			&payment.Status,
			&payment.SnapToken,
			&payment.RedirectURL,
			&payment.PaymentType,
			&payment.TransactionID,
			&payment.TransactionStatus,
			&payment.TransactionTime,
			&payment.PaidAt,
			&payment.ExpiresAt,
			&payment.CreatedAt,
			&payment.UpdatedAt,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return payments, nil
}

// ApplyReconciliation moves an order payment and its order together. Stock is
// returned only when the order row actually enters CANCELLED during this
// transaction, so webhook replays cannot restock twice.
func (repo *orderPostgresRepository) ApplyReconciliation(ctx context.Context, payment *models.OrderPayment, result *models.ReconciliationResult) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBTransaction(err)
	}
	defer tx.Rollback()

	var currentStatus models.PaymentStatus
	err = tx.QueryRowContext(ctx, queries.GetOrderPaymentStatusForUpdate, payment.ID).Scan(&currentStatus)
	if err == sql.ErrNoRows {
		return exceptions.ErrPaymentNotFound(err)
	} else if err != nil {
		return exceptions.ErrPostgresDBFindData(err)
	}

	if payments.SkipStatusOverwrite(currentStatus, result.PaymentStatus) {
		return tx.Commit()
	}

	var paidAt *time.Time
	if result.Settled {
		now := time.Now()
		paidAt = &now
	} else if payment.PaidAt != nil {
		paidAt = payment.PaidAt
	}

	_, err = tx.ExecContext(ctx, queries.UpdateOrderPaymentReconciliation,
		result.PaymentStatus,
		payment.PaymentType,
		payment.TransactionID,
		payment.TransactionStatus,
		payment.TransactionTime,
		payment.RawResponse,
		paidAt,
		payment.ID,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}

	if result.OrderStatus != "" {
		var orderStatus models.OrderStatus
		err = tx.QueryRowContext(ctx, queries.GetOrderStatusForUpdate, payment.OrderID).Scan(&orderStatus)
		if err == sql.ErrNoRows {
			return exceptions.ErrOrderNotFound(err)
		} else if err != nil {
			return exceptions.ErrPostgresDBFindData(err)
		}

		if payments.ShouldAdvanceOrder(orderStatus, result.OrderStatus) {
			_, err = tx.ExecContext(ctx, queries.UpdateOrderStatus, result.OrderStatus, payment.OrderID)
			if err != nil {
				return exceptions.ErrPostgresDBUpdateData(err)
			}

			if result.RestoreStock && result.OrderStatus == models.OrderCancelled {
				if err := restoreStockTx(ctx, tx, payment.OrderID); err != nil {
					return err
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBTransaction(err)
	}
	return nil
}

// CancelWithRestock cancels a pending order explicitly and returns its stock.
func (repo *orderPostgresRepository) CancelWithRestock(ctx context.Context, orderID string) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBTransaction(err)
	}
	defer tx.Rollback()

	var orderStatus models.OrderStatus
	err = tx.QueryRowContext(ctx, queries.GetOrderStatusForUpdate, orderID).Scan(&orderStatus)
	if err == sql.ErrNoRows {
		return exceptions.ErrOrderNotFound(err)
	} else if err != nil {
		return exceptions.ErrPostgresDBFindData(err)
	}

	if orderStatus != models.OrderPendingPayment {
		return exceptions.ErrOrderInvalidState(fmt.Errorf("order is %s", orderStatus))
	}

	_, err = tx.ExecContext(ctx, queries.UpdateOrderStatus, models.OrderCancelled, orderID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}

	if err := restoreStockTx(ctx, tx, orderID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBTransaction(err)
	}
	return nil
}

func restoreStockTx(ctx context.Context, tx *sql.Tx, orderID string) error {
	rows, err := tx.QueryContext(ctx, queries.GetOrderItemsByOrderID, orderID)
	if err != nil {
		return exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	type restock struct {
		productID string
		quantity  int
	}
	var restocks []restock
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.UnitPrice,
			&item.Quantity,
			&item.Subtotal,
		); err != nil {
			return exceptions.ErrPostgresDBFindData(err)
		}
		restocks = append(restocks, restock{productID: item.ProductID, quantity: item.Quantity})
	}
	if err := rows.Err(); err != nil {
		return exceptions.ErrPostgresDBFindData(err)
	}

	for _, r := range restocks {
		if _, err := tx.ExecContext(ctx, queries.RestoreProductStock, r.quantity, r.productID); err != nil {
			return exceptions.ErrPostgresDBUpdateData(err)
		}
	}
	return nil
}

func (repo *orderPostgresRepository) FindOverduePendingPayments(ctx context.Context, limit int) ([]models.OrderPayment, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetOverduePendingOrderPayments, limit)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var payments []models.OrderPayment
	for rows.Next() {
		var model models.OrderPayment
		if err := rows.Scan(&model.ID, &model.OrderID, &model.GatewayOrderID); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		payments = append(payments, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	return payments, nil
}
