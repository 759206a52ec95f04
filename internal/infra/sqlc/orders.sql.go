// source: orders.sql

package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const cancelOrderIfCreated = `-- name: CancelOrderIfCreated :execrows
UPDATE orders
SET status = 'CANCELLED', updated_at = $2
WHERE id = $1 AND status = 'CREATED'
`

type CancelOrderIfCreatedParams struct {
	ID        int64              `json:"id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CancelOrderIfCreated(ctx context.Context, db DBTX, arg CancelOrderIfCreatedParams) (int64, error) {
	result, err := db.Exec(ctx, cancelOrderIfCreated, arg.ID, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const createOrder = `-- name: CreateOrder :one
INSERT INTO orders (
    user_id, session_id, email, first_name, last_name, phone_number,
    street, house_number, city, zip_code, country, total_amount, status,
    created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
)
RETURNING id, created_at, updated_at
`

type CreateOrderParams struct {
	UserID      pgtype.Int8        `json:"user_id"`
	SessionID   pgtype.Text        `json:"session_id"`
	Email       string             `json:"email"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	PhoneNumber string             `json:"phone_number"`
	Street      string             `json:"street"`
	HouseNumber string             `json:"house_number"`
	City        string             `json:"city"`
	ZipCode     string             `json:"zip_code"`
	Country     string             `json:"country"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      string             `json:"status"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type CreateOrderRow struct {
	ID        int64              `json:"id"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateOrder(ctx context.Context, db DBTX, arg CreateOrderParams) (CreateOrderRow, error) {
	row := db.QueryRow(ctx, createOrder,
		arg.UserID,
		arg.SessionID,
		arg.Email,
		arg.FirstName,
		arg.LastName,
		arg.PhoneNumber,
		arg.Street,
		arg.HouseNumber,
		arg.City,
		arg.ZipCode,
		arg.Country,
		arg.TotalAmount,
		arg.Status,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i CreateOrderRow
	err := row.Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const createOrderItem = `-- name: CreateOrderItem :exec
INSERT INTO order_items (order_id, line_no, product_id, name, unit_price, quantity)
VALUES ($1, $2, $3, $4, $5, $6)
`

type CreateOrderItemParams struct {
	OrderID   int64           `json:"order_id"`
	LineNo    int32           `json:"line_no"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int32           `json:"quantity"`
}

func (q *Queries) CreateOrderItem(ctx context.Context, db DBTX, arg CreateOrderItemParams) error {
	_, err := db.Exec(ctx, createOrderItem,
		arg.OrderID,
		arg.LineNo,
		arg.ProductID,
		arg.Name,
		arg.UnitPrice,
		arg.Quantity,
	)
	return err
}

const getOrderByID = `-- name: GetOrderByID :one
SELECT id, user_id, session_id, email, first_name, last_name, phone_number, street, house_number, city, zip_code, country, total_amount, status, created_at, updated_at FROM orders WHERE id = $1
`

func (q *Queries) GetOrderByID(ctx context.Context, db DBTX, id int64) (Order, error) {
	row := db.QueryRow(ctx, getOrderByID, id)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.SessionID,
		&i.Email,
		&i.FirstName,
		&i.LastName,
		&i.PhoneNumber,
		&i.Street,
		&i.HouseNumber,
		&i.City,
		&i.ZipCode,
		&i.Country,
		&i.TotalAmount,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listOrderItemsByOrderIDs = `-- name: ListOrderItemsByOrderIDs :many
SELECT id, order_id, line_no, product_id, name, unit_price, quantity FROM order_items
WHERE order_id = ANY($1::bigint[])
ORDER BY order_id, line_no
`

func (q *Queries) ListOrderItemsByOrderIDs(ctx context.Context, db DBTX, orderIds []int64) ([]OrderItem, error) {
	rows, err := db.Query(ctx, listOrderItemsByOrderIDs, orderIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderItem
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.LineNo,
			&i.ProductID,
			&i.Name,
			&i.UnitPrice,
			&i.Quantity,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOrdersByOwner = `-- name: ListOrdersByOwner :many
SELECT id, user_id, session_id, email, first_name, last_name, phone_number, street, house_number, city, zip_code, country, total_amount, status, created_at, updated_at FROM orders
WHERE (user_id = $1 OR session_id = $2)
  AND ($3::timestamptz IS NULL
       OR (created_at, id) < ($3::timestamptz, $4::bigint))
ORDER BY created_at DESC, id DESC
LIMIT $5
`

type ListOrdersByOwnerParams struct {
	UserID         pgtype.Int8        `json:"user_id"`
	SessionID      pgtype.Text        `json:"session_id"`
	AfterCreatedAt pgtype.Timestamptz `json:"after_created_at"`
	AfterID        pgtype.Int8        `json:"after_id"`
	RowLimit       int32              `json:"row_limit"`
}

func (q *Queries) ListOrdersByOwner(ctx context.Context, db DBTX, arg ListOrdersByOwnerParams) ([]Order, error) {
	rows, err := db.Query(ctx, listOrdersByOwner,
		arg.UserID,
		arg.SessionID,
		arg.AfterCreatedAt,
		arg.AfterID,
		arg.RowLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Order
	for rows.Next() {
		var i Order
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.SessionID,
			&i.Email,
			&i.FirstName,
			&i.LastName,
			&i.PhoneNumber,
			&i.Street,
			&i.HouseNumber,
			&i.City,
			&i.ZipCode,
			&i.Country,
			&i.TotalAmount,
			&i.Status,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
