// source: stocks.sql

package sqlc

import (
	"context"
)

const createStock = `-- name: CreateStock :one
INSERT INTO stocks (product_id, available_quantity, reserved_quantity)
VALUES ($1, $2, 0)
RETURNING product_id, available_quantity, reserved_quantity, created_at, updated_at
`

type CreateStockParams struct {
	ProductID         int64 `json:"product_id"`
	AvailableQuantity int32 `json:"available_quantity"`
}

func (q *Queries) CreateStock(ctx context.Context, db DBTX, arg CreateStockParams) (Stock, error) {
	row := db.QueryRow(ctx, createStock, arg.ProductID, arg.AvailableQuantity)
	var i Stock
	err := row.Scan(
		&i.ProductID,
		&i.AvailableQuantity,
		&i.ReservedQuantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getStockByProductID = `-- name: GetStockByProductID :one
SELECT product_id, available_quantity, reserved_quantity, created_at, updated_at FROM stocks WHERE product_id = $1
`

func (q *Queries) GetStockByProductID(ctx context.Context, db DBTX, productID int64) (Stock, error) {
	row := db.QueryRow(ctx, getStockByProductID, productID)
	var i Stock
	err := row.Scan(
		&i.ProductID,
		&i.AvailableQuantity,
		&i.ReservedQuantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getStocksByProductIDs = `-- name: GetStocksByProductIDs :many
SELECT product_id, available_quantity, reserved_quantity, created_at, updated_at FROM stocks
WHERE product_id = ANY($1::bigint[])
ORDER BY product_id
`

func (q *Queries) GetStocksByProductIDs(ctx context.Context, db DBTX, productIds []int64) ([]Stock, error) {
	return q.scanStocks(ctx, db, getStocksByProductIDs, productIds)
}

const insertStockReservation = `-- name: InsertStockReservation :execrows
INSERT INTO stock_reservations (order_id, items)
VALUES ($1, $2)
ON CONFLICT (order_id) DO NOTHING
`

type InsertStockReservationParams struct {
	OrderID int64  `json:"order_id"`
	Items   []byte `json:"items"`
}

func (q *Queries) InsertStockReservation(ctx context.Context, db DBTX, arg InsertStockReservationParams) (int64, error) {
	result, err := db.Exec(ctx, insertStockReservation, arg.OrderID, arg.Items)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const lockStockByProductID = `-- name: LockStockByProductID :one
SELECT product_id, available_quantity, reserved_quantity, created_at, updated_at FROM stocks WHERE product_id = $1 FOR UPDATE
`

func (q *Queries) LockStockByProductID(ctx context.Context, db DBTX, productID int64) (Stock, error) {
	row := db.QueryRow(ctx, lockStockByProductID, productID)
	var i Stock
	err := row.Scan(
		&i.ProductID,
		&i.AvailableQuantity,
		&i.ReservedQuantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const lockStocksByProductIDs = `-- name: LockStocksByProductIDs :many
SELECT product_id, available_quantity, reserved_quantity, created_at, updated_at FROM stocks
WHERE product_id = ANY($1::bigint[])
ORDER BY product_id
FOR UPDATE
`

// Rows are locked in product_id order so concurrent batches cannot deadlock.
func (q *Queries) LockStocksByProductIDs(ctx context.Context, db DBTX, productIds []int64) ([]Stock, error) {
	return q.scanStocks(ctx, db, lockStocksByProductIDs, productIds)
}

const updateStockQuantities = `-- name: UpdateStockQuantities :exec
UPDATE stocks
SET available_quantity = $2, reserved_quantity = $3, updated_at = now()
WHERE product_id = $1
`

type UpdateStockQuantitiesParams struct {
	ProductID         int64 `json:"product_id"`
	AvailableQuantity int32 `json:"available_quantity"`
	ReservedQuantity  int32 `json:"reserved_quantity"`
}

func (q *Queries) UpdateStockQuantities(ctx context.Context, db DBTX, arg UpdateStockQuantitiesParams) error {
	_, err := db.Exec(ctx, updateStockQuantities, arg.ProductID, arg.AvailableQuantity, arg.ReservedQuantity)
	return err
}

func (q *Queries) scanStocks(ctx context.Context, db DBTX, query string, productIds []int64) ([]Stock, error) {
	rows, err := db.Query(ctx, query, productIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Stock
	for rows.Next() {
		var i Stock
		if err := rows.Scan(
			&i.ProductID,
			&i.AvailableQuantity,
			&i.ReservedQuantity,
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
