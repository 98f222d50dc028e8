
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countCustomers = `-- name: CountCustomers :one
SELECT COUNT(*) FROM customers
`

func (q *Queries) CountCustomers(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countCustomers)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createCustomer = `-- name: CreateCustomer :one
INSERT INTO customers (id, numero_documento, nombres, apellidos, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, numero_documento, nombres, apellidos, created_at
`

type CreateCustomerParams struct {
	ID              string             `json:"id"`
	NumeroDocumento string             `json:"numero_documento"`
	Nombres         string             `json:"nombres"`
	Apellidos       string             `json:"apellidos"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateCustomer(ctx context.Context, arg CreateCustomerParams) (Customer, error) {
	row := q.db.QueryRow(ctx, createCustomer,
		arg.ID,
		arg.NumeroDocumento,
		arg.Nombres,
		arg.Apellidos,
		arg.CreatedAt,
	)
	var i Customer
	err := row.Scan(
		&i.ID,
		&i.NumeroDocumento,
		&i.Nombres,
		&i.Apellidos,
		&i.CreatedAt,
	)
	return i, err
}

const getCustomerByDocument = `-- name: GetCustomerByDocument :one
SELECT id, numero_documento, nombres, apellidos, created_at FROM customers WHERE numero_documento = $1
`

func (q *Queries) GetCustomerByDocument(ctx context.Context, numeroDocumento string) (Customer, error) {
	row := q.db.QueryRow(ctx, getCustomerByDocument, numeroDocumento)
	var i Customer
	err := row.Scan(
		&i.ID,
		&i.NumeroDocumento,
		&i.Nombres,
		&i.Apellidos,
		&i.CreatedAt,
	)
	return i, err
}

const getCustomerByID = `-- name: GetCustomerByID :one
SELECT id, numero_documento, nombres, apellidos, created_at FROM customers WHERE id = $1
`

func (q *Queries) GetCustomerByID(ctx context.Context, id string) (Customer, error) {
	row := q.db.QueryRow(ctx, getCustomerByID, id)
	var i Customer
	err := row.Scan(
		&i.ID,
		&i.NumeroDocumento,
		&i.Nombres,
		&i.Apellidos,
		&i.CreatedAt,
	)
	return i, err
}

const listCustomers = `-- name: ListCustomers :many
SELECT id, numero_documento, nombres, apellidos, created_at FROM customers ORDER BY created_at DESC LIMIT $1 OFFSET $2
`

type ListCustomersParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListCustomers(ctx context.Context, arg ListCustomersParams) ([]Customer, error) {
	rows, err := q.db.Query(ctx, listCustomers, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Customer{}
	for rows.Next() {
		var i Customer
		if err := rows.Scan(
			&i.ID,
			&i.NumeroDocumento,
			&i.Nombres,
			&i.Apellidos,
			&i.CreatedAt,
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
