
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createInstallment = `-- name: CreateInstallment :one
INSERT INTO installments (id, loan_id, numero_cuota, total, estado, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, loan_id, numero_cuota, total, estado, created_at, updated_at
`

type CreateInstallmentParams struct {
	ID          string             `json:"id"`
	LoanID      string             `json:"loan_id"`
	NumeroCuota int32              `json:"numero_cuota"`
	Total       pgtype.Numeric     `json:"total"`
	Estado      string             `json:"estado"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateInstallment(ctx context.Context, arg CreateInstallmentParams) (Installment, error) {
	row := q.db.QueryRow(ctx, createInstallment,
		arg.ID,
		arg.LoanID,
		arg.NumeroCuota,
		arg.Total,
		arg.Estado,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Installment
	err := row.Scan(
		&i.ID,
		&i.LoanID,
		&i.NumeroCuota,
		&i.Total,
		&i.Estado,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getInstallmentByID = `-- name: GetInstallmentByID :one
SELECT id, loan_id, numero_cuota, total, estado, created_at, updated_at FROM installments WHERE id = $1
`

func (q *Queries) GetInstallmentByID(ctx context.Context, id string) (Installment, error) {
	row := q.db.QueryRow(ctx, getInstallmentByID, id)
	var i Installment
	err := row.Scan(
		&i.ID,
		&i.LoanID,
		&i.NumeroCuota,
		&i.Total,
		&i.Estado,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getInstallmentByIDForUpdate = `-- name: GetInstallmentByIDForUpdate :one
SELECT id, loan_id, numero_cuota, total, estado, created_at, updated_at FROM installments WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetInstallmentByIDForUpdate(ctx context.Context, id string) (Installment, error) {
	row := q.db.QueryRow(ctx, getInstallmentByIDForUpdate, id)
	var i Installment
	err := row.Scan(
		&i.ID,
		&i.LoanID,
		&i.NumeroCuota,
		&i.Total,
		&i.Estado,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getNextPendingInstallment = `-- name: GetNextPendingInstallment :one
SELECT id, loan_id, numero_cuota, total, estado, created_at, updated_at FROM installments
WHERE loan_id = $1 AND estado = 'pendiente'
ORDER BY numero_cuota
LIMIT 1
`

func (q *Queries) GetNextPendingInstallment(ctx context.Context, loanID string) (Installment, error) {
	row := q.db.QueryRow(ctx, getNextPendingInstallment, loanID)
	var i Installment
	err := row.Scan(
		&i.ID,
		&i.LoanID,
		&i.NumeroCuota,
		&i.Total,
		&i.Estado,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listInstallmentsByLoan = `-- name: ListInstallmentsByLoan :many
SELECT id, loan_id, numero_cuota, total, estado, created_at, updated_at FROM installments
WHERE loan_id = $1
ORDER BY numero_cuota
`

func (q *Queries) ListInstallmentsByLoan(ctx context.Context, loanID string) ([]Installment, error) {
	rows, err := q.db.Query(ctx, listInstallmentsByLoan, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Installment{}
	for rows.Next() {
		var i Installment
		if err := rows.Scan(
			&i.ID,
			&i.LoanID,
			&i.NumeroCuota,
			&i.Total,
			&i.Estado,
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

const markAllInstallmentsPaid = `-- name: MarkAllInstallmentsPaid :exec
UPDATE installments
SET estado = 'pagada', updated_at = $2
WHERE loan_id = $1 AND estado = 'pendiente'
`

type MarkAllInstallmentsPaidParams struct {
	LoanID    string             `json:"loan_id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) MarkAllInstallmentsPaid(ctx context.Context, arg MarkAllInstallmentsPaidParams) error {
	_, err := q.db.Exec(ctx, markAllInstallmentsPaid, arg.LoanID, arg.UpdatedAt)
	return err
}

const markInstallmentPaid = `-- name: MarkInstallmentPaid :exec
UPDATE installments
SET estado = 'pagada', updated_at = $2
WHERE id = $1 AND estado = 'pendiente'
`

type MarkInstallmentPaidParams struct {
	ID        string             `json:"id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) MarkInstallmentPaid(ctx context.Context, arg MarkInstallmentPaidParams) error {
	_, err := q.db.Exec(ctx, markInstallmentPaid, arg.ID, arg.UpdatedAt)
	return err
}
