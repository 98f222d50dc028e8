
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createLoan = `-- name: CreateLoan :one
INSERT INTO loans (id, customer_id, monto_total, valor_cuota, saldo_pendiente, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, customer_id, monto_total, valor_cuota, saldo_pendiente, created_at, updated_at
`

type CreateLoanParams struct {
	ID             string             `json:"id"`
	CustomerID     string             `json:"customer_id"`
	MontoTotal     pgtype.Numeric     `json:"monto_total"`
	ValorCuota     pgtype.Numeric     `json:"valor_cuota"`
	SaldoPendiente pgtype.Numeric     `json:"saldo_pendiente"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateLoan(ctx context.Context, arg CreateLoanParams) (Loan, error) {
	row := q.db.QueryRow(ctx, createLoan,
		arg.ID,
		arg.CustomerID,
		arg.MontoTotal,
		arg.ValorCuota,
		arg.SaldoPendiente,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Loan
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.MontoTotal,
		&i.ValorCuota,
		&i.SaldoPendiente,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getLatestLoanByCustomer = `-- name: GetLatestLoanByCustomer :one
SELECT id, customer_id, monto_total, valor_cuota, saldo_pendiente, created_at, updated_at FROM loans
WHERE customer_id = $1 AND monto_total IS NOT NULL
ORDER BY created_at DESC, id DESC
LIMIT 1
`

func (q *Queries) GetLatestLoanByCustomer(ctx context.Context, customerID string) (Loan, error) {
	row := q.db.QueryRow(ctx, getLatestLoanByCustomer, customerID)
	var i Loan
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.MontoTotal,
		&i.ValorCuota,
		&i.SaldoPendiente,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getLoanByID = `-- name: GetLoanByID :one
SELECT id, customer_id, monto_total, valor_cuota, saldo_pendiente, created_at, updated_at FROM loans WHERE id = $1
`

func (q *Queries) GetLoanByID(ctx context.Context, id string) (Loan, error) {
	row := q.db.QueryRow(ctx, getLoanByID, id)
	var i Loan
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.MontoTotal,
		&i.ValorCuota,
		&i.SaldoPendiente,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getLoanByIDForUpdate = `-- name: GetLoanByIDForUpdate :one
SELECT id, customer_id, monto_total, valor_cuota, saldo_pendiente, created_at, updated_at FROM loans WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetLoanByIDForUpdate(ctx context.Context, id string) (Loan, error) {
	row := q.db.QueryRow(ctx, getLoanByIDForUpdate, id)
	var i Loan
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.MontoTotal,
		&i.ValorCuota,
		&i.SaldoPendiente,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listLoansByCustomer = `-- name: ListLoansByCustomer :many
SELECT id, customer_id, monto_total, valor_cuota, saldo_pendiente, created_at, updated_at FROM loans
WHERE customer_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

type ListLoansByCustomerParams struct {
	CustomerID string `json:"customer_id"`
	Limit      int32  `json:"limit"`
	Offset     int32  `json:"offset"`
}

func (q *Queries) ListLoansByCustomer(ctx context.Context, arg ListLoansByCustomerParams) ([]Loan, error) {
	rows, err := q.db.Query(ctx, listLoansByCustomer, arg.CustomerID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Loan{}
	for rows.Next() {
		var i Loan
		if err := rows.Scan(
			&i.ID,
			&i.CustomerID,
			&i.MontoTotal,
			&i.ValorCuota,
			&i.SaldoPendiente,
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

const findDriftedLoans = `-- name: FindDriftedLoans :many
SELECT l.id, l.customer_id, l.saldo_pendiente,
       GREATEST(l.monto_total - COALESCE(p.paid, 0), 0)::NUMERIC AS computed
FROM loans l
LEFT JOIN (
    SELECT loan_id, SUM(monto_abonado) AS paid FROM payments GROUP BY loan_id
) p ON p.loan_id = l.id
WHERE l.monto_total IS NOT NULL
  AND l.saldo_pendiente <> GREATEST(l.monto_total - COALESCE(p.paid, 0), 0)
ORDER BY l.created_at
LIMIT $1
`

type FindDriftedLoansRow struct {
	ID             string         `json:"id"`
	CustomerID     string         `json:"customer_id"`
	SaldoPendiente pgtype.Numeric `json:"saldo_pendiente"`
	Computed       pgtype.Numeric `json:"computed"`
}

func (q *Queries) FindDriftedLoans(ctx context.Context, limit int32) ([]FindDriftedLoansRow, error) {
	rows, err := q.db.Query(ctx, findDriftedLoans, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []FindDriftedLoansRow{}
	for rows.Next() {
		var i FindDriftedLoansRow
		if err := rows.Scan(
			&i.ID,
			&i.CustomerID,
			&i.SaldoPendiente,
			&i.Computed,
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

const updateLoanBalance = `-- name: UpdateLoanBalance :exec
UPDATE loans
SET saldo_pendiente = $2, updated_at = $3
WHERE id = $1
`

type UpdateLoanBalanceParams struct {
	ID             string             `json:"id"`
	SaldoPendiente pgtype.Numeric     `json:"saldo_pendiente"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateLoanBalance(ctx context.Context, arg UpdateLoanBalanceParams) error {
	_, err := q.db.Exec(ctx, updateLoanBalance, arg.ID, arg.SaldoPendiente, arg.UpdatedAt)
	return err
}
