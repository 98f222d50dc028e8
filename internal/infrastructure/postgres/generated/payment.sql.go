
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createPayment = `-- name: CreatePayment :one
INSERT INTO payments (id, customer_id, loan_id, installment_id, monto_abonado, tipo_pago, modalidad_pago, numero_comprobante, saldo_pendiente, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, customer_id, loan_id, installment_id, monto_abonado, tipo_pago, modalidad_pago, numero_comprobante, saldo_pendiente, created_at
`

type CreatePaymentParams struct {
	ID                string             `json:"id"`
	CustomerID        string             `json:"customer_id"`
	LoanID            string             `json:"loan_id"`
	InstallmentID     pgtype.Text        `json:"installment_id"`
	MontoAbonado      pgtype.Numeric     `json:"monto_abonado"`
	TipoPago          string             `json:"tipo_pago"`
	ModalidadPago     string             `json:"modalidad_pago"`
	NumeroComprobante pgtype.Text        `json:"numero_comprobante"`
	SaldoPendiente    pgtype.Numeric     `json:"saldo_pendiente"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error) {
	row := q.db.QueryRow(ctx, createPayment,
		arg.ID,
		arg.CustomerID,
		arg.LoanID,
		arg.InstallmentID,
		arg.MontoAbonado,
		arg.TipoPago,
		arg.ModalidadPago,
		arg.NumeroComprobante,
		arg.SaldoPendiente,
		arg.CreatedAt,
	)
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.LoanID,
		&i.InstallmentID,
		&i.MontoAbonado,
		&i.TipoPago,
		&i.ModalidadPago,
		&i.NumeroComprobante,
		&i.SaldoPendiente,
		&i.CreatedAt,
	)
	return i, err
}

const getPaymentByID = `-- name: GetPaymentByID :one
SELECT id, customer_id, loan_id, installment_id, monto_abonado, tipo_pago, modalidad_pago, numero_comprobante, saldo_pendiente, created_at FROM payments WHERE id = $1
`

func (q *Queries) GetPaymentByID(ctx context.Context, id string) (Payment, error) {
	row := q.db.QueryRow(ctx, getPaymentByID, id)
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.LoanID,
		&i.InstallmentID,
		&i.MontoAbonado,
		&i.TipoPago,
		&i.ModalidadPago,
		&i.NumeroComprobante,
		&i.SaldoPendiente,
		&i.CreatedAt,
	)
	return i, err
}

const listPaymentsByCustomer = `-- name: ListPaymentsByCustomer :many
SELECT id, customer_id, loan_id, installment_id, monto_abonado, tipo_pago, modalidad_pago, numero_comprobante, saldo_pendiente, created_at FROM payments
WHERE customer_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

type ListPaymentsByCustomerParams struct {
	CustomerID string `json:"customer_id"`
	Limit      int32  `json:"limit"`
	Offset     int32  `json:"offset"`
}

func (q *Queries) ListPaymentsByCustomer(ctx context.Context, arg ListPaymentsByCustomerParams) ([]Payment, error) {
	rows, err := q.db.Query(ctx, listPaymentsByCustomer, arg.CustomerID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Payment{}
	for rows.Next() {
		var i Payment
		if err := rows.Scan(
			&i.ID,
			&i.CustomerID,
			&i.LoanID,
			&i.InstallmentID,
			&i.MontoAbonado,
			&i.TipoPago,
			&i.ModalidadPago,
			&i.NumeroComprobante,
			&i.SaldoPendiente,
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

const listPaymentsByLoan = `-- name: ListPaymentsByLoan :many
SELECT id, customer_id, loan_id, installment_id, monto_abonado, tipo_pago, modalidad_pago, numero_comprobante, saldo_pendiente, created_at FROM payments
WHERE loan_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

type ListPaymentsByLoanParams struct {
	LoanID string `json:"loan_id"`
	Limit  int32  `json:"limit"`
	Offset int32  `json:"offset"`
}

func (q *Queries) ListPaymentsByLoan(ctx context.Context, arg ListPaymentsByLoanParams) ([]Payment, error) {
	rows, err := q.db.Query(ctx, listPaymentsByLoan, arg.LoanID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Payment{}
	for rows.Next() {
		var i Payment
		if err := rows.Scan(
			&i.ID,
			&i.CustomerID,
			&i.LoanID,
			&i.InstallmentID,
			&i.MontoAbonado,
			&i.TipoPago,
			&i.ModalidadPago,
			&i.NumeroComprobante,
			&i.SaldoPendiente,
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

const sumPaymentsByInstallment = `-- name: SumPaymentsByInstallment :one
SELECT COALESCE(SUM(monto_abonado), 0)::NUMERIC AS total FROM payments WHERE installment_id = $1
`

func (q *Queries) SumPaymentsByInstallment(ctx context.Context, installmentID pgtype.Text) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumPaymentsByInstallment, installmentID)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}

const sumPaymentsByLoan = `-- name: SumPaymentsByLoan :one
SELECT COALESCE(SUM(monto_abonado), 0)::NUMERIC AS total FROM payments WHERE loan_id = $1
`

func (q *Queries) SumPaymentsByLoan(ctx context.Context, loanID string) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumPaymentsByLoan, loanID)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}
