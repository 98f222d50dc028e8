
package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Customer struct {
	ID              string             `json:"id"`
	NumeroDocumento string             `json:"numero_documento"`
	Nombres         string             `json:"nombres"`
	Apellidos       string             `json:"apellidos"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
}

type Installment struct {
	ID          string             `json:"id"`
	LoanID      string             `json:"loan_id"`
	NumeroCuota int32              `json:"numero_cuota"`
	Total       pgtype.Numeric     `json:"total"`
	Estado      string             `json:"estado"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type Loan struct {
	ID             string             `json:"id"`
	CustomerID     string             `json:"customer_id"`
	MontoTotal     pgtype.Numeric     `json:"monto_total"`
	ValorCuota     pgtype.Numeric     `json:"valor_cuota"`
	SaldoPendiente pgtype.Numeric     `json:"saldo_pendiente"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
	Published     bool               `json:"published"`
}

type Payment struct {
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
