package usecase

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type cachedBalance struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

func encodeBalanceResult(result *BalanceResult) string {
	data, err := json.Marshal(cachedBalance{
		TotalAmount: result.TotalAmount,
		TotalPaid:   result.TotalPaid,
		Outstanding: result.OutstandingBalance,
	})
	if err != nil {
		return ""
	}

	return string(data)
}

func parseBalanceResult(loanID, value string) (*BalanceResult, bool) {
	var cached cachedBalance
	if err := json.Unmarshal([]byte(value), &cached); err != nil {
		return nil, false
	}

	return &BalanceResult{
		LoanID:             loanID,
		TotalAmount:        cached.TotalAmount,
		TotalPaid:          cached.TotalPaid,
		OutstandingBalance: cached.Outstanding,
	}, true
}
