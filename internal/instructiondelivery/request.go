package instructiondelivery

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/go-petr/payment-instructions/internal/domain"
	"github.com/go-petr/payment-instructions/pkg/errorspkg"
)

// maxBalance is the largest magnitude a JSON number holds exactly.
const maxBalance = 1<<53 - 1

var (
	balanceMax = decimal.NewFromInt(maxBalance)
	balanceMin = decimal.NewFromInt(-maxBalance)
)

type accountRequest struct {
	ID       string           `json:"id" binding:"required"`
	Balance  *decimal.Decimal `json:"balance" binding:"required"`
	Currency string           `json:"currency" binding:"required"`
}

type request struct {
	Accounts    []accountRequest `json:"accounts" binding:"required,dive"`
	Instruction *string          `json:"instruction" binding:"required"`
}

// normalize converts a bound request into service input. Balances must be
// whole numbers within ±(2^53-1), so crediting any valid amount cannot
// overflow int64.
func (r request) normalize() (string, []domain.Account, error) {
	accounts := make([]domain.Account, 0, len(r.Accounts))

	for i, a := range r.Accounts {
		if !a.Balance.IsInteger() {
			return "", nil, fmt.Errorf("%w: accounts[%d].balance must be a whole number", errorspkg.ErrMalformedPayload, i)
		}

		if a.Balance.GreaterThan(balanceMax) || a.Balance.LessThan(balanceMin) {
			return "", nil, fmt.Errorf("%w: accounts[%d].balance is out of range", errorspkg.ErrMalformedPayload, i)
		}

		accounts = append(accounts, domain.Account{
			ID:       a.ID,
			Balance:  a.Balance.IntPart(),
			Currency: a.Currency,
		})
	}

	return strings.TrimSpace(*r.Instruction), accounts, nil
}
