// Package transferresolver applies business rules to a parsed instruction
// and decides whether the transfer executes now, later, or not at all.
package transferresolver

import (
	"fmt"
	"math"
	"time"

	"github.com/go-petr/payment-instructions/internal/domain"
	"github.com/go-petr/payment-instructions/pkg/currencypkg"
	"github.com/go-petr/payment-instructions/pkg/messagepkg"
)

const dateLayout = "2006-01-02"

// Resolver facilitates transfer resolution.
type Resolver struct {
	now func() time.Time
}

// New returns a resolver that reads the current date from now.
// A nil now falls back to time.Now.
func New(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}

	return &Resolver{now: now}
}

var defaultResolver = New(nil)

// Resolve resolves p against accounts using the wall clock.
func Resolve(p domain.ParsedInstruction, accounts []domain.Account) domain.TransactionOutcome {
	return defaultResolver.Resolve(p, accounts)
}

// Resolve runs the rule chain for p. The first failing rule decides the outcome.
//
// accounts is treated as a read-only snapshot. The reported accounts are the
// ones referenced by p, in the order of accounts. p.ExecuteBy, when set, is
// a YYYY-MM-DD date; any other value fails with DT01.
func (r *Resolver) Resolve(p domain.ParsedInstruction, accounts []domain.Account) domain.TransactionOutcome {
	snapshot := domain.SnapshotAccounts(p, accounts)

	failed := func(code, reason string) domain.TransactionOutcome {
		return domain.NewOutcome(p, domain.StatusFailed, code, reason, snapshot)
	}

	debit, ok := find(accounts, p.DebitAccount)
	if !ok {
		return failed(domain.CodeAccountNotFound, fmt.Sprintf("Debit account %s not found", p.DebitAccount))
	}

	credit, ok := find(accounts, p.CreditAccount)
	if !ok {
		return failed(domain.CodeAccountNotFound, fmt.Sprintf("Credit account %s not found", p.CreditAccount))
	}

	if !currencypkg.IsSupportedCurrency(p.Currency) {
		return failed(domain.CodeUnsupportedCurrency, messagepkg.Reason(domain.CodeUnsupportedCurrency))
	}

	if debit.Currency != p.Currency || credit.Currency != p.Currency {
		return failed(domain.CodeCurrencyMismatch, fmt.Sprintf(
			"Account currency mismatch: debit account is %s, credit account is %s, instruction is %s",
			debit.Currency, credit.Currency, p.Currency,
		))
	}

	if debit.Balance < p.Amount {
		return failed(domain.CodeInsufficientFunds, fmt.Sprintf(
			"Insufficient funds in debit account %s: has %d %s, needs %d %s",
			debit.ID, debit.Balance, p.Currency, p.Amount, p.Currency,
		))
	}

	if credit.Balance > 0 && p.Amount > math.MaxInt64-credit.Balance {
		return failed(domain.CodeInvalidAmount, fmt.Sprintf(
			"Amount %d %s would overflow the balance of credit account %s",
			p.Amount, p.Currency, credit.ID,
		))
	}

	pending, err := r.scheduled(p.ExecuteBy)
	if err != nil {
		return failed(domain.CodeInvalidDateFormat, messagepkg.Reason(domain.CodeInvalidDateFormat))
	}

	if pending {
		return domain.NewOutcome(p, domain.StatusPending, domain.CodePending, messagepkg.Reason(domain.CodePending), snapshot)
	}

	return domain.NewOutcome(p, domain.StatusSuccessful, domain.CodeSuccessful,
		messagepkg.Reason(domain.CodeSuccessful), apply(snapshot, p))
}

// scheduled reports whether executeBy is strictly after today in UTC.
func (r *Resolver) scheduled(executeBy string) (bool, error) {
	if executeBy == "" {
		return false, nil
	}

	date, err := time.Parse(dateLayout, executeBy)
	if err != nil {
		return false, err
	}

	now := r.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return date.After(today), nil
}

// find returns the first account with the given id.
func find(accounts []domain.Account, id string) (domain.Account, bool) {
	for _, a := range accounts {
		if a.ID == id {
			return a, true
		}
	}

	return domain.Account{}, false
}

// apply moves p.Amount from the debit to the credit account in a copy of
// snapshot. Only the first entry of each id is updated.
func apply(snapshot []domain.OutcomeAccount, p domain.ParsedInstruction) []domain.OutcomeAccount {
	res := make([]domain.OutcomeAccount, len(snapshot))
	copy(res, snapshot)

	var debited, credited bool

	for i := range res {
		switch {
		case !debited && res[i].ID == p.DebitAccount:
			res[i].Balance = res[i].BalanceBefore - p.Amount
			debited = true
		case !credited && res[i].ID == p.CreditAccount:
			res[i].Balance = res[i].BalanceBefore + p.Amount
			credited = true
		}
	}

	return res
}
