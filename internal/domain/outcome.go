package domain

// Status is the terminal state of a processed instruction.
type Status string

// Transaction statuses.
const (
	StatusSuccessful Status = "successful"
	StatusPending    Status = "pending"
	StatusFailed     Status = "failed"
)

// Status codes reported with every outcome.
const (
	CodeSuccessful           = "AP00"
	CodePending              = "AP02"
	CodeInvalidAmount        = "AM01"
	CodeCurrencyMismatch     = "CU01"
	CodeUnsupportedCurrency  = "CU02"
	CodeInsufficientFunds    = "AC01"
	CodeSameAccounts         = "AC02"
	CodeAccountNotFound      = "AC03"
	CodeInvalidAccountID     = "AC04"
	CodeInvalidDateFormat    = "DT01"
	CodeMissingKeyword       = "SY01"
	CodeInvalidKeywordOrder  = "SY02"
	CodeMalformedInstruction = "SY03"
)

// Account holds a caller supplied account balance.
type Account struct {
	ID       string `json:"id"`
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
}

// OutcomeAccount is an account as reported back after processing.
type OutcomeAccount struct {
	ID            string `json:"id"`
	Balance       int64  `json:"balance"`
	BalanceBefore int64  `json:"balance_before"`
	Currency      string `json:"currency"`
}

// TransactionOutcome is the result of processing a payment instruction.
//
// Pointer fields render as null when the value could not be extracted.
type TransactionOutcome struct {
	Type          *string          `json:"type"`
	Amount        *int64           `json:"amount"`
	Currency      *string          `json:"currency"`
	DebitAccount  *string          `json:"debit_account"`
	CreditAccount *string          `json:"credit_account"`
	ExecuteBy     *string          `json:"execute_by"`
	Status        Status           `json:"status"`
	StatusReason  string           `json:"status_reason"`
	StatusCode    string           `json:"status_code"`
	Accounts      []OutcomeAccount `json:"accounts"`
}

// NewOutcome returns an outcome echoing the fields of p with the given status.
// Accounts is always non-nil so that it renders as an array.
func NewOutcome(p ParsedInstruction, status Status, code, reason string, accounts []OutcomeAccount) TransactionOutcome {
	if accounts == nil {
		accounts = []OutcomeAccount{}
	}

	return TransactionOutcome{
		Type:          optionalString(string(p.Type)),
		Amount:        optionalAmount(p.Amount),
		Currency:      optionalString(p.Currency),
		DebitAccount:  optionalString(p.DebitAccount),
		CreditAccount: optionalString(p.CreditAccount),
		ExecuteBy:     optionalString(p.ExecuteBy),
		Status:        status,
		StatusReason:  reason,
		StatusCode:    code,
		Accounts:      accounts,
	}
}

// SnapshotAccounts selects the accounts referenced by p in the order of the
// given list. Balances are reported unchanged.
func SnapshotAccounts(p ParsedInstruction, accounts []Account) []OutcomeAccount {
	res := []OutcomeAccount{}

	for _, a := range accounts {
		if !p.References(a.ID) {
			continue
		}

		res = append(res, OutcomeAccount{
			ID:            a.ID,
			Balance:       a.Balance,
			BalanceBefore: a.Balance,
			Currency:      a.Currency,
		})
	}

	return res
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func optionalAmount(n int64) *int64 {
	if n <= 0 {
		return nil
	}

	return &n
}
