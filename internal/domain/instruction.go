// Package domain provides definitions of all entities.
package domain

// InstructionType is the leading keyword of a payment instruction.
type InstructionType string

// Supported instruction types.
const (
	TypeDebit  InstructionType = "DEBIT"
	TypeCredit InstructionType = "CREDIT"
)

// ParsedInstruction holds the fields extracted from a payment instruction.
//
// Zero values mean the field could not be extracted: an empty string for
// text fields and 0 for Amount, since a valid amount is always positive.
// An empty ExecuteBy on a valid instruction means "execute immediately".
type ParsedInstruction struct {
	Type          InstructionType
	Amount        int64
	Currency      string
	DebitAccount  string
	CreditAccount string
	ExecuteBy     string // YYYY-MM-DD
}

// References reports whether id is the debit or the credit account of the instruction.
func (p ParsedInstruction) References(id string) bool {
	if id == "" {
		return false
	}

	return id == p.DebitAccount || id == p.CreditAccount
}
