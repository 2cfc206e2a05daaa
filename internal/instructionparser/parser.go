// Package instructionparser turns payment instruction text into a domain.ParsedInstruction.
//
// Two positional forms are accepted, keywords are case-insensitive:
//
//	DEBIT <amount> <currency> FROM ACCOUNT <id> FOR CREDIT TO ACCOUNT <id> [ON <YYYY-MM-DD>]
//	CREDIT <amount> <currency> TO ACCOUNT <id> FOR DEBIT FROM ACCOUNT <id> [ON <YYYY-MM-DD>]
package instructionparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-petr/payment-instructions/internal/domain"
	"github.com/go-petr/payment-instructions/pkg/messagepkg"
)

// Token positions shared by both forms.
const (
	posType          = 0
	posAmount        = 1
	posCurrency      = 2
	posRoleKeywords  = 3
	posFirstAccount  = 5
	posLinkKeywords  = 6
	posSecondAccount = 10
	posOn            = 11
	posDate          = 12

	minTokens      = 6
	completeTokens = 11

	keywordOn = "ON"
)

// ParseError is returned by Parse when the instruction is rejected.
type ParseError struct {
	Code   string
	Reason string
	// Partial holds whatever could be extracted before the failing check.
	Partial domain.ParsedInstruction
}

func (e *ParseError) Error() string {
	return e.Code + ": " + e.Reason
}

type grammar struct {
	typ          domain.InstructionType
	roleKeywords []string
	linkKeywords []string
	firstRole    string
	secondRole   string
}

var grammars = map[domain.InstructionType]grammar{
	domain.TypeDebit: {
		typ:          domain.TypeDebit,
		roleKeywords: []string{"FROM", "ACCOUNT"},
		linkKeywords: []string{"FOR", "CREDIT", "TO", "ACCOUNT"},
		firstRole:    "debit",
		secondRole:   "credit",
	},
	domain.TypeCredit: {
		typ:          domain.TypeCredit,
		roleKeywords: []string{"TO", "ACCOUNT"},
		linkKeywords: []string{"FOR", "DEBIT", "FROM", "ACCOUNT"},
		firstRole:    "credit",
		secondRole:   "debit",
	},
}

// Parse validates raw against the instruction grammar.
//
// The returned instruction is populated with every field that could be
// extracted, even when err is not nil. A non-nil err is always a *ParseError.
func Parse(raw string) (domain.ParsedInstruction, error) {
	if raw == "" {
		return domain.ParsedInstruction{}, malformed("instruction is empty")
	}

	tokens := tokenize(raw)
	if len(tokens) < minTokens {
		return domain.ParsedInstruction{}, malformed("instruction is too short")
	}

	g, ok := grammars[domain.InstructionType(strings.ToUpper(tokens[posType]))]
	if !ok {
		return domain.ParsedInstruction{}, malformed("instruction must start with DEBIT or CREDIT")
	}

	p := parser{tokens: tokens, g: g}
	p.seed()

	if err := p.parse(); err != nil {
		return p.res, err
	}

	return p.res, nil
}

func malformed(detail string) *ParseError {
	return &ParseError{
		Code:   domain.CodeMalformedInstruction,
		Reason: messagepkg.Reason(domain.CodeMalformedInstruction) + ": " + detail,
	}
}

// parser accumulates the fields of a single Parse call.
type parser struct {
	tokens []string
	g      grammar
	res    domain.ParsedInstruction
}

func (p *parser) token(i int) string {
	if i < len(p.tokens) {
		return p.tokens[i]
	}

	return ""
}

// seed fills the fields whose position is fixed once the type is known.
// Amount is only set after it has been validated.
func (p *parser) seed() {
	p.res.Type = p.g.typ
	p.res.Currency = strings.ToUpper(p.token(posCurrency))
	p.setAccount(p.g.firstRole, p.token(posFirstAccount))
	p.setAccount(p.g.secondRole, p.token(posSecondAccount))

	if strings.EqualFold(p.token(posOn), keywordOn) {
		p.res.ExecuteBy = p.token(posDate)
	}
}

func (p *parser) setAccount(role, id string) {
	if role == "debit" {
		p.res.DebitAccount = id
	} else {
		p.res.CreditAccount = id
	}
}

func (p *parser) fail(code, detail string) error {
	reason := messagepkg.Reason(code)
	if detail != "" {
		reason += ": " + detail
	}

	return &ParseError{Code: code, Reason: reason, Partial: p.res}
}

func (p *parser) parse() error {
	n := len(p.tokens)

	if n < minTokens {
		return p.fail(domain.CodeMissingKeyword, "instruction is incomplete")
	}

	amountToken := p.token(posAmount)
	if amountToken == "" {
		return p.fail(domain.CodeInvalidAmount, "amount is missing")
	}

	amount, ok := parseAmount(amountToken)
	if !ok {
		return p.fail(domain.CodeInvalidAmount, fmt.Sprintf("got %q", amountToken))
	}

	p.res.Amount = amount

	if n >= posRoleKeywords+len(p.g.roleKeywords) && !p.keywordsAt(posRoleKeywords, p.g.roleKeywords) {
		return p.fail(domain.CodeInvalidKeywordOrder, "expected "+strings.Join(p.g.roleKeywords, " ")+" after currency")
	}

	if id := p.token(posFirstAccount); !validAccountID(id) {
		return p.fail(domain.CodeInvalidAccountID, fmt.Sprintf("invalid %s account ID %q", p.g.firstRole, id))
	}

	if n >= posLinkKeywords+len(p.g.linkKeywords) && !p.keywordsAt(posLinkKeywords, p.g.linkKeywords) {
		return p.fail(domain.CodeInvalidKeywordOrder, "expected "+strings.Join(p.g.linkKeywords, " ")+" after "+p.g.firstRole+" account")
	}

	if n > posSecondAccount {
		if id := p.token(posSecondAccount); !validAccountID(id) {
			return p.fail(domain.CodeInvalidAccountID, fmt.Sprintf("invalid %s account ID %q", p.g.secondRole, id))
		}
	}

	if p.res.DebitAccount != "" && p.res.DebitAccount == p.res.CreditAccount {
		return p.fail(domain.CodeSameAccounts, "")
	}

	if n < completeTokens {
		return p.fail(domain.CodeMissingKeyword, "instruction is incomplete")
	}

	rest := p.tokens[posOn:]

	if len(rest) > 0 && strings.EqualFold(rest[0], keywordOn) {
		if len(rest) < 2 {
			return p.fail(domain.CodeInvalidDateFormat, "date is missing after ON")
		}

		if !validDate(rest[1]) {
			return p.fail(domain.CodeInvalidDateFormat, fmt.Sprintf("expected YYYY-MM-DD, got %q", rest[1]))
		}

		rest = rest[2:]
	}

	if len(rest) > 0 {
		return p.fail(domain.CodeInvalidKeywordOrder, fmt.Sprintf("unexpected %q at end of instruction", rest[0]))
	}

	return nil
}

func (p *parser) keywordsAt(pos int, keywords []string) bool {
	for i, kw := range keywords {
		if !strings.EqualFold(p.token(pos+i), kw) {
			return false
		}
	}

	return true
}

func tokenize(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// parseAmount accepts canonical positive integers only: no sign, no leading
// zeros, no fraction.
func parseAmount(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}

	if strconv.FormatInt(n, 10) != s {
		return 0, false
	}

	return n, true
}

func validAccountID(id string) bool {
	if id == "" {
		return false
	}

	for i := 0; i < len(id); i++ {
		c := id[i]

		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == '-', c == '.', c == '@':
		default:
			return false
		}
	}

	return true
}
