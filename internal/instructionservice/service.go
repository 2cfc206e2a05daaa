// Package instructionservice manages business logic layer of payment instructions.
package instructionservice

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/go-petr/payment-instructions/internal/domain"
	"github.com/go-petr/payment-instructions/internal/instructionparser"
	"github.com/go-petr/payment-instructions/pkg/messagepkg"
)

// Resolver provides the transfer resolution needed by the instruction service.
type Resolver interface {
	Resolve(p domain.ParsedInstruction, accounts []domain.Account) domain.TransactionOutcome
}

// Service facilitates instruction service layer logic.
type Service struct {
	resolver Resolver
}

// New returns instruction service struct to manage payment instructions.
func New(r Resolver) *Service {
	return &Service{resolver: r}
}

// Process parses instruction and, when it is valid, resolves it against accounts.
//
// A rejected instruction yields a failed outcome built from whatever the
// parser could extract, reporting only the accounts it referenced.
func (s *Service) Process(ctx context.Context, instruction string, accounts []domain.Account) domain.TransactionOutcome {
	l := zerolog.Ctx(ctx)

	parsed, err := instructionparser.Parse(instruction)
	if err != nil {
		outcome := rejected(parsed, err, accounts)

		l.Info().
			Str("status_code", outcome.StatusCode).
			Str("status_reason", outcome.StatusReason).
			Msg("instruction rejected")

		return outcome
	}

	outcome := s.resolver.Resolve(parsed, accounts)

	event := l.Info().
		Str("type", string(parsed.Type)).
		Int64("amount", parsed.Amount).
		Str("currency", parsed.Currency).
		Str("status", string(outcome.Status)).
		Str("status_code", outcome.StatusCode)

	if outcome.Status == domain.StatusFailed {
		event = event.Str("status_reason", outcome.StatusReason)
	}

	event.Msg("instruction resolved")

	return outcome
}

func rejected(partial domain.ParsedInstruction, err error, accounts []domain.Account) domain.TransactionOutcome {
	code, reason := domain.CodeMalformedInstruction, messagepkg.Reason(domain.CodeMalformedInstruction)

	var perr *instructionparser.ParseError
	if errors.As(err, &perr) {
		code, reason = perr.Code, perr.Reason
	}

	return domain.NewOutcome(partial, domain.StatusFailed, code, reason, domain.SnapshotAccounts(partial, accounts))
}
