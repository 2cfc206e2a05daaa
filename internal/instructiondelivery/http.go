// Package instructiondelivery manages delivery layer of payment instructions.
package instructiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/payment-instructions/internal/domain"
	"github.com/go-petr/payment-instructions/pkg/errorspkg"
	"github.com/go-petr/payment-instructions/pkg/metricspkg"
	"github.com/go-petr/payment-instructions/pkg/web"
)

// Response messages by outcome status.
const (
	MsgSuccessful = "Transaction executed successfully"
	MsgPending    = "Transaction scheduled for future execution"
	MsgFailed     = "Transaction failed"
)

// Service provides service layer interface needed by instruction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package instructiondelivery
type Service interface {
	Process(ctx context.Context, instruction string, accounts []domain.Account) domain.TransactionOutcome
}

// Handler facilitates instruction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns instruction handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// Create handles http request to process a payment instruction.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	instruction, accounts, err := req.normalize()
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	outcome := h.service.Process(ctx, instruction, accounts)

	metricspkg.Outcomes.WithLabelValues(string(outcome.Status), outcome.StatusCode).Inc()

	switch outcome.Status {
	case domain.StatusSuccessful:
		gctx.JSON(http.StatusOK, web.Response{Message: MsgSuccessful, Data: outcome})
	case domain.StatusPending:
		gctx.JSON(http.StatusOK, web.Response{Message: MsgPending, Data: outcome})
	case domain.StatusFailed:
		gctx.JSON(http.StatusBadRequest, web.Response{Message: MsgFailed, Data: outcome})
	default:
		l.Error().Str("status", string(outcome.Status)).Msg("unknown outcome status")
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

func bindErrorMsg(err error) string {
	var ve validator.ValidationErrors

	if errors.As(err, &ve) {
		field := ve[0]
		return errorspkg.ErrMalformedPayload.Error() + ": " + field.Field() + web.GetErrorMsg(field)
	}

	return errorspkg.ErrMalformedPayload.Error()
}
