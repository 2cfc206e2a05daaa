package instructiondelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/go-petr/payment-instructions/internal/domain"
	"github.com/go-petr/payment-instructions/pkg/currencypkg"
	"github.com/go-petr/payment-instructions/pkg/errorspkg"
	"github.com/go-petr/payment-instructions/pkg/randompkg"
	"github.com/go-petr/payment-instructions/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidators(v)
	}

	os.Exit(m.Run())
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	debitID, creditID := randompkg.AccountID(), randompkg.AccountID()
	currency := randompkg.Currency()
	debitBalance := randompkg.Balance(1000, 10_000)
	creditBalance := randompkg.Balance(0, 10_000)

	instruction := "DEBIT 100 " + currency + " FROM ACCOUNT " + debitID + " FOR CREDIT TO ACCOUNT " + creditID

	accounts := []domain.Account{
		{ID: debitID, Balance: debitBalance, Currency: currency},
		{ID: creditID, Balance: creditBalance, Currency: currency},
	}

	validBody := gin.H{
		"accounts": []gin.H{
			{"id": debitID, "balance": debitBalance, "currency": currency},
			{"id": creditID, "balance": creditBalance, "currency": currency},
		},
		"instruction": instruction,
	}

	outcome := func(status domain.Status, code string) domain.TransactionOutcome {
		return domain.TransactionOutcome{
			Type:          strPtr(string(domain.TypeDebit)),
			Currency:      strPtr(currency),
			DebitAccount:  strPtr(debitID),
			CreditAccount: strPtr(creditID),
			Status:        status,
			StatusReason:  "reason",
			StatusCode:    code,
			Accounts:      []domain.OutcomeAccount{},
		}
	}

	testCases := []struct {
		name           string
		requestBody    any
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantMessage    string
		wantError      string
		wantOutcome    *domain.TransactionOutcome
	}{
		{
			name:        "Successful",
			requestBody: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Process(gomock.Any(), gomock.Eq(instruction), gomock.Eq(accounts)).
					Times(1).
					Return(outcome(domain.StatusSuccessful, domain.CodeSuccessful))
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    MsgSuccessful,
			wantOutcome: func() *domain.TransactionOutcome {
				o := outcome(domain.StatusSuccessful, domain.CodeSuccessful)
				return &o
			}(),
		},
		{
			name:        "Pending",
			requestBody: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Process(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(outcome(domain.StatusPending, domain.CodePending))
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    MsgPending,
			wantOutcome: func() *domain.TransactionOutcome {
				o := outcome(domain.StatusPending, domain.CodePending)
				return &o
			}(),
		},
		{
			name:        "Failed",
			requestBody: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Process(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(outcome(domain.StatusFailed, domain.CodeInsufficientFunds))
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    MsgFailed,
			wantOutcome: func() *domain.TransactionOutcome {
				o := outcome(domain.StatusFailed, domain.CodeInsufficientFunds)
				return &o
			}(),
		},
		{
			name: "InstructionIsTrimmed",
			requestBody: gin.H{
				"accounts":    []gin.H{},
				"instruction": "  " + instruction + "\n",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Process(gomock.Any(), gomock.Eq(instruction), gomock.Eq([]domain.Account{})).
					Times(1).
					Return(outcome(domain.StatusFailed, domain.CodeAccountNotFound))
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    MsgFailed,
			wantOutcome: func() *domain.TransactionOutcome {
				o := outcome(domain.StatusFailed, domain.CodeAccountNotFound)
				return &o
			}(),
		},
		{
			name: "EmptyInstructionReachesService",
			requestBody: gin.H{
				"accounts":    []gin.H{},
				"instruction": "",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Process(gomock.Any(), gomock.Eq(""), gomock.Any()).
					Times(1).
					Return(domain.NewOutcome(domain.ParsedInstruction{}, domain.StatusFailed, domain.CodeMalformedInstruction, "reason", nil))
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    MsgFailed,
		},
		{
			name: "StringBalanceAccepted",
			requestBody: gin.H{
				"accounts": []gin.H{
					{"id": "a", "balance": "250", "currency": currencypkg.NGN},
				},
				"instruction": instruction,
			},
			buildStubs: func(service *MockService) {
				want := []domain.Account{{ID: "a", Balance: 250, Currency: currencypkg.NGN}}
				service.EXPECT().
					Process(gomock.Any(), gomock.Eq(instruction), gomock.Eq(want)).
					Times(1).
					Return(outcome(domain.StatusFailed, domain.CodeAccountNotFound))
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    MsgFailed,
		},
		{
			name: "MissingInstruction",
			requestBody: gin.H{
				"accounts": []gin.H{},
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      errorspkg.ErrMalformedPayload.Error() + ": instruction field is required",
		},
		{
			name: "MissingAccounts",
			requestBody: gin.H{
				"instruction": instruction,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      errorspkg.ErrMalformedPayload.Error() + ": accounts field is required",
		},
		{
			name: "AccountWithoutID",
			requestBody: gin.H{
				"accounts": []gin.H{
					{"balance": 10, "currency": currencypkg.USD},
				},
				"instruction": instruction,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      errorspkg.ErrMalformedPayload.Error() + ": id field is required",
		},
		{
			name: "AccountWithoutBalance",
			requestBody: gin.H{
				"accounts": []gin.H{
					{"id": "a", "currency": currencypkg.USD},
				},
				"instruction": instruction,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      errorspkg.ErrMalformedPayload.Error() + ": balance field is required",
		},
		{
			name: "FractionalBalance",
			requestBody: gin.H{
				"accounts": []gin.H{
					{"id": "a", "balance": 10, "currency": currencypkg.USD},
					{"id": "b", "balance": 10.5, "currency": currencypkg.USD},
				},
				"instruction": instruction,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      errorspkg.ErrMalformedPayload.Error() + ": accounts[1].balance must be a whole number",
		},
		{
			name: "BalanceAtLimit",
			requestBody: gin.H{
				"accounts": []gin.H{
					{"id": "a", "balance": int64(1<<53 - 1), "currency": currencypkg.USD},
					{"id": "b", "balance": int64(-(1<<53 - 1)), "currency": currencypkg.USD},
				},
				"instruction": instruction,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Process(gomock.Any(), gomock.Eq(instruction), gomock.Eq([]domain.Account{
						{ID: "a", Balance: 1<<53 - 1, Currency: currencypkg.USD},
						{ID: "b", Balance: -(1<<53 - 1), Currency: currencypkg.USD},
					})).
					Times(1).
					Return(outcome(domain.StatusFailed, domain.CodeAccountNotFound))
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    MsgFailed,
		},
		{
			name: "BalanceAboveLimit",
			requestBody: gin.H{
				"accounts": []gin.H{
					{"id": "a", "balance": int64(1 << 53), "currency": currencypkg.USD},
				},
				"instruction": instruction,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      errorspkg.ErrMalformedPayload.Error() + ": accounts[0].balance is out of range",
		},
		{
			name: "BalanceBelowLimit",
			requestBody: gin.H{
				"accounts": []gin.H{
					{"id": "a", "balance": 10, "currency": currencypkg.USD},
					{"id": "b", "balance": int64(-(1 << 53)), "currency": currencypkg.USD},
				},
				"instruction": instruction,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      errorspkg.ErrMalformedPayload.Error() + ": accounts[1].balance is out of range",
		},
		{
			name: "BalanceBeyondInt64",
			requestBody: gin.H{
				"accounts": []gin.H{
					{"id": "a", "balance": json.Number("92233720368547758070"), "currency": currencypkg.USD},
				},
				"instruction": instruction,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      errorspkg.ErrMalformedPayload.Error() + ": accounts[0].balance is out of range",
		},
		{
			name: "InstructionNotString",
			requestBody: gin.H{
				"accounts":    []gin.H{},
				"instruction": 42,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      errorspkg.ErrMalformedPayload.Error(),
		},
		{
			name:        "UnknownStatus",
			requestBody: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Process(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionOutcome{Status: "unknown"})
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Initialize mocks
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			handler := NewHandler(service)

			server := gin.New()
			server.POST("/payment-instructions", handler.Create)

			tc.buildStubs(service)

			// Send request
			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/payment-instructions", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			// Test response
			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			got := &domain.TransactionOutcome{}
			res := web.Response{Data: got}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if res.Error != tc.wantError {
				t.Errorf("res.Error=%q, want %q", res.Error, tc.wantError)
			}

			if res.Message != tc.wantMessage {
				t.Errorf("res.Message=%q, want %q", res.Message, tc.wantMessage)
			}

			if tc.wantOutcome != nil {
				if diff := cmp.Diff(tc.wantOutcome, got); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestCreateRendersNulls(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockService(ctrl)
	service.EXPECT().
		Process(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(1).
		Return(domain.NewOutcome(domain.ParsedInstruction{}, domain.StatusFailed, domain.CodeMalformedInstruction, "reason", nil))

	server := gin.New()
	server.POST("/payment-instructions", NewHandler(service).Create)

	body := []byte(`{"accounts":[],"instruction":"nonsense"}`)

	req, err := http.NewRequest(http.MethodPost, "/payment-instructions", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Creating request error: %v", err)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	var res struct {
		Data map[string]any `json:"data"`
	}

	if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	for _, field := range []string{"type", "amount", "currency", "debit_account", "credit_account", "execute_by"} {
		v, ok := res.Data[field]
		if !ok {
			t.Errorf("data.%s is missing", field)
		}

		if v != nil {
			t.Errorf("data.%s=%v, want null", field, v)
		}
	}

	accounts, ok := res.Data["accounts"].([]any)
	if !ok || len(accounts) != 0 {
		t.Errorf("data.accounts=%v, want empty array", res.Data["accounts"])
	}
}
