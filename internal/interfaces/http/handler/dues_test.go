package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/erp/obligations/internal/domain/dues"
	"github.com/erp/obligations/internal/domain/shared"
	"github.com/erp/obligations/internal/interfaces/http/dto"
	"github.com/erp/obligations/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDueService struct {
	mock.Mock
}

func (m *MockDueService) ListFiltered(ctx context.Context, filter dues.Filter) ([]dues.FinancialDue, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dues.FinancialDue), args.Error(1)
}

func (m *MockDueService) GetStats(ctx context.Context) (dues.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(dues.Stats), args.Error(1)
}

func (m *MockDueService) SetStatus(ctx context.Context, rawID string, status dues.DueStatus, info *dues.PaymentInfo) error {
	return m.Called(ctx, rawID, status, info).Error(0)
}

func setupDuesRouter(svc DueService, loc *time.Location) *gin.Engine {
	middleware.SetupValidator()
	h := NewDuesHandler(svc, loc)

	r := gin.New()
	r.Use(middleware.RequestID())
	api := r.Group("/api/v1/dues")
	api.GET("", h.ListDues)
	api.GET("/stats", h.GetStats)
	api.POST("/:id/status", h.SetStatus)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDuesHandler_ListDues(t *testing.T) {
	due := dues.FinancialDue{
		ID:          dues.NewRecurringDueID(dues.RecurrenceKindClient, "c1", 2025, 3),
		Type:        dues.DueTypeReceivable,
		Source:      dues.DueSourceClientRecurring,
		Description: "Monthly fee",
		Amount:      decimal.NewFromInt(2000),
		DueDate:     time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:      dues.DueStatusPending,
		Priority:    dues.PriorityMedium,
		ClientName:  "Joao",
	}

	t.Run("no filters", func(t *testing.T) {
		svc := new(MockDueService)
		svc.On("ListFiltered", mock.Anything, dues.Filter{}).Return([]dues.FinancialDue{due}, nil)

		w := doRequest(setupDuesRouter(svc, nil), http.MethodGet, "/api/v1/dues", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp DueListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "client-c1-2025-3", resp.Data[0].ID.String())
		assert.True(t, decimal.NewFromInt(2000).Equal(resp.Data[0].Amount))
		assert.Equal(t, 1, resp.Meta.Total)
	})

	t.Run("filters are passed through", func(t *testing.T) {
		svc := new(MockDueService)
		svc.On("ListFiltered", mock.Anything, dues.Filter{
			Type:   dues.DueTypeReceivable,
			Status: dues.DueStatusOverdue,
		}).Return([]dues.FinancialDue{}, nil)

		w := doRequest(setupDuesRouter(svc, nil), http.MethodGet, "/api/v1/dues?type=RECEIVABLE&status=OVERDUE", "")

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		svc := new(MockDueService)
		svc.On("ListFiltered", mock.Anything, dues.Filter{}).Return(nil, nil)

		w := doRequest(setupDuesRouter(svc, nil), http.MethodGet, "/api/v1/dues", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
	})

	t.Run("unknown filter value", func(t *testing.T) {
		svc := new(MockDueService)

		w := doRequest(setupDuesRouter(svc, nil), http.MethodGet, "/api/v1/dues?status=LATE", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "ListFiltered", mock.Anything, mock.Anything)
	})

	t.Run("cancelled aggregation", func(t *testing.T) {
		svc := new(MockDueService)
		svc.On("ListFiltered", mock.Anything, dues.Filter{}).Return(nil, context.Canceled)

		w := doRequest(setupDuesRouter(svc, nil), http.MethodGet, "/api/v1/dues", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestDuesHandler_GetStats(t *testing.T) {
	svc := new(MockDueService)
	svc.On("GetStats", mock.Anything).Return(dues.Stats{
		Overdue:     dues.Bucket{Count: 1, Amount: decimal.NewFromInt(800)},
		DueToday:    dues.Bucket{Count: 3, Amount: decimal.NewFromInt(14450)},
		DueThisWeek: dues.Bucket{Count: 3, Amount: decimal.NewFromInt(14450)},
		Receivables: dues.Bucket{Count: 6, Amount: decimal.NewFromInt(12000)},
		Payables:    dues.Bucket{Count: 7, Amount: decimal.NewFromInt(14700)},
	}, nil)

	w := doRequest(setupDuesRouter(svc, nil), http.MethodGet, "/api/v1/dues/stats", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp DueStatsAPIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Overdue.Count)
	assert.True(t, decimal.NewFromInt(14450).Equal(resp.Data.DueToday.Amount))
	assert.Equal(t, 7, resp.Data.Payables.Count)
}

func TestDuesHandler_SetStatus(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	t.Run("204 with calendar payment date in the configured zone", func(t *testing.T) {
		svc := new(MockDueService)
		svc.On("SetStatus", mock.Anything, "p-1", dues.DueStatusPaid, mock.MatchedBy(func(info *dues.PaymentInfo) bool {
			return info != nil &&
				info.PaymentDate.Equal(time.Date(2025, 3, 12, 0, 0, 0, 0, saoPaulo)) &&
				*info.PaymentMethod == "PIX" &&
				info.Amount.Equal(decimal.RequireFromString("199.90"))
		})).Return(nil)

		w := doRequest(setupDuesRouter(svc, saoPaulo), http.MethodPost, "/api/v1/dues/p-1/status",
			`{"status":"PAID","payment_info":{"payment_date":"2025-03-12","payment_method":"PIX","amount":"199.90"}}`)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("RFC 3339 payment date", func(t *testing.T) {
		svc := new(MockDueService)
		svc.On("SetStatus", mock.Anything, "client-c1-2025-3", dues.DueStatusReceived, mock.MatchedBy(func(info *dues.PaymentInfo) bool {
			return info.PaymentDate.Equal(time.Date(2025, 3, 12, 13, 0, 0, 0, time.UTC))
		})).Return(nil)

		w := doRequest(setupDuesRouter(svc, nil), http.MethodPost, "/api/v1/dues/client-c1-2025-3/status",
			`{"status":"RECEIVED","payment_info":{"payment_date":"2025-03-12T10:00:00-03:00"}}`)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("no payment info", func(t *testing.T) {
		svc := new(MockDueService)
		svc.On("SetStatus", mock.Anything, "p-1", dues.DueStatusPending, (*dues.PaymentInfo)(nil)).Return(nil)

		w := doRequest(setupDuesRouter(svc, nil), http.MethodPost, "/api/v1/dues/p-1/status", `{"status":"PENDING"}`)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("bad payment date", func(t *testing.T) {
		svc := new(MockDueService)

		w := doRequest(setupDuesRouter(svc, nil), http.MethodPost, "/api/v1/dues/p-1/status",
			`{"status":"PAID","payment_info":{"payment_date":"12/03/2025"}}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidInput)
		svc.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non positive amount", func(t *testing.T) {
		svc := new(MockDueService)

		w := doRequest(setupDuesRouter(svc, nil), http.MethodPost, "/api/v1/dues/p-1/status",
			`{"status":"PAID","payment_info":{"amount":0}}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing status", func(t *testing.T) {
		svc := new(MockDueService)

		w := doRequest(setupDuesRouter(svc, nil), http.MethodPost, "/api/v1/dues/p-1/status", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeValidation)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("%w: x", dues.ErrDueNotFound), http.StatusNotFound, dto.ErrCodeDueNotFound},
		{"unsupported", dues.ErrUnsupportedTransition, http.StatusUnprocessableEntity, dto.ErrCodeUnsupportedTransition},
		{"overdue requested", dues.ErrInvalidStatus, http.StatusBadRequest, dto.ErrCodeInvalidStatus},
		{"conflict", shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockDueService)
			svc.On("SetStatus", mock.Anything, "x", mock.Anything, mock.Anything).Return(tc.err)

			w := doRequest(setupDuesRouter(svc, nil), http.MethodPost, "/api/v1/dues/x/status", `{"status":"PAID"}`)

			assert.Equal(t, tc.status, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.RequestID)
		})
	}
}
