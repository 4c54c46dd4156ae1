package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/erp/obligations/internal/domain/dues"
	"github.com/erp/obligations/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeDueNotFound, http.StatusNotFound},
		{ErrCodeUnsupportedTransition, http.StatusUnprocessableEntity},
		{ErrCodeInvalidStatus, http.StatusBadRequest},
		{ErrCodeInvalidDueID, http.StatusBadRequest},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
		{"EMPTY_UPDATE", ErrCodeInvalidInput},
		{"DUE_NOT_FOUND", ErrCodeDueNotFound},
		{"UNSUPPORTED_TRANSITION", ErrCodeUnsupportedTransition},
		{"INVALID_STATUS", ErrCodeInvalidStatus},
		{"INVALID_DUE_ID", ErrCodeInvalidDueID},
		// New codes should pass through unchanged
		{ErrCodeNotFound, ErrCodeNotFound},
		// Unknown codes should pass through unchanged
		{"CUSTOM_ERROR", "CUSTOM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestDomainCodesHaveHTTPStatus(t *testing.T) {
	for legacy, code := range LegacyErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[code]
		assert.True(t, ok, "%s maps to %s which has no HTTP status", legacy, code)
		assert.Contains(t, code, "ERR_")
	}
}

func TestDuesErrorsNormalize(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{dues.ErrDueNotFound, http.StatusNotFound},
		{dues.ErrUnsupportedTransition, http.StatusUnprocessableEntity},
		{dues.ErrInvalidStatus, http.StatusBadRequest},
		{dues.ErrInvalidDueID, http.StatusBadRequest},
	}
	for _, tt := range tests {
		var domainErr *shared.DomainError
		require.True(t, errors.As(tt.err, &domainErr))
		code := NormalizeErrorCode(domainErr.Code)
		assert.Equal(t, tt.status, GetHTTPStatus(code), code)
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeDueNotFound, "Due not found", "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeDueNotFound, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{{Field: "status", Message: "This field is required"}}

	resp := NewValidationErrorResponse("Request validation failed", "req-789", details)

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	assert.Equal(t, details, resp.Error.Details)
}

func TestErrorResponseJSON(t *testing.T) {
	data, err := json.Marshal(NewErrorResponse(ErrCodeInternal, "Server error"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_INTERNAL","message":"Server error"}}`, string(data))
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]string{"a", "b"}, 2)

	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Total)
}

func TestListDuesQuery_Filter(t *testing.T) {
	f := ListDuesQuery{Type: "PAYABLE", Source: "SUPPLIER_RECURRING"}.Filter()

	assert.Equal(t, dues.DueTypePayable, f.Type)
	assert.Equal(t, dues.DueSourceSupplierRecurring, f.Source)
	assert.Empty(t, f.Status)
}

func TestNewDueStatsResponse(t *testing.T) {
	stats := dues.Stats{
		Overdue:  dues.Bucket{Count: 2, Amount: decimal.NewFromInt(300)},
		Payables: dues.Bucket{Count: 1, Amount: decimal.NewFromInt(50)},
	}

	data, err := json.Marshal(NewDueStatsResponse(stats))
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(2), decoded["overdue"]["count"])
	assert.Equal(t, "300", decoded["overdue"]["amount"])
	assert.Equal(t, float64(1), decoded["payables"]["count"])
	assert.Contains(t, decoded, "due_this_week")
}
