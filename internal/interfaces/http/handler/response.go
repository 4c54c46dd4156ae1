package handler

import (
	"github.com/erp/obligations/internal/domain/dues"
	"github.com/erp/obligations/internal/interfaces/http/dto"
)

// APIResponse is the success envelope with a typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// DueListResponse is the body of GET /dues
type DueListResponse = APIResponse[[]dues.FinancialDue]

// DueStatsAPIResponse is the body of GET /dues/stats
type DueStatsAPIResponse = APIResponse[dto.DueStatsResponse]
