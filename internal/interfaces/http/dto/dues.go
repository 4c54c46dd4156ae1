package dto

import (
	"github.com/erp/obligations/internal/domain/dues"
	"github.com/shopspring/decimal"
)

// ListDuesQuery holds the optional filters of GET /dues
type ListDuesQuery struct {
	Type   string `form:"type" binding:"omitempty,oneof=PAYABLE RECEIVABLE"`
	Status string `form:"status" binding:"omitempty,oneof=PENDING OVERDUE PAID RECEIVED"`
	Source string `form:"source" binding:"omitempty,oneof=ACCOUNT_PAYABLE ACCOUNT_RECEIVABLE SUPPLIER_RECURRING CLIENT_RECURRING"`
}

// Filter converts the query into a domain filter
func (q ListDuesQuery) Filter() dues.Filter {
	return dues.Filter{
		Type:   dues.DueType(q.Type),
		Status: dues.DueStatus(q.Status),
		Source: dues.DueSource(q.Source),
	}
}

// PaymentInfoRequest is the optional settlement data sent with a status change.
// PaymentDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
type PaymentInfoRequest struct {
	PaymentDate   *string          `json:"payment_date"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod *string          `json:"payment_method" binding:"omitempty,max=50"`
	Notes         *string          `json:"notes" binding:"omitempty,max=500"`
}

// SetDueStatusRequest is the body of POST /dues/:id/status.
// Status is checked by the engine so unknown values map to ERR_INVALID_STATUS.
type SetDueStatusRequest struct {
	Status      string              `json:"status" binding:"required"`
	PaymentInfo *PaymentInfoRequest `json:"payment_info"`
}

// DueStatsResponse is the body of GET /dues/stats
type DueStatsResponse struct {
	Overdue     BucketResponse `json:"overdue"`
	DueToday    BucketResponse `json:"due_today"`
	DueThisWeek BucketResponse `json:"due_this_week"`
	Receivables BucketResponse `json:"receivables"`
	Payables    BucketResponse `json:"payables"`
}

// BucketResponse is a count and a total amount
type BucketResponse struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// NewDueStatsResponse converts domain stats
func NewDueStatsResponse(s dues.Stats) DueStatsResponse {
	bucket := func(b dues.Bucket) BucketResponse {
		return BucketResponse{Count: b.Count, Amount: b.Amount}
	}
	return DueStatsResponse{
		Overdue:     bucket(s.Overdue),
		DueToday:    bucket(s.DueToday),
		DueThisWeek: bucket(s.DueThisWeek),
		Receivables: bucket(s.Receivables),
		Payables:    bucket(s.Payables),
	}
}
