package handler

import (
	"context"
	"time"

	"github.com/erp/obligations/internal/domain/dues"
	"github.com/erp/obligations/internal/domain/shared"
	"github.com/erp/obligations/internal/interfaces/http/dto"
	"github.com/erp/obligations/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DueService is what the dues endpoints need from the engine
type DueService interface {
	ListFiltered(ctx context.Context, filter dues.Filter) ([]dues.FinancialDue, error)
	GetStats(ctx context.Context) (dues.Stats, error)
	SetStatus(ctx context.Context, rawID string, status dues.DueStatus, info *dues.PaymentInfo) error
}

// DuesHandler serves the unified dues view
type DuesHandler struct {
	BaseHandler
	service  DueService
	location *time.Location
}

// NewDuesHandler creates a DuesHandler. Calendar payment dates are read in loc.
func NewDuesHandler(service DueService, loc *time.Location) *DuesHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DuesHandler{service: service, location: loc}
}

// ListDues godoc
// @ID           listDues
// @Summary      List dues
// @Description  Every payable, receivable and projected recurring due, sorted by due date. Filters apply after aggregation.
// @Tags         dues
// @Produce      json
// @Param        type   query string false "Due type"   Enums(PAYABLE, RECEIVABLE)
// @Param        status query string false "Due status" Enums(PENDING, PAID, RECEIVED, OVERDUE)
// @Param        source query string false "Origin"     Enums(ACCOUNT_PAYABLE, ACCOUNT_RECEIVABLE, SUPPLIER_RECURRING, CLIENT_RECURRING)
// @Success      200 {object} DueListResponse
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /dues [get]
func (h *DuesHandler) ListDues(c *gin.Context) {
	var query dto.ListDuesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	list, err := h.service.ListFiltered(c.Request.Context(), query.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if list == nil {
		list = []dues.FinancialDue{}
	}
	h.List(c, list, len(list))
}

// GetStats godoc
// @ID           getDueStats
// @Summary      Due statistics
// @Description  Count and amount of total, pending, overdue, paid and received dues over the unfiltered list
// @Tags         dues
// @Produce      json
// @Success      200 {object} DueStatsAPIResponse
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /dues/stats [get]
func (h *DuesHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewDueStatsResponse(stats))
}

// SetStatus godoc
// @ID           setDueStatus
// @Summary      Change a due's status
// @Description  Writes the status back to the due's origin record. Supplier recurring dues cannot change status.
// @Tags         dues
// @Accept       json
// @Param        id              path   string                   true  "Due ID"
// @Param        Idempotency-Key header string                   false "Retry key; a replay after success returns 204 without a second write"
// @Param        request         body   dto.SetDueStatusRequest  true  "New status and optional payment info"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /dues/{id}/status [post]
func (h *DuesHandler) SetStatus(c *gin.Context) {
	var req dto.SetDueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	info, err := h.paymentInfo(req.PaymentInfo)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), c.Param("id"), dues.DueStatus(req.Status), info); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

var paymentDateLayouts = []string{time.DateOnly, time.RFC3339}

func (h *DuesHandler) paymentInfo(req *dto.PaymentInfoRequest) (*dues.PaymentInfo, error) {
	if req == nil {
		return nil, nil
	}
	info := &dues.PaymentInfo{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "payment_info.amount must be positive")
	}
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		var (
			parsed time.Time
			err    error
		)
		for _, layout := range paymentDateLayouts {
			if parsed, err = time.ParseInLocation(layout, *req.PaymentDate, h.location); err == nil {
				break
			}
		}
		if err != nil {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "payment_info.payment_date must be YYYY-MM-DD or RFC 3339")
		}
		info.PaymentDate = &parsed
	}
	return info, nil
}
