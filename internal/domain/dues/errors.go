package dues

import "github.com/erp/obligations/internal/domain/shared"

// Dues domain errors
var (
	ErrDueNotFound           = shared.NewDomainError("DUE_NOT_FOUND", "Due not found")
	ErrUnsupportedTransition = shared.NewDomainError("UNSUPPORTED_TRANSITION", "Status transition is not supported for this due")
	ErrInvalidStatus         = shared.NewDomainError("INVALID_STATUS", "Status must be one of PENDING, PAID, RECEIVED")
	ErrInvalidDueID          = shared.NewDomainError("INVALID_DUE_ID", "Malformed due id")
)
