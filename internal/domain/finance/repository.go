package finance

import (
	"github.com/erp/obligations/internal/domain/shared"
)

// AccountPayableRepository defines the interface for account payable persistence
type AccountPayableRepository interface {
	shared.Repository[AccountPayable]
}

// AccountReceivableRepository defines the interface for account receivable persistence
type AccountReceivableRepository interface {
	shared.Repository[AccountReceivable]
}

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	shared.Repository[Supplier]
}

// ClientContractRepository defines the interface for recurring client contract persistence
type ClientContractRepository interface {
	shared.Repository[ClientContract]
}
