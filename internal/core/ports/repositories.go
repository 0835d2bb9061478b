package ports

import (
	"context"
	"time"

	"blindbuy-escrow/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// OrderRepository serves read-side queries over journaled orders.
type OrderRepository interface {
	List(ctx context.Context, params OrderListParams) ([]domain.Order, int64, error)
	GetStats(ctx context.Context, user *common.Address, since *time.Time) (*OrderStats, error)
}

// OrderListParams holds filter + pagination for listing orders.
type OrderListParams struct {
	User     *common.Address
	Status   *domain.OrderStatus
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// OrderStats holds aggregated settlement statistics.
type OrderStats struct {
	TotalOrders    int64
	Pending        int64
	AwaitingReveal int64
	Completed      int64
	Failed         int64
	Cancelled      int64
	TotalCost      *uint256.Int // Sum of completed order costs
}

// AuditRepository persists audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
