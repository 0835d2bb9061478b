package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, user_address, concealed_asset, concealed_amount, status, created_at,
		reveal_request_id, COALESCE(revealed_asset, ''), revealed_amount, cost::text,
		COALESCE(failure_reason, ''), settled_at`

// OrderRepo implements ports.OrderRepository over the journaled orders table.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// List fetches orders with filtering and pagination, newest first.
func (r *OrderRepo) List(ctx context.Context, params ports.OrderListParams) ([]domain.Order, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.User != nil {
		conditions = append(conditions, fmt.Sprintf("user_address = $%d", argIdx))
		args = append(args, params.User.Hex())
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, string(*params.Status))
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM orders %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, total, nil
}

// GetStats aggregates order outcomes, optionally for one user and from a start time.
func (r *OrderRepo) GetStats(ctx context.Context, user *common.Address, since *time.Time) (*ports.OrderStats, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if user != nil {
		conditions = append(conditions, fmt.Sprintf("user_address = $%d", argIdx))
		args = append(args, user.Hex())
		argIdx++
	}
	if since != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *since)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
		COUNT(*) FILTER (WHERE status = 'AWAITING_REVEAL') AS awaiting_reveal,
		COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed,
		COUNT(*) FILTER (WHERE status = 'FAILED') AS failed,
		COUNT(*) FILTER (WHERE status = 'CANCELLED') AS cancelled,
		COALESCE(SUM(cost) FILTER (WHERE status = 'COMPLETED'), 0)::text AS total_cost
		FROM orders %s`, where)

	stats := &ports.OrderStats{}
	var totalCost string
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalOrders, &stats.Pending, &stats.AwaitingReveal,
		&stats.Completed, &stats.Failed, &stats.Cancelled, &totalCost,
	)
	if err != nil {
		return nil, fmt.Errorf("get order stats: %w", err)
	}
	if stats.TotalCost, err = domain.ParseWei(totalCost); err != nil {
		return nil, fmt.Errorf("parse total cost: %w", err)
	}
	return stats, nil
}

// scanOrder reads one row selected with orderColumns.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		id, requestID, revealedAmount       int64
		user, asset, amount, status, reason string
		revealedAsset                       string
		cost                                *string
		o                                   domain.Order
	)
	err := row.Scan(&id, &user, &asset, &amount, &status, &o.CreatedAt,
		&requestID, &revealedAsset, &revealedAmount, &cost, &reason, &o.SettledAt)
	if err != nil {
		return nil, fmt.Errorf("scan order row: %w", err)
	}

	o.ID = uint64(id)
	o.User = common.HexToAddress(user)
	o.ConcealedAsset = common.HexToHash(asset)
	o.ConcealedAmount = common.HexToHash(amount)
	o.Status = domain.OrderStatus(status)
	o.RevealRequestID = uint64(requestID)
	o.RevealedAmount = uint32(revealedAmount)
	o.FailureReason = reason
	if revealedAsset != "" {
		o.RevealedAsset = common.HexToAddress(revealedAsset)
	}
	if cost != nil {
		if o.Cost, err = domain.ParseWei(*cost); err != nil {
			return nil, fmt.Errorf("order %d cost: %w", id, err)
		}
	}
	return &o, nil
}
