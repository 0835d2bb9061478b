package service

import (
	"context"
	"time"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// reportingService implements ports.ReportingService over the journaled orders.
type reportingService struct {
	orderRepo ports.OrderRepository
	now       func() time.Time
}

// NewReportingService creates a new reporting service.
func NewReportingService(orderRepo ports.OrderRepository) ports.ReportingService {
	return &reportingService{orderRepo: orderRepo, now: time.Now}
}

// GetStats aggregates settlement outcomes over a period: day, week, month or all.
func (s *reportingService) GetStats(ctx context.Context, user *common.Address, period string) (*ports.OrderStats, error) {
	var since *time.Time
	now := s.now()

	switch period {
	case "day":
		t := now.AddDate(0, 0, -1)
		since = &t
	case "week":
		t := now.AddDate(0, 0, -7)
		since = &t
	case "month":
		t := now.AddDate(0, -1, 0)
		since = &t
	case "all", "":
	default:
		return nil, apperror.Validation("invalid period: must be day, week, month, or all")
	}

	stats, err := s.orderRepo.GetStats(ctx, user, since)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return stats, nil
}

// ListOrders returns one page of order history, newest first.
func (s *reportingService) ListOrders(ctx context.Context, params ports.OrderListParams) ([]domain.Order, int64, error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, 0, apperror.Validation("invalid status filter")
	}
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		return nil, 0, apperror.Validation("to must not be before from")
	}
	if params.Page < 1 {
		params.Page = 1
	}
	switch {
	case params.PageSize < 1:
		params.PageSize = defaultPageSize
	case params.PageSize > maxPageSize:
		params.PageSize = maxPageSize
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return orders, total, nil
}
