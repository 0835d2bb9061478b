package handler

import (
	"math"
	"strconv"
	"time"

	"blindbuy-escrow/internal/adapter/http/dto"
	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/pkg/apperror"
	"blindbuy-escrow/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles blind order endpoints.
type OrderHandler struct {
	engine    ports.EscrowEngine
	reporting ports.ReportingService // nil = history and stats disabled
	concealer ports.Concealer        // nil = development concealment disabled
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(engine ports.EscrowEngine, reporting ports.ReportingService, concealer ports.Concealer) *OrderHandler {
	return &OrderHandler{engine: engine, reporting: reporting, concealer: concealer}
}

// Submit handles POST /api/v1/orders.
func (h *OrderHandler) Submit(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}

	var req dto.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	input, err := req.ConcealedInput()
	if err != nil {
		response.Error(c, apperror.ErrInvalidInput("proof is not valid hex"))
		return
	}

	id, err := h.engine.SubmitOrder(c.Request.Context(), account, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.SubmitOrderResponse{OrderID: id})
}

// Cancel handles POST /api/v1/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	if err := h.engine.CancelOrder(c.Request.Context(), account, id); err != nil {
		response.Error(c, err)
		return
	}
	h.writeOrder(c, id)
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	h.writeOrder(c, id)
}

func (h *OrderHandler) writeOrder(c *gin.Context, id uint64) {
	order, err := h.engine.GetOrder(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderResponse(order))
}

// Pending handles GET /api/v1/orders/pending.
func (h *OrderHandler) Pending(c *gin.Context) {
	ids := h.engine.PendingIDs()
	response.OK(c, dto.PendingResponse{Count: len(ids), OrderIDs: ids})
}

// Mine handles GET /api/v1/orders/mine.
func (h *OrderHandler) Mine(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	ids := h.engine.UserOrders(account)
	if ids == nil {
		ids = []uint64{}
	}
	response.OK(c, dto.UserOrdersResponse{User: account.Hex(), OrderIDs: ids})
}

// History handles GET /api/v1/orders/history.
func (h *OrderHandler) History(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	listOrders(c, h.reporting, &account)
}

// Stats handles GET /api/v1/orders/stats.
func (h *OrderHandler) Stats(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	stats, err := h.reporting.GetStats(c.Request.Context(), &account, c.DefaultQuery("period", "all"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewStatsResponse(stats))
}

// Conceal handles POST /api/v1/dev/conceal.
func (h *OrderHandler) Conceal(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}

	var req dto.ConcealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	input, err := h.concealer.Conceal(c.Request.Context(), account, common.HexToAddress(req.Asset), req.Amount)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	response.OK(c, dto.NewConcealedInputResponse(input))
}

// listOrders serves a page of order history. user nil lists every user.
func listOrders(c *gin.Context, reporting ports.ReportingService, user *common.Address) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	params := ports.OrderListParams{
		User:     user,
		Page:     page,
		PageSize: pageSize,
	}

	if s := c.Query("status"); s != "" {
		status := domain.OrderStatus(s)
		params.Status = &status
	}
	if f := c.Query("from"); f != "" {
		if v, err := strconv.ParseInt(f, 10, 64); err == nil {
			t := time.Unix(v, 0)
			params.From = &t
		}
	}
	if t := c.Query("to"); t != "" {
		if v, err := strconv.ParseInt(t, 10, 64); err == nil {
			ts := time.Unix(v, 0)
			params.To = &ts
		}
	}

	orders, total, err := reporting.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	if params.Page < 1 {
		params.Page = 1
	}
	switch {
	case params.PageSize < 1:
		params.PageSize = 20
	case params.PageSize > 100:
		params.PageSize = 100
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, dto.NewOrderResponse(&orders[i]))
	}

	response.OK(c, dto.OrderListResponse{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(params.PageSize))),
	})
}
