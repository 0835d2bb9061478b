package handler

import (
	"context"

	"blindbuy-escrow/internal/adapter/http/dto"
	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/pkg/apperror"
	"blindbuy-escrow/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
)

// AdminHandler handles operator endpoints. The engine enforces the admin check.
type AdminHandler struct {
	engine    ports.EscrowEngine
	reporting ports.ReportingService // nil = stats and history disabled
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(engine ports.EscrowEngine, reporting ports.ReportingService) *AdminHandler {
	return &AdminHandler{engine: engine, reporting: reporting}
}

// SetPrice handles PUT /api/v1/admin/prices/:asset.
func (h *AdminHandler) SetPrice(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	asset, ok := addressParam(c, "asset")
	if !ok {
		return
	}

	var req dto.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	price, err := domain.ParseEther(req.Price)
	if err != nil {
		response.Error(c, apperror.ErrInvalidInput(err.Error()))
		return
	}

	if err := h.engine.SetPrice(c.Request.Context(), account, asset, price); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assetView(h.engine, asset))
}

// DepositInventory handles POST /api/v1/admin/inventory/:asset/deposit.
func (h *AdminHandler) DepositInventory(c *gin.Context) {
	h.moveInventory(c, h.engine.DepositInventory)
}

// WithdrawInventory handles POST /api/v1/admin/inventory/:asset/withdraw.
func (h *AdminHandler) WithdrawInventory(c *gin.Context) {
	h.moveInventory(c, h.engine.WithdrawInventory)
}

type inventoryOp func(ctx context.Context, caller, asset common.Address, amount *uint256.Int) error

func (h *AdminHandler) moveInventory(c *gin.Context, op inventoryOp) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	asset, ok := addressParam(c, "asset")
	if !ok {
		return
	}

	var req dto.InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := domain.ParseWei(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidInput(err.Error()))
		return
	}

	if err := op(c.Request.Context(), account, asset, amount); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assetView(h.engine, asset))
}

// Pick handles POST /api/v1/admin/settlements/pick. The body is optional.
func (h *AdminHandler) Pick(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}

	var req dto.PickRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
	}

	result, err := h.engine.PickRandomAndRequestReveal(c.Request.Context(), account, req.Seed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, result)
}

// Stats handles GET /api/v1/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	stats, err := h.reporting.GetStats(c.Request.Context(), nil, c.DefaultQuery("period", "all"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewStatsResponse(stats))
}

// Orders handles GET /api/v1/admin/orders.
func (h *AdminHandler) Orders(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	var user *common.Address
	if q := c.Query("user"); q != "" {
		if !common.IsHexAddress(q) {
			response.Error(c, apperror.ErrInvalidInput("invalid user address"))
			return
		}
		u := common.HexToAddress(q)
		user = &u
	}
	listOrders(c, h.reporting, user)
}

func (h *AdminHandler) requireAdmin(c *gin.Context) bool {
	account, ok := mustAccount(c)
	if !ok {
		return false
	}
	if !h.engine.IsAdmin(account) {
		response.Error(c, apperror.ErrNotOwner())
		return false
	}
	return true
}
