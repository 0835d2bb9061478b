package handler

import (
	"blindbuy-escrow/internal/adapter/http/dto"
	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/pkg/apperror"
	"blindbuy-escrow/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// EscrowHandler handles cash balances, withdrawals and asset views.
type EscrowHandler struct {
	engine ports.EscrowEngine
}

// NewEscrowHandler creates a new EscrowHandler.
func NewEscrowHandler(engine ports.EscrowEngine) *EscrowHandler {
	return &EscrowHandler{engine: engine}
}

// Balance handles GET /api/v1/escrow/balance. ?account= reads another account.
func (h *EscrowHandler) Balance(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	if q := c.Query("account"); q != "" {
		if !common.IsHexAddress(q) {
			response.Error(c, apperror.ErrInvalidInput("invalid account address"))
			return
		}
		account = common.HexToAddress(q)
	}
	response.OK(c, h.balance(account))
}

// Withdraw handles POST /api/v1/escrow/withdrawals.
func (h *EscrowHandler) Withdraw(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := domain.ParseEther(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidInput(err.Error()))
		return
	}

	if err := h.engine.WithdrawCash(c.Request.Context(), account, amount); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.balance(account))
}

// Asset handles GET /api/v1/assets/:asset.
func (h *EscrowHandler) Asset(c *gin.Context) {
	asset, ok := addressParam(c, "asset")
	if !ok {
		return
	}
	response.OK(c, assetView(h.engine, asset))
}

// Summary handles GET /api/v1/escrow/summary.
func (h *EscrowHandler) Summary(c *gin.Context) {
	total := h.engine.TotalEscrow()
	response.OK(c, dto.EscrowSummaryResponse{
		TotalEscrowWei: domain.WeiString(total),
		TotalEscrow:    domain.FormatEther(total),
		PendingOrders:  h.engine.PendingCount(),
	})
}

func (h *EscrowHandler) balance(account common.Address) dto.BalanceResponse {
	bal := h.engine.CashBalance(account)
	return dto.BalanceResponse{
		Account:    account.Hex(),
		BalanceWei: domain.WeiString(bal),
		Balance:    domain.FormatEther(bal),
	}
}

func assetView(engine ports.EscrowEngine, asset common.Address) dto.AssetResponse {
	price := engine.Price(asset)
	return dto.AssetResponse{
		Asset:     asset.Hex(),
		PriceWei:  domain.WeiString(price),
		Price:     domain.FormatEther(price),
		Inventory: domain.WeiString(engine.InventoryBalance(asset)),
	}
}
