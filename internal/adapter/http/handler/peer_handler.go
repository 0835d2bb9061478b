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
)

// PeerHandler serves HMAC-authenticated machine callers: the custody rail
// and the concealment gateway's reveal callback.
type PeerHandler struct {
	engine   ports.EscrowEngine
	deposits ports.DepositService
}

// NewPeerHandler creates a new PeerHandler.
func NewPeerHandler(engine ports.EscrowEngine, deposits ports.DepositService) *PeerHandler {
	return &PeerHandler{engine: engine, deposits: deposits}
}

// Deposit handles POST /api/v1/custody/deposits. A replayed reference
// answers 200 with the original receipt instead of 201.
func (h *PeerHandler) Deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := domain.ParseWei(req.AmountWei)
	if err != nil {
		response.Error(c, apperror.ErrInvalidInput(err.Error()))
		return
	}

	receipt, err := h.deposits.ProcessDeposit(c.Request.Context(), domain.Deposit{
		Reference: req.Reference,
		User:      common.HexToAddress(req.User),
		Amount:    amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if receipt.Replayed {
		response.OK(c, receipt)
		return
	}
	response.Created(c, receipt)
}

// RevealCallback handles POST /api/v1/gateway/reveals. Settlement outcomes
// are reported through events, so the callback itself always succeeds once
// the payload is well formed.
func (h *PeerHandler) RevealCallback(c *gin.Context) {
	var req dto.RevealCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result := ports.RevealResult{
		RequestID: req.RequestID,
		OK:        req.OK,
		Amount:    req.Amount,
		Reason:    req.Reason,
	}
	if req.Asset != "" {
		result.Asset = common.HexToAddress(req.Asset)
	}

	// The settlement must finish even if the relayer hangs up.
	h.engine.OnRevealed(context.WithoutCancel(c.Request.Context()), result)
	response.Accepted(c, gin.H{"request_id": req.RequestID})
}
