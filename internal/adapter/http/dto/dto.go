package dto

import (
	"time"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ChallengeRequest is the request body for a wallet login challenge.
type ChallengeRequest struct {
	Address string `json:"address" binding:"required,eth_addr"`
}

// ChallengeResponse carries the message the wallet must sign.
type ChallengeResponse struct {
	Nonce     string `json:"nonce"`
	Message   string `json:"message"`
	ExpiresAt int64  `json:"expires_at"` // Unix timestamp
}

// LoginRequest is the request body for wallet login.
type LoginRequest struct {
	Address   string `json:"address" binding:"required,eth_addr"`
	Nonce     string `json:"nonce" binding:"required,hexadecimal,max=128"`
	Signature string `json:"signature" binding:"required,hexbytes"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// SubmitOrderRequest carries a concealed order.
type SubmitOrderRequest struct {
	AssetHandle  string `json:"asset_handle" binding:"required,hash32"`
	AmountHandle string `json:"amount_handle" binding:"required,hash32"`
	Proof        string `json:"proof" binding:"required,hexbytes"`
}

// SubmitOrderResponse returns the assigned order id.
type SubmitOrderResponse struct {
	OrderID uint64 `json:"order_id"`
}

// WithdrawRequest withdraws escrowed cash, denominated in ether.
type WithdrawRequest struct {
	Amount string `json:"amount" binding:"required,ether_amount"`
}

// SetPriceRequest sets the per-unit price of an asset, denominated in ether.
type SetPriceRequest struct {
	Price string `json:"price" binding:"required,ether_amount"`
}

// InventoryRequest moves whole asset units in or out of inventory.
type InventoryRequest struct {
	Amount string `json:"amount" binding:"required,uint_str"`
}

// PickRequest optionally pins the pick to an operator seed.
type PickRequest struct {
	Seed *uint64 `json:"seed,omitempty"`
}

// DepositRequest is a custody-rail credit, denominated in wei.
type DepositRequest struct {
	Reference string `json:"reference" binding:"required,max=100,safe_id"`
	User      string `json:"user" binding:"required,eth_addr"`
	AmountWei string `json:"amount_wei" binding:"required,uint_str"`
}

// RevealCallbackRequest is posted by the relayer when a reveal resolves.
type RevealCallbackRequest struct {
	RequestID uint64 `json:"request_id" binding:"required"`
	OK        bool   `json:"ok"`
	Asset     string `json:"asset" binding:"omitempty,eth_addr"`
	Amount    uint32 `json:"amount"`
	Reason    string `json:"reason" binding:"max=200"`
}

// ConcealRequest asks the development gateway to conceal an order.
type ConcealRequest struct {
	Asset  string `json:"asset" binding:"required,eth_addr"`
	Amount uint32 `json:"amount"`
}

// ConcealedInputResponse is a concealed order ready for submission.
type ConcealedInputResponse struct {
	AssetHandle  string `json:"asset_handle"`
	AmountHandle string `json:"amount_handle"`
	Proof        string `json:"proof"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID              uint64  `json:"id"`
	User            string  `json:"user"`
	Status          string  `json:"status"`
	AssetHandle     string  `json:"asset_handle"`
	AmountHandle    string  `json:"amount_handle"`
	CreatedAt       string  `json:"created_at"`
	RevealRequestID uint64  `json:"reveal_request_id,omitempty"`
	RevealedAsset   string  `json:"revealed_asset,omitempty"`
	RevealedAmount  uint32  `json:"revealed_amount,omitempty"`
	CostWei         string  `json:"cost_wei,omitempty"`
	Cost            string  `json:"cost,omitempty"`
	FailureReason   string  `json:"failure_reason,omitempty"`
	SettledAt       *string `json:"settled_at,omitempty"`
}

// OrderListResponse wraps a page of order history.
type OrderListResponse struct {
	Items      []OrderResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// PendingResponse lists the orders eligible for the next pick.
type PendingResponse struct {
	Count    int      `json:"count"`
	OrderIDs []uint64 `json:"order_ids"`
}

// UserOrdersResponse lists every order a user has submitted.
type UserOrdersResponse struct {
	User     string   `json:"user"`
	OrderIDs []uint64 `json:"order_ids"`
}

// BalanceResponse is an account's escrowed cash.
type BalanceResponse struct {
	Account    string `json:"account"`
	BalanceWei string `json:"balance_wei"`
	Balance    string `json:"balance"`
}

// AssetResponse is an asset's price and inventory.
type AssetResponse struct {
	Asset     string `json:"asset"`
	PriceWei  string `json:"price_wei"`
	Price     string `json:"price"`
	Inventory string `json:"inventory"`
}

// StatsResponse aggregates settlement outcomes.
type StatsResponse struct {
	TotalOrders    int64  `json:"total_orders"`
	Pending        int64  `json:"pending"`
	AwaitingReveal int64  `json:"awaiting_reveal"`
	Completed      int64  `json:"completed"`
	Failed         int64  `json:"failed"`
	Cancelled      int64  `json:"cancelled"`
	TotalCostWei   string `json:"total_cost_wei"`
	TotalCost      string `json:"total_cost"`
}

// EscrowSummaryResponse is the engine-wide custody figure.
type EscrowSummaryResponse struct {
	TotalEscrowWei string `json:"total_escrow_wei"`
	TotalEscrow    string `json:"total_escrow"`
	PendingOrders  int    `json:"pending_orders"`
}

// NewOrderResponse converts a domain order to its public view.
func NewOrderResponse(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		User:            o.User.Hex(),
		Status:          string(o.Status),
		AssetHandle:     o.ConcealedAsset.Hex(),
		AmountHandle:    o.ConcealedAmount.Hex(),
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339),
		RevealRequestID: o.RevealRequestID,
		RevealedAmount:  o.RevealedAmount,
		FailureReason:   o.FailureReason,
	}
	if o.RevealedAsset != (common.Address{}) {
		resp.RevealedAsset = o.RevealedAsset.Hex()
	}
	if o.Cost != nil {
		resp.CostWei = o.Cost.Dec()
		resp.Cost = domain.FormatEther(o.Cost)
	}
	if o.SettledAt != nil {
		s := o.SettledAt.UTC().Format(time.RFC3339)
		resp.SettledAt = &s
	}
	return resp
}

// NewStatsResponse converts reporting stats.
func NewStatsResponse(s *ports.OrderStats) StatsResponse {
	return StatsResponse{
		TotalOrders:    s.TotalOrders,
		Pending:        s.Pending,
		AwaitingReveal: s.AwaitingReveal,
		Completed:      s.Completed,
		Failed:         s.Failed,
		Cancelled:      s.Cancelled,
		TotalCostWei:   domain.WeiString(s.TotalCost),
		TotalCost:      domain.FormatEther(s.TotalCost),
	}
}

// NewConcealedInputResponse encodes a concealed input for transport.
func NewConcealedInputResponse(in ports.ConcealedInput) ConcealedInputResponse {
	return ConcealedInputResponse{
		AssetHandle:  in.Asset.Hex(),
		AmountHandle: in.Amount.Hex(),
		Proof:        hexutil.Encode(in.Proof),
	}
}

// ConcealedInput decodes the request. Binding has already validated the hex.
func (r SubmitOrderRequest) ConcealedInput() (ports.ConcealedInput, error) {
	proof, err := hexutil.Decode(r.Proof)
	if err != nil {
		return ports.ConcealedInput{}, err
	}
	return ports.ConcealedInput{
		Asset:  common.HexToHash(r.AssetHandle),
		Amount: common.HexToHash(r.AmountHandle),
		Proof:  proof,
	}, nil
}
