// Package remote talks to an external concealment relayer over signed HTTP.
// The relayer delivers reveal results to the escrow's callback endpoint.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blindbuy-escrow/internal/adapter/peerhttp"
	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/internal/service"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	pathVerify = "/v1/inputs/verify"
	pathReveal = "/v1/reveals"
)

type verifyRequest struct {
	Instance     string `json:"instance"`
	User         string `json:"user"`
	AssetHandle  string `json:"asset_handle"`
	AmountHandle string `json:"amount_handle"`
	Proof        string `json:"proof"`
}

type verifyResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type revealRequest struct {
	Instance    string   `json:"instance"`
	Handles     []string `json:"handles"`
	CallbackURL string   `json:"callback_url,omitempty"`
}

type revealResponse struct {
	RequestID uint64 `json:"request_id"`
}

// Config configures the relayer client.
type Config struct {
	BaseURL     string
	AccessKey   string
	SecretKey   string
	CallbackURL string
	Timeout     time.Duration
}

// Gateway implements ports.ConcealmentGateway against a relayer.
type Gateway struct {
	client      *peerhttp.Client
	instance    common.Address
	callbackURL string
}

// New creates a relayer-backed gateway. httpClient may be nil.
func New(cfg Config, instance common.Address, httpClient service.HTTPClient) *Gateway {
	return &Gateway{
		client:      peerhttp.New(cfg.BaseURL, cfg.AccessKey, cfg.SecretKey, cfg.Timeout, httpClient),
		instance:    instance,
		callbackURL: cfg.CallbackURL,
	}
}

func (g *Gateway) VerifyInput(ctx context.Context, user common.Address, input ports.ConcealedInput) error {
	req := verifyRequest{
		Instance:     g.instance.Hex(),
		User:         user.Hex(),
		AssetHandle:  input.Asset.Hex(),
		AmountHandle: input.Amount.Hex(),
		Proof:        hexutil.Encode(input.Proof),
	}
	var resp verifyResponse
	err := g.client.PostJSON(ctx, pathVerify, req, &resp)

	var se *peerhttp.StatusError
	switch {
	case errors.As(err, &se) && se.Status == http.StatusUnprocessableEntity:
		return apperror.ErrInvalidProof()
	case err != nil:
		return fmt.Errorf("relayer verify: %w", err)
	case !resp.Valid:
		return apperror.ErrInvalidProof()
	}
	return nil
}

func (g *Gateway) RequestReveal(ctx context.Context, asset common.Hash, amount common.Hash) (uint64, error) {
	req := revealRequest{
		Instance:    g.instance.Hex(),
		Handles:     []string{asset.Hex(), amount.Hex()},
		CallbackURL: g.callbackURL,
	}
	var resp revealResponse
	if err := g.client.PostJSON(ctx, pathReveal, req, &resp); err != nil {
		return 0, fmt.Errorf("relayer reveal: %w", err)
	}
	return resp.RequestID, nil
}
