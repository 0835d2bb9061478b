// Package custody moves value out of the escrow: cash payouts to users and
// asset transfers on settlement or inventory withdrawal.
package custody

import (
	"context"
	"fmt"
	"time"

	"blindbuy-escrow/internal/adapter/peerhttp"
	"blindbuy-escrow/internal/service"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
)

const (
	pathPayouts   = "/v1/payouts"
	pathTransfers = "/v1/transfers"
)

type payoutRequest struct {
	ID        string `json:"id"`
	To        string `json:"to"`
	AmountWei string `json:"amount_wei"`
}

type transferRequest struct {
	ID     string `json:"id"`
	Asset  string `json:"asset"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// Config configures the custody rail client.
type Config struct {
	BaseURL   string
	AccessKey string
	SecretKey string
	Timeout   time.Duration
}

// Client implements ports.Custody against the custody rail.
type Client struct {
	client *peerhttp.Client
	log    zerolog.Logger
}

// NewClient creates a custody rail client. httpClient may be nil.
func NewClient(cfg Config, httpClient service.HTTPClient, log zerolog.Logger) *Client {
	return &Client{
		client: peerhttp.New(cfg.BaseURL, cfg.AccessKey, cfg.SecretKey, cfg.Timeout, httpClient),
		log:    log,
	}
}

func (c *Client) PayCash(ctx context.Context, to common.Address, amount *uint256.Int) error {
	req := payoutRequest{ID: uuid.NewString(), To: to.Hex(), AmountWei: amount.Dec()}
	if err := c.client.PostJSON(ctx, pathPayouts, req, nil); err != nil {
		return fmt.Errorf("custody payout: %w", err)
	}
	c.log.Info().Str("payout_id", req.ID).Str("to", req.To).Str("amount_wei", req.AmountWei).Msg("payout sent")
	return nil
}

func (c *Client) TransferAsset(ctx context.Context, asset common.Address, to common.Address, amount *uint256.Int) error {
	req := transferRequest{ID: uuid.NewString(), Asset: asset.Hex(), To: to.Hex(), Amount: amount.Dec()}
	if err := c.client.PostJSON(ctx, pathTransfers, req, nil); err != nil {
		return fmt.Errorf("custody transfer: %w", err)
	}
	c.log.Info().Str("transfer_id", req.ID).Str("asset", req.Asset).Str("to", req.To).Str("amount", req.Amount).Msg("asset transfer sent")
	return nil
}

// LogCustody only logs movements. Used when no custody rail is configured.
type LogCustody struct {
	log zerolog.Logger
}

func NewLogCustody(log zerolog.Logger) *LogCustody {
	return &LogCustody{log: log}
}

func (c *LogCustody) PayCash(_ context.Context, to common.Address, amount *uint256.Int) error {
	c.log.Info().Str("to", to.Hex()).Str("amount_wei", amount.Dec()).Msg("payout (log only)")
	return nil
}

func (c *LogCustody) TransferAsset(_ context.Context, asset common.Address, to common.Address, amount *uint256.Int) error {
	c.log.Info().Str("asset", asset.Hex()).Str("to", to.Hex()).Str("amount", amount.Dec()).Msg("asset transfer (log only)")
	return nil
}
