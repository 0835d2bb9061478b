// Package local is an in-process concealment gateway for development and
// tests. Concealed values are AES-256-GCM ciphertexts held by the gateway;
// handles are their keccak256 digests. Reveals run on their own goroutine.
// Handles and request ids are lost on exit, so the gateway pairs only with
// the memory journal.
package local

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/internal/service"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/hkdf"
)

const (
	infoEncryptionKey = "blindbuy-escrow/local-gateway/encryption"
	infoProofKey      = "blindbuy-escrow/local-gateway/proof"
	minMasterKeyLen   = 16
)

var ErrUnknownHandle = errors.New("unknown handle")

// DeriveKeys expands the master secret into independent encryption and proof keys.
func DeriveKeys(master []byte) (encKey, proofKey []byte, err error) {
	if len(master) < minMasterKeyLen {
		return nil, nil, fmt.Errorf("master key must be at least %d bytes", minMasterKeyLen)
	}
	encKey = make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(infoEncryptionKey)), encKey); err != nil {
		return nil, nil, fmt.Errorf("derive encryption key: %w", err)
	}
	proofKey = make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(infoProofKey)), proofKey); err != nil {
		return nil, nil, fmt.Errorf("derive proof key: %w", err)
	}
	return encKey, proofKey, nil
}

// Gateway implements ports.ConcealmentGateway and ports.Concealer.
type Gateway struct {
	instance common.Address
	enc      ports.EncryptionService
	proofKey []byte
	delay    time.Duration
	log      zerolog.Logger

	mu          sync.Mutex
	ciphertexts map[common.Hash]string
	nextRequest uint64
	handler     ports.RevealHandler

	inflight sync.WaitGroup
}

// New creates a gateway bound to the engine instance address. delay is
// added before each reveal callback.
func New(master []byte, instance common.Address, delay time.Duration, log zerolog.Logger) (*Gateway, error) {
	encKey, proofKey, err := DeriveKeys(master)
	if err != nil {
		return nil, err
	}
	enc, err := service.NewAESEncryptionService(encKey)
	if err != nil {
		return nil, err
	}
	return &Gateway{
		instance:    instance,
		enc:         enc,
		proofKey:    proofKey,
		delay:       delay,
		log:         log,
		ciphertexts: make(map[common.Hash]string),
	}, nil
}

// SetHandler registers the receiver of reveal results.
func (g *Gateway) SetHandler(h ports.RevealHandler) {
	g.mu.Lock()
	g.handler = h
	g.mu.Unlock()
}

// Wait blocks until every scheduled reveal has been delivered.
func (g *Gateway) Wait() {
	g.inflight.Wait()
}

// Conceal encrypts an order's asset and amount for user.
func (g *Gateway) Conceal(_ context.Context, user common.Address, asset common.Address, amount uint32) (ports.ConcealedInput, error) {
	assetHandle, err := g.store(asset.Hex())
	if err != nil {
		return ports.ConcealedInput{}, fmt.Errorf("conceal asset: %w", err)
	}
	amountHandle, err := g.store(strconv.FormatUint(uint64(amount), 10))
	if err != nil {
		return ports.ConcealedInput{}, fmt.Errorf("conceal amount: %w", err)
	}
	return ports.ConcealedInput{
		Asset:  assetHandle,
		Amount: amountHandle,
		Proof:  g.proof(user, assetHandle, amountHandle),
	}, nil
}

func (g *Gateway) store(plaintext string) (common.Hash, error) {
	ct, err := g.enc.Encrypt(plaintext)
	if err != nil {
		return common.Hash{}, err
	}
	raw, err := hex.DecodeString(ct)
	if err != nil {
		return common.Hash{}, err
	}
	handle := crypto.Keccak256Hash(raw)

	g.mu.Lock()
	g.ciphertexts[handle] = ct
	g.mu.Unlock()
	return handle, nil
}

// proof binds both handles to this engine instance and the submitting user.
func (g *Gateway) proof(user common.Address, asset, amount common.Hash) []byte {
	mac := hmac.New(sha256.New, g.proofKey)
	mac.Write(g.instance.Bytes())
	mac.Write(user.Bytes())
	mac.Write(asset.Bytes())
	mac.Write(amount.Bytes())
	return mac.Sum(nil)
}

// VerifyInput accepts only handles this gateway issued, with a proof made
// for user on this instance.
func (g *Gateway) VerifyInput(_ context.Context, user common.Address, input ports.ConcealedInput) error {
	g.mu.Lock()
	_, okAsset := g.ciphertexts[input.Asset]
	_, okAmount := g.ciphertexts[input.Amount]
	g.mu.Unlock()

	if !okAsset || !okAmount {
		return apperror.ErrInvalidProof()
	}
	if !hmac.Equal(input.Proof, g.proof(user, input.Asset, input.Amount)) {
		return apperror.ErrInvalidProof()
	}
	return nil
}

// RequestReveal schedules decryption of both handles and returns at once.
func (g *Gateway) RequestReveal(_ context.Context, asset common.Hash, amount common.Hash) (uint64, error) {
	g.mu.Lock()
	assetCT, okAsset := g.ciphertexts[asset]
	amountCT, okAmount := g.ciphertexts[amount]
	if !okAsset || !okAmount {
		g.mu.Unlock()
		return 0, ErrUnknownHandle
	}
	g.nextRequest++
	id := g.nextRequest
	handler := g.handler
	g.mu.Unlock()

	if handler == nil {
		return 0, errors.New("no reveal handler registered")
	}

	g.inflight.Add(1)
	go func() {
		defer g.inflight.Done()
		if g.delay > 0 {
			time.Sleep(g.delay)
		}
		result := g.reveal(id, assetCT, amountCT)
		g.log.Debug().
			Uint64("request_id", id).
			Bool("ok", result.OK).
			Msg("delivering reveal")
		handler.OnRevealed(context.Background(), result)
	}()
	return id, nil
}

func (g *Gateway) reveal(id uint64, assetCT, amountCT string) ports.RevealResult {
	result := ports.RevealResult{RequestID: id}

	assetHex, err := g.enc.Decrypt(assetCT)
	if err != nil || !common.IsHexAddress(assetHex) {
		result.Reason = "asset ciphertext did not decrypt"
		return result
	}
	amountStr, err := g.enc.Decrypt(amountCT)
	if err != nil {
		result.Reason = "amount ciphertext did not decrypt"
		return result
	}
	amount, err := strconv.ParseUint(amountStr, 10, 32)
	if err != nil {
		result.Reason = "amount out of range"
		return result
	}

	result.Asset = common.HexToAddress(assetHex)
	result.Amount = uint32(amount)
	result.OK = true
	return result
}
