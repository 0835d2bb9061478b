package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
)

const defaultChallengeTTL = 5 * time.Minute

// AuthServiceImpl implements ports.AuthService with wallet-signature login.
type AuthServiceImpl struct {
	challenges ports.ChallengeStore
	verifier   ports.WalletVerifier
	tokenSvc   ports.TokenService
	ttl        time.Duration
	now        func() time.Time
}

// NewAuthService creates a new AuthServiceImpl. ttl <= 0 uses five minutes.
func NewAuthService(
	challenges ports.ChallengeStore,
	verifier ports.WalletVerifier,
	tokenSvc ports.TokenService,
	ttl time.Duration,
) *AuthServiceImpl {
	if ttl <= 0 {
		ttl = defaultChallengeTTL
	}
	return &AuthServiceImpl{
		challenges: challenges,
		verifier:   verifier,
		tokenSvc:   tokenSvc,
		ttl:        ttl,
		now:        time.Now,
	}
}

// LoginMessage is the exact text a wallet signs to log in.
func LoginMessage(account common.Address, nonce string) string {
	return fmt.Sprintf("BlindBuy escrow sign-in\nAccount: %s\nNonce: %s", account.Hex(), nonce)
}

// Challenge issues a fresh nonce for account, replacing any outstanding one.
func (s *AuthServiceImpl) Challenge(ctx context.Context, account common.Address) (*ports.Challenge, error) {
	if account == (common.Address{}) {
		return nil, apperror.ErrInvalidInput("address must not be zero")
	}

	nonce, err := generateRandomHex(16)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate nonce: %w", err))
	}
	if err := s.challenges.Put(ctx, account, nonce, s.ttl); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("store challenge: %w", err))
	}

	return &ports.Challenge{
		Nonce:     nonce,
		Message:   LoginMessage(account, nonce),
		ExpiresAt: s.now().Add(s.ttl),
	}, nil
}

// Login consumes the outstanding challenge and, if the signature over it
// recovers to account, returns a session token.
func (s *AuthServiceImpl) Login(ctx context.Context, account common.Address, nonce string, signatureHex string) (string, time.Time, error) {
	stored, err := s.challenges.Consume(ctx, account)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("consume challenge: %w", err))
	}
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(nonce)) != 1 {
		return "", time.Time{}, apperror.ErrChallengeExpired()
	}

	if err := s.verifier.Verify(account, LoginMessage(account, nonce), signatureHex); err != nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(account)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}
	return token, expiry, nil
}

// generateRandomHex generates a random hex string of n bytes.
func generateRandomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
