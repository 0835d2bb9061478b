package ports

import (
	"context"
	"time"

	"blindbuy-escrow/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
	BuildCanonicalString(method string, path string, timestamp int64, nonce string, body string) string
}

// WalletVerifier recovers the signer of an EIP-191 personal message.
type WalletVerifier interface {
	Verify(address common.Address, message string, signatureHex string) error
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(account common.Address) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Account common.Address
}

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NonceStore manages nonce uniqueness for replay attack prevention.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, peer string, nonce string, ttl time.Duration) (bool, error)
}

// ChallengeStore keeps outstanding wallet login challenges.
type ChallengeStore interface {
	Put(ctx context.Context, account common.Address, nonce string, ttl time.Duration) error
	// Consume deletes and returns the stored nonce, "" if none.
	Consume(ctx context.Context, account common.Address) (string, error)
}

// Peer is a machine caller (gateway relayer, custody rail) authenticated by HMAC.
type Peer struct {
	Name      string
	AccessKey string
	SecretKey string
}

// PeerDirectory resolves HMAC access keys to peers.
type PeerDirectory interface {
	Lookup(accessKey string) (*Peer, bool)
}

// --- Service Ports (Business Logic) ---

// AuthService defines wallet login.
type AuthService interface {
	Challenge(ctx context.Context, account common.Address) (*Challenge, error)
	Login(ctx context.Context, account common.Address, nonce string, signatureHex string) (string, time.Time, error) // token, expiry, error
}

// Challenge is the message a wallet must sign to log in.
type Challenge struct {
	Nonce     string
	Message   string
	ExpiresAt time.Time
}

// DepositService credits custody deposits exactly once per reference.
type DepositService interface {
	ProcessDeposit(ctx context.Context, deposit domain.Deposit) (*DepositReceipt, error)
}

// DepositReceipt is the stable result returned for a deposit reference.
type DepositReceipt struct {
	Reference  string    `json:"reference"`
	User       string    `json:"user"`
	Amount     string    `json:"amount"`
	CreditedAt time.Time `json:"credited_at"`
	Replayed   bool      `json:"replayed"`
}

// ReportingService defines order history and statistics.
type ReportingService interface {
	GetStats(ctx context.Context, user *common.Address, period string) (*OrderStats, error)
	ListOrders(ctx context.Context, params OrderListParams) ([]domain.Order, int64, error)
}

// AuditService records audit entries.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
