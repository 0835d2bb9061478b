package service

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrSignerMismatch = errors.New("signature was not produced by the claimed address")

// EthWalletVerifier implements ports.WalletVerifier for EIP-191 personal_sign.
type EthWalletVerifier struct{}

func NewEthWalletVerifier() *EthWalletVerifier {
	return &EthWalletVerifier{}
}

// Verify recovers the signer of message and compares it to address.
// Wallets emit v as 27/28; both that and the raw 0/1 form are accepted.
func (v *EthWalletVerifier) Verify(address common.Address, message string, signatureHex string) error {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("invalid signature length: %d", len(sig))
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return fmt.Errorf("recovering public key: %w", err)
	}
	if crypto.PubkeyToAddress(*pub) != address {
		return ErrSignerMismatch
	}
	return nil
}
