package service

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAccount = common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key-32-chars-long!!", time.Hour, "blindbuy-escrow")

	token, expiry, err := svc.Generate(testAccount)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, testAccount, claims.Account)
}

func TestJWTTokenService_Expired(t *testing.T) {
	svc := NewJWTTokenService("secret", time.Minute, "blindbuy-escrow")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	token, _, err := svc.Generate(testAccount)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTTokenService_WrongSecret(t *testing.T) {
	issuer := NewJWTTokenService("secret-a", time.Hour, "blindbuy-escrow")
	verifier := NewJWTTokenService("secret-b", time.Hour, "blindbuy-escrow")

	token, _, err := issuer.Generate(testAccount)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTTokenService_WrongIssuer(t *testing.T) {
	other := NewJWTTokenService("secret", time.Hour, "someone-else")
	svc := NewJWTTokenService("secret", time.Hour, "blindbuy-escrow")

	token, _, err := other.Generate(testAccount)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestJWTTokenService_NonAddressSubject(t *testing.T) {
	svc := NewJWTTokenService("secret", time.Hour, "blindbuy-escrow")
	claims := jwt.RegisteredClaims{
		Subject:   "operator-42",
		Issuer:    "blindbuy-escrow",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorContains(t, err, "not a wallet address")
}

func TestJWTTokenService_RejectsNoneAlg(t *testing.T) {
	svc := NewJWTTokenService("secret", time.Hour, "blindbuy-escrow")
	claims := jwt.RegisteredClaims{Subject: testAccount.Hex(), Issuer: "blindbuy-escrow",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}
