package service

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACSignatureService_SignAndVerify(t *testing.T) {
	svc := NewHMACSignatureService()
	secretKey := "gateway-secret"
	payload := `POST|/api/v1/gateway/reveals|1708092000|abc123nonce|{"request_id":1}`

	signature := svc.Sign(secretKey, payload)

	assert.Regexp(t, `^[0-9a-f]{64}$`, signature, "signature should be 64-char lowercase hex (SHA-256)")
	assert.True(t, svc.Verify(secretKey, payload, signature))
}

func TestHMACSignatureService_VerifyFails(t *testing.T) {
	svc := NewHMACSignatureService()
	signature := svc.Sign("correct-key", "payload")

	assert.False(t, svc.Verify("wrong-key", "payload", signature))
	assert.False(t, svc.Verify("correct-key", "tampered", signature))
	assert.False(t, svc.Verify("correct-key", "payload", ""))
}

func TestHMACSignatureService_VerifyAcceptsUppercaseHex(t *testing.T) {
	svc := NewHMACSignatureService()
	signature := svc.Sign("k", "p")

	upper := []byte(signature)
	for i, c := range upper {
		if c >= 'a' && c <= 'f' {
			upper[i] = c - 32
		}
	}
	assert.True(t, svc.Verify("k", "p", string(upper)))
}

func TestHMACSignatureService_BuildCanonicalString(t *testing.T) {
	svc := NewHMACSignatureService()
	canonical := svc.BuildCanonicalString("POST", "/api/v1/custody/deposits", 1708092000, "nonce-1", `{"a":1}`)
	assert.Equal(t, `POST|/api/v1/custody/deposits|1708092000|nonce-1|{"a":1}`, canonical)
}

func TestHMACSignatureService_SignRequest(t *testing.T) {
	svc := NewHMACSignatureService()
	fixed := time.Unix(1_760_000_000, 0)
	svc.now = func() time.Time { return fixed }

	body := []byte(`{"to":"0x01","amount":"5"}`)
	req, err := http.NewRequest(http.MethodPost, "http://custody.local/v1/payouts?x=1", nil)
	require.NoError(t, err)

	svc.SignRequest(req, "escrow-key", "escrow-secret", body)

	assert.Equal(t, "escrow-key", req.Header.Get(HeaderAccessKey))
	assert.Equal(t, strconv.FormatInt(fixed.Unix(), 10), req.Header.Get(HeaderTimestamp))
	nonce := req.Header.Get(HeaderNonce)
	require.NotEmpty(t, nonce)

	canonical := svc.BuildCanonicalString("POST", "/v1/payouts", fixed.Unix(), nonce, string(body))
	assert.True(t, svc.Verify("escrow-secret", canonical, req.Header.Get(HeaderSignature)))
}
