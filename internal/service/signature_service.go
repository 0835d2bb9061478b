package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Headers carried by HMAC-signed peer requests, inbound and outbound.
const (
	HeaderAccessKey = "X-Access-Key"
	HeaderSignature = "X-Signature"
	HeaderTimestamp = "X-Timestamp"
	HeaderNonce     = "X-Nonce"
)

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256.
type HMACSignatureService struct {
	now func() time.Time
}

func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{now: time.Now}
}

// Sign returns the lowercase hex HMAC-SHA256 of payload.
func (s *HMACSignatureService) Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time.
func (s *HMACSignatureService) Verify(secretKey string, payload string, signature string) bool {
	expected := s.Sign(secretKey, payload)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// BuildCanonicalString constructs the canonical payload for signing.
// Format: METHOD|PATH|TIMESTAMP|NONCE|BODY
func (s *HMACSignatureService) BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string {
	var b strings.Builder
	b.Grow(len(method) + len(path) + len(nonce) + len(body) + 24)
	b.WriteString(method)
	b.WriteByte('|')
	b.WriteString(path)
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(timestamp, 10))
	b.WriteByte('|')
	b.WriteString(nonce)
	b.WriteByte('|')
	b.WriteString(body)
	return b.String()
}

// SignRequest sets the peer authentication headers on an outbound request.
// body must be the exact bytes sent.
func (s *HMACSignatureService) SignRequest(req *http.Request, accessKey, secretKey string, body []byte) {
	ts := s.now().Unix()
	nonce := uuid.NewString()
	canonical := s.BuildCanonicalString(req.Method, req.URL.Path, ts, nonce, string(body))

	req.Header.Set(HeaderAccessKey, accessKey)
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(HeaderNonce, nonce)
	req.Header.Set(HeaderSignature, s.Sign(secretKey, canonical))
}
