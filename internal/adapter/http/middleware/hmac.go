package middleware

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/internal/service"
	"blindbuy-escrow/pkg/apperror"
	"blindbuy-escrow/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	HeaderAccessKey = service.HeaderAccessKey
	HeaderSignature = service.HeaderSignature
	HeaderTimestamp = service.HeaderTimestamp
	HeaderNonce     = service.HeaderNonce

	maxTimestampDrift = 60 * time.Second
	// nonceTTL outlives the accepted drift window on both sides.
	nonceTTL = 2 * maxTimestampDrift

	CtxPeer = "peer"
)

// HMACAuth authenticates machine peers (the reveal gateway and the custody
// rail). The signature is checked before the nonce is reserved so forged
// requests cannot burn a peer's nonces.
func HMACAuth(
	peers ports.PeerDirectory,
	sigSvc ports.SignatureService,
	nonceStore ports.NonceStore,
	log zerolog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessKey := c.GetHeader(HeaderAccessKey)
		signature := c.GetHeader(HeaderSignature)
		nonce := c.GetHeader(HeaderNonce)
		rawTS := c.GetHeader(HeaderTimestamp)
		if accessKey == "" || signature == "" || nonce == "" || rawTS == "" {
			abort(c, apperror.ErrInvalidAccessKey())
			return
		}

		ts, err := strconv.ParseInt(rawTS, 10, 64)
		if err != nil || !withinDrift(time.Unix(ts, 0), time.Now()) {
			abort(c, apperror.ErrTimestampExpired())
			return
		}

		peer, ok := peers.Lookup(accessKey)
		if !ok {
			abort(c, apperror.ErrInvalidAccessKey())
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abort(c, apperror.Validation("cannot read request body"))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		canonical := sigSvc.BuildCanonicalString(c.Request.Method, c.Request.URL.Path, ts, nonce, string(body))
		if !sigSvc.Verify(peer.SecretKey, canonical, signature) {
			log.Warn().Str("peer", peer.Name).Str("path", c.Request.URL.Path).Msg("peer signature mismatch")
			abort(c, apperror.ErrInvalidSignature())
			return
		}

		fresh, err := nonceStore.CheckAndSet(c.Request.Context(), peer.Name, nonce, nonceTTL)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("peer", peer.Name).Msg("nonce store unavailable, accepting signed request")
		case !fresh:
			abort(c, apperror.ErrNonceUsed())
			return
		}

		c.Set(CtxPeer, peer)
		c.Next()
	}
}

// RequirePeer limits a route group to one named peer.
func RequirePeer(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if peer, ok := PeerFrom(c); !ok || peer.Name != name {
			abort(c, apperror.ErrInvalidAccessKey())
			return
		}
		c.Next()
	}
}

func PeerFrom(c *gin.Context) (*ports.Peer, bool) {
	peer, ok := c.Value(CtxPeer).(*ports.Peer)
	return peer, ok
}

func withinDrift(signed, now time.Time) bool {
	d := now.Sub(signed)
	return d <= maxTimestampDrift && d >= -maxTimestampDrift
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}
