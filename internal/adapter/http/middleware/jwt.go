package middleware

import (
	"strings"

	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const CtxAccount = "account"

// JWTAuth admits wallet sessions issued by the login flow and stores the
// authenticated account on the context.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			abort(c, apperror.ErrInvalidToken())
			return
		}

		claims, err := tokenSvc.Validate(token)
		if err != nil {
			log.Debug().Err(err).Msg("wallet token rejected")
			abort(c, apperror.ErrInvalidToken())
			return
		}

		c.Set(CtxAccount, claims.Account)
		c.Next()
	}
}

func AccountFrom(c *gin.Context) (common.Address, bool) {
	account, ok := c.Value(CtxAccount).(common.Address)
	return account, ok
}
