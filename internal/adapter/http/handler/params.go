package handler

import (
	"strconv"

	"blindbuy-escrow/internal/adapter/http/middleware"
	"blindbuy-escrow/pkg/apperror"
	"blindbuy-escrow/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// addressParam parses a hex address path parameter.
func addressParam(c *gin.Context, name string) (common.Address, bool) {
	raw := c.Param(name)
	if !common.IsHexAddress(raw) {
		response.Error(c, apperror.ErrInvalidInput("invalid "+name+" address"))
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

// orderIDParam parses the :id path parameter.
func orderIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperror.ErrInvalidInput("invalid order id"))
		return 0, false
	}
	return id, true
}

// mustAccount returns the JWT account or writes an auth error.
func mustAccount(c *gin.Context) (common.Address, bool) {
	account, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return common.Address{}, false
	}
	return account, true
}
