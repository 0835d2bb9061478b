package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records successful write operations once the handler has run.
// It maps the matched route to an audit action.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Actor:        actorOf(c),
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID(c),
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

func actorOf(c *gin.Context) *string {
	if account, ok := AccountFrom(c); ok {
		s := account.Hex()
		return &s
	}
	if peer, ok := PeerFrom(c); ok {
		s := "peer:" + peer.Name
		return &s
	}
	return nil
}

func resourceID(c *gin.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return c.Param("asset")
}

func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	if method != http.MethodPost && method != http.MethodPut {
		return "", ""
	}
	switch {
	case route == "/api/v1/auth/login":
		return domain.AuditActionLogin, "session"
	case route == "/api/v1/orders":
		return domain.AuditActionSubmitOrder, "order"
	case route == "/api/v1/orders/:id/cancel":
		return domain.AuditActionCancelOrder, "order"
	case route == "/api/v1/escrow/withdrawals":
		return domain.AuditActionWithdraw, "escrow"
	case route == "/api/v1/custody/deposits":
		return domain.AuditActionDeposit, "escrow"
	case route == "/api/v1/admin/prices/:asset":
		return domain.AuditActionSetPrice, "asset"
	case route == "/api/v1/admin/inventory/:asset/deposit":
		return domain.AuditActionInventoryDeposit, "asset"
	case route == "/api/v1/admin/inventory/:asset/withdraw":
		return domain.AuditActionInventoryWithdraw, "asset"
	case route == "/api/v1/admin/settlements/pick":
		return domain.AuditActionPick, "order"
	case strings.HasPrefix(route, "/api/v1/gateway/reveals"):
		return domain.AuditActionRevealCallback, "order"
	}
	return "", ""
}
