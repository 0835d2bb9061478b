package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionLogin             AuditAction = "LOGIN"
	AuditActionSubmitOrder       AuditAction = "SUBMIT_ORDER"
	AuditActionCancelOrder       AuditAction = "CANCEL_ORDER"
	AuditActionWithdraw          AuditAction = "WITHDRAW"
	AuditActionDeposit           AuditAction = "DEPOSIT"
	AuditActionSetPrice          AuditAction = "SET_PRICE"
	AuditActionInventoryDeposit  AuditAction = "INVENTORY_DEPOSIT"
	AuditActionInventoryWithdraw AuditAction = "INVENTORY_WITHDRAW"
	AuditActionPick              AuditAction = "PICK"
	AuditActionRevealCallback    AuditAction = "REVEAL_CALLBACK"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Actor        *string     `json:"actor,omitempty"` // account address or peer name
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
