package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devstore/sales-api/internal/domain/entity"
)

// Type identifies a sale lifecycle event
type Type string

const (
	TypeSaleCreated   Type = "sale.created"
	TypeSaleModified  Type = "sale.modified"
	TypeSaleCancelled Type = "sale.cancelled"
	TypeItemCancelled Type = "sale.item.cancelled"
)

// SaleEvent is the envelope published for every sale lifecycle change.
// ItemID is only set for item-level events.
type SaleEvent struct {
	Type        Type            `json:"type"`
	SaleID      uuid.UUID       `json:"sale_id"`
	SaleNumber  string          `json:"sale_number"`
	CustomerID  int             `json:"customer_id"`
	BranchID    int             `json:"branch_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	ItemID      *uuid.UUID      `json:"item_id,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// NewSaleEvent builds the event envelope from a sale snapshot.
func NewSaleEvent(eventType Type, sale *entity.Sale) SaleEvent {
	return SaleEvent{
		Type:        eventType,
		SaleID:      sale.ID,
		SaleNumber:  sale.SaleNumber,
		CustomerID:  sale.CustomerID,
		BranchID:    sale.BranchID,
		TotalAmount: sale.TotalAmount,
		Status:      sale.Status.String(),
		OccurredAt:  time.Now().UTC(),
	}
}

// NewItemCancelledEvent builds the envelope for a single cancelled item.
func NewItemCancelledEvent(sale *entity.Sale, item *entity.SaleItem) SaleEvent {
	ev := NewSaleEvent(TypeItemCancelled, sale)
	itemID := item.ID
	ev.ItemID = &itemID
	return ev
}

// Publisher delivers sale events to interested consumers. Delivery is
// best-effort and at-most-once from the domain's perspective: a publish
// failure must never roll back the committed domain change.
type Publisher interface {
	Publish(ctx context.Context, event SaleEvent) error
}
