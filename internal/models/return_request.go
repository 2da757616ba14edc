package models

import (
	"fmt"
	"time"
)

type ReturnStatus string

const (
	ReturnRequested ReturnStatus = "requested"
	ReturnApproved  ReturnStatus = "approved"
	ReturnRejected  ReturnStatus = "rejected"
	ReturnReceived  ReturnStatus = "received"
	ReturnRefunded  ReturnStatus = "refunded"
	ReturnCancelled ReturnStatus = "cancelled"
)

func (s ReturnStatus) String() string {
	return string(s)
}

func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnRequested, ReturnApproved, ReturnRejected, ReturnReceived, ReturnRefunded, ReturnCancelled:
		return true
	}
	return false
}

func (s ReturnStatus) IsTerminal() bool {
	return s == ReturnRejected || s == ReturnRefunded || s == ReturnCancelled
}

// Cancelled is reachable from every non-terminal state as a manual
// escape valve; the rest follows the approve -> receive -> refund path.
var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnRequested: {ReturnApproved, ReturnRejected, ReturnCancelled},
	ReturnApproved:  {ReturnReceived, ReturnCancelled},
	ReturnReceived:  {ReturnRefunded, ReturnCancelled},
	ReturnRejected:  {},
	ReturnRefunded:  {},
	ReturnCancelled: {},
}

func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	for _, next := range returnTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

type ReturnReason string

const (
	ReasonDefective        ReturnReason = "defective"
	ReasonWrongItem        ReturnReason = "wrong-item"
	ReasonDamagedInTransit ReturnReason = "damaged-in-transit"
	ReasonNotAsDescribed   ReturnReason = "not-as-described"
	ReasonNoLongerNeeded   ReturnReason = "no-longer-needed"
	ReasonOther            ReturnReason = "other"
)

func (r ReturnReason) IsValid() bool {
	switch r {
	case ReasonDefective, ReasonWrongItem, ReasonDamagedInTransit, ReasonNotAsDescribed, ReasonNoLongerNeeded, ReasonOther:
		return true
	}
	return false
}

// ReturnRequest is a customer request to send back items from a prior
// order. Customer and items are copied from the order at creation so the
// row stays independent of later order edits; RefundAmount is fixed at
// creation and never recalculated.
type ReturnRequest struct {
	ID              string       `json:"returnId" bson:"return_id"`
	OrderID         string       `json:"orderId" bson:"order_id"`
	UserID          string       `json:"userId,omitempty" bson:"user_id,omitempty"`
	Customer        CustomerInfo `json:"customer" bson:"customer"`
	Items           []OrderItem  `json:"items" bson:"items"`
	Reason          ReturnReason `json:"reason" bson:"reason"`
	AdditionalNotes string       `json:"additionalNotes,omitempty" bson:"additional_notes,omitempty"`
	RefundAmount    float64      `json:"refundAmount" bson:"refund_amount"`
	Status          ReturnStatus `json:"status" bson:"status"`
	RequestedAt     time.Time    `json:"requestedAt" bson:"requested_at"`
	UpdatedAt       time.Time    `json:"updatedAt" bson:"updated_at"`
	RefundDate      *time.Time   `json:"refundDate,omitempty" bson:"refund_date,omitempty"`
}

// NewReturnID generates the human-facing return id, e.g. RET-1717171717171.
func NewReturnID(now time.Time) string {
	return fmt.Sprintf("RET-%d", now.UnixMilli())
}
