package types

// SettlementStatus is the payment state of a settlement.
type SettlementStatus string

const (
	SettlementStatusPending SettlementStatus = "pending"
	SettlementStatusPaid    SettlementStatus = "paid"
)

// IsValid reports whether the status is one of the two allowed values.
func (s SettlementStatus) IsValid() bool {
	return s == SettlementStatusPending || s == SettlementStatusPaid
}

// Settlement is a derived obligation: fromUser owes toUser (the bill's
// payer) the aggregated amount of their items on one bill. Settlements
// are never authored directly; they are recomputed whenever the owning
// bill is written.
type Settlement struct {
	ID         int64            `json:"id"`
	BillID     int64            `json:"billId"`
	FromUserID int64            `json:"fromUserId"`
	ToUserID   int64            `json:"toUserId"`
	Amount     float64          `json:"amount"`
	Status     SettlementStatus `json:"status"`
	FromUser   *User            `json:"fromUser,omitempty"`
	ToUser     *User            `json:"toUser,omitempty"`
	Bill       *BillRef         `json:"bill,omitempty"`
}

// SettlementStatusUpdate is the payload for toggling a settlement's status.
type SettlementStatusUpdate struct {
	SettlementID int64            `json:"settlementId"`
	Status       SettlementStatus `json:"status"`
}
