package types

import "time"

// Bill is a titled, dated expense event fronted by a single payer. It owns
// its items and settlements: updating a bill replaces both collections,
// deleting a bill cascades to them.
type Bill struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Date        time.Time    `json:"date"`
	PayerID     int64        `json:"payerId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Payer       *User        `json:"payer,omitempty"`
	Items       []BillItem   `json:"items"`
	Settlements []Settlement `json:"settlements"`
}

// BillItem is a single charge on a bill, attributed to exactly one user.
type BillItem struct {
	ID             int64   `json:"id"`
	BillID         int64   `json:"billId"`
	Description    string  `json:"description"`
	Amount         float64 `json:"amount"`
	AssignedUserID int64   `json:"assignedUserId"`
	AssignedUser   *User   `json:"assignedUser,omitempty"`
}

// BillSummary is a bill with read-time aggregates attached. The aggregates
// are projections over items and settlements, never stored.
type BillSummary struct {
	Bill
	Total       float64 `json:"total"`
	Outstanding float64 `json:"outstanding"`
	Paid        float64 `json:"paid"`
}

// BillItemInput is one item row in a bill create/update payload.
type BillItemInput struct {
	Description    string  `json:"description"`
	Amount         float64 `json:"amount"`
	AssignedUserID int64   `json:"assignedUserId"`
}

// BillInput is the payload for creating or fully replacing a bill.
// Date accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
type BillInput struct {
	Title   string          `json:"title"`
	Date    string          `json:"date"`
	PayerID int64           `json:"payerId"`
	Items   []BillItemInput `json:"items"`
}

// BillRef is the minimal bill identity attached to settlements in
// per-user views.
type BillRef struct {
	ID    int64     `json:"id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}
