// Package store defines the persistence interfaces the services depend on.
// Implementations live in subpackages (postgres).
package store

import (
	"context"

	"github.com/tabsplit/tabsplit-backend/types"
)

// UserStore handles user-related data operations.
type UserStore interface {
	CreateUser(ctx context.Context, create *types.UserCreate) (*types.User, error)
	GetUser(ctx context.Context, id int64) (*types.User, error)
	ListUsers(ctx context.Context) ([]types.User, error)
	UpdateUser(ctx context.Context, id int64, update *types.UserUpdate) (*types.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// BillStore handles bills with their owned items and settlements. Create and
// Replace persist the bill plus both collections as one transaction.
type BillStore interface {
	CreateBill(ctx context.Context, bill *types.Bill, items []types.BillItemInput, settlements []types.Settlement) (int64, error)
	ReplaceBill(ctx context.Context, id int64, bill *types.Bill, items []types.BillItemInput, settlements []types.Settlement) error
	GetBill(ctx context.Context, id int64) (*types.Bill, error)
	ListBills(ctx context.Context) ([]types.Bill, error)
	DeleteBill(ctx context.Context, id int64) error
}

// SettlementStore handles settlement status updates and per-user reads.
type SettlementStore interface {
	// UpdateStatus flips a settlement's status only when the settlement
	// belongs to billID. A mismatch leaves the row untouched and returns
	// ErrBillMismatch; an unknown settlement id returns ErrNotFound.
	UpdateStatus(ctx context.Context, settlementID, billID int64, status types.SettlementStatus) (*types.Settlement, error)
	ListUserSettlements(ctx context.Context, userID int64) ([]types.Settlement, error)
}
