package handlers

import (
	"context"

	"github.com/tabsplit/tabsplit-backend/types"
)

// UserServiceInterface defines the user operations the handlers depend on.
type UserServiceInterface interface {
	CreateUser(ctx context.Context, create *types.UserCreate) (*types.User, error)
	GetUser(ctx context.Context, id int64) (*types.User, error)
	ListUsers(ctx context.Context) ([]types.User, error)
	UpdateUser(ctx context.Context, id int64, update *types.UserUpdate) (*types.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// BillServiceInterface defines the bill operations the handlers depend on.
type BillServiceInterface interface {
	CreateBill(ctx context.Context, input *types.BillInput) (*types.BillSummary, error)
	UpdateBill(ctx context.Context, id int64, input *types.BillInput) (*types.BillSummary, error)
	GetBill(ctx context.Context, id int64) (*types.BillSummary, error)
	ListBills(ctx context.Context) ([]types.BillSummary, error)
	DeleteBill(ctx context.Context, id int64) error
}

// SettlementServiceInterface defines the settlement operations the handlers
// depend on.
type SettlementServiceInterface interface {
	SetStatus(ctx context.Context, billID int64, update *types.SettlementStatusUpdate) (*types.Settlement, error)
	ListUserSettlements(ctx context.Context, userID int64) ([]types.Settlement, error)
}
