package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/tabsplit/tabsplit-backend/middleware"
	"github.com/tabsplit/tabsplit-backend/types"
)

// newTestRouter builds a gin engine with the same error handling the real
// router uses, so handler tests exercise status codes and the error shape.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	return r
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, create *types.UserCreate) (*types.User, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id int64) (*types.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]types.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id int64, update *types.UserUpdate) (*types.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) CreateBill(ctx context.Context, input *types.BillInput) (*types.BillSummary, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.BillSummary), args.Error(1)
}

func (m *MockBillService) UpdateBill(ctx context.Context, id int64, input *types.BillInput) (*types.BillSummary, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.BillSummary), args.Error(1)
}

func (m *MockBillService) GetBill(ctx context.Context, id int64) (*types.BillSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.BillSummary), args.Error(1)
}

func (m *MockBillService) ListBills(ctx context.Context) ([]types.BillSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.BillSummary), args.Error(1)
}

func (m *MockBillService) DeleteBill(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) SetStatus(ctx context.Context, billID int64, update *types.SettlementStatusUpdate) (*types.Settlement, error) {
	args := m.Called(ctx, billID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Settlement), args.Error(1)
}

func (m *MockSettlementService) ListUserSettlements(ctx context.Context, userID int64) ([]types.Settlement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Settlement), args.Error(1)
}
