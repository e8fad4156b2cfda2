package service

import (
	"context"
	"errors"

	apperrors "github.com/tabsplit/tabsplit-backend/errors"
	"github.com/tabsplit/tabsplit-backend/internal/store"
	"github.com/tabsplit/tabsplit-backend/logger"
	"github.com/tabsplit/tabsplit-backend/types"
)

// SettlementService handles settlement status changes and per-user views.
// Settlement rows themselves are owned by bills; this service never creates
// or deletes them.
type SettlementService struct {
	settlements store.SettlementStore
	users       store.UserStore
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(settlements store.SettlementStore, users store.UserStore) *SettlementService {
	return &SettlementService{settlements: settlements, users: users}
}

// SetStatus updates the status of a settlement under the given bill. The
// settlement must belong to the bill; a mismatched pair is rejected without
// touching the row.
func (s *SettlementService) SetStatus(ctx context.Context, billID int64, update *types.SettlementStatusUpdate) (*types.Settlement, error) {
	log := logger.GetLogger()

	if update.SettlementID <= 0 {
		return nil, apperrors.ValidationFailed("invalid_settlement_update", "settlementId is required")
	}
	if !update.Status.IsValid() {
		return nil, apperrors.ValidationFailed("invalid_settlement_update", "status must be pending or paid")
	}

	settlement, err := s.settlements.UpdateStatus(ctx, update.SettlementID, billID, update.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, apperrors.NotFound("Settlement", update.SettlementID)
		case errors.Is(err, store.ErrBillMismatch):
			return nil, apperrors.ValidationFailed("invalid_settlement_update", "settlement does not belong to this bill")
		default:
			log.Errorw("Failed to update settlement status",
				"settlementId", update.SettlementID,
				"billId", billID,
				"error", err)
			return nil, apperrors.NewDatabaseError(err)
		}
	}

	return settlement, nil
}

// ListUserSettlements returns every settlement the user is part of, on
// either end. The user must exist.
func (s *SettlementService) ListUserSettlements(ctx context.Context, userID int64) ([]types.Settlement, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User", userID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	settlements, err := s.settlements.ListUserSettlements(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return settlements, nil
}
