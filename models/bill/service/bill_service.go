package service

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/tabsplit/tabsplit-backend/errors"
	"github.com/tabsplit/tabsplit-backend/internal/calculator"
	"github.com/tabsplit/tabsplit-backend/internal/store"
	"github.com/tabsplit/tabsplit-backend/logger"
	"github.com/tabsplit/tabsplit-backend/types"
)

// Accepted layouts for the bill date field.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// BillService handles bill management. Settlements are derived from the
// bill's items on every create and update, never authored directly.
type BillService struct {
	store store.BillStore
}

// NewBillService creates a new BillService.
func NewBillService(store store.BillStore) *BillService {
	return &BillService{store: store}
}

// CreateBill validates the input, derives settlements from the items, and
// persists bill, items, and settlements atomically.
func (s *BillService) CreateBill(ctx context.Context, input *types.BillInput) (*types.BillSummary, error) {
	log := logger.GetLogger()

	bill, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	settlements := calculator.DeriveSettlements(calculator.SharesFromInputs(input.Items), input.PayerID)

	id, err := s.store.CreateBill(ctx, bill, input.Items, settlements)
	if err != nil {
		log.Errorw("Failed to create bill", "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	return s.GetBill(ctx, id)
}

// UpdateBill replaces the bill wholesale: items and settlements are deleted
// and recreated from the input, so any paid settlement reverts to pending.
func (s *BillService) UpdateBill(ctx context.Context, id int64, input *types.BillInput) (*types.BillSummary, error) {
	log := logger.GetLogger()

	bill, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	settlements := calculator.DeriveSettlements(calculator.SharesFromInputs(input.Items), input.PayerID)

	if err := s.store.ReplaceBill(ctx, id, bill, input.Items, settlements); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Bill", id)
		}
		log.Errorw("Failed to update bill", "billId", id, "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	return s.GetBill(ctx, id)
}

// GetBill retrieves one bill with its aggregates.
func (s *BillService) GetBill(ctx context.Context, id int64) (*types.BillSummary, error) {
	bill, err := s.store.GetBill(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Bill", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	summary := summarize(bill)
	return &summary, nil
}

// ListBills returns all bills with their aggregates, newest first.
func (s *BillService) ListBills(ctx context.Context) ([]types.BillSummary, error) {
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	summaries := make([]types.BillSummary, 0, len(bills))
	for i := range bills {
		summaries = append(summaries, summarize(&bills[i]))
	}
	return summaries, nil
}

// DeleteBill removes a bill along with its items and settlements.
func (s *BillService) DeleteBill(ctx context.Context, id int64) error {
	log := logger.GetLogger()

	if err := s.store.DeleteBill(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Bill", id)
		}
		log.Errorw("Failed to delete bill", "billId", id, "error", err)
		return apperrors.NewDatabaseError(err)
	}

	log.Infow("Deleted bill", "billId", id)
	return nil
}

// validateInput checks the request shape and returns the bill row to persist.
func (s *BillService) validateInput(input *types.BillInput) (*types.Bill, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, apperrors.ValidationFailed("invalid_bill_data", "title is required")
	}
	if input.PayerID <= 0 {
		return nil, apperrors.ValidationFailed("invalid_bill_data", "payerId is required")
	}
	if len(input.Items) == 0 {
		return nil, apperrors.ValidationFailed("invalid_bill_data", "at least one item is required")
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, apperrors.ValidationFailed("invalid_bill_data", "date must be RFC3339 or YYYY-MM-DD")
	}

	for i := range input.Items {
		item := &input.Items[i]
		if item.AssignedUserID <= 0 {
			return nil, apperrors.ValidationFailed("invalid_bill_data", "every item needs an assignedUserId")
		}
		if item.Amount < 0 {
			return nil, apperrors.ValidationFailed("invalid_bill_data", "item amounts must be non-negative")
		}
	}

	return &types.Bill{
		Title:   input.Title,
		Date:    date,
		PayerID: input.PayerID,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var date time.Time
		if date, err = time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, err
}

// summarize computes the read-only aggregates for a bill.
func summarize(bill *types.Bill) types.BillSummary {
	summary := types.BillSummary{Bill: *bill}
	for _, item := range bill.Items {
		summary.Total += item.Amount
	}
	for _, settlement := range bill.Settlements {
		switch settlement.Status {
		case types.SettlementStatusPaid:
			summary.Paid += settlement.Amount
		default:
			summary.Outstanding += settlement.Amount
		}
	}
	return summary
}
