package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tabsplit/tabsplit-backend/internal/store"
	"github.com/tabsplit/tabsplit-backend/logger"
	"github.com/tabsplit/tabsplit-backend/types"
)

// Ensure SettlementStore implements store.SettlementStore.
var _ store.SettlementStore = (*SettlementStore)(nil)

// SettlementStore implements store.SettlementStore on PostgreSQL.
type SettlementStore struct {
	db DB
}

// NewSettlementStore creates a new SettlementStore instance.
func NewSettlementStore(db DB) *SettlementStore {
	return &SettlementStore{db: db}
}

// UpdateStatus sets the status of one settlement, but only when the
// settlement belongs to the given bill. The bill check is part of the UPDATE
// predicate, so a mismatched pair mutates nothing. When zero rows are
// touched a follow-up existence probe tells ErrNotFound and ErrBillMismatch
// apart.
func (s *SettlementStore) UpdateStatus(ctx context.Context, settlementID, billID int64, status types.SettlementStatus) (*types.Settlement, error) {
	log := logger.GetLogger()

	tag, err := s.db.Exec(ctx, `
		UPDATE settlements
		SET status = $1
		WHERE id = $2 AND bill_id = $3`,
		status,
		settlementID,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("error updating settlement status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM settlements WHERE id = $1)`, settlementID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("error checking settlement existence: %w", err)
		}
		if !exists {
			return nil, store.ErrNotFound
		}
		return nil, store.ErrBillMismatch
	}

	settlement, err := s.getSettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}

	log.Infow("Updated settlement status", "settlementId", settlementID, "billId", billID, "status", status)
	return settlement, nil
}

// ListUserSettlements returns every settlement where the user is on either
// end, newest bill first, with both users and a bill reference populated.
func (s *SettlementStore) ListUserSettlements(ctx context.Context, userID int64) ([]types.Settlement, error) {
	query := `
		SELECT s.id, s.bill_id, s.from_user_id, s.to_user_id, s.amount, s.status,
		       fu.id, fu.name, fu.phone, fu.created_at,
		       tu.id, tu.name, tu.phone, tu.created_at,
		       b.id, b.title, b.date
		FROM settlements s
		JOIN users fu ON fu.id = s.from_user_id
		JOIN users tu ON tu.id = s.to_user_id
		JOIN bills b ON b.id = s.bill_id
		WHERE s.from_user_id = $1 OR s.to_user_id = $1
		ORDER BY b.date DESC, s.id`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing user settlements: %w", err)
	}
	defer rows.Close()

	settlements := []types.Settlement{}
	for rows.Next() {
		settlement := types.Settlement{
			FromUser: &types.User{},
			ToUser:   &types.User{},
			Bill:     &types.BillRef{},
		}
		err := rows.Scan(
			&settlement.ID,
			&settlement.BillID,
			&settlement.FromUserID,
			&settlement.ToUserID,
			&settlement.Amount,
			&settlement.Status,
			&settlement.FromUser.ID,
			&settlement.FromUser.Name,
			&settlement.FromUser.Phone,
			&settlement.FromUser.CreatedAt,
			&settlement.ToUser.ID,
			&settlement.ToUser.Name,
			&settlement.ToUser.Phone,
			&settlement.ToUser.CreatedAt,
			&settlement.Bill.ID,
			&settlement.Bill.Title,
			&settlement.Bill.Date,
		)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settlements, nil
}

func (s *SettlementStore) getSettlement(ctx context.Context, id int64) (*types.Settlement, error) {
	query := `
		SELECT s.id, s.bill_id, s.from_user_id, s.to_user_id, s.amount, s.status,
		       fu.id, fu.name, fu.phone, fu.created_at,
		       tu.id, tu.name, tu.phone, tu.created_at
		FROM settlements s
		JOIN users fu ON fu.id = s.from_user_id
		JOIN users tu ON tu.id = s.to_user_id
		WHERE s.id = $1`

	settlement := types.Settlement{FromUser: &types.User{}, ToUser: &types.User{}}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&settlement.ID,
		&settlement.BillID,
		&settlement.FromUserID,
		&settlement.ToUserID,
		&settlement.Amount,
		&settlement.Status,
		&settlement.FromUser.ID,
		&settlement.FromUser.Name,
		&settlement.FromUser.Phone,
		&settlement.FromUser.CreatedAt,
		&settlement.ToUser.ID,
		&settlement.ToUser.Name,
		&settlement.ToUser.Phone,
		&settlement.ToUser.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching settlement: %w", err)
	}

	return &settlement, nil
}
