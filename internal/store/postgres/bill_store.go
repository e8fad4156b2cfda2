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

// Ensure BillStore implements store.BillStore.
var _ store.BillStore = (*BillStore)(nil)

// BillStore implements store.BillStore on PostgreSQL. A bill owns its items
// and settlements; every multi-row write runs inside one transaction so the
// three tables never disagree.
type BillStore struct {
	db DB
}

// NewBillStore creates a new BillStore instance.
func NewBillStore(db DB) *BillStore {
	return &BillStore{db: db}
}

// CreateBill inserts the bill row, its items, and its derived settlements
// as one atomic unit and returns the new bill id.
func (s *BillStore) CreateBill(ctx context.Context, bill *types.Bill, items []types.BillItemInput, settlements []types.Settlement) (int64, error) {
	log := logger.GetLogger()
	var billID int64

	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO bills (title, date, payer_id)
			VALUES ($1, $2, $3)
			RETURNING id`,
			bill.Title,
			bill.Date,
			bill.PayerID,
		).Scan(&billID)
		if err != nil {
			return fmt.Errorf("failed to insert bill: %w", err)
		}

		if err := insertItems(ctx, tx, billID, items); err != nil {
			return err
		}
		return insertSettlements(ctx, tx, billID, settlements)
	})
	if err != nil {
		log.Errorw("CreateBill transaction failed", "error", err)
		return 0, err
	}

	log.Infow("Created bill", "billId", billID, "items", len(items), "settlements", len(settlements))
	return billID, nil
}

// ReplaceBill updates the bill's scalar fields and fully replaces its owned
// collections: existing settlements and items are deleted, then both are
// recreated from the input. Prior settlement statuses are discarded by design.
func (s *BillStore) ReplaceBill(ctx context.Context, id int64, bill *types.Bill, items []types.BillItemInput, settlements []types.Settlement) error {
	log := logger.GetLogger()

	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM settlements WHERE bill_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete settlements: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM bill_items WHERE bill_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete bill items: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE bills
			SET title = $1, date = $2, payer_id = $3, updated_at = NOW()
			WHERE id = $4`,
			bill.Title,
			bill.Date,
			bill.PayerID,
			id,
		)
		if err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return store.ErrNotFound
		}

		if err := insertItems(ctx, tx, id, items); err != nil {
			return err
		}
		return insertSettlements(ctx, tx, id, settlements)
	})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Errorw("ReplaceBill transaction failed", "billId", id, "error", err)
		}
		return err
	}

	log.Infow("Replaced bill", "billId", id, "items", len(items), "settlements", len(settlements))
	return nil
}

// GetBill retrieves one bill with payer, items (with assigned users), and
// settlements (with both user ends) populated.
func (s *BillStore) GetBill(ctx context.Context, id int64) (*types.Bill, error) {
	query := `
		SELECT b.id, b.title, b.date, b.payer_id, b.created_at, b.updated_at,
		       u.id, u.name, u.phone, u.created_at
		FROM bills b
		JOIN users u ON u.id = b.payer_id
		WHERE b.id = $1`

	bill := types.Bill{Payer: &types.User{}}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&bill.ID,
		&bill.Title,
		&bill.Date,
		&bill.PayerID,
		&bill.CreatedAt,
		&bill.UpdatedAt,
		&bill.Payer.ID,
		&bill.Payer.Name,
		&bill.Payer.Phone,
		&bill.Payer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching bill: %w", err)
	}

	itemsByBill, err := s.loadItems(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	settlementsByBill, err := s.loadSettlements(ctx, []int64{id})
	if err != nil {
		return nil, err
	}

	bill.Items = itemsByBill[id]
	bill.Settlements = settlementsByBill[id]
	if bill.Items == nil {
		bill.Items = []types.BillItem{}
	}
	if bill.Settlements == nil {
		bill.Settlements = []types.Settlement{}
	}

	return &bill, nil
}

// ListBills returns all bills ordered by date descending, each with payer,
// items, and settlements populated.
func (s *BillStore) ListBills(ctx context.Context) ([]types.Bill, error) {
	query := `
		SELECT b.id, b.title, b.date, b.payer_id, b.created_at, b.updated_at,
		       u.id, u.name, u.phone, u.created_at
		FROM bills b
		JOIN users u ON u.id = b.payer_id
		ORDER BY b.date DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing bills: %w", err)
	}
	defer rows.Close()

	bills := []types.Bill{}
	billIDs := []int64{}
	for rows.Next() {
		bill := types.Bill{Payer: &types.User{}, Items: []types.BillItem{}, Settlements: []types.Settlement{}}
		err := rows.Scan(
			&bill.ID,
			&bill.Title,
			&bill.Date,
			&bill.PayerID,
			&bill.CreatedAt,
			&bill.UpdatedAt,
			&bill.Payer.ID,
			&bill.Payer.Name,
			&bill.Payer.Phone,
			&bill.Payer.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
		billIDs = append(billIDs, bill.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(bills) == 0 {
		return bills, nil
	}

	itemsByBill, err := s.loadItems(ctx, billIDs)
	if err != nil {
		return nil, err
	}
	settlementsByBill, err := s.loadSettlements(ctx, billIDs)
	if err != nil {
		return nil, err
	}

	for i := range bills {
		if items, ok := itemsByBill[bills[i].ID]; ok {
			bills[i].Items = items
		}
		if settlements, ok := settlementsByBill[bills[i].ID]; ok {
			bills[i].Settlements = settlements
		}
	}

	return bills, nil
}

// DeleteBill removes the bill row. Items and settlements go with it via
// the ON DELETE CASCADE rules.
func (s *BillStore) DeleteBill(ctx context.Context, id int64) error {
	result, err := s.db.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting bill: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// loadItems fetches items for the given bills, keyed by bill id.
func (s *BillStore) loadItems(ctx context.Context, billIDs []int64) (map[int64][]types.BillItem, error) {
	query := `
		SELECT i.id, i.bill_id, i.description, i.amount, i.assigned_user_id,
		       u.id, u.name, u.phone, u.created_at
		FROM bill_items i
		JOIN users u ON u.id = i.assigned_user_id
		WHERE i.bill_id = ANY($1)
		ORDER BY i.id`

	rows, err := s.db.Query(ctx, query, billIDs)
	if err != nil {
		return nil, fmt.Errorf("error fetching bill items: %w", err)
	}
	defer rows.Close()

	itemsByBill := make(map[int64][]types.BillItem)
	for rows.Next() {
		item := types.BillItem{AssignedUser: &types.User{}}
		err := rows.Scan(
			&item.ID,
			&item.BillID,
			&item.Description,
			&item.Amount,
			&item.AssignedUserID,
			&item.AssignedUser.ID,
			&item.AssignedUser.Name,
			&item.AssignedUser.Phone,
			&item.AssignedUser.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		itemsByBill[item.BillID] = append(itemsByBill[item.BillID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return itemsByBill, nil
}

// loadSettlements fetches settlements for the given bills, keyed by bill id.
func (s *BillStore) loadSettlements(ctx context.Context, billIDs []int64) (map[int64][]types.Settlement, error) {
	query := `
		SELECT s.id, s.bill_id, s.from_user_id, s.to_user_id, s.amount, s.status,
		       fu.id, fu.name, fu.phone, fu.created_at,
		       tu.id, tu.name, tu.phone, tu.created_at
		FROM settlements s
		JOIN users fu ON fu.id = s.from_user_id
		JOIN users tu ON tu.id = s.to_user_id
		WHERE s.bill_id = ANY($1)
		ORDER BY s.id`

	rows, err := s.db.Query(ctx, query, billIDs)
	if err != nil {
		return nil, fmt.Errorf("error fetching settlements: %w", err)
	}
	defer rows.Close()

	settlementsByBill := make(map[int64][]types.Settlement)
	for rows.Next() {
		settlement := types.Settlement{FromUser: &types.User{}, ToUser: &types.User{}}
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
		)
		if err != nil {
			return nil, err
		}
		settlementsByBill[settlement.BillID] = append(settlementsByBill[settlement.BillID], settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settlementsByBill, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, billID int64, items []types.BillItemInput) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO bill_items (bill_id, description, amount, assigned_user_id)
			VALUES ($1, $2, $3, $4)`,
			billID,
			item.Description,
			item.Amount,
			item.AssignedUserID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill item: %w", err)
		}
	}
	return nil
}

func insertSettlements(ctx context.Context, tx pgx.Tx, billID int64, settlements []types.Settlement) error {
	for _, settlement := range settlements {
		_, err := tx.Exec(ctx, `
			INSERT INTO settlements (bill_id, from_user_id, to_user_id, amount, status)
			VALUES ($1, $2, $3, $4, $5)`,
			billID,
			settlement.FromUserID,
			settlement.ToUserID,
			settlement.Amount,
			settlement.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement: %w", err)
		}
	}
	return nil
}
