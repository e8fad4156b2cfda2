// Package calculator holds the pure settlement-derivation logic. It has no
// store or transport dependencies so the math can be tested in isolation.
package calculator

import (
	"sort"

	"github.com/tabsplit/tabsplit-backend/types"
)

// ItemShare is one bill item's contribution to the derivation: who the
// charge is attributed to and how much it was.
type ItemShare struct {
	AssignedUserID int64
	Amount         float64
}

// DeriveSettlements aggregates item amounts per assignee and emits one
// pending settlement toward the payer for every assignee with a non-zero
// total, excluding the payer themselves.
//
// Items with no assignee or a zero amount are skipped silently; they carry
// no obligation. The result is ordered by ascending assignee id, so the
// output is deterministic regardless of item order.
func DeriveSettlements(items []ItemShare, payerID int64) []types.Settlement {
	totals := make(map[int64]float64)
	for _, item := range items {
		if item.AssignedUserID == 0 || item.Amount == 0 {
			continue
		}
		totals[item.AssignedUserID] += item.Amount
	}

	userIDs := make([]int64, 0, len(totals))
	for userID := range totals {
		if userID == payerID {
			continue
		}
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	settlements := make([]types.Settlement, 0, len(userIDs))
	for _, userID := range userIDs {
		settlements = append(settlements, types.Settlement{
			FromUserID: userID,
			ToUserID:   payerID,
			Amount:     totals[userID],
			Status:     types.SettlementStatusPending,
		})
	}
	return settlements
}

// SharesFromInputs converts bill item payloads into derivation inputs.
func SharesFromInputs(items []types.BillItemInput) []ItemShare {
	shares := make([]ItemShare, 0, len(items))
	for _, item := range items {
		shares = append(shares, ItemShare{
			AssignedUserID: item.AssignedUserID,
			Amount:         item.Amount,
		})
	}
	return shares
}
