package calculator

import (
	"math"
	"testing"

	"github.com/tabsplit/tabsplit-backend/types"
)

func TestDeriveSettlements(t *testing.T) {
	tests := []struct {
		name         string
		items        []ItemShare
		payerID      int64
		validateFunc func(t *testing.T, settlements []types.Settlement)
	}{
		{
			name: "payer items produce no settlement",
			items: []ItemShare{
				{AssignedUserID: 2, Amount: 30},
				{AssignedUserID: 3, Amount: 20},
				{AssignedUserID: 1, Amount: 10},
			},
			payerID: 1,
			validateFunc: func(t *testing.T, settlements []types.Settlement) {
				if len(settlements) != 2 {
					t.Fatalf("got %d settlements, want 2", len(settlements))
				}
				if settlements[0].FromUserID != 2 || settlements[0].Amount != 30 {
					t.Errorf("settlements[0] = {from:%d amount:%v}, want {from:2 amount:30}",
						settlements[0].FromUserID, settlements[0].Amount)
				}
				if settlements[1].FromUserID != 3 || settlements[1].Amount != 20 {
					t.Errorf("settlements[1] = {from:%d amount:%v}, want {from:3 amount:20}",
						settlements[1].FromUserID, settlements[1].Amount)
				}
				for _, s := range settlements {
					if s.ToUserID != 1 {
						t.Errorf("settlement to user %d, want payer 1", s.ToUserID)
					}
					if s.Status != types.SettlementStatusPending {
						t.Errorf("settlement status = %q, want pending", s.Status)
					}
				}
			},
		},
		{
			name: "amounts aggregate per assignee",
			items: []ItemShare{
				{AssignedUserID: 2, Amount: 12.5},
				{AssignedUserID: 2, Amount: 7.5},
				{AssignedUserID: 2, Amount: 5},
			},
			payerID: 1,
			validateFunc: func(t *testing.T, settlements []types.Settlement) {
				if len(settlements) != 1 {
					t.Fatalf("got %d settlements, want 1", len(settlements))
				}
				if math.Abs(settlements[0].Amount-25) > 1e-9 {
					t.Errorf("aggregated amount = %v, want 25", settlements[0].Amount)
				}
			},
		},
		{
			name: "all items assigned to payer yields empty set",
			items: []ItemShare{
				{AssignedUserID: 1, Amount: 10},
				{AssignedUserID: 1, Amount: 20},
			},
			payerID: 1,
			validateFunc: func(t *testing.T, settlements []types.Settlement) {
				if len(settlements) != 0 {
					t.Errorf("got %d settlements, want 0", len(settlements))
				}
			},
		},
		{
			name: "zero amounts and missing assignees are skipped",
			items: []ItemShare{
				{AssignedUserID: 2, Amount: 0},
				{AssignedUserID: 0, Amount: 15},
				{AssignedUserID: 3, Amount: 9},
			},
			payerID: 1,
			validateFunc: func(t *testing.T, settlements []types.Settlement) {
				if len(settlements) != 1 {
					t.Fatalf("got %d settlements, want 1", len(settlements))
				}
				if settlements[0].FromUserID != 3 || settlements[0].Amount != 9 {
					t.Errorf("settlement = {from:%d amount:%v}, want {from:3 amount:9}",
						settlements[0].FromUserID, settlements[0].Amount)
				}
			},
		},
		{
			name:    "no items yields empty set",
			items:   nil,
			payerID: 1,
			validateFunc: func(t *testing.T, settlements []types.Settlement) {
				if len(settlements) != 0 {
					t.Errorf("got %d settlements, want 0", len(settlements))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settlements := DeriveSettlements(tt.items, tt.payerID)
			tt.validateFunc(t, settlements)
		})
	}
}

// Deriving twice from a permuted item list must yield identical (user, amount) pairs.
func TestDeriveSettlements_OrderIndependent(t *testing.T) {
	a := []ItemShare{
		{AssignedUserID: 4, Amount: 3},
		{AssignedUserID: 2, Amount: 8},
		{AssignedUserID: 4, Amount: 7},
		{AssignedUserID: 3, Amount: 1},
	}
	b := []ItemShare{a[3], a[0], a[2], a[1]}

	first := DeriveSettlements(a, 1)
	second := DeriveSettlements(b, 1)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].FromUserID != second[i].FromUserID || first[i].Amount != second[i].Amount {
			t.Errorf("index %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestDeriveSettlements_ConservesNonPayerTotal(t *testing.T) {
	items := []ItemShare{
		{AssignedUserID: 1, Amount: 11},
		{AssignedUserID: 2, Amount: 4.2},
		{AssignedUserID: 3, Amount: 0.8},
		{AssignedUserID: 2, Amount: 5},
	}

	settlements := DeriveSettlements(items, 1)

	var derived, nonPayer float64
	for _, s := range settlements {
		if s.FromUserID == s.ToUserID {
			t.Errorf("settlement from and to the same user %d", s.FromUserID)
		}
		derived += s.Amount
	}
	for _, item := range items {
		if item.AssignedUserID != 1 {
			nonPayer += item.Amount
		}
	}
	if math.Abs(derived-nonPayer) > 1e-9 {
		t.Errorf("derived total %v != non-payer item total %v", derived, nonPayer)
	}
}
