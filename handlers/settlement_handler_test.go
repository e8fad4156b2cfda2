package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tabsplit/tabsplit-backend/errors"
	"github.com/tabsplit/tabsplit-backend/types"
)

func TestUpdateSettlementStatusHandler(t *testing.T) {
	t.Run("marks settlement paid", func(t *testing.T) {
		mockSvc := new(MockSettlementService)
		handler := NewSettlementHandler(mockSvc)

		update := &types.SettlementStatusUpdate{SettlementID: 200, Status: types.SettlementStatusPaid}
		mockSvc.On("SetStatus", mock.Anything, int64(10), update).
			Return(&types.Settlement{ID: 200, BillID: 10, Status: types.SettlementStatusPaid}, nil)

		r := newTestRouter()
		r.PUT("/bills/:id/settlements", handler.UpdateSettlementStatusHandler)

		body, _ := json.Marshal(map[string]interface{}{"settlementId": 200, "status": "paid"})
		req, _ := http.NewRequest("PUT", "/bills/10/settlements", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp types.Settlement
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, types.SettlementStatusPaid, resp.Status)
	})

	t.Run("bill mismatch returns 400", func(t *testing.T) {
		mockSvc := new(MockSettlementService)
		handler := NewSettlementHandler(mockSvc)

		mockSvc.On("SetStatus", mock.Anything, int64(77), mock.Anything).
			Return(nil, apperrors.ValidationFailed("invalid_settlement_update", "settlement does not belong to this bill"))

		r := newTestRouter()
		r.PUT("/bills/:id/settlements", handler.UpdateSettlementStatusHandler)

		body, _ := json.Marshal(map[string]interface{}{"settlementId": 200, "status": "paid"})
		req, _ := http.NewRequest("PUT", "/bills/77/settlements", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "settlement does not belong to this bill", resp.Error)
	})

	t.Run("unknown settlement returns 404", func(t *testing.T) {
		mockSvc := new(MockSettlementService)
		handler := NewSettlementHandler(mockSvc)

		mockSvc.On("SetStatus", mock.Anything, int64(10), mock.Anything).
			Return(nil, apperrors.NotFound("Settlement", int64(999)))

		r := newTestRouter()
		r.PUT("/bills/:id/settlements", handler.UpdateSettlementStatusHandler)

		body, _ := json.Marshal(map[string]interface{}{"settlementId": 999, "status": "paid"})
		req, _ := http.NewRequest("PUT", "/bills/10/settlements", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		handler := NewSettlementHandler(new(MockSettlementService))

		r := newTestRouter()
		r.PUT("/bills/:id/settlements", handler.UpdateSettlementStatusHandler)

		req, _ := http.NewRequest("PUT", "/bills/10/settlements", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListUserSettlementsHandler(t *testing.T) {
	t.Run("returns the user's settlements", func(t *testing.T) {
		mockSvc := new(MockSettlementService)
		handler := NewSettlementHandler(mockSvc)

		mockSvc.On("ListUserSettlements", mock.Anything, int64(1)).Return([]types.Settlement{
			{ID: 200, BillID: 10, FromUserID: 2, ToUserID: 1, Amount: 30, Status: types.SettlementStatusPending},
		}, nil)

		r := newTestRouter()
		r.GET("/users/:id/settlements", handler.ListUserSettlementsHandler)

		req, _ := http.NewRequest("GET", "/users/1/settlements", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp []types.Settlement
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, int64(200), resp[0].ID)
	})

	t.Run("unknown user returns 404", func(t *testing.T) {
		mockSvc := new(MockSettlementService)
		handler := NewSettlementHandler(mockSvc)

		mockSvc.On("ListUserSettlements", mock.Anything, int64(99)).
			Return(nil, apperrors.NotFound("User", int64(99)))

		r := newTestRouter()
		r.GET("/users/:id/settlements", handler.ListUserSettlementsHandler)

		req, _ := http.NewRequest("GET", "/users/99/settlements", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
