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

func billRequestBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"title":   "Dinner",
		"date":    "2024-06-01",
		"payerId": 1,
		"items": []map[string]interface{}{
			{"description": "Pizza", "amount": 30, "assignedUserId": 2},
		},
	})
	return body
}

func TestCreateBillHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockSvc := new(MockBillService)
		handler := NewBillHandler(mockSvc)

		var gotInput *types.BillInput
		mockSvc.On("CreateBill", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				gotInput = args.Get(1).(*types.BillInput)
			}).
			Return(&types.BillSummary{Bill: types.Bill{ID: 10, Title: "Dinner"}, Total: 30, Outstanding: 30}, nil)

		r := newTestRouter()
		r.POST("/bills", handler.CreateBillHandler)

		req, _ := http.NewRequest("POST", "/bills", bytes.NewBuffer(billRequestBody()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, gotInput)
		assert.Equal(t, "Dinner", gotInput.Title)
		assert.Equal(t, int64(1), gotInput.PayerID)
		require.Len(t, gotInput.Items, 1)
		assert.Equal(t, int64(2), gotInput.Items[0].AssignedUserID)

		var resp types.BillSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(10), resp.ID)
		assert.InDelta(t, 30, resp.Total, 1e-9)
	})

	t.Run("validation failure returns 400 with detail", func(t *testing.T) {
		mockSvc := new(MockBillService)
		handler := NewBillHandler(mockSvc)

		mockSvc.On("CreateBill", mock.Anything, mock.Anything).
			Return(nil, apperrors.ValidationFailed("invalid_bill_data", "title is required"))

		r := newTestRouter()
		r.POST("/bills", handler.CreateBillHandler)

		req, _ := http.NewRequest("POST", "/bills", bytes.NewBuffer(billRequestBody()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "title is required", resp.Error)
	})
}

func TestGetBillHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockSvc := new(MockBillService)
		handler := NewBillHandler(mockSvc)

		mockSvc.On("GetBill", mock.Anything, int64(10)).
			Return(&types.BillSummary{Bill: types.Bill{ID: 10, Title: "Dinner"}}, nil)

		r := newTestRouter()
		r.GET("/bills/:id", handler.GetBillHandler)

		req, _ := http.NewRequest("GET", "/bills/10", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(MockBillService)
		handler := NewBillHandler(mockSvc)

		mockSvc.On("GetBill", mock.Anything, int64(99)).
			Return(nil, apperrors.NotFound("Bill", int64(99)))

		r := newTestRouter()
		r.GET("/bills/:id", handler.GetBillHandler)

		req, _ := http.NewRequest("GET", "/bills/99", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateBillHandler(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		mockSvc := new(MockBillService)
		handler := NewBillHandler(mockSvc)

		mockSvc.On("UpdateBill", mock.Anything, int64(10), mock.Anything).
			Return(&types.BillSummary{Bill: types.Bill{ID: 10, Title: "Dinner"}}, nil)

		r := newTestRouter()
		r.PUT("/bills/:id", handler.UpdateBillHandler)

		req, _ := http.NewRequest("PUT", "/bills/10", bytes.NewBuffer(billRequestBody()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown bill", func(t *testing.T) {
		mockSvc := new(MockBillService)
		handler := NewBillHandler(mockSvc)

		mockSvc.On("UpdateBill", mock.Anything, int64(99), mock.Anything).
			Return(nil, apperrors.NotFound("Bill", int64(99)))

		r := newTestRouter()
		r.PUT("/bills/:id", handler.UpdateBillHandler)

		req, _ := http.NewRequest("PUT", "/bills/99", bytes.NewBuffer(billRequestBody()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteBillHandler(t *testing.T) {
	mockSvc := new(MockBillService)
	handler := NewBillHandler(mockSvc)

	mockSvc.On("DeleteBill", mock.Anything, int64(10)).Return(nil)

	r := newTestRouter()
	r.DELETE("/bills/:id", handler.DeleteBillHandler)

	req, _ := http.NewRequest("DELETE", "/bills/10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestListBillsHandler(t *testing.T) {
	mockSvc := new(MockBillService)
	handler := NewBillHandler(mockSvc)

	mockSvc.On("ListBills", mock.Anything).Return([]types.BillSummary{
		{Bill: types.Bill{ID: 20, Title: "Brunch"}, Total: 12.5, Outstanding: 12.5},
		{Bill: types.Bill{ID: 10, Title: "Dinner"}, Total: 50, Paid: 50},
	}, nil)

	r := newTestRouter()
	r.GET("/bills", handler.ListBillsHandler)

	req, _ := http.NewRequest("GET", "/bills", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []types.BillSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.InDelta(t, 12.5, resp[0].Outstanding, 1e-9)
	assert.InDelta(t, 50, resp[1].Paid, 1e-9)
}
