package generate_invoice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/invoices/models"
	generateInvoice "github.com/m04kA/SMC-RoomBookingService/internal/usecase/generate_invoice"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *generateInvoice.Request) (*domain.Invoice, error) {
	args := m.Called(ctx, req)
	inv, _ := args.Get(0).(*domain.Invoice)
	return inv, args.Error(1)
}

func serve(h *Handler, bookingID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/generate/"+bookingID, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	w := httptest.NewRecorder()
	h.Handle(w, req)
	return w
}

func TestHandle_ConvertsPercentRates(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *generateInvoice.Request) bool {
		return req.BookingID == 7 &&
			req.TaxRate != nil && *req.TaxRate == domain.Rate(1250) &&
			req.ServiceRate == nil &&
			req.Discount == 500
	})).Return(&domain.Invoice{
		ID:        3,
		BookingID: 7,
		Number:    "INV-202506-0001",
		Status:    domain.InvoiceIssued,
		TaxRate:   1250,
		Total:     10000,
		Items:     []domain.InvoiceLineItem{{Source: domain.SourceRoom, Description: "Room", Quantity: 2, UnitPrice: 5000, Amount: 10000}},
	}, nil)

	w := serve(NewHandler(uc, logger.NewNop(), false), "7", `{"taxRate": 12.5, "discount": 500}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp models.InvoiceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INV-202506-0001", resp.Number)
	assert.Equal(t, 12.5, resp.TaxRate)
	require.Len(t, resp.Items, 1)
	uc.AssertExpectations(t)
}

func TestHandle_EmptyBodyUsesDefaults(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *generateInvoice.Request) bool {
		return req.BookingID == 7 && req.TaxRate == nil && req.ServiceRate == nil && req.Discount == 0
	})).Return(&domain.Invoice{ID: 1, BookingID: 7}, nil)

	w := serve(NewHandler(uc, logger.NewNop(), false), "7", "")

	assert.Equal(t, http.StatusCreated, w.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name      string
		bookingID string
		body      string
		err       error
		want      int
	}{
		{"bad id", "x", "", nil, http.StatusBadRequest},
		{"rate above 100", "7", `{"taxRate": 101}`, nil, http.StatusBadRequest},
		{"negative discount", "7", `{"discount": -1}`, nil, http.StatusBadRequest},
		{"exists", "7", "", generateInvoice.ErrInvoiceExists, http.StatusBadRequest},
		{"booking not found", "7", "", generateInvoice.ErrBookingNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			w := serve(NewHandler(uc, logger.NewNop(), false), tt.bookingID, tt.body)

			assert.Equal(t, tt.want, w.Code)
			if tt.err == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
