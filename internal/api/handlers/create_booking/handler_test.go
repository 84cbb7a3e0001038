package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createBooking.Response)
	return resp, args.Error(1)
}

const validBody = `{
	"categoryId": 3,
	"checkIn": "2025-06-01",
	"checkOut": "2025-06-03",
	"adults": 2,
	"guest": {"email": "ann@example.com", "firstName": "Ann", "lastName": "Lee"}
}`

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return w
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.CategoryID == 3 &&
			req.CheckIn.Equal(types.MustParseDate("2025-06-01")) &&
			req.Adults == 2 &&
			req.Guest.Email == "ann@example.com"
	})).Return(&createBooking.Response{
		BookingID:     10,
		Reference:     "BK-250601-ABC123",
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		CategoryID:    3,
		CheckIn:       types.MustParseDate("2025-06-01"),
		CheckOut:      types.MustParseDate("2025-06-03"),
		Price:         domain.PriceBreakdown{BaseRate: 10000, Nights: 2, FinalTotal: 24600, TaxRate: 1800},
		GuestID:       4,
		CreatedAt:     time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}, nil)

	w := serve(NewHandler(uc, logger.NewNop(), false), validBody)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "BK-250601-ABC123", resp.Reference)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, int64(24600), resp.Price.FinalTotal)
	assert.Equal(t, 18.0, resp.Price.TaxRate)
	uc.AssertExpectations(t)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"unknown field", `{"roomType": "deluxe"}`},
		{"bad date", `{"categoryId": 3, "checkIn": "01.06.2025"}`},
		{"missing guest email", `{"categoryId": 3, "checkIn": "2025-06-01", "checkOut": "2025-06-03", "adults": 1,
			"guest": {"firstName": "Ann", "lastName": "Lee"}}`},
		{"no adults", `{"categoryId": 3, "checkIn": "2025-06-01", "checkOut": "2025-06-03", "adults": 0,
			"guest": {"email": "ann@example.com", "firstName": "Ann", "lastName": "Lee"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			w := serve(NewHandler(uc, logger.NewNop(), false), tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_DomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"capacity", &domain.CapacityError{CategoryID: 3, TotalRooms: 1, CommittedRooms: 1}, http.StatusBadRequest, domain.CodeCapacity},
		{"category not found", createBooking.ErrCategoryNotFound, http.StatusNotFound, domain.CodeNotFound},
		{"occupancy", createBooking.ErrOccupancyExceeded, http.StatusBadRequest, domain.CodeValidation},
		{"internal", errors.Join(createBooking.ErrInternal, errors.New("db down")), http.StatusInternalServerError, domain.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(NewHandler(uc, logger.NewNop(), false), validBody)

			assert.Equal(t, tt.wantCode, w.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Code)
		})
	}
}
