package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.BookingListResponse)
	return resp, args.Error(1)
}

func TestHandle_ParsesFilter(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListBookingsRequest) bool {
		return req.Status != nil && *req.Status == "confirmed" &&
			req.CategoryID != nil && *req.CategoryID == 2 &&
			req.From != nil && req.From.String() == "2025-06-01" &&
			req.To == nil &&
			req.Search == "lee" &&
			req.Limit == 10 && req.Offset == 20
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{}, Limit: 10, Offset: 20}, nil)

	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop(), false).Handle(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/bookings?status=confirmed&categoryId=2&from=2025-06-01&search=+lee+&limit=10&offset=20", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookings":[],"limit":10,"offset":20}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	svc := &mockService{}
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop(), false).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings?limit=ten", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)

	svc.On("List", mock.Anything, mock.Anything).Return(nil, bookings.ErrInvalidInput)
	w = httptest.NewRecorder()
	NewHandler(svc, logger.NewNop(), false).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings?status=unknown", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
