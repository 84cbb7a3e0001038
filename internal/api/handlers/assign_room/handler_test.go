package assign_room

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	assignRoom "github.com/m04kA/SMC-RoomBookingService/internal/usecase/assign_room"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Assign(ctx context.Context, req *assignRoom.AssignRequest) (*assignRoom.AssignResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*assignRoom.AssignResponse)
	return resp, args.Error(1)
}

func (m *mockUseCase) AutoAssign(ctx context.Context, req *assignRoom.AutoAssignRequest) (*assignRoom.AssignResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*assignRoom.AssignResponse)
	return resp, args.Error(1)
}

func post(h http.Handler, path, body, staffID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if staffID != "" {
		req.Header.Set(middleware.StaffIDHeader, staffID)
	}
	w := httptest.NewRecorder()
	middleware.StaffID(h).ServeHTTP(w, req)
	return w
}

func TestAssign_PassesStaffID(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Assign", mock.Anything, mock.MatchedBy(func(req *assignRoom.AssignRequest) bool {
		return req.BookingID == 5 && req.RoomID == 9 && req.AssignedBy != nil && *req.AssignedBy == "clerk-1"
	})).Return(&assignRoom.AssignResponse{
		BookingID:  5,
		RoomID:     9,
		RoomNumber: "101",
		Mode:       domain.AssignManual,
		Changed:    true,
	}, nil)

	h := NewHandler(uc, logger.NewNop(), false)
	w := post(http.HandlerFunc(h.Handle), "/api/v1/assignments/assign", `{"bookingId": 5, "roomId": 9}`, "clerk-1")

	require.Equal(t, http.StatusOK, w.Code)
	var resp AssignmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "101", resp.RoomNumber)
	assert.Equal(t, "manual", resp.Mode)
	assert.True(t, resp.Changed)
	uc.AssertExpectations(t)
}

func TestAssign_ConflictIs409(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Assign", mock.Anything, mock.Anything).Return(nil, assignRoom.ErrRoomOccupied)

	h := NewHandler(uc, logger.NewNop(), false)
	w := post(http.HandlerFunc(h.Handle), "/api/v1/assignments/assign", `{"bookingId": 5, "roomId": 9}`, "")

	assert.Equal(t, http.StatusConflict, w.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.CodeConflict, body.Code)
}

func TestAssign_ValidationAndState(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Assign", mock.Anything, mock.Anything).Return(nil, assignRoom.ErrRoomUnavailable)
	h := NewHandler(uc, logger.NewNop(), false)

	w := post(http.HandlerFunc(h.Handle), "/api/v1/assignments/assign", `{"bookingId": 5}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "is required", body.Details["roomId"])

	w = post(http.HandlerFunc(h.Handle), "/api/v1/assignments/assign", `{"bookingId": 5, "roomId": 9}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.CodeState, body.Code)
}

func TestAutoAssign(t *testing.T) {
	score := 3.0
	uc := &mockUseCase{}
	uc.On("AutoAssign", mock.Anything, mock.MatchedBy(func(req *assignRoom.AutoAssignRequest) bool {
		return req.BookingID == 5 &&
			req.Preferences.PreferredFloor != nil && *req.Preferences.PreferredFloor == 2 &&
			req.Preferences.NearElevator &&
			req.AssignedBy == nil
	})).Return(&assignRoom.AssignResponse{
		BookingID:  5,
		RoomID:     9,
		RoomNumber: "201",
		Mode:       domain.AssignAuto,
		Changed:    true,
		Score:      &score,
	}, nil)

	h := NewAutoHandler(uc, logger.NewNop(), false)
	w := post(http.HandlerFunc(h.Handle), "/api/v1/assignments/auto-assign",
		`{"bookingId": 5, "preferences": {"preferredFloor": 2, "nearElevator": true}}`, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp AssignmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Score)
	assert.Equal(t, 3.0, *resp.Score)
	uc.AssertExpectations(t)
}

func TestAutoAssign_NoRoomIs409(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("AutoAssign", mock.Anything, mock.Anything).Return(nil, assignRoom.ErrNoRoomAvailable)

	h := NewAutoHandler(uc, logger.NewNop(), false)
	w := post(http.HandlerFunc(h.Handle), "/api/v1/assignments/auto-assign", `{"bookingId": 5}`, "")

	assert.Equal(t, http.StatusConflict, w.Code)
}
