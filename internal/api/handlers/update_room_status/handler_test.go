package update_room_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpdateRoomStatus(ctx context.Context, roomID int64, req *models.UpdateRoomStatusRequest) (*models.RoomResponse, error) {
	args := m.Called(ctx, roomID, req)
	resp, _ := args.Get(0).(*models.RoomResponse)
	return resp, args.Error(1)
}

func serve(h *Handler, roomID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/rooms/"+roomID+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"roomId": roomID})
	w := httptest.NewRecorder()
	h.Handle(w, req)
	return w
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateRoomStatus", mock.Anything, int64(4), &models.UpdateRoomStatusRequest{Status: "cleaning"}).
		Return(&models.RoomResponse{ID: 4, Number: "104", Status: "cleaning"}, nil)

	w := serve(NewHandler(svc, logger.NewNop(), false), "4", `{"status": "cleaning"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"cleaning"`)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		roomID string
		body   string
		err    error
		want   int
	}{
		{"bad id", "0", `{"status": "cleaning"}`, nil, http.StatusBadRequest},
		{"unknown status", "4", `{"status": "dirty"}`, nil, http.StatusBadRequest},
		{"missing status", "4", `{}`, nil, http.StatusBadRequest},
		{"room not found", "4", `{"status": "cleaning"}`, catalog.ErrRoomNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("UpdateRoomStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			w := serve(NewHandler(svc, logger.NewNop(), false), tt.roomID, tt.body)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
