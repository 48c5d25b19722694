package seats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"boxoffice/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	HoldSeatsFunc      func(ctx context.Context, eventID uuid.UUID, req HoldSeatsRequest) (*HoldResponse, error)
	ReleaseSeatsFunc   func(ctx context.Context, eventID uuid.UUID, req ReleaseSeatsRequest) (*ReleaseResponse, error)
	GetSeatMapFunc     func(ctx context.Context, eventID uuid.UUID) (*SeatMapResponse, error)
	OverwriteSeatsFunc func(ctx context.Context, eventID uuid.UUID, req OverwriteSeatsRequest) (*OverwriteResponse, error)
}

func (m *mockService) HoldSeats(ctx context.Context, eventID uuid.UUID, req HoldSeatsRequest) (*HoldResponse, error) {
	return m.HoldSeatsFunc(ctx, eventID, req)
}

func (m *mockService) ReleaseSeats(ctx context.Context, eventID uuid.UUID, req ReleaseSeatsRequest) (*ReleaseResponse, error) {
	return m.ReleaseSeatsFunc(ctx, eventID, req)
}

func (m *mockService) GetSeatMap(ctx context.Context, eventID uuid.UUID) (*SeatMapResponse, error) {
	return m.GetSeatMapFunc(ctx, eventID)
}

func (m *mockService) OverwriteSeats(ctx context.Context, eventID uuid.UUID, req OverwriteSeatsRequest) (*OverwriteResponse, error) {
	return m.OverwriteSeatsFunc(ctx, eventID, req)
}

func (m *mockService) InvalidateSeatMap(context.Context, uuid.UUID) {}

type stubSweeper struct {
	released int
	err      error
}

func (s stubSweeper) Sweep(context.Context) (int, error) { return s.released, s.err }

func (s stubSweeper) Stats() ReaperStats { return ReaperStats{TotalRuns: 3} }

type errorBody struct {
	StatusCode int                  `json:"status_code"`
	Errors     response.ErrorDetail `json:"errors"`
}

func newTestRouter(svc Service, sweeper Sweeper) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewController(svc, sweeper)

	api := router.Group("/api")
	api.POST("/seats/hold", controller.HoldSeats)
	api.POST("/events/:id/lock-seats", controller.LockSeats)
	api.POST("/events/:id/release-seats", controller.ReleaseSeats)
	api.PUT("/events/:id/seats", controller.OverwriteSeats)
	api.POST("/admin/reaper/run", controller.RunReaper)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestController_HoldErrorMapping(t *testing.T) {
	eventID := uuid.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantSeats  []string
	}{
		{"seat taken", &SeatConflictError{Err: ErrSeatUnavailable, SeatIDs: []string{"A-1"}}, http.StatusConflict, "SEAT_UNAVAILABLE", []string{"A-1"}},
		{"unknown seat", &SeatConflictError{Err: ErrSeatNotFound, SeatIDs: []string{"Z-9"}}, http.StatusNotFound, "SEAT_NOT_FOUND", []string{"Z-9"}},
		{"unknown event", ErrEventNotFound, http.StatusNotFound, "EVENT_NOT_FOUND", nil},
		{"closed event", ErrEventNotOnSale, http.StatusConflict, "EVENT_NOT_ON_SALE", nil},
		{"too many", ErrTooManySeats, http.StatusBadRequest, "INVALID_REQUEST", nil},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{
				HoldSeatsFunc: func(ctx context.Context, id uuid.UUID, req HoldSeatsRequest) (*HoldResponse, error) {
					assert.Equal(t, eventID, id)
					return nil, tt.err
				},
			}
			router := newTestRouter(svc, stubSweeper{})

			rec := doJSON(router, http.MethodPost, "/api/events/"+eventID.String()+"/lock-seats", gin.H{"seat_ids": []string{"A-1"}})
			require.Equal(t, tt.wantStatus, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Errors.Code)
			assert.Equal(t, tt.wantSeats, body.Errors.SeatIDs)
		})
	}
}

func TestController_HoldRequiresEventID(t *testing.T) {
	called := false
	svc := &mockService{
		HoldSeatsFunc: func(context.Context, uuid.UUID, HoldSeatsRequest) (*HoldResponse, error) {
			called = true
			return &HoldResponse{}, nil
		},
	}
	router := newTestRouter(svc, stubSweeper{})

	rec := doJSON(router, http.MethodPost, "/api/seats/hold", gin.H{"seat_ids": []string{"A-1"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/seats/hold", gin.H{"seat_ids": []string{}, "event_id": uuid.NewString()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/seats/hold", gin.H{"seat_ids": []string{"A-1", "balcony"}, "event_id": uuid.NewString()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)

	rec = doJSON(router, http.MethodPost, "/api/seats/hold", gin.H{"seat_ids": []string{"A-1"}, "event_id": uuid.NewString(), "holder_token": "T1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestController_HoldsNumericRowSeats(t *testing.T) {
	eventID := uuid.New()
	var got []string
	svc := &mockService{
		HoldSeatsFunc: func(_ context.Context, _ uuid.UUID, req HoldSeatsRequest) (*HoldResponse, error) {
			got = req.SeatIDs
			return &HoldResponse{HolderToken: "T1", EventID: eventID.String()}, nil
		},
	}
	router := newTestRouter(svc, stubSweeper{})

	rec := doJSON(router, http.MethodPost, "/api/events/"+eventID.String()+"/lock-seats", gin.H{"seat_ids": []string{"1-1", "12-20"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"1-1", "12-20"}, got)
}

func TestController_BadEventID(t *testing.T) {
	router := newTestRouter(&mockService{}, stubSweeper{})

	rec := doJSON(router, http.MethodPost, "/api/events/not-a-uuid/release-seats", gin.H{"seat_ids": []string{"A-1"}, "holder_token": "T1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestController_OverwriteInvalidTarget(t *testing.T) {
	svc := &mockService{
		OverwriteSeatsFunc: func(context.Context, uuid.UUID, OverwriteSeatsRequest) (*OverwriteResponse, error) {
			return nil, ErrInvalidOverwrite
		},
	}
	router := newTestRouter(svc, stubSweeper{})

	rec := doJSON(router, http.MethodPut, "/api/events/"+uuid.NewString()+"/seats", gin.H{
		"seats": []gin.H{{"seat_id": "A-1", "status": "HELD"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestController_RunReaper(t *testing.T) {
	router := newTestRouter(&mockService{}, stubSweeper{released: 4})

	rec := doJSON(router, http.MethodPost, "/api/admin/reaper/run", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"released":4`)

	router = newTestRouter(&mockService{}, stubSweeper{released: 1, err: errors.New("db down")})
	rec = doJSON(router, http.MethodPost, "/api/admin/reaper/run", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestErrorStatus_HoldExpiredIsGone(t *testing.T) {
	status, code, ok := ErrorStatus(ErrHoldExpired)
	assert.True(t, ok)
	assert.Equal(t, http.StatusGone, status)
	assert.Equal(t, "HOLD_EXPIRED", code)

	status, code, _ = ErrorStatus(&SeatConflictError{Err: ErrHoldInvalid, SeatIDs: []string{"A-1"}})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "HOLD_INVALID", code)
}
