package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "suplient/database/repository/booking"
	"suplient/models"
	"suplient/services/notification"
	"suplient/services/scheduling"
)

type stubScheduling struct {
	availability *scheduling.AvailabilityResult
	availErr     error
	committed    *models.Booking
	commitErr    error
}

func (s *stubScheduling) GetAvailability(context.Context, scheduling.AvailabilityRequest) (*scheduling.AvailabilityResult, error) {
	return s.availability, s.availErr
}

func (s *stubScheduling) CommitBooking(_ context.Context, b *models.Booking) (*models.Booking, error) {
	if s.commitErr != nil {
		return nil, s.commitErr
	}
	s.committed = b
	b.ID = "bk-new"
	return b, nil
}

type stubNotifier struct {
	updated *models.Booking
}

func (s *stubNotifier) NotifyBookingScheduled(context.Context, *models.Booking) *notification.FanoutReport {
	return &notification.FanoutReport{Delivered: 2}
}

func (s *stubNotifier) NotifySessionReminder(context.Context, *models.Booking) *notification.FanoutReport {
	return &notification.FanoutReport{}
}

func (s *stubNotifier) NotifySessionUpdated(_ context.Context, b *models.Booking) *notification.FanoutReport {
	s.updated = b
	return &notification.FanoutReport{Delivered: 2}
}

func availabilityRouter(svc scheduling.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/availability", GetAvailabilityHandler(svc))
	return r
}

func commitRouter(svc scheduling.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bookings", CommitBookingHandler(svc, &stubNotifier{}, nil))
	return r
}

func TestGetAvailabilityHandlerOK(t *testing.T) {
	svc := &stubScheduling{availability: &scheduling.AvailabilityResult{
		Date:           "2024-06-15",
		Zone:           "UTC",
		ZoneRecognized: true,
		Duration:       30,
		Slots:          []string{"09:00", "09:30"},
	}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/availability?coachId=c1&date=2024-06-15&duration=30&tz=UTC", nil)
	availabilityRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body scheduling.AvailabilityResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"09:00", "09:30"}, body.Slots)
}

func TestGetAvailabilityHandlerBadInput(t *testing.T) {
	svc := &stubScheduling{availErr: scheduling.NewInputError("invalid date")}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/availability?coachId=c1&date=nope", nil)
	availabilityRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A non-numeric duration is rejected before the service is called.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/availability?coachId=c1&date=2024-06-15&duration=soon", nil)
	availabilityRouter(svc).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func commitBody(t *testing.T) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"coachId":  "c1",
		"clientId": "cl1",
		"title":    "Session",
		"date":     "2024-06-15",
		"time":     "09:00",
		"duration": 60,
		"timezone": "America/New_York",
	})
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func TestCommitBookingHandlerCreated(t *testing.T) {
	svc := &stubScheduling{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", commitBody(t))
	req.Header.Set("Content-Type", "application/json")
	commitRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		BookingID string `json:"bookingId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "bk-new", body.BookingID)

	// 09:00 New York is stored as 13:00 UTC.
	require.NotNil(t, svc.committed)
	assert.Equal(t, "2024-06-15", svc.committed.SessionDate)
	assert.Equal(t, "13:00", svc.committed.SessionTime)
	assert.Equal(t, "America/New_York", svc.committed.OriginZone)
}

func TestCommitBookingHandlerConflict(t *testing.T) {
	svc := &stubScheduling{commitErr: &scheduling.ConflictError{Report: &models.ConflictReport{
		Conflicts: []models.ConflictEntry{{BookingID: "bk-1", Label: "Existing", Start: 540, End: 600}},
	}}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", commitBody(t))
	req.Header.Set("Content-Type", "application/json")
	commitRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	var body struct {
		Conflicts []models.ConflictEntry `json:"conflicts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Conflicts, 1)
	assert.Equal(t, "bk-1", body.Conflicts[0].BookingID)
}

func TestCommitBookingHandlerMissingFields(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader([]byte(`{"coachId":"c1"}`)))
	req.Header.Set("Content-Type", "application/json")
	commitRouter(&stubScheduling{}).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type stubBookings struct {
	booking   *models.Booking
	updateErr error
}

func (s *stubBookings) GetByID(context.Context, string) (*models.Booking, error) {
	return s.booking, nil
}

func (s *stubBookings) ListForCoachAroundDate(context.Context, string, string) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubBookings) ListForCoachRange(context.Context, string, string, string) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubBookings) InsertIfFree(context.Context, *models.Booking, bookingRepo.ConflictCheck) (*models.ConflictReport, error) {
	return nil, nil
}

func (s *stubBookings) AttachMeeting(context.Context, string, string, string) error { return nil }

func (s *stubBookings) UpdateStatus(_ context.Context, _, status string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.booking.Status = status
	return nil
}

func TestUpdateBookingStatusHandlerNotifiesParticipants(t *testing.T) {
	gin.SetMode(gin.TestMode)
	bookings := &stubBookings{booking: &models.Booking{
		ID: "bk-1", CoachID: "c1", ClientID: "cl1",
		Title: "Session", SessionDate: "2024-06-15", SessionTime: "09:00",
		Duration: 60, Status: models.StatusScheduled,
	}}
	notifier := &stubNotifier{}
	r := gin.New()
	r.PATCH("/bookings/:id/status", UpdateBookingStatusHandler(bookings, notifier))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/bookings/bk-1/status", bytes.NewReader([]byte(`{"status":"cancelled"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, notifier.updated, "participants hear about the change")
	assert.Equal(t, models.StatusCancelled, notifier.updated.Status)
}

func TestUpdateBookingStatusHandlerRejectedTransitionSkipsFanout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	bookings := &stubBookings{
		booking:   &models.Booking{ID: "bk-1", Status: models.StatusCompleted},
		updateErr: errors.New("cannot move a completed booking back to scheduled"),
	}
	notifier := &stubNotifier{}
	r := gin.New()
	r.PATCH("/bookings/:id/status", UpdateBookingStatusHandler(bookings, notifier))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/bookings/bk-1/status", bytes.NewReader([]byte(`{"status":"scheduled"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, notifier.updated, "a failed transition fans nothing out")
}
