package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "suplient/database/repository/booking"
	"suplient/models"
	"suplient/services/integration"
	"suplient/services/notification"
	"suplient/services/scheduling"
	"suplient/utils"
)

// ReminderEnqueuer schedules the pre-session reminder for a committed booking.
type ReminderEnqueuer interface {
	ScheduleSessionReminder(booking *models.Booking) error
}

// GetAvailabilityHandler serves the filtered slot list for one coach-local day.
func GetAvailabilityHandler(svc scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "duration must be a number of minutes", err.Error())
			return
		}
		req := scheduling.AvailabilityRequest{
			CoachID:  c.Query("coachId"),
			Date:     c.Query("date"),
			Zone:     c.DefaultQuery("tz", "UTC"),
			Duration: duration,
			Selected: c.Query("selected"),
		}

		result, err := svc.GetAvailability(c.Request.Context(), req)
		if err != nil {
			var inputErr *scheduling.InputError
			if errors.As(err, &inputErr) {
				utils.JSONError(c, http.StatusBadRequest, inputErr.Msg, "")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", "")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

type commitBookingRequest struct {
	CoachID         string `json:"coachId" binding:"required"`
	ClientID        string `json:"clientId"`
	GroupID         string `json:"groupId"`
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Date            string `json:"date" binding:"required"` // requester-local, YYYY-MM-DD
	Time            string `json:"time" binding:"required"` // requester-local, HH:MM
	Duration        int    `json:"duration" binding:"required"`
	Timezone        string `json:"timezone"`
	MeetingPlatform string `json:"meetingPlatform"`
}

// CommitBookingHandler converts the requester-local instant to UTC, runs the
// atomic commit, then fans out notifications and enqueues the reminder.
// Notification or reminder trouble never fails the committed booking.
func CommitBookingHandler(svc scheduling.Service, notifSvc notification.Service, reminders ReminderEnqueuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		var req commitBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		zone := req.Timezone
		if zone == "" {
			zone = "UTC"
		}

		utcStart, err := scheduling.ToUTC(req.Date, req.Time, zone)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}

		booking := &models.Booking{
			CoachID:         req.CoachID,
			ClientID:        req.ClientID,
			GroupID:         req.GroupID,
			Title:           req.Title,
			Description:     req.Description,
			SessionDate:     utcStart.Date,
			SessionTime:     utcStart.Time,
			Duration:        req.Duration,
			MeetingPlatform: req.MeetingPlatform,
			OriginZone:      zone,
		}

		committed, err := svc.CommitBooking(c.Request.Context(), booking)
		if err != nil {
			var inputErr *scheduling.InputError
			if errors.As(err, &inputErr) {
				utils.JSONError(c, http.StatusBadRequest, inputErr.Msg, "")
				return
			}
			var conflictErr *scheduling.ConflictError
			if errors.As(err, &conflictErr) {
				c.JSON(http.StatusConflict, gin.H{
					"error":     "this time conflicts with an existing booking",
					"conflicts": conflictErr.Report.Conflicts,
				})
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to commit booking", "")
			return
		}

		report := notifSvc.NotifyBookingScheduled(c.Request.Context(), committed)

		if reminders != nil {
			if err := reminders.ScheduleSessionReminder(committed); err != nil {
				logger.Warn("failed to enqueue session reminder",
					zap.String("bookingID", committed.ID), zap.Error(err))
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"bookingId":     committed.ID,
			"booking":       committed,
			"notifications": report,
		})
	}
}

// AttachMeetingHandler runs best-effort meeting orchestration for a booking.
func AttachMeetingHandler(svc integration.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.AttachMeeting(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ListBookingsHandler returns a coach's bookings in an inclusive UTC date range.
func ListBookingsHandler(bookings bookingRepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		coachID := c.Query("coachId")
		from := c.Query("from")
		to := c.Query("to")
		if coachID == "" || from == "" || to == "" {
			utils.JSONError(c, http.StatusBadRequest, "coachId, from and to are required", "")
			return
		}

		list, err := bookings.ListForCoachRange(c.Request.Context(), coachID, from, to)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": list, "count": len(list)})
	}
}

// UpdateBookingStatusHandler moves a booking through its lifecycle and tells
// the participants about the change. A fanout problem never fails the update.
func UpdateBookingStatusHandler(bookings bookingRepo.Repository, notifSvc notification.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		if err := bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}

		var report *notification.FanoutReport
		booking, err := bookings.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.GetLogger().Warn("failed to reload booking for update fanout",
				zap.String("bookingID", c.Param("id")), zap.Error(err))
		} else {
			report = notifSvc.NotifySessionUpdated(c.Request.Context(), booking)
		}

		c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status, "notifications": report})
	}
}
