package integration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	integrationRepo "suplient/database/repository/integration"
	"suplient/models"
	"suplient/utils"
)

const meetingCreateTimeout = 10 * time.Second

// AttachMeeting creates a meeting resource for an already committed booking
// and records the join link on it. Every failure mode leaves the booking
// itself untouched; the worst case is a session without a link, which the
// coach can retry.
func (s *DefaultIntegrationService) AttachMeeting(ctx context.Context, bookingID string) (*OrchestrationResult, error) {
	logger := utils.GetLogger()

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}

	result := &OrchestrationResult{BookingID: booking.ID, Platform: booking.MeetingPlatform}

	if booking.MeetingPlatform == "" || booking.MeetingPlatform == models.PlatformNone {
		result.Status = AttachSkipped
		return result, nil
	}

	provider, ok := s.Providers[booking.MeetingPlatform]
	if !ok {
		result.Status = AttachUnavailable
		result.Reason = fmt.Sprintf("no provider registered for %s", booking.MeetingPlatform)
		return result, nil
	}

	integ, err := s.Integrations.GetActive(ctx, booking.CoachID, booking.MeetingPlatform)
	if err != nil {
		if err == integrationRepo.ErrNotConnected {
			result.Status = AttachNotConnected
			result.Reason = fmt.Sprintf("%s is not connected for this coach", booking.MeetingPlatform)
			return result, nil
		}
		return nil, err
	}

	details := models.MeetingDetails{
		Title:       booking.Title,
		Description: booking.Description,
		SessionDate: booking.SessionDate,
		SessionTime: booking.SessionTime,
		Duration:    booking.Duration,
	}

	callCtx, cancel := context.WithTimeout(ctx, meetingCreateTimeout)
	defer cancel()
	info, err := provider.CreateMeeting(callCtx, integ, details, s.attendeeEmails(ctx, booking))
	if err != nil {
		if errors.Is(err, ErrTokenRejected) {
			s.deactivate(ctx, booking.CoachID, booking.MeetingPlatform)
			result.Status = AttachNotConnected
			result.Reason = "access token rejected, integration disconnected"
			return result, nil
		}
		logger.Warn("meeting creation failed",
			zap.String("bookingID", booking.ID),
			zap.String("platform", booking.MeetingPlatform),
			zap.Error(err))
		result.Status = AttachUnavailable
		result.Reason = err.Error()
		return result, nil
	}

	if err := s.Bookings.AttachMeeting(ctx, booking.ID, booking.MeetingPlatform, info.JoinLink); err != nil {
		// The meeting exists but the link was not recorded. Surface that
		// distinctly so the caller can retry the attach alone.
		logger.Error("meeting created but link not recorded",
			zap.String("bookingID", booking.ID),
			zap.String("joinLink", info.JoinLink),
			zap.Error(err))
		result.Status = AttachLinkDropped
		result.JoinLink = info.JoinLink
		result.Reason = err.Error()
		return result, nil
	}

	result.Status = AttachAttached
	result.JoinLink = info.JoinLink
	logger.Info("meeting attached",
		zap.String("bookingID", booking.ID),
		zap.String("platform", booking.MeetingPlatform))
	return result, nil
}

// attendeeEmails collects the session participants' addresses on a best-effort
// basis. A missing roster entry costs an invite, never the meeting.
func (s *DefaultIntegrationService) attendeeEmails(ctx context.Context, booking *models.Booking) []string {
	if s.Roster == nil {
		return nil
	}
	var emails []string
	if coach, err := s.Roster.GetUserByID(ctx, booking.CoachID); err == nil && coach.Email != "" {
		emails = append(emails, coach.Email)
	}
	if booking.ClientID != "" {
		if client, err := s.Roster.GetClientByID(ctx, booking.ClientID); err == nil && client.Email != "" {
			emails = append(emails, client.Email)
		}
	}
	if booking.GroupID != "" {
		if group, err := s.Roster.GetGroupByID(ctx, booking.GroupID); err == nil {
			for _, member := range group.Members {
				if member.Email != "" {
					emails = append(emails, member.Email)
				}
			}
		}
	}
	return emails
}
