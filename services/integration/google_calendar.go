package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"suplient/models"
)

// wrapCalendarError surfaces a rejected token as ErrTokenRejected so the
// service layer can deactivate the integration.
func wrapCalendarError(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusUnauthorized {
		return fmt.Errorf("%w: %v", ErrTokenRejected, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// GoogleCalendarProvider serves both capabilities: it is the busy-event feed
// for availability and creates Meet-backed calendar events for sessions.
type GoogleCalendarProvider struct{}

func NewGoogleCalendarProvider() *GoogleCalendarProvider {
	return &GoogleCalendarProvider{}
}

func (p *GoogleCalendarProvider) Platform() string {
	return models.PlatformGoogleCalendar
}

func (p *GoogleCalendarProvider) client(ctx context.Context, integ *models.Integration) (*calendar.Service, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: integ.AccessToken})
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}
	return svc, nil
}

func (p *GoogleCalendarProvider) ListBusyEvents(ctx context.Context, integ *models.Integration, from, to time.Time) ([]models.CalendarEvent, error) {
	svc, err := p.client(ctx, integ)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Events.List("primary").
		SingleEvents(true).
		ShowDeleted(false).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		OrderBy("startTime").
		MaxResults(250).
		Context(ctx).Do()
	if err != nil {
		return nil, wrapCalendarError("failed to list calendar events", err)
	}

	events := make([]models.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Status == "cancelled" || item.Start == nil || item.End == nil {
			continue
		}
		// All-day events carry a date but no dateTime.
		if item.Start.DateTime == "" {
			events = append(events, models.CalendarEvent{
				ID:     item.Id,
				Title:  item.Summary,
				Start:  item.Start.Date,
				End:    item.End.Date,
				AllDay: true,
			})
			continue
		}
		events = append(events, models.CalendarEvent{
			ID:    item.Id,
			Title: item.Summary,
			Start: item.Start.DateTime,
			End:   item.End.DateTime,
		})
	}
	return events, nil
}

func (p *GoogleCalendarProvider) CreateMeeting(ctx context.Context, integ *models.Integration, details models.MeetingDetails, attendees []string) (*models.MeetingInfo, error) {
	svc, err := p.client(ctx, integ)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(models.DateLayout+" "+models.TimeLayout, details.SessionDate+" "+details.SessionTime)
	if err != nil {
		return nil, fmt.Errorf("invalid meeting start: %w", err)
	}
	end := start.Add(time.Duration(details.Duration) * time.Minute)

	event := &calendar.Event{
		Summary:     details.Title,
		Description: details.Description,
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: "UTC"},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: "UTC"},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             fmt.Sprintf("session-%d", start.Unix()),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}
	for _, email := range attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := svc.Events.Insert("primary", event).
		ConferenceDataVersion(1).
		Context(ctx).Do()
	if err != nil {
		return nil, wrapCalendarError("failed to create calendar event", err)
	}

	joinLink := created.HangoutLink
	if joinLink == "" {
		joinLink = created.HtmlLink
	}
	return &models.MeetingInfo{
		MeetingID: created.Id,
		JoinLink:  joinLink,
		Platform:  models.PlatformGoogleCalendar,
	}, nil
}
