package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"suplient/config"
	"suplient/models"
)

// ZoomProvider creates scheduled Zoom meetings on behalf of the coach. Zoom
// offers no busy feed here, so its event list is always empty.
type ZoomProvider struct {
	HTTP *http.Client
}

func NewZoomProvider() *ZoomProvider {
	return &ZoomProvider{HTTP: &http.Client{Timeout: 10 * time.Second}}
}

func (p *ZoomProvider) Platform() string {
	return models.PlatformZoom
}

func (p *ZoomProvider) ListBusyEvents(context.Context, *models.Integration, time.Time, time.Time) ([]models.CalendarEvent, error) {
	return nil, nil
}

type zoomMeetingRequest struct {
	Topic     string `json:"topic"`
	Type      int    `json:"type"` // 2 = scheduled meeting
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Timezone  string `json:"timezone"`
	Agenda    string `json:"agenda,omitempty"`
}

type zoomMeetingResponse struct {
	ID       int64  `json:"id"`
	JoinURL  string `json:"join_url"`
	Password string `json:"password"`
}

func (p *ZoomProvider) CreateMeeting(ctx context.Context, integ *models.Integration, details models.MeetingDetails, _ []string) (*models.MeetingInfo, error) {
	start, err := time.Parse(models.DateLayout+" "+models.TimeLayout, details.SessionDate+" "+details.SessionTime)
	if err != nil {
		return nil, fmt.Errorf("invalid meeting start: %w", err)
	}

	body, err := json.Marshal(zoomMeetingRequest{
		Topic:     details.Title,
		Type:      2,
		StartTime: start.Format(time.RFC3339),
		Duration:  details.Duration,
		Timezone:  "UTC",
		Agenda:    details.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode zoom request: %w", err)
	}

	url := config.AppConfig.ZoomAPIBase + "/users/me/meetings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build zoom request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+integ.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zoom request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: zoom returned status 401", ErrTokenRejected)
	}
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("zoom returned status %d: %s", resp.StatusCode, raw)
	}

	var meeting zoomMeetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&meeting); err != nil {
		return nil, fmt.Errorf("failed to decode zoom response: %w", err)
	}
	return &models.MeetingInfo{
		MeetingID: fmt.Sprintf("%d", meeting.ID),
		JoinLink:  meeting.JoinURL,
		Password:  meeting.Password,
		Platform:  models.PlatformZoom,
	}, nil
}
