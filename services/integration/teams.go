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

// TeamsProvider creates Microsoft Teams online meetings through the Graph API.
// Like Zoom it contributes no busy feed.
type TeamsProvider struct {
	HTTP *http.Client
}

func NewTeamsProvider() *TeamsProvider {
	return &TeamsProvider{HTTP: &http.Client{Timeout: 10 * time.Second}}
}

func (p *TeamsProvider) Platform() string {
	return models.PlatformTeams
}

func (p *TeamsProvider) ListBusyEvents(context.Context, *models.Integration, time.Time, time.Time) ([]models.CalendarEvent, error) {
	return nil, nil
}

type teamsMeetingRequest struct {
	Subject       string `json:"subject"`
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
}

type teamsMeetingResponse struct {
	ID         string `json:"id"`
	JoinWebURL string `json:"joinWebUrl"`
}

func (p *TeamsProvider) CreateMeeting(ctx context.Context, integ *models.Integration, details models.MeetingDetails, _ []string) (*models.MeetingInfo, error) {
	start, err := time.Parse(models.DateLayout+" "+models.TimeLayout, details.SessionDate+" "+details.SessionTime)
	if err != nil {
		return nil, fmt.Errorf("invalid meeting start: %w", err)
	}
	end := start.Add(time.Duration(details.Duration) * time.Minute)

	body, err := json.Marshal(teamsMeetingRequest{
		Subject:       details.Title,
		StartDateTime: start.Format(time.RFC3339),
		EndDateTime:   end.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode teams request: %w", err)
	}

	url := config.AppConfig.GraphAPIBase + "/me/onlineMeetings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build teams request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+integ.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("teams request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: graph returned status 401", ErrTokenRejected)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("graph returned status %d: %s", resp.StatusCode, raw)
	}

	var meeting teamsMeetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&meeting); err != nil {
		return nil, fmt.Errorf("failed to decode teams response: %w", err)
	}
	return &models.MeetingInfo{
		MeetingID: meeting.ID,
		JoinLink:  meeting.JoinWebURL,
		Platform:  models.PlatformTeams,
	}, nil
}
